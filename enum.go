package asn1rt

/*
enum.go contains all types and methods pertaining to the ASN.1
ENUMERATED type.
*/

/*
String returns the string representation of the receiver instance.
*/
func (r Enumerated) String() string { return string(r) }

/*
enumNumber returns the number of the item named by v within n.
*/
func enumNumber(n *Node, v Enumerated) (int64, error) {
	num, ok := n.Number(string(v))
	if !ok {
		return 0, valueErrorf(n.label(), ": unknown ENUMERATED item ", string(v))
	}
	return num, nil
}

func enumName(n *Node, num int64) (Enumerated, error) {
	for _, nn := range n.Numbers {
		if nn.Number == num {
			return Enumerated(nn.Name), nil
		}
	}
	return "", decodingErrorf(n.label(), ": unknown ENUMERATED number ", num)
}

/*
encodeEnumeratedContent returns the BER content octets of v: the
minimal two's complement of the item number, as for INTEGER.
*/
func encodeEnumeratedContent(n *Node, v Enumerated) ([]byte, error) {
	num, err := enumNumber(n, v)
	if err != nil {
		return nil, err
	}
	// X.690 8.4: signed, so item 200 takes two octets (00 C8).
	return encodeIntegerContent(newBigInt(num)), nil
}

func decodeEnumeratedContent(n *Node, content []byte) (Value, error) {
	if len(content) == 0 {
		return nil, errorBadInteger
	}
	num := decodeIntegerContent(content)
	if !num.IsInt64() {
		return nil, decodingErrorf(n.label(), ": ENUMERATED number out of range")
	}
	return enumName(n, num.Int64())
}

/*
encodeEnumerated appends a PER ENUMERATED: an extension bit when the
type is extensible, then the index of the item among the sorted root
items as a constrained whole number, or its index among the sorted
extension items as a normally small number.
*/
func (c *perCodec) encodeEnumerated(buf *BitBuffer, off int, n *Node, v Enumerated) (int, error) {
	ix, err := n.index()
	if err != nil {
		return off, err
	}

	root := indexOfItem(ix.enumRoot, string(v))
	ext := indexOfItem(ix.enumExt, string(v))
	if root < 0 && ext < 0 {
		return off, valueErrorf(n.label(), ": unknown ENUMERATED item ", string(v))
	}

	if n.Extensible {
		off = c.putBit(buf, off, root < 0)
		if root < 0 {
			return c.putNSVal(buf, off, uint64(ext))
		}
	}
	return c.putConstrained(buf, off, 0, int64(len(ix.enumRoot)-1), int64(root))
}

func (c *perCodec) decodeEnumerated(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	ix, err := n.index()
	if err != nil {
		return nil, off, err
	}

	if n.Extensible {
		var isExt bool
		if isExt, off, err = c.getBit(buf, off); err != nil {
			return nil, off, err
		} else if isExt {
			var i uint64
			if i, off, err = c.getNSVal(buf, off); err != nil {
				return nil, off, err
			} else if i >= uint64(len(ix.enumExt)) {
				return nil, off, decodingErrorf(n.label(),
					": unknown ENUMERATED extension index ", i)
			}
			return Enumerated(ix.enumExt[i].Name), off, nil
		}
	}

	i, off, err := c.getConstrained(buf, off, 0, int64(len(ix.enumRoot)-1))
	if err != nil {
		return nil, off, err
	}
	return Enumerated(ix.enumRoot[i].Name), off, nil
}

func indexOfItem(list []NamedNumber, name string) int {
	for i, nn := range list {
		if nn.Name == name {
			return i
		}
	}
	return -1
}
