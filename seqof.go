package asn1rt

/*
seqof.go contains the BER and PER handling of the ASN.1 SEQUENCE OF
and SET OF types.
*/

/*
encodeList returns the BER content octets of a SEQUENCE OF or SET OF:
the TLVs of the elements in order.
*/
func (c *berCodec) encodeList(n *Node, list List) (out []byte, err error) {
	for _, elem := range list {
		var b []byte
		if b, err = c.encode(n.Of, elem); err != nil {
			if c.perm.tolerate(err) {
				err = nil
				continue
			}
			return nil, err
		}
		out = append(out, b...)
	}
	return
}

func (c *berCodec) decodeList(n *Node, content []byte) (Value, error) {
	var list List
	for pos := 0; pos < len(content); {
		elem, used, err := c.decode(n.Of, content[pos:])
		if err != nil {
			if c.perm.tolerate(err) {
				return list, nil
			}
			return list, err
		}
		list = append(list, elem)
		pos += used
	}
	return list, nil
}

/*
encodeList appends a PER SEQUENCE OF or SET OF: the element count per
the SIZE constraint followed by the elements.
*/
func (c *perCodec) encodeList(buf *BitBuffer, off int, n *Node, list List) (int, error) {
	off, frag, err := c.putCount(buf, off, n.span(), len(list))
	if err != nil {
		return off, err
	}

	for _, elem := range list {
		if off, err = c.encode(buf, off, n.Of, elem); err != nil {
			return off, err
		}
	}
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) decodeList(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	count, frag, off, err := c.getCount(buf, off, n.span())
	if err != nil {
		return nil, off, err
	}

	var list List
	for i := 0; i < count; i++ {
		var elem Value
		if elem, off, err = c.decode(buf, off, n.Of); err != nil {
			return list, off, err
		}
		list = append(list, elem)
	}

	off, err = c.skipFragmentEnd(buf, off, frag)
	return list, off, err
}
