package asn1rt

/*
oct.go contains all types and methods pertaining to the ASN.1
OCTET STRING type.
*/

/*
NewOctetString returns an instance of [OctetString] alongside an error
following an attempt to marshal x.
*/
func NewOctetString(x any) (oct OctetString, err error) {
	switch tv := x.(type) {
	case []byte:
		oct = OctetString(append([]byte(nil), tv...))
	case string:
		oct = OctetString(tv)
	case OctetString:
		oct = tv
	default:
		err = valueErrorf("unsupported OCTET STRING input type")
	}
	return
}

/*
String returns the hexadecimal notation of the receiver, e.g. '0AFF'H.
*/
func (r OctetString) String() string { return "'" + uc(hexstr(r)) + "'H" }

/*
Len returns the integer length of the receiver instance.
*/
func (r OctetString) Len() int { return len(r) }

func (c *berCodec) encodeOctetStringContent(n *Node, v Value) ([]byte, error) {
	if cv, ok := v.(Contained); ok {
		return c.encode(containedType(n, cv), cv.Value)
	}
	return []byte(v.(OctetString)), nil
}

func (c *berCodec) decodeOctetStringContent(n *Node, content []byte) (Value, error) {
	if target := n.containing(); target != nil {
		v, used, err := c.decode(target, content)
		if err == nil && used != len(content) {
			err = errorTrailingData
		}
		return Contained{Type: target, Value: v}, err
	}
	return OctetString(append([]byte(nil), content...)), nil
}

/*
encodeOctetString appends a PER OCTET STRING: the octet count per the
SIZE constraint, optional P, then the octets. A CONTAINING constraint
replaces the octets with the nested encoding and its SIZE bounds are
not visible.
*/
func (c *perCodec) encodeOctetString(buf *BitBuffer, off int, n *Node, v Value) (int, error) {
	sz := n.span()
	var content []byte

	if cv, ok := v.(Contained); ok {
		nested, err := c.encodeNested(containedType(n, cv), cv.Value)
		if err != nil {
			return off, err
		}
		content, sz = nested, span{lb: ptrTo(int64(0))}
	} else {
		content = v.(OctetString)
	}

	off, frag, err := c.putCount(buf, off, sz, len(content))
	if err != nil {
		return off, err
	}
	if c.alignsContent(sz, len(content), 8) {
		off = c.pad(buf, off)
	}
	off = c.putOctets(buf, off, content)
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) decodeOctetString(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	sz := n.span()
	target := n.containing()
	if target != nil {
		sz = span{lb: ptrTo(int64(0))}
	}

	count, frag, off, err := c.getCount(buf, off, sz)
	if err != nil {
		return nil, off, err
	}
	if c.alignsContent(sz, count, 8) {
		if off, err = c.skipPad(buf, off); err != nil {
			return nil, off, err
		}
	}

	var b []byte
	if b, off, err = c.getOctets(buf, off, count); err == nil {
		off, err = c.skipFragmentEnd(buf, off, frag)
	}
	if err != nil {
		return nil, off, err
	}

	if target != nil {
		inner, err := c.decodeNested(target, b)
		return Contained{Type: target, Value: inner}, off, err
	}
	return OctetString(b), off, nil
}
