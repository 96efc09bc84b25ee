package asn1rt

/*
open.go contains the BER and PER handling of open types: components
whose type is selected at run time through an information object set.
*/

/*
openTarget returns the type an OPEN component comp takes within rec:
the type field of the object of its SET-REFERENCE set whose UNIQUE
field equals the sibling named by the reference. A nil return means
the value travels as raw octets.
*/
func openTarget(comp *Node, rec Record) *Node {
	sr, ok := comp.setReference()
	if !ok {
		return nil
	}

	key, ok := rec[sr.At]
	if !ok {
		return nil
	}
	if ch, isChoice := key.(Choice); isChoice && ch.Value != nil {
		if _, direct := lookupObject(sr.Set, key); !direct {
			key = ch.Value
		}
	}

	obj, ok := lookupObject(sr.Set, key)
	if !ok {
		debugSchema(newLItem(comp, "no object for"), newLItem(valueString(key), "key"))
		return nil
	}

	tf, ok := obj[sr.Field].(TypeField)
	if !ok {
		return nil
	}
	return tf.Type
}

/*
openContent returns the encoding carried by o: a nested encoding of
its value when its type is known, otherwise its raw octets.
*/
func openContent(o Open, nested func(*Node, Value) ([]byte, error)) ([]byte, error) {
	if o.Type != nil && o.Value != nil {
		return nested(o.Type, o.Value)
	}
	return append([]byte(nil), o.Raw...), nil
}

/*
encodeOpen returns the BER encoding of o: the complete TLV of its
value, wrapped explicitly when n is tagged.
*/
func (c *berCodec) encodeOpen(n *Node, o Open) ([]byte, error) {
	inner, err := openContent(o, c.encode)
	if err != nil {
		return nil, err
	} else if len(inner) == 0 {
		return nil, encodingErrorf(n.label(), ": open type value without content")
	}

	if n.Tag != nil {
		return c.explicitWrap(*n.Tag, inner), nil
	}
	return inner, nil
}

/*
decodeOpen consumes one open type value of n. With a nil target, the
complete TLV is kept as [Open.Raw].
*/
func (c *berCodec) decodeOpen(n *Node, data []byte, target *Node) (Value, int, error) {
	body, total := data, 0
	if n.Tag != nil {
		outer, tot, err := readTLV(data)
		if err != nil {
			return nil, 0, err
		} else if err = c.expect(outer, *n.Tag); err != nil {
			return nil, 0, err
		}
		body, total = outer.Value, tot
	}

	var v Value
	var used int
	if target != nil {
		inner, u, err := c.decode(target, body)
		if err != nil {
			return nil, 0, err
		}
		v, used = Open{Type: target, Value: inner}, u
	} else {
		_, u, err := readTLV(body)
		if err != nil {
			return nil, 0, err
		}
		v, used = Open{Raw: append([]byte(nil), body[:u]...)}, u
	}

	if n.Tag == nil {
		return v, used, nil
	} else if used != len(body) {
		return nil, 0, errorTrailingData
	}
	return v, total, nil
}

/*
encodeOpen appends a PER open type: P, L and the octets of a complete
encoding of the value.
*/
func (c *perCodec) encodeOpen(buf *BitBuffer, off int, n *Node, o Open) (int, error) {
	content, err := openContent(o, c.encodeNested)
	if err != nil {
		return off, err
	}
	return c.putOpen(buf, off, content)
}

func (c *perCodec) decodeOpen(buf *BitBuffer, off int, n *Node, target *Node) (Value, int, error) {
	content, off, err := c.getOpen(buf, off)
	if err != nil {
		return nil, off, err
	}

	if target == nil {
		return Open{Raw: content}, off, nil
	}

	v, err := c.decodeNested(target, content)
	if err != nil {
		return nil, off, err
	}
	return Open{Type: target, Value: v}, off, nil
}
