package asn1rt

/*
choice.go contains the BER and PER handling of the ASN.1 CHOICE type.
*/

/*
choiceAlternative returns the alternative of n selected by v.
*/
func choiceAlternative(n *Node, v Choice) (*Node, error) {
	if v.Name == "" {
		return nil, errorChoiceNoName
	}
	alt, ok := n.Component(v.Name)
	if !ok {
		return nil, errorUnknownComponent(n.label(), v.Name)
	}
	return alt, nil
}

/*
encodeChoice returns the BER encoding of the selected alternative. A
tagged CHOICE is always wrapped explicitly. An [UnknownAlternative]
reproduces its raw TLV.
*/
func (c *berCodec) encodeChoice(n *Node, v Value) (out []byte, err error) {
	debugEnter(newLItem(n, "choice"))
	defer func() { debugExit(newLItem(err, "err")) }()

	switch tv := v.(type) {
	case UnknownAlternative:
		out = append([]byte(nil), tv.Raw...)
	case Choice:
		var alt *Node
		if alt, err = choiceAlternative(n, tv); err == nil {
			out, err = c.encode(alt, tv.Value)
		}
	default:
		err = errorKindMismatch(n, v)
	}

	if err == nil && n.Tag != nil {
		out = c.explicitWrap(*n.Tag, out)
	}
	return
}

/*
decodeChoice selects the alternative of n by the tag found at the head
of data. An unknown tag yields an [UnknownAlternative] holding the raw
TLV when n is extensible.
*/
func (c *berCodec) decodeChoice(n *Node, data []byte) (Value, int, error) {
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

	t, used, err := readTLV(body)
	if err != nil {
		return nil, 0, err
	}

	ix, err := n.index()
	if err != nil {
		return nil, 0, err
	}

	var v Value
	path, known := ix.tagLookup[tagKey{class: t.Class, number: t.Tag}]
	switch {
	case known:
		alt := n.Components[ix.byName[path[0]]]
		var inner Value
		if inner, used, err = c.decode(alt, body); err != nil {
			return nil, 0, err
		}
		v = Choice{Name: alt.Name, Value: inner}
	case n.Extensible:
		debugChoice(newLItem(t, "unknown alternative"))
		v = UnknownAlternative{Index: -1, Raw: append([]byte(nil), body[:used]...)}
	default:
		return nil, 0, decodingErrorf(n.label(), ": no alternative for tag ",
			tagKey{class: t.Class, number: t.Tag})
	}

	if n.Tag == nil {
		return v, used, nil
	} else if used != len(body) {
		return nil, 0, errorTrailingData
	}
	return v, total, nil
}

/*
choiceIndex returns the position of name among the root alternatives
or, with ext true, among the extension alternatives.
*/
func choiceIndex(ix *indices, name string) (i int, ext bool) {
	if i = indexOfName(ix.rootComponents, name); i >= 0 {
		return i, false
	}
	return indexOfName(ix.extensionFlat, name), true
}

func indexOfName(names []string, name string) int {
	for i, x := range names {
		if x == name {
			return i
		}
	}
	return -1
}

/*
encodeChoice appends a PER CHOICE: an extension bit when extensible,
then either the root index as a constrained whole number followed by
the alternative, or the extension index as a normally small number
followed by the alternative wrapped as an open type. Root indices
follow declaration order, which equals canonical tag order under
AUTOMATIC TAGS.
*/
func (c *perCodec) encodeChoice(buf *BitBuffer, off int, n *Node, v Value) (int, error) {
	ix, err := n.index()
	if err != nil {
		return off, err
	}

	if u, ok := v.(UnknownAlternative); ok {
		if !n.Extensible || u.Index < 0 {
			return off, encodingErrorf(n.label(), ": unknown alternative cannot be encoded")
		}
		off = c.putBit(buf, off, true)
		if off, err = c.putNSVal(buf, off, uint64(u.Index)); err != nil {
			return off, err
		}
		return c.putOpen(buf, off, u.Raw)
	}

	cv, ok := v.(Choice)
	if !ok {
		return off, errorKindMismatch(n, v)
	}
	alt, err := choiceAlternative(n, cv)
	if err != nil {
		return off, err
	}

	i, ext := choiceIndex(ix, alt.Name)
	debugChoice(newLItem(alt.Name, "alternative"), newLItem(i, "index"))

	if n.Extensible {
		off = c.putBit(buf, off, ext)
	}
	if !ext {
		if off, err = c.putConstrained(buf, off, 0, int64(len(ix.rootComponents)-1), int64(i)); err != nil {
			return off, err
		}
		return c.encode(buf, off, alt, cv.Value)
	}

	if off, err = c.putNSVal(buf, off, uint64(i)); err != nil {
		return off, err
	}
	content, err := c.encodeNested(alt, cv.Value)
	if err != nil {
		return off, err
	}
	return c.putOpen(buf, off, content)
}

func (c *perCodec) decodeChoice(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	ix, err := n.index()
	if err != nil {
		return nil, off, err
	}

	var ext bool
	if n.Extensible {
		if ext, off, err = c.getBit(buf, off); err != nil {
			return nil, off, err
		}
	}

	if !ext {
		var i int64
		if i, off, err = c.getConstrained(buf, off, 0, int64(len(ix.rootComponents)-1)); err != nil {
			return nil, off, err
		}
		alt := n.Components[ix.byName[ix.rootComponents[i]]]
		var inner Value
		if inner, off, err = c.decode(buf, off, alt); err != nil {
			return nil, off, err
		}
		return Choice{Name: alt.Name, Value: inner}, off, nil
	}

	i, off, err := c.getNSVal(buf, off)
	if err != nil {
		return nil, off, err
	}
	content, off, err := c.getOpen(buf, off)
	if err != nil {
		return nil, off, err
	}

	if i >= uint64(len(ix.extensionFlat)) {
		debugChoice(newLItem(i, "unknown extension index"))
		return UnknownAlternative{Index: int(i), Raw: content}, off, nil
	}

	alt := n.Components[ix.byName[ix.extensionFlat[i]]]
	inner, err := c.decodeNested(alt, content)
	if err != nil {
		return nil, off, err
	}
	return Choice{Name: alt.Name, Value: inner}, off, nil
}
