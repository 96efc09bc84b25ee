package asn1rt

/*
ber.go contains the Basic Encoding Rules (X.690) codec core: tagging,
the per-kind content dispatch and constructed string segments.
*/

/*
berCodec holds the state of a single BER call. A new instance is
created for each [Encode] or [Decode] call.
*/
type berCodec struct {
	opts *Options
	perm *permissive
}

func newBERCodec(o *Options, p *permissive) *berCodec {
	return &berCodec{opts: o, perm: p}
}

func (c *berCodec) indef() bool { return c.opts.Indefinite }

/*
encode returns the complete TLV encoding of v, bound to n.
*/
func (c *berCodec) encode(n *Node, v Value) ([]byte, error) {
	n, err := n.resolve()
	if err != nil {
		return nil, err
	}

	debugBER(newLItem(n, "node"))

	switch n.Kind {
	case KindChoice:
		return c.encodeChoice(n, v)
	case KindOpen:
		return c.encodeOpen(n, v.(Open))
	case KindClass:
		return nil, errorClassEncoding
	case KindSelfRef:
		return nil, errorUnresolved(n.TypeRef)
	}

	content, err := c.encodeContent(n, v)
	if err != nil {
		return nil, err
	}
	return c.wrap(n, content), nil
}

/*
wrap returns content framed by the identifier and length octets of n:
the UNIVERSAL tag when n is untagged, the node tag in place of it when
implicitly tagged, or the node tag around the UNIVERSAL TLV when
explicitly tagged.
*/
func (c *berCodec) wrap(n *Node, content []byte) []byte {
	inner, _ := innerTag(n)
	compound := n.Kind.constructed()

	if n.Tag == nil {
		return encodeTLV(TLV{Class: inner.Class, Tag: inner.Number,
			Compound: compound, Value: content}, c.indef())
	} else if !n.Tag.Explicit {
		return encodeTLV(TLV{Class: n.Tag.Class, Tag: n.Tag.Number,
			Compound: compound, Value: content}, c.indef())
	}

	in := encodeTLV(TLV{Class: inner.Class, Tag: inner.Number,
		Compound: compound, Value: content}, c.indef())
	return c.explicitWrap(*n.Tag, in)
}

func (c *berCodec) explicitWrap(t Tag, inner []byte) []byte {
	return encodeTLV(TLV{Class: t.Class, Tag: t.Number,
		Compound: true, Value: inner}, c.indef())
}

/*
encodeContent returns the content octets of v and is only called for
kinds bearing a tag of their own.
*/
func (c *berCodec) encodeContent(n *Node, v Value) ([]byte, error) {
	switch n.Kind {
	case KindNull:
		return nil, nil
	case KindBoolean:
		return []byte{v.(Boolean).Byte(c.opts.trueByte())}, nil
	case KindInteger:
		i := v.(Integer)
		return encodeIntegerContent(i.Big()), nil
	case KindEnumerated:
		return encodeEnumeratedContent(n, v.(Enumerated))
	case KindBitString:
		return c.encodeBitStringContent(n, v)
	case KindOctetString:
		return c.encodeOctetStringContent(n, v)
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		return encodeStringContent(n.Kind, v.(String))
	case KindOID:
		return encodeOIDContent(v.(ObjectIdentifier))
	case KindSequence, KindSet:
		return c.encodeRecord(n, v.(Record))
	case KindSequenceOf, KindSetOf:
		return c.encodeList(n, v.(List))
	case KindChoice, KindOpen, KindClass, KindSelfRef:
		// framed by their own routines
	}
	return nil, errorKindMismatch(n, v)
}

/*
decode consumes one value of n from the head of data, returning the
value and the number of octets read.
*/
func (c *berCodec) decode(n *Node, data []byte) (Value, int, error) {
	n, err := n.resolve()
	if err != nil {
		return nil, 0, err
	}

	debugBER(newLItem(n, "node"), newLItem(len(data), "len"))

	switch n.Kind {
	case KindChoice:
		return c.decodeChoice(n, data)
	case KindOpen:
		return c.decodeOpen(n, data, nil)
	case KindClass:
		return nil, 0, errorClassEncoding
	case KindSelfRef:
		return nil, 0, errorUnresolved(n.TypeRef)
	}

	t, total, err := readTLV(data)
	if err != nil {
		return nil, 0, err
	}
	debugTLV(newLItem(t, "read"))

	if t, err = c.unwrap(n, t); err != nil {
		return nil, 0, err
	}

	v, err := c.decodeContent(n, t)
	return v, total, err
}

/*
expect returns an error if t does not bear want, unless lenient tag
matching is enabled.
*/
func (c *berCodec) expect(t TLV, want Tag) error {
	if t.Matches(want) || c.opts.LenientTags {
		return nil
	}
	return errorTagMismatch(want, t.Class, t.Tag)
}

/*
unwrap checks the outer tag of t against n and, for an explicitly
tagged node, returns the inner UNIVERSAL TLV.
*/
func (c *berCodec) unwrap(n *Node, t TLV) (TLV, error) {
	outer, _ := ResolveTag(n)
	if err := c.expect(t, outer); err != nil {
		return t, err
	}
	if n.Tag == nil || !n.Tag.Explicit {
		return t, nil
	}

	in, total, err := readTLV(t.Value)
	if err != nil {
		return t, err
	} else if total != len(t.Value) {
		return t, errorTrailingData
	}

	inner, _ := innerTag(n)
	return in, c.expect(in, inner)
}

func (c *berCodec) decodeContent(n *Node, t TLV) (Value, error) {
	content := t.Value
	if t.Compound != n.Kind.constructed() {
		if !t.Compound || !segmentable(n.Kind) {
			return nil, decodingErrorf(n.label(), ": unexpected ",
				primitiveOrConstructed(t.Compound), " encoding")
		}
		var err error
		if content, err = joinSegments(content); err != nil {
			return nil, err
		}
	}

	switch n.Kind {
	case KindNull:
		return decodeNullBER(content)
	case KindBoolean:
		return decodeBooleanBER(content)
	case KindInteger:
		return decodeIntegerBER(content)
	case KindEnumerated:
		return decodeEnumeratedContent(n, content)
	case KindBitString:
		return c.decodeBitStringContent(n, content)
	case KindOctetString:
		return c.decodeOctetStringContent(n, content)
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		return decodeStringContent(n.Kind, content)
	case KindOID:
		return decodeOIDContent(content)
	case KindSequence:
		return c.decodeSequence(n, content)
	case KindSet:
		return c.decodeSet(n, content)
	case KindSequenceOf, KindSetOf:
		return c.decodeList(n, content)
	case KindChoice, KindOpen, KindClass, KindSelfRef:
		// handled by decode
	}
	return nil, schemaErrorf("unknown kind ", int(n.Kind))
}

func primitiveOrConstructed(compound bool) string {
	if compound {
		return "constructed"
	}
	return "primitive"
}

/*
segmentable returns a Boolean value indicative of kind k accepting the
constructed (segmented) string form on decode.
*/
func segmentable(k Kind) bool {
	return k == KindOctetString || k.IsString()
}

/*
joinSegments concatenates the content of the primitive segments of a
constructed string.
*/
func joinSegments(b []byte) (out []byte, err error) {
	for pos := 0; pos < len(b); {
		t, n, err := readTLV(b[pos:])
		if err != nil {
			return nil, err
		} else if t.Compound {
			return nil, decodingErrorf("nested constructed string segments")
		}
		out = append(out, t.Value...)
		pos += n
	}
	return
}

/*
matches returns a Boolean value indicative of t being a plausible
encoding of component comp, as used to detect absent components.
*/
func (c *berCodec) matches(comp *Node, t TLV) bool {
	if tag, ok := ResolveTag(comp); ok {
		return t.Matches(tag)
	}

	r, err := comp.resolve()
	if err != nil {
		return false
	}

	switch r.Kind {
	case KindChoice:
		ix, err := r.index()
		if err != nil {
			return false
		}
		_, ok := ix.tagLookup[tagKey{class: t.Class, number: t.Tag}]
		return ok
	case KindOpen:
		return true
	}
	return false
}
