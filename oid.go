package asn1rt

/*
oid.go contains all types and methods pertaining to the ASN.1
OBJECT IDENTIFIER type.
*/

/*
ObjectIdentifier implements the ASN.1 OBJECT IDENTIFIER value as its
ordered number form arcs.
*/
type ObjectIdentifier []uint64

/*
NewObjectIdentifier returns an instance of [ObjectIdentifier] alongside
an error following an attempt to marshal x as an ASN.1 OBJECT IDENTIFIER.

A single string input is treated as a complete dot notation value,
e.g. "1.3.6.1". Otherwise every input is an individual arc and may be
an int, int64, uint64 or [Integer].
*/
func NewObjectIdentifier(x ...any) (r ObjectIdentifier, err error) {
	if len(x) == 1 {
		if dot, ok := x[0].(string); ok {
			return newObjectIdentifierStr(dot)
		}
	}

	for i := 0; i < len(x) && err == nil; i++ {
		var arc uint64
		switch tv := x[i].(type) {
		case int:
			arc, err = nonNegativeArc(int64(tv))
		case int64:
			arc, err = nonNegativeArc(tv)
		case uint64:
			arc = tv
		case Integer:
			if i64, ok := tv.Int64(); ok {
				arc, err = nonNegativeArc(i64)
			} else {
				err = valueErrorf("OBJECT IDENTIFIER arc ", tv.String(), " out of range")
			}
		default:
			err = valueErrorf("unsupported OBJECT IDENTIFIER arc type")
		}
		r = append(r, arc)
	}

	if err == nil {
		err = r.validate()
	}
	if err != nil {
		r = nil
	}
	return
}

func nonNegativeArc(x int64) (uint64, error) {
	if x < 0 {
		return 0, valueErrorf("OBJECT IDENTIFIER arcs cannot be negative")
	}
	return uint64(x), nil
}

func newObjectIdentifierStr(dot string) (r ObjectIdentifier, err error) {
	for _, part := range split(dot, `.`) {
		var arc uint64
		if arc, err = puint(part, 10, 64); err != nil {
			return nil, valueErrorf("invalid OBJECT IDENTIFIER ", dot)
		}
		r = append(r, arc)
	}

	if err = r.validate(); err != nil {
		r = nil
	}
	return
}

/*
String returns the dot notation of the receiver instance.
*/
func (r ObjectIdentifier) String() string {
	x := make([]string, len(r))
	for i, arc := range r {
		x[i] = fmtUint(arc, 10)
	}
	return join(x, `.`)
}

/*
Eq returns a Boolean value indicative of an equality match between
the receiver and o.
*/
func (r ObjectIdentifier) Eq(o ObjectIdentifier) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

/*
Valid returns a Boolean value indicative of the receiver bearing two
or more arcs with a first arc of 0, 1 or 2, and a second arc below 40
under first arcs 0 and 1.
*/
func (r ObjectIdentifier) Valid() bool { return r.validate() == nil }

func (r ObjectIdentifier) validate() error {
	switch {
	case len(r) < 2:
		return errorOIDTooShort
	case r[0] > 2:
		return errorOIDFirstArc
	case r[0] < 2 && r[1] >= 40:
		return errorOIDSecondArc
	case r[1] > ^uint64(0)-80:
		return valueErrorf("OBJECT IDENTIFIER second arc too large")
	}
	return nil
}

/*
encodeOIDContent returns the BER content octets of r: the first two
arcs combined as 40*first+second, then every arc in base-128.
*/
func encodeOIDContent(r ObjectIdentifier) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	out := encodeBase128Int(r[0]*40 + r[1])
	for _, arc := range r[2:] {
		out = append(out, encodeBase128Int(arc)...)
	}
	return out, nil
}

func decodeOIDContent(content []byte) (Value, error) {
	if len(content) == 0 {
		return nil, errorBadOID
	}

	var subs []uint64
	for pos := 0; pos < len(content); {
		if content[pos] == 0x80 {
			return nil, errorBadOID // non-minimal arc
		}
		v, n, err := readBase128Int(content[pos:])
		if err != nil {
			return nil, err
		}
		subs = append(subs, v)
		pos += n
	}

	var first, second uint64
	switch {
	case subs[0] < 40:
		first, second = 0, subs[0]
	case subs[0] < 80:
		first, second = 1, subs[0]-40
	default:
		first, second = 2, subs[0]-80
	}

	return append(ObjectIdentifier{first, second}, subs[1:]...), nil
}

/*
encodeOID appends a PER OBJECT IDENTIFIER: L followed by the BER
content octets.
*/
func (c *perCodec) encodeOID(buf *BitBuffer, off int, v ObjectIdentifier) (int, error) {
	content, err := encodeOIDContent(v)
	if err != nil {
		return off, err
	}

	var frag bool
	if off, frag, err = c.putLength(buf, off, len(content)); err != nil {
		return off, err
	}
	off = c.putOctets(buf, off, content)
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) decodeOID(buf *BitBuffer, off int) (Value, int, error) {
	n, frag, off, err := c.getLength(buf, off)
	if err != nil {
		return nil, off, err
	}

	var b []byte
	if b, off, err = c.getOctets(buf, off, n); err == nil {
		off, err = c.skipFragmentEnd(buf, off, frag)
	}
	if err != nil {
		return nil, off, err
	}

	v, err := decodeOIDContent(b)
	return v, off, err
}
