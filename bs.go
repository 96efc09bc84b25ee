package asn1rt

/*
bs.go contains types and methods pertaining to the ASN.1 BIT
STRING type.
*/

/*
BitString implements the ASN.1 BIT STRING value. Bytes holds the bits
left-aligned; BitLength counts the significant bits.
*/
type BitString struct {
	Bytes     []byte
	BitLength int
}

/*
NewBitString returns an instance of [BitString] alongside an error
following an attempt to parse x, which may be a binary ('0101'B) or
hexadecimal ('A5'H) string literal, or a []byte taken as whole octets.
*/
func NewBitString(x any) (bs BitString, err error) {
	switch tv := x.(type) {
	case []byte:
		bs = BitString{Bytes: append([]byte(nil), tv...), BitLength: len(tv) * 8}
	case string:
		var digits []byte
		var base int
		if digits, base, err = verifyBitStringContents([]byte(tv)); err != nil {
			return
		}
		if base == 2 {
			bs.Bytes, bs.BitLength, err = parseBase2BitString(digits)
		} else {
			bs.Bytes, bs.BitLength = parseBase16BitString(digits)
		}
	case BitString:
		bs = tv
	default:
		err = valueErrorf("unsupported BIT STRING input type")
	}
	return
}

func parseBase2BitString(raw []byte) (bytesOut []byte, bitLen int, err error) {
	bitLen = len(raw)
	bytesOut = make([]byte, (bitLen+7)/8)
	for i, ch := range raw {
		if ch == '1' {
			bytesOut[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return
}

func parseBase16BitString(raw []byte) (bytesOut []byte, bitLen int) {
	bitLen = len(raw) * 4
	bytesOut = make([]byte, (bitLen+7)/8)

	for i, h := range raw {
		var v byte
		switch {
		case '0' <= h && h <= '9':
			v = h - '0'
		case 'a' <= h && h <= 'f':
			v = h - 'a' + 10
		case 'A' <= h && h <= 'F':
			v = h - 'A' + 10
		}
		if i%2 == 0 {
			bytesOut[i/2] = v << 4
		} else {
			bytesOut[i/2] |= v
		}
	}
	return
}

func verifyBitStringContents(in []byte) (digits []byte, base int, err error) {
	if len(in) < 3 {
		err = valueErrorf("input too short for BIT STRING")
		return
	}

	switch in[len(in)-1] {
	case 'B', 'b':
		base = 2
	case 'H', 'h':
		base = 16
	default:
		err = valueErrorf("incompatible terminating character for BIT STRING: ",
			string(in[len(in)-1]))
		return
	}

	raw := in[:len(in)-1]
	if len(raw) < 2 || raw[0] != '\'' || raw[len(raw)-1] != '\'' {
		err = valueErrorf("incompatible encapsulating characters for BIT STRING")
		return
	}
	digits = raw[1 : len(raw)-1]

	for _, c := range digits {
		if base == 2 && c != '0' && c != '1' {
			return nil, 0, valueErrorf("non-binary character in BIT STRING: ", string(c))
		} else if base == 16 && !isHexDigit(c) {
			return nil, 0, valueErrorf("non-hex character in BIT STRING: ", string(c))
		}
	}
	return
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

/*
String returns the binary notation of the receiver instance.
*/
func (r BitString) String() string { return r.Bits() }

/*
Bits returns the binary notation of the receiver, e.g. '0101'B.
*/
func (r BitString) Bits() string {
	bld := newStrBuilder()
	bld.WriteByte('\'')
	for i := 0; i < r.BitLength; i++ {
		bld.WriteByte('0' + byte(r.At(i)))
	}
	bld.WriteString("'B")
	return bld.String()
}

/*
Hex returns the hexadecimal notation of the receiver, e.g. 'A5'H. The
unused trailing bits are cleared.
*/
func (r BitString) Hex() string {
	if r.BitLength == 0 {
		return "''H"
	}
	return "'" + uc(hexstr(r.normalized())) + "'H"
}

/*
At returns the bit at idx, or 0 when idx is out of range.
*/
func (r BitString) At(idx int) int {
	if idx < 0 || idx >= r.BitLength || idx/8 >= len(r.Bytes) {
		return 0
	}
	return int(r.Bytes[idx/8]>>(7-uint(idx%8))) & 1
}

/*
Eq returns a Boolean value indicative of r and x holding the same bits.
Unused trailing bits are ignored.
*/
func (r BitString) Eq(x BitString) bool {
	return r.BitLength == x.BitLength && btseq(r.normalized(), x.normalized())
}

/*
normalized returns the significant octets of the receiver with any
unused trailing bits cleared.
*/
func (r BitString) normalized() []byte {
	n := (r.BitLength + 7) / 8
	if n > len(r.Bytes) {
		n = len(r.Bytes)
	}
	b := append([]byte(nil), r.Bytes[:n]...)
	if unused := n*8 - r.BitLength; unused > 0 && n > 0 {
		b[n-1] &^= byte(1<<uint(unused) - 1)
	}
	return b
}

func (r BitString) validate() error {
	if r.BitLength < 0 || (r.BitLength+7)/8 != len(r.Bytes) {
		return errorBadBitLength
	}
	return nil
}

/*
encodeBitStringContent returns the BER content octets of v: the unused
bit count followed by the bits, or the nested encoding of a
[Contained] value.
*/
func (c *berCodec) encodeBitStringContent(n *Node, v Value) ([]byte, error) {
	if cv, ok := v.(Contained); ok {
		nested, err := c.encode(containedType(n, cv), cv.Value)
		if err != nil {
			return nil, err
		}
		return append([]byte{0x00}, nested...), nil
	}

	bs := v.(BitString)
	b := bs.normalized()
	unused := len(b)*8 - bs.BitLength
	return append([]byte{byte(unused)}, b...), nil
}

func (c *berCodec) decodeBitStringContent(n *Node, content []byte) (Value, error) {
	if len(content) == 0 {
		return nil, errorBadBitString
	}

	unused := int(content[0])
	data := content[1:]
	if unused > 7 || (len(data) == 0 && unused != 0) {
		return nil, errorBadBitString
	}

	if target := n.containing(); target != nil {
		if unused != 0 {
			return nil, errorBadBitString
		}
		v, used, err := c.decode(target, data)
		if err == nil && used != len(data) {
			err = errorTrailingData
		}
		return Contained{Type: target, Value: v}, err
	}

	return BitString{
		Bytes:     append([]byte(nil), data...),
		BitLength: len(data)*8 - unused,
	}, nil
}

/*
encodeBitString appends a PER BIT STRING: the bit count per the SIZE
constraint, optional P, then the bits. A CONTAINING constraint
replaces the bits with the nested encoding and its SIZE bounds are
not visible.
*/
func (c *perCodec) encodeBitString(buf *BitBuffer, off int, n *Node, v Value) (int, error) {
	sz := n.span()
	var bs BitString

	if cv, ok := v.(Contained); ok {
		nested, err := c.encodeNested(containedType(n, cv), cv.Value)
		if err != nil {
			return off, err
		}
		bs = BitString{Bytes: nested, BitLength: len(nested) * 8}
		sz = span{lb: ptrTo(int64(0))}
	} else {
		bs = v.(BitString)
	}

	off, frag, err := c.putCount(buf, off, sz, bs.BitLength)
	if err != nil {
		return off, err
	}
	if c.alignsContent(sz, bs.BitLength, 1) {
		off = c.pad(buf, off)
	}

	off = c.putBitRun(buf, off, bs.Bytes, bs.BitLength)
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) decodeBitString(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	sz := n.span()
	target := n.containing()
	if target != nil {
		sz = span{lb: ptrTo(int64(0))}
	}

	count, frag, off, err := c.getCount(buf, off, sz)
	if err != nil {
		return nil, off, err
	}
	if c.alignsContent(sz, count, 1) {
		if off, err = c.skipPad(buf, off); err != nil {
			return nil, off, err
		}
	}

	var b []byte
	if b, off, err = c.getBitRun(buf, off, count); err == nil {
		off, err = c.skipFragmentEnd(buf, off, frag)
	}
	if err != nil {
		return nil, off, err
	}

	if target != nil {
		if count%8 != 0 {
			return nil, off, errorBadBitString
		}
		inner, err := c.decodeNested(target, b)
		return Contained{Type: target, Value: inner}, off, err
	}

	return BitString{Bytes: b, BitLength: count}, off, nil
}

/*
putBitRun appends the first count bits of b.
*/
func (c *perCodec) putBitRun(buf *BitBuffer, off int, b []byte, count int) int {
	full := count / 8
	off = c.putOctets(buf, off, b[:full])
	if rem := count % 8; rem > 0 {
		off = c.putBits(buf, off, uint64(b[full]>>(8-uint(rem))), rem)
	}
	return off
}

func (c *perCodec) getBitRun(buf *BitBuffer, off, count int) ([]byte, int, error) {
	b, off, err := c.getOctets(buf, off, count/8)
	if err != nil {
		return nil, off, err
	}
	if rem := count % 8; rem > 0 {
		var last uint64
		if last, off, err = c.getBits(buf, off, rem); err != nil {
			return nil, off, err
		}
		b = append(b, byte(last<<(8-uint(rem))))
	}
	return b, off, nil
}

/*
containedType returns the type a [Contained] value is encoded as: the
CONTAINING target of n, or the type named by the value itself.
*/
func containedType(n *Node, cv Contained) *Node {
	if t := n.containing(); t != nil {
		return t
	}
	return cv.Type
}
