package asn1rt

/*
per.go contains the Packed Encoding Rules (X.691) codec core: the
primitive sub-encodings shared by all kinds and the per-kind dispatch.

Every routine receives the running bit offset and returns the updated
offset. The offset is relative to the start of the enclosing encoding
and is reset to zero only at open-type boundaries, where nested
content is encoded into a fresh buffer.
*/

import "math/big"

/*
perCodec holds the state of a single PER call. A new instance is
created for each [Encode] or [Decode] call.
*/
type perCodec struct {
	aligned bool
	opts    *Options
	perm    *permissive
}

func newPERCodec(rule EncodingRule, o *Options, p *permissive) *perCodec {
	return &perCodec{aligned: rule != UPER, opts: o, perm: p}
}

/*
encode appends the encoding of v, bound to n, to buf.
*/
func (c *perCodec) encode(buf *BitBuffer, off int, n *Node, v Value) (int, error) {
	n, err := n.resolve()
	if err != nil {
		return off, err
	}
	if !c.aligned && !n.Kind.scalar() {
		return off, errorUPERComposite
	}

	debugPER(newLItem(n, "node"), newLItem(off, "off"))

	switch n.Kind {
	case KindNull:
		return off, nil
	case KindBoolean:
		return c.encodeBoolean(buf, off, v.(Boolean))
	case KindInteger:
		return c.encodeInteger(buf, off, n, v.(Integer))
	case KindEnumerated:
		return c.encodeEnumerated(buf, off, n, v.(Enumerated))
	case KindBitString:
		return c.encodeBitString(buf, off, n, v)
	case KindOctetString:
		return c.encodeOctetString(buf, off, n, v)
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		return c.encodeString(buf, off, n, v.(String))
	case KindOID:
		return c.encodeOID(buf, off, v.(ObjectIdentifier))
	case KindChoice:
		return c.encodeChoice(buf, off, n, v)
	case KindSequence, KindSet:
		return c.encodeRecord(buf, off, n, v.(Record))
	case KindSequenceOf, KindSetOf:
		return c.encodeList(buf, off, n, v.(List))
	case KindOpen:
		return c.encodeOpen(buf, off, n, v.(Open))
	case KindClass:
		return off, errorClassEncoding
	case KindSelfRef:
		return off, errorUnresolved(n.TypeRef)
	}

	return off, errorKindMismatch(n, v)
}

/*
decode consumes the encoding of a value of n from buf.
*/
func (c *perCodec) decode(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	n, err := n.resolve()
	if err != nil {
		return nil, off, err
	}
	if !c.aligned && !n.Kind.scalar() {
		return nil, off, errorUPERComposite
	}

	debugPER(newLItem(n, "node"), newLItem(off, "off"))

	switch n.Kind {
	case KindNull:
		return Null{}, off, nil
	case KindBoolean:
		return c.decodeBoolean(buf, off)
	case KindInteger:
		return c.decodeInteger(buf, off, n)
	case KindEnumerated:
		return c.decodeEnumerated(buf, off, n)
	case KindBitString:
		return c.decodeBitString(buf, off, n)
	case KindOctetString:
		return c.decodeOctetString(buf, off, n)
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		return c.decodeString(buf, off, n)
	case KindOID:
		return c.decodeOID(buf, off)
	case KindChoice:
		return c.decodeChoice(buf, off, n)
	case KindSequence, KindSet:
		return c.decodeRecord(buf, off, n)
	case KindSequenceOf, KindSetOf:
		return c.decodeList(buf, off, n)
	case KindOpen:
		return c.decodeOpen(buf, off, n, nil)
	case KindClass:
		return nil, off, errorClassEncoding
	case KindSelfRef:
		return nil, off, errorUnresolved(n.TypeRef)
	}

	return nil, off, schemaErrorf("unknown kind ", int(n.Kind))
}

/*
putBits appends the low w bits of v.
*/
func (c *perCodec) putBits(buf *BitBuffer, off int, v uint64, w int) int {
	buf.AppendBits(v, w)
	return off + w
}

func (c *perCodec) getBits(buf *BitBuffer, off, w int) (uint64, int, error) {
	v, err := buf.ConsumeBits(w)
	if err != nil {
		return 0, off, err
	}
	return v, off + w, nil
}

func (c *perCodec) putBit(buf *BitBuffer, off int, set bool) int {
	var b uint64
	if set {
		b = 1
	}
	return c.putBits(buf, off, b, 1)
}

func (c *perCodec) getBit(buf *BitBuffer, off int) (bool, int, error) {
	b, off, err := c.getBits(buf, off, 1)
	return b == 1, off, err
}

/*
pad appends P: the zero bits needed to reach the next octet boundary.
It is a no-op in the unaligned variant.
*/
func (c *perCodec) pad(buf *BitBuffer, off int) int {
	if !c.aligned {
		return off
	}
	return c.putBits(buf, off, 0, padBits(off))
}

/*
skipPad consumes P. Padding is computed from off exactly as in pad.
*/
func (c *perCodec) skipPad(buf *BitBuffer, off int) (int, error) {
	if !c.aligned {
		return off, nil
	}
	_, off, err := c.getBits(buf, off, padBits(off))
	return off, err
}

func (c *perCodec) putOctets(buf *BitBuffer, off int, b []byte) int {
	buf.AppendBytes(b)
	return off + len(b)*8
}

func (c *perCodec) getOctets(buf *BitBuffer, off, n int) ([]byte, int, error) {
	b, err := buf.ConsumeBytes(n)
	if err != nil {
		return nil, off, err
	}
	return b, off + n*8, nil
}

/*
putLength appends L, the unconstrained length determinant. Counts up
to 16383 use the one or two octet forms; exact multiples of 16K up
to 64K use the quantized form, in which case frag is returned true
and the caller must close the encoding with [perCodec.endFragment].
Any other count is an [EncodingError].
*/
func (c *perCodec) putLength(buf *BitBuffer, off, n int) (_ int, frag bool, err error) {
	off = c.pad(buf, off)
	switch {
	case n < 0:
		err = encodingErrorf("negative length ", n)
	case n < 128:
		off = c.putBits(buf, off, uint64(n), 8)
	case n < perFragment:
		off = c.putBits(buf, off, 0x8000|uint64(n), 16)
	case n%perFragment == 0 && n <= perMaxLength:
		off = c.putBits(buf, off, 0xC0|uint64(n/perFragment), 8)
		frag = true
	default:
		err = errorLengthTooLarge
	}

	return off, frag, err
}

/*
getLength consumes L.
*/
func (c *perCodec) getLength(buf *BitBuffer, off int) (n int, frag bool, _ int, err error) {
	if off, err = c.skipPad(buf, off); err != nil {
		return 0, false, off, err
	}

	var b uint64
	if b, off, err = c.getBits(buf, off, 8); err != nil {
		return 0, false, off, err
	}

	switch {
	case b&0x80 == 0:
		n = int(b)
	case b&0xC0 == 0x80:
		var lo uint64
		if lo, off, err = c.getBits(buf, off, 8); err == nil {
			n = int(b&0x3F)<<8 | int(lo)
		}
	default:
		k := int(b & 0x3F)
		if k < 1 || k > 4 {
			err = errorBadFragment
		} else {
			n, frag = k*perFragment, true
		}
	}

	return n, frag, off, err
}

/*
endFragment closes a quantized-form length with the zero-length
determinant that follows the final fragment.
*/
func (c *perCodec) endFragment(buf *BitBuffer, off int, frag bool) int {
	if !frag {
		return off
	}
	off = c.pad(buf, off)
	return c.putBits(buf, off, 0, 8)
}

func (c *perCodec) skipFragmentEnd(buf *BitBuffer, off int, frag bool) (int, error) {
	if !frag {
		return off, nil
	}
	n, frag, off, err := c.getLength(buf, off)
	if err == nil && (n != 0 || frag) {
		err = errorBadFragment
	}
	return off, err
}

/*
putNSVal appends a normally small non-negative whole number: a zero
bit and six bits below 64, otherwise a one bit and a semi-constrained
whole number.
*/
func (c *perCodec) putNSVal(buf *BitBuffer, off int, n uint64) (int, error) {
	if n < perNSValThreshold {
		off = c.putBits(buf, off, 0, 1)
		return c.putBits(buf, off, n, 6), nil
	}
	off = c.putBits(buf, off, 1, 1)
	return c.putSemiConstrained(buf, off, n)
}

func (c *perCodec) getNSVal(buf *BitBuffer, off int) (uint64, int, error) {
	large, off, err := c.getBit(buf, off)
	if err != nil {
		return 0, off, err
	} else if !large {
		return c.getBits(buf, off, 6)
	}
	return c.getSemiConstrained(buf, off)
}

/*
putNSLength appends a normally small length (n >= 1), as used for the
extension addition bitmap.
*/
func (c *perCodec) putNSLength(buf *BitBuffer, off, n int) (int, error) {
	if n <= perNSValThreshold {
		off = c.putBits(buf, off, 0, 1)
		return c.putBits(buf, off, uint64(n-1), 6), nil
	}
	off = c.putBits(buf, off, 1, 1)
	off, frag, err := c.putLength(buf, off, n)
	if err == nil && frag {
		err = errorBadFragment
	}
	return off, err
}

func (c *perCodec) getNSLength(buf *BitBuffer, off int) (int, int, error) {
	large, off, err := c.getBit(buf, off)
	if err != nil {
		return 0, off, err
	} else if !large {
		var v uint64
		v, off, err = c.getBits(buf, off, 6)
		return int(v) + 1, off, err
	}
	n, frag, off, err := c.getLength(buf, off)
	if err == nil && frag {
		err = errorBadFragment
	}
	return n, off, err
}

/*
putConstrained appends a constrained whole number x within lb..ub.

In the aligned variant a range of up to 256 occupies the minimum bit
count, a range of up to 64K two aligned octets, and any larger range
the octet count (less one) in the minimum bits over the octets needed
for the range followed by the aligned octets. The unaligned variant
always uses the minimum bits.
*/
func (c *perCodec) putConstrained(buf *BitBuffer, off int, lb, ub, x int64) (int, error) {
	if x < lb || x > ub {
		return off, encodingErrorf("whole number ", x,
			" outside of ", lb, "..", ub)
	}

	rng := uint64(ub) - uint64(lb) + 1 // zero when the range spans 2^64
	val := uint64(x) - uint64(lb)

	if rng == 1 {
		return off, nil
	}

	if !c.aligned {
		w := 64
		if rng != 0 {
			w = bitsFor(rng - 1)
		}
		return c.putBits(buf, off, val, w), nil
	}

	switch {
	case rng != 0 && rng <= 256:
		return c.putBits(buf, off, val, bitsFor(rng-1)), nil
	case rng != 0 && rng <= 65536:
		off = c.pad(buf, off)
		return c.putBits(buf, off, val, 16), nil
	}

	maxOctets := perMaxIntOctets
	if rng != 0 {
		maxOctets = octetsFor(rng - 1)
	}
	octets := octetsFor(val)

	off = c.putBits(buf, off, uint64(octets-1), bitsFor(uint64(maxOctets-1)))
	off = c.pad(buf, off)
	return c.putBits(buf, off, val, octets*8), nil
}

func (c *perCodec) getConstrained(buf *BitBuffer, off int, lb, ub int64) (int64, int, error) {
	rng := uint64(ub) - uint64(lb) + 1
	if rng == 1 {
		return lb, off, nil
	}

	var (
		val uint64
		err error
	)

	switch {
	case !c.aligned:
		w := 64
		if rng != 0 {
			w = bitsFor(rng - 1)
		}
		val, off, err = c.getBits(buf, off, w)
	case rng != 0 && rng <= 256:
		val, off, err = c.getBits(buf, off, bitsFor(rng-1))
	case rng != 0 && rng <= 65536:
		if off, err = c.skipPad(buf, off); err == nil {
			val, off, err = c.getBits(buf, off, 16)
		}
	default:
		maxOctets := perMaxIntOctets
		if rng != 0 {
			maxOctets = octetsFor(rng - 1)
		}
		var octets uint64
		if octets, off, err = c.getBits(buf, off, bitsFor(uint64(maxOctets-1))); err == nil {
			if off, err = c.skipPad(buf, off); err == nil {
				val, off, err = c.getBits(buf, off, int(octets+1)*8)
			}
		}
	}

	if err != nil {
		return 0, off, err
	} else if rng != 0 && val >= rng {
		return 0, off, errorBadIndex("constrained whole number", int(val), int(rng))
	}

	return int64(uint64(lb) + val), off, nil
}

/*
putSemiConstrained appends the non-negative value u (already offset
from its lower bound) as P, L and the minimum octets.
*/
func (c *perCodec) putSemiConstrained(buf *BitBuffer, off int, u uint64) (int, error) {
	octets := octetsFor(u)
	off, _, err := c.putLength(buf, off, octets)
	if err != nil {
		return off, err
	}
	return c.putBits(buf, off, u, octets*8), nil
}

func (c *perCodec) getSemiConstrained(buf *BitBuffer, off int) (uint64, int, error) {
	n, frag, off, err := c.getLength(buf, off)
	if err != nil {
		return 0, off, err
	} else if frag || n == 0 || n > perMaxIntOctets {
		return 0, off, decodingErrorf("whole number of ", n, " octets")
	}
	return c.getBits(buf, off, n*8)
}

/*
putUnconstrained appends x as P, L and its minimal two's complement
octets.
*/
func (c *perCodec) putUnconstrained(buf *BitBuffer, off int, x int64) (int, error) {
	content := encodeIntegerContent(big.NewInt(x))
	off, _, err := c.putLength(buf, off, len(content))
	if err != nil {
		return off, err
	}
	return c.putOctets(buf, off, content), nil
}

func (c *perCodec) getUnconstrained(buf *BitBuffer, off int) (Integer, int, error) {
	n, frag, off, err := c.getLength(buf, off)
	if err != nil {
		return Integer{}, off, err
	} else if frag || n == 0 || n > perMaxIntOctets {
		return Integer{}, off, decodingErrorf("whole number of ", n, " octets")
	}

	b, off, err := c.getOctets(buf, off, n)
	if err != nil {
		return Integer{}, off, err
	}
	return intFromBig(decodeIntegerContent(b)), off, nil
}

/*
putCount appends the count n of a SIZE-constrained kind: nothing for
a fixed size below 64K, a constrained whole number when the upper
bound is below 64K, and L otherwise. An extensible size is preceded
by the extension bit. The frag result follows [perCodec.putLength].
*/
func (c *perCodec) putCount(buf *BitBuffer, off int, sz span, n int) (_ int, frag bool, err error) {
	if sz.ext {
		in := sz.contains(int64(n))
		off = c.putBit(buf, off, !in)
		if !in {
			return c.putLength(buf, off, n)
		}
	}

	lb := sz.lower(0)
	switch {
	case sz.fixed() && *sz.ub < perMaxLength:
		if int64(n) != lb {
			err = encodingErrorf("count ", n, " violates fixed size ", lb)
		}
	case sz.ub != nil && *sz.ub < perMaxLength:
		off, err = c.putConstrained(buf, off, lb, *sz.ub, int64(n))
	default:
		off, frag, err = c.putLength(buf, off, n)
	}

	return off, frag, err
}

func (c *perCodec) getCount(buf *BitBuffer, off int, sz span) (n int, frag bool, _ int, err error) {
	if sz.ext {
		var out bool
		if out, off, err = c.getBit(buf, off); err != nil || out {
			if err == nil {
				n, frag, off, err = c.getLength(buf, off)
			}
			return n, frag, off, err
		}
	}

	lb := sz.lower(0)
	switch {
	case sz.fixed() && *sz.ub < perMaxLength:
		n = int(lb)
	case sz.ub != nil && *sz.ub < perMaxLength:
		var x int64
		x, off, err = c.getConstrained(buf, off, lb, *sz.ub)
		n = int(x)
	default:
		n, frag, off, err = c.getLength(buf, off)
	}

	return n, frag, off, err
}

/*
alignsContent returns a Boolean value indicative of content of n units
of width bits requiring P in front of it: always in the aligned variant
except for empty content and fixed sizes of at most 16 bits.
*/
func (c *perCodec) alignsContent(sz span, n, width int) bool {
	if !c.aligned || n == 0 {
		return false
	}
	return !(sz.fixed() && *sz.ub*int64(width) <= 16)
}

/*
putOpen appends an open type: P, L and the octets of content. Empty
content is replaced by a single zero octet.
*/
func (c *perCodec) putOpen(buf *BitBuffer, off int, content []byte) (int, error) {
	if len(content) == 0 {
		content = []byte{0x00}
	}
	off, frag, err := c.putLength(buf, off, len(content))
	if err != nil {
		return off, err
	}
	off = c.putOctets(buf, off, content)
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) getOpen(buf *BitBuffer, off int) ([]byte, int, error) {
	n, frag, off, err := c.getLength(buf, off)
	if err != nil {
		return nil, off, err
	}
	b, off, err := c.getOctets(buf, off, n)
	if err == nil {
		off, err = c.skipFragmentEnd(buf, off, frag)
	}
	return b, off, err
}

/*
encodeNested returns the octets of a complete encoding of v under n,
starting at a fresh octet boundary.
*/
func (c *perCodec) encodeNested(n *Node, v Value) ([]byte, error) {
	inner := NewBitBuffer()
	if _, err := c.encode(inner, 0, n, v); err != nil {
		return nil, err
	}
	if inner.BitLen() == 0 {
		return []byte{0x00}, nil
	}
	return inner.Bytes(), nil
}

/*
decodeNested decodes a value of n from the octets of a complete
encoding, such as the content of an open type.
*/
func (c *perCodec) decodeNested(n *Node, content []byte) (Value, error) {
	v, _, err := c.decode(NewBitBuffer(content...), 0, n)
	return v, err
}
