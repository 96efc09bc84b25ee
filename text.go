package asn1rt

/*
text.go contains the character string kinds: character repertoires,
BER content handling and the PER known-multiplier character encoding.
*/

import "unicode/utf8"

var printableStringBitmap [128 / 64]uint64

func init() {
	set := func(lo, hi rune) {
		for r := lo; r <= hi; r++ {
			printableStringBitmap[r>>6] |= 1 << (r & 63)
		}
	}
	set(0x0020, 0x0020)
	set(0x0027, 0x0029)
	set(0x002B, 0x002F)
	set(0x003A, 0x003A)
	set(0x003D, 0x003D)
	set(0x003F, 0x003F)
	set(0x0030, 0x0039)
	set(0x0041, 0x005A)
	set(0x0061, 0x007A)
}

func isPrintable(ch rune) bool {
	return 0 <= ch && ch < 128 && printableStringBitmap[ch>>6]&(1<<(ch&63)) != 0
}

const numericChars = " 0123456789"

/*
permits returns a Boolean value indicative of ch belonging to the
repertoire of string kind k.
*/
func (r Kind) permits(ch rune) bool {
	switch r {
	case KindNumericString:
		return ch == ' ' || ('0' <= ch && ch <= '9')
	case KindPrintableString:
		return isPrintable(ch)
	case KindIA5String:
		return 0 <= ch && ch <= 0x7F
	case KindVisibleString:
		return 0x20 <= ch && ch <= 0x7E
	case KindBMPString:
		return 0 <= ch && ch <= 0xFFFF && !(0xD800 <= ch && ch <= 0xDFFF)
	case KindUTF8String:
		return ch != utf8.RuneError
	}
	return false
}

/*
validateString returns a [ValueError] if s holds a character outside
of the repertoire of string kind k.
*/
func validateString(k Kind, s String) error {
	if !utf8.ValidString(string(s)) {
		return errorBadUTF8
	}
	for _, ch := range string(s) {
		if !k.permits(ch) {
			return valueErrorf(k.String(), ": illegal character ", fmtInt(int64(ch), 16), "h")
		}
	}
	return nil
}

/*
encodeStringContent returns the BER content octets of s: UTF-8 for
UTF8String and the 7-bit kinds, big-endian UCS-2 for BMPString.
*/
func encodeStringContent(k Kind, s String) ([]byte, error) {
	if k != KindBMPString {
		return []byte(s), nil
	}

	units := utf16Enc([]rune(string(s)))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return out, nil
}

func decodeStringContent(k Kind, content []byte) (Value, error) {
	var s String
	if k == KindBMPString {
		if len(content)%2 != 0 {
			return nil, errorBadUCS2
		}
		units := make([]uint16, len(content)/2)
		for i := range units {
			units[i] = uint16(content[2*i])<<8 | uint16(content[2*i+1])
		}
		s = String(utf16Dec(units))
	} else {
		if !utf8OK(content) {
			return nil, decodingErrorf(k.String(), ": invalid UTF-8 content")
		}
		s = String(content)
	}

	if err := validateString(k, s); err != nil {
		return nil, decodingErrorf(err)
	}
	return s, nil
}

/*
charSet describes the effective alphabet of a known-multiplier string
in PER: its size, largest character, and the sorted characters when
they are indexed rather than encoded by value.
*/
type charSet struct {
	count int
	max   rune
	chars []rune // nil means contiguous from zero
}

/*
charSet returns the effective PER alphabet of the receiver. An
Alphabet constraint narrows the repertoire of the kind.
*/
func (r *Node) charSet() charSet {
	if chars, ok := r.alphabet(); ok && len(chars) > 0 {
		return charSet{count: len(chars), max: chars[len(chars)-1], chars: chars}
	}

	switch r.Kind {
	case KindNumericString:
		chars := []rune(numericChars)
		return charSet{count: len(chars), max: '9', chars: chars}
	case KindPrintableString:
		return charSet{count: 74, max: 'z'}
	case KindVisibleString:
		return charSet{count: 95, max: 0x7E}
	case KindBMPString:
		return charSet{count: 65536, max: 0xFFFF}
	}
	return charSet{count: 128, max: 0x7F}
}

/*
width returns the bits per character: the minimum bits over the
alphabet size, rounded up to a power of two in the aligned variant.
*/
func (r charSet) width(aligned bool) int {
	w := bitsFor(uint64(r.count - 1))
	if aligned {
		for _, p := range []int{1, 2, 4, 8, 16, 32} {
			if w <= p {
				return p
			}
		}
	}
	return w
}

/*
indexed returns a Boolean value indicative of characters being encoded
by their position in the alphabet, which happens when the largest
character does not fit the width.
*/
func (r charSet) indexed(w int) bool {
	return r.chars != nil && uint64(r.max) > uint64(1)<<uint(w)-1
}

func (r charSet) code(ch rune, w int) (uint64, bool) {
	if !r.indexed(w) {
		return uint64(ch), true
	}
	for i, x := range r.chars {
		if x == ch {
			return uint64(i), true
		}
	}
	return 0, false
}

func (r charSet) char(v uint64, w int) (rune, bool) {
	if !r.indexed(w) {
		return rune(v), v <= uint64(r.max)
	} else if v >= uint64(len(r.chars)) {
		return 0, false
	}
	return r.chars[v], true
}

/*
encodeString appends a PER character string. UTF8String is encoded as
L and its octets; the other kinds as a character count per the SIZE
constraint followed by fixed-width characters.
*/
func (c *perCodec) encodeString(buf *BitBuffer, off int, n *Node, v String) (int, error) {
	if n.Kind == KindUTF8String {
		content := []byte(v)
		off, frag, err := c.putLength(buf, off, len(content))
		if err != nil {
			return off, err
		}
		off = c.putOctets(buf, off, content)
		return c.endFragment(buf, off, frag), nil
	}

	cs := n.charSet()
	w := cs.width(c.aligned)
	chars := []rune(string(v))
	sz := n.span()

	off, frag, err := c.putCount(buf, off, sz, len(chars))
	if err != nil {
		return off, err
	}
	if c.alignsContent(sz, len(chars), w) {
		off = c.pad(buf, off)
	}

	for _, ch := range chars {
		code, ok := cs.code(ch, w)
		if !ok {
			return off, encodingErrorf(n.Kind.String(), ": character ",
				string(ch), " outside of the effective alphabet")
		}
		off = c.putBits(buf, off, code, w)
	}

	debugPER(newLItem(w, "char width"), newLItem(len(chars), "chars"))
	return c.endFragment(buf, off, frag), nil
}

func (c *perCodec) decodeString(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	if n.Kind == KindUTF8String {
		count, frag, off, err := c.getLength(buf, off)
		if err != nil {
			return nil, off, err
		}
		var b []byte
		if b, off, err = c.getOctets(buf, off, count); err == nil {
			off, err = c.skipFragmentEnd(buf, off, frag)
		}
		if err != nil {
			return nil, off, err
		} else if !utf8OK(b) {
			return nil, off, decodingErrorf("UTF8String: invalid UTF-8 content")
		}
		return String(b), off, nil
	}

	cs := n.charSet()
	w := cs.width(c.aligned)
	sz := n.span()

	count, frag, off, err := c.getCount(buf, off, sz)
	if err != nil {
		return nil, off, err
	}
	if c.alignsContent(sz, count, w) {
		if off, err = c.skipPad(buf, off); err != nil {
			return nil, off, err
		}
	}

	chars := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		var code uint64
		if code, off, err = c.getBits(buf, off, w); err != nil {
			return nil, off, err
		}
		ch, ok := cs.char(code, w)
		if !ok {
			return nil, off, decodingErrorf(n.Kind.String(), ": character code ",
				code, " outside of the effective alphabet")
		}
		chars = append(chars, ch)
	}

	if off, err = c.skipFragmentEnd(buf, off, frag); err != nil {
		return nil, off, err
	}
	return String(chars), off, nil
}
