package asn1rt

/*
tlv.go contains all types, methods and functions for the
Type-Length-Value type used by the BER codec.
*/

/*
TLV stores discrete Type-Length-Value components of a single BER
element. A Length of -1 denotes the indefinite form, in which case
Value holds the content octets without the closing end-of-contents
marker.
*/
type TLV struct {
	Class    int
	Tag      int
	Compound bool
	Length   int
	Value    []byte
}

func (r TLV) String() string {
	var value []string
	for i := 0; i < len(r.Value); i++ {
		value = append(value, itoa(int(r.Value[i])))
	}

	return "{Class:" + itoa(r.Class) +
		", Tag:" + itoa(r.Tag) +
		", Compound:" + bool2str(r.Compound) +
		", Length:" + itoa(r.Length) +
		", Value:[" + join(value, ` `) + "]}"
}

/*
Matches returns a Boolean value indicative of the receiver bearing
the class and number of t.
*/
func (r TLV) Matches(t Tag) bool {
	return r.Class == t.Class && r.Tag == t.Number
}

/*
encodeTLV returns the complete encoding of t. When indef is true and
t is compound, the indefinite length form is used and the content is
closed with an end-of-contents marker.
*/
func encodeTLV(t TLV, indef bool) []byte {
	var id byte = byte(t.Class << 6)
	if t.Compound {
		id |= cmpndByte
	}

	b := make([]byte, 0, len(t.Value)+8)
	if t.Tag < 31 {
		b = append(b, id|byte(t.Tag))
	} else {
		b = append(b, id|0x1F)
		b = append(b, encodeBase128Int(uint64(t.Tag))...)
	}

	if indef && t.Compound {
		b = append(b, indefByte)
		b = append(b, t.Value...)
		return append(b, indefEoC...)
	}

	encodeLengthInto(&b, len(t.Value))
	return append(b, t.Value...)
}

/*
encodeLengthInto appends the definite length n to dst using the
short form below 128 and the minimal long form otherwise.
*/
func encodeLengthInto(dst *[]byte, n int) {
	if n < 128 {
		*dst = append(*dst, byte(n))
		return
	}

	var tmp [8]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n)
		n >>= 8
	}

	*dst = append(*dst, indefByte|byte(len(tmp)-i))
	*dst = append(*dst, tmp[i:]...)
}

/*
encodeBase128Int returns the base-128 encoding of value, most
significant group first, with the continuation bit set on all but
the final octet.
*/
func encodeBase128Int(value uint64) (enc []byte) {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(value & 0x7F)
	for value >>= 7; value > 0; value >>= 7 {
		i--
		tmp[i] = byte(value&0x7F) | 0x80
	}
	return append(enc, tmp[i:]...)
}

/*
readBase128Int reads one base-128 integer from b, returning the value
and the number of octets read.
*/
func readBase128Int(b []byte) (v uint64, n int, err error) {
	for n < len(b) {
		if v >= 1<<57 { // next shift would overflow
			return 0, 0, errorBadOID
		}
		ch := b[n]
		n++
		v = v<<7 | uint64(ch&0x7F)
		if ch&0x80 == 0 {
			return v, n, nil
		}
	}
	return 0, 0, errorBadOID
}

/*
parseTagIdentifier returns the class, constructed flag and number of
the identifier octets at the head of b, and the identifier length.
*/
func parseTagIdentifier(b []byte) (class int, compound bool, tag, idLen int, err error) {
	if len(b) == 0 {
		err = errorTruncated
		return
	}

	class = int(b[0] >> 6)
	compound = b[0]&cmpndByte != 0
	tag = int(b[0] & 0x1F)
	idLen = 1

	if tag != 0x1F {
		return // low-tag-number form
	}

	tag = 0
	for i := 1; i < len(b); i++ {
		idLen++
		ch := b[i]
		tag = (tag << 7) | int(ch&0x7F)

		if ch&0x80 == 0 {
			return
		}
		if i == 4 { // max 5 octets = 28 bits
			return 0, false, 0, 0, errorTagTooLarge
		}
	}
	return 0, false, 0, 0, errorTruncatedTag
}

/*
parseLength parses the length octet(s) at the head of b. A length of
-1 means the indefinite form.
*/
func parseLength(b []byte) (length int, lenLen int, err error) {
	if len(b) == 0 {
		return 0, 0, errorEmptyLength
	}

	first := b[0]
	lenLen = 1

	if first&0x80 == 0 {
		length = int(first)
		return
	}

	n := int(first & 0x7F)
	if n == 0 {
		length = -1
		return
	}

	if n > 4 {
		return 0, 0, errorLengthTooLong
	}
	if n > len(b)-1 {
		return 0, 0, errorTruncatedLength
	}

	for i := 1; i <= n; i++ {
		length = (length << 8) | int(b[i])
	}
	lenLen += n
	return
}

/*
readTLV parses the element at the head of data. It returns the TLV and
the total octet count of the element, including any end-of-contents
marker.
*/
func readTLV(data []byte) (t TLV, total int, err error) {
	var idLen, lenLen int
	if t.Class, t.Compound, t.Tag, idLen, err = parseTagIdentifier(data); err != nil {
		return
	}
	if t.Length, lenLen, err = parseLength(data[idLen:]); err != nil {
		return
	}

	start := idLen + lenLen
	if t.Length >= 0 {
		end := start + t.Length
		if end > len(data) || end < start {
			err = errorTruncated
			return
		}
		t.Value = data[start:end]
		return t, end, nil
	}

	if !t.Compound {
		err = errorIndefPrimitive
		return
	}

	var rel int
	if rel, err = findEOC(data[start:]); err == nil {
		t.Value = data[start : start+rel]
		total = start + rel + len(indefEoC)
	}
	return
}

/*
findEOC walks an indefinite-length body and returns the index of the
end-of-contents marker closing it. Nested elements are skipped by
their own lengths.
*/
func findEOC(b []byte) (int, error) {
	for i := 0; i < len(b); {
		if b[i] == 0x00 && i+1 < len(b) && b[i+1] == 0x00 {
			return i, nil
		}
		_, n, err := readTLV(b[i:])
		if err != nil {
			return 0, err
		}
		i += n
	}
	return 0, errorNoEOC
}
