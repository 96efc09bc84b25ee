package asn1rt

/*
bitbuf.go contains the BitBuffer type used by the PER codec.
*/

/*
BitBuffer implements an ordered, growable sequence of bits, written
and read most significant bit first. Appends always happen at the
end; reads consume from a cursor that starts at the first bit.

A BitBuffer is not safe for concurrent use. Each PER codec call owns
its own instances.
*/
type BitBuffer struct {
	data []byte
	bits int // bits written
	pos  int // bits consumed
}

/*
NewBitBuffer returns an instance of *[BitBuffer]. Any input octets
are loaded as the initial content, ready for consumption.
*/
func NewBitBuffer(data ...byte) *BitBuffer {
	return &BitBuffer{
		data: append([]byte(nil), data...),
		bits: len(data) * 8,
	}
}

/*
AppendBits appends the low width bits of v to the receiver instance.
Width must fall within 0 and 64 inclusive; zero appends nothing.
*/
func (r *BitBuffer) AppendBits(v uint64, width int) {
	if width <= 0 {
		return
	} else if width > 64 {
		width = 64
	}

	for width > 0 {
		used := r.bits % 8
		if used == 0 {
			r.data = append(r.data, 0x00)
		}

		free := 8 - used
		take := width
		if take > free {
			take = free
		}

		chunk := byte(v>>uint(width-take)) & byte(1<<uint(take)-1)
		r.data[len(r.data)-1] |= chunk << uint(free-take)

		r.bits += take
		width -= take
	}
}

/*
AppendBytes appends the octets of b to the receiver instance starting
at the current bit position, which need not be octet-aligned.
*/
func (r *BitBuffer) AppendBytes(b []byte) {
	if r.bits%8 == 0 {
		r.data = append(r.data, b...)
		r.bits += len(b) * 8
		return
	}

	for _, x := range b {
		r.AppendBits(uint64(x), 8)
	}
}

/*
BitLen returns the total number of bits written to the receiver.
*/
func (r *BitBuffer) BitLen() int { return r.bits }

/*
Bytes returns the content of the receiver instance. A trailing
partial octet is zero-padded.
*/
func (r *BitBuffer) Bytes() []byte { return r.data }

/*
Remaining returns the number of bits not yet consumed.
*/
func (r *BitBuffer) Remaining() int { return r.bits - r.pos }

/*
Consumed returns the number of bits consumed so far.
*/
func (r *BitBuffer) Consumed() int { return r.pos }

/*
ConsumeBits reads and returns the next width bits as an unsigned
value. Width must fall within 0 and 64 inclusive.
*/
func (r *BitBuffer) ConsumeBits(width int) (v uint64, err error) {
	if width < 0 || width > 64 {
		return 0, mkerrf("invalid bit width ", width)
	} else if width > r.Remaining() {
		return 0, errorTruncated
	}

	for width > 0 {
		used := r.pos % 8
		avail := 8 - used
		take := width
		if take > avail {
			take = avail
		}

		b := r.data[r.pos/8] >> uint(avail-take)
		v = v<<uint(take) | uint64(b&byte(1<<uint(take)-1))

		r.pos += take
		width -= take
	}

	return
}

/*
ConsumeBytes reads and returns the next n octets. The cursor need not
be octet-aligned.
*/
func (r *BitBuffer) ConsumeBytes(n int) ([]byte, error) {
	if n < 0 || n*8 > r.Remaining() {
		return nil, errorTruncated
	}

	if r.pos%8 == 0 {
		start := r.pos / 8
		r.pos += n * 8
		return append([]byte(nil), r.data[start:start+n]...), nil
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, _ := r.ConsumeBits(8)
		out[i] = byte(b)
	}
	return out, nil
}
