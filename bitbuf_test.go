package asn1rt

import (
	"errors"
	"testing"
)

func TestBitBuffer_Append(t *testing.T) {
	buf := NewBitBuffer()
	buf.AppendBits(1, 1)
	buf.AppendBits(0x5, 3)
	buf.AppendBytes([]byte{0xFF})
	buf.AppendBits(0, 0)

	if buf.BitLen() != 12 {
		t.Errorf("%s failed: want 12 bits, got %d", t.Name(), buf.BitLen())
	}
	// 1 101 11111111 -> 1101 1111 1111 0000
	if got := hexOf(buf.Bytes()); got != "DFF0" {
		t.Errorf("%s failed: want DFF0, got %s", t.Name(), got)
	}
}

func TestBitBuffer_Consume(t *testing.T) {
	buf := NewBitBuffer(0xDF, 0xF0)

	for idx, tc := range []struct {
		width int
		want  uint64
	}{
		{1, 1},
		{3, 5},
		{8, 0xFF},
		{4, 0},
	} {
		got, err := buf.ConsumeBits(tc.width)
		if err != nil || got != tc.want {
			t.Errorf("%s[%d] failed: want %d, got %d (%v)", t.Name(), idx, tc.want, got, err)
		}
	}

	if buf.Remaining() != 0 || buf.Consumed() != 16 {
		t.Errorf("%s failed: cursor at %d with %d remaining", t.Name(), buf.Consumed(), buf.Remaining())
	}
	if _, err := buf.ConsumeBits(1); !errors.Is(err, errorTruncated) {
		t.Errorf("%s failed: want truncation, got %v", t.Name(), err)
	}
	if _, err := buf.ConsumeBits(65); err == nil {
		t.Errorf("%s failed: want error for an illegal width", t.Name())
	}
}

func TestBitBuffer_ConsumeBytesUnaligned(t *testing.T) {
	buf := NewBitBuffer(0x8F, 0xF0)
	if _, err := buf.ConsumeBits(4); err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	b, err := buf.ConsumeBytes(1)
	if err != nil || hexOf(b) != "FF" {
		t.Errorf("%s failed: want FF, got %s (%v)", t.Name(), hexOf(b), err)
	}
	if _, err = buf.ConsumeBytes(1); !errors.Is(err, errorTruncated) {
		t.Errorf("%s failed: want truncation, got %v", t.Name(), err)
	}
}

func TestBitBuffer_WideValues(t *testing.T) {
	buf := NewBitBuffer()
	buf.AppendBits(1, 3)
	buf.AppendBits(0x0123456789ABCDEF, 64)

	if _, err := buf.ConsumeBits(3); err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	got, err := buf.ConsumeBits(64)
	if err != nil || got != 0x0123456789ABCDEF {
		t.Errorf("%s failed: want 0123456789ABCDEF, got %X (%v)", t.Name(), got, err)
	}
}
