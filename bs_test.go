package asn1rt

import (
	"errors"
	"fmt"
	"testing"
)

func ExampleNewBitString() {
	bs, err := NewBitString("'A5C'H")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(bs.BitLength, bs.Bits(), bs.Hex())
	// Output: 12 '101001011100'B 'A5C0'H
}

func TestNewBitString(t *testing.T) {
	for idx, tc := range []struct {
		in     any
		bits   string
		length int
	}{
		{"'1'B", "'1'B", 1},
		{"''B", "''B", 0},
		{"'0101'b", "'0101'B", 4},
		{"'ff'h", "'11111111'B", 8},
		{[]byte{0x80, 0x01}, "'1000000000000001'B", 16},
		{BitString{Bytes: []byte{0x40}, BitLength: 2}, "'01'B", 2},
	} {
		bs, err := NewBitString(tc.in)
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
		} else if bs.Bits() != tc.bits || bs.BitLength != tc.length {
			t.Errorf("%s[%d] failed: want %s/%d, got %s/%d", t.Name(), idx,
				tc.bits, tc.length, bs.Bits(), bs.BitLength)
		}
	}

	for idx, bad := range []any{"'1'", "'12'B", "'G'H", "1'B", "B", 5} {
		var ve ValueError
		if _, err := NewBitString(bad); !errors.As(err, &ve) {
			t.Errorf("%s[%d] failed: want ValueError for %v, got %v", t.Name(), idx, bad, err)
		}
	}
}

func TestBitString_Accessors(t *testing.T) {
	bs := BitString{Bytes: []byte{0xB7}, BitLength: 3}

	for idx, want := range []int{1, 0, 1, 0, 0} {
		if got := bs.At(idx); got != want {
			t.Errorf("%s[%d] failed: want %d, got %d", t.Name(), idx, want, got)
		}
	}
	if bs.At(-1) != 0 {
		t.Errorf("%s failed: negative index", t.Name())
	}
	if got := bs.Hex(); got != "'A0'H" {
		t.Errorf("%s failed: want 'A0'H, got %s", t.Name(), got)
	}
	if got := (BitString{}).Hex(); got != "''H" {
		t.Errorf("%s failed: want ''H, got %s", t.Name(), got)
	}
	if !bs.Eq(BitString{Bytes: []byte{0xA0}, BitLength: 3}) {
		t.Errorf("%s failed: unused bits must not affect equality", t.Name())
	}
	if bs.Eq(BitString{Bytes: []byte{0xA0}, BitLength: 4}) {
		t.Errorf("%s failed: differing lengths compared equal", t.Name())
	}

	for idx, tc := range []struct {
		bs BitString
		ok bool
	}{
		{BitString{}, true},
		{BitString{Bytes: []byte{0, 0}, BitLength: 9}, true},
		{BitString{Bytes: []byte{0}, BitLength: 9}, false},
		{BitString{Bytes: []byte{0, 0}, BitLength: 8}, false},
		{BitString{BitLength: -1}, false},
	} {
		if err := tc.bs.validate(); (err == nil) != tc.ok {
			t.Errorf("%s[%d] failed: validate returned %v", t.Name(), idx, err)
		}
	}
}

func TestBitString_BERContent(t *testing.T) {
	n := prim(KindBitString)

	for idx, tc := range []struct {
		in   string
		want string
	}{
		{"03 01 00", "''B"},
		{"03 02 07 80", "'1'B"},
		{"03 03 04 FF F0", "'111111111111'B"},
	} {
		v, _, err := Decode(n, hexBytes(t, tc.in))
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
		} else if got := valueString(v); got != tc.want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, tc.want, got)
		}
	}

	for idx, bad := range []string{"03 00", "03 01 01", "03 02 08 00"} {
		if _, _, err := Decode(n, hexBytes(t, bad)); !errors.Is(err, errorBadBitString) {
			t.Errorf("%s[%d] failed: want %v, got %v", t.Name(), idx, errorBadBitString, err)
		}
	}

	// unused trailing bits are cleared on encode
	enc, err := Encode(n, BitString{Bytes: []byte{0xFF}, BitLength: 4})
	if err != nil || hexOf(enc) != "030204F0" {
		t.Errorf("%s failed: got %s, %v", t.Name(), hexOf(enc), err)
	}
}
