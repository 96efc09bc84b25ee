package asn1rt

import (
	"errors"
	"testing"
)

func TestEncodeTLV(t *testing.T) {
	long := make([]byte, 200)

	for idx, tc := range []struct {
		in    TLV
		indef bool
		want  string
	}{
		{TLV{Tag: TagOctetString, Value: []byte("hi")}, false, "04 02 68 69"},
		{TLV{Tag: TagNull}, false, "05 00"},
		{TLV{Class: ClassContextSpecific, Tag: 31}, false, "9F 1F 00"},
		{TLV{Class: ClassApplication, Tag: 200, Compound: true}, false, "7F 81 48 00"},
		{TLV{Tag: TagSequence, Compound: true, Value: []byte{0x01, 0x01, 0xFF}}, true,
			"30 80 01 01 FF 00 00"},
		// indefinite form is never used for primitives
		{TLV{Tag: TagBoolean, Value: []byte{0xFF}}, true, "01 01 FF"},
	} {
		got := hexOf(encodeTLV(tc.in, tc.indef))
		if want := hexOf(hexBytes(t, tc.want)); got != want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, want, got)
		}
	}

	enc := encodeTLV(TLV{Tag: TagOctetString, Value: long}, false)
	if hexOf(enc[:3]) != "0481C8" || len(enc) != 203 {
		t.Errorf("%s failed: long form header %s, length %d", t.Name(), hexOf(enc[:3]), len(enc))
	}
}

func TestReadTLV(t *testing.T) {
	for idx, tc := range []struct {
		in       string
		class    int
		tag      int
		compound bool
		length   int
		value    string
		total    int
	}{
		{"04 02 68 69 FF", ClassUniversal, TagOctetString, false, 2, "6869", 4},
		{"9F 1F 00", ClassContextSpecific, 31, false, 0, "", 3},
		{"7F 81 48 00", ClassApplication, 200, true, 0, "", 4},
		{"30 80 01 01 FF 00 00", ClassUniversal, TagSequence, true, -1, "0101FF", 7},
		{"30 80 30 80 05 00 00 00 00 00", ClassUniversal, TagSequence, true, -1, "308005000000", 10},
	} {
		tlv, total, err := readTLV(hexBytes(t, tc.in))
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
			continue
		}
		if tlv.Class != tc.class || tlv.Tag != tc.tag || tlv.Compound != tc.compound ||
			tlv.Length != tc.length || total != tc.total {
			t.Errorf("%s[%d] failed: unexpected header %s (total %d)", t.Name(), idx, tlv, total)
		}
		if hexOf(tlv.Value) != tc.value {
			t.Errorf("%s[%d] failed: value want %s, got %s", t.Name(), idx, tc.value, hexOf(tlv.Value))
		}
	}
}

func TestReadTLV_Errors(t *testing.T) {
	for idx, tc := range []struct {
		in   string
		want error
	}{
		{"", errorTruncated},
		{"04 05 01", errorTruncated},
		{"04", errorEmptyLength},
		{"04 85 01 01 01 01 01", errorLengthTooLong},
		{"04 82 01", errorTruncatedLength},
		{"04 80 00 00", errorIndefPrimitive},
		{"30 80 01 01 FF", errorNoEOC},
		{"1F 81", errorTruncatedTag},
		{"1F 81 81 81 81 01", errorTagTooLarge},
	} {
		_, _, err := readTLV(hexBytes(t, tc.in))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s[%d] failed: want %v, got %v", t.Name(), idx, tc.want, err)
		}
		var de DecodingError
		if !errors.As(err, &de) {
			t.Errorf("%s[%d] failed: %T is not a DecodingError", t.Name(), idx, err)
		}
	}
}

func TestTLV_Matches(t *testing.T) {
	tlv := TLV{Class: ClassContextSpecific, Tag: 3}
	if !tlv.Matches(*Implicit(3)) || tlv.Matches(*Application(3, false)) {
		t.Errorf("%s failed: unexpected tag match result", t.Name())
	}
}

func TestBase128(t *testing.T) {
	for _, v := range []uint64{0, 127, 128, 16383, 16384, 1<<56 - 1} {
		enc := encodeBase128Int(v)
		got, n, err := readBase128Int(enc)
		if err != nil || got != v || n != len(enc) {
			t.Errorf("%s failed: %d => %s => %d (%d octets, %v)", t.Name(), v, hexOf(enc), got, n, err)
		}
	}

	if _, _, err := readBase128Int([]byte{0x81}); err == nil {
		t.Errorf("%s failed: expected error for unterminated arc", t.Name())
	}
}
