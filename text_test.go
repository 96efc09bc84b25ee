package asn1rt

import (
	"errors"
	"testing"
)

func TestKind_Permits(t *testing.T) {
	for idx, tc := range []struct {
		kind Kind
		ch   rune
		want bool
	}{
		{KindNumericString, ' ', true},
		{KindNumericString, '7', true},
		{KindNumericString, 'a', false},
		{KindPrintableString, '\'', true},
		{KindPrintableString, '?', true},
		{KindPrintableString, '@', false},
		{KindPrintableString, '_', false},
		{KindIA5String, 0x00, true},
		{KindIA5String, 0x80, false},
		{KindVisibleString, '~', true},
		{KindVisibleString, 0x7F, false},
		{KindBMPString, 0xFFFD, true},
		{KindBMPString, 0xD800, false},
		{KindBMPString, 0x1F600, false},
		{KindUTF8String, 0x1F600, true},
		{KindBoolean, 'a', false},
	} {
		if got := tc.kind.permits(tc.ch); got != tc.want {
			t.Errorf("%s[%d] failed: %s permits %U: want %t, got %t",
				t.Name(), idx, tc.kind, tc.ch, tc.want, got)
		}
	}
}

func TestValidateString(t *testing.T) {
	if err := validateString(KindPrintableString, "Hello World (1+1=2)?"); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if err := validateString(KindUTF8String, "\xc3"); !errors.Is(err, errorBadUTF8) {
		t.Errorf("%s failed: want %v, got %v", t.Name(), errorBadUTF8, err)
	}

	err := validateString(KindIA5String, "naïve")
	var ve ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("%s failed: want ValueError, got %v", t.Name(), err)
	} else if want := "VALUE ERROR: IA5String: illegal character efh"; err.Error() != want {
		t.Errorf("%s failed:\n\twant: %s\n\tgot:  %s", t.Name(), want, err)
	}
}

func TestStringContent(t *testing.T) {
	for idx, tc := range []struct {
		kind Kind
		in   String
		want string
	}{
		{KindIA5String, "hi", "6869"},
		{KindUTF8String, "é", "C3A9"},
		{KindBMPString, "é", "00E9"},
		{KindBMPString, "", ""},
	} {
		enc, _ := encodeStringContent(tc.kind, tc.in)
		if got := hexOf(enc); got != tc.want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, tc.want, got)
			continue
		}
		v, err := decodeStringContent(tc.kind, enc)
		if err != nil || !Equal(tc.in, v) {
			t.Errorf("%s[%d] failed: decoded %s, %v", t.Name(), idx, valueString(v), err)
		}
	}

	for idx, tc := range []struct {
		kind Kind
		in   []byte
	}{
		{KindBMPString, []byte{0x00}},
		{KindIA5String, []byte{0x80}},
		{KindIA5String, []byte{0xC3, 0xA9}},
		{KindNumericString, []byte("12a")},
	} {
		var de DecodingError
		if _, err := decodeStringContent(tc.kind, tc.in); !errors.As(err, &de) {
			t.Errorf("%s[%d] failed: want DecodingError, got %v", t.Name(), idx, err)
		}
	}
}

func TestCharSet(t *testing.T) {
	for idx, tc := range []struct {
		node             *Node
		aligned, unalign int
		indexed          bool
	}{
		{prim(KindIA5String), 8, 7, false},
		{prim(KindVisibleString), 8, 7, false},
		{prim(KindPrintableString), 8, 7, false},
		{prim(KindNumericString), 4, 4, true},
		{prim(KindBMPString), 16, 16, false},
		{prim(KindIA5String, Alphabet{Chars: "ab"}), 1, 1, true},
		{prim(KindIA5String, Alphabet{Chars: "0123456789"}), 4, 4, true},
		{prim(KindIA5String, Alphabet{Chars: "ABCDEFGHIJ"}), 4, 4, true},
		{prim(KindIA5String, Alphabet{Chars: "\x00\x01\x02"}), 2, 2, false},
	} {
		cs := tc.node.charSet()
		a, u := cs.width(true), cs.width(false)
		if a != tc.aligned || u != tc.unalign || cs.indexed(u) != tc.indexed {
			t.Errorf("%s[%d] failed: want %d/%d/%t, got %d/%d/%t", t.Name(), idx,
				tc.aligned, tc.unalign, tc.indexed, a, u, cs.indexed(u))
		}
	}

	num := prim(KindNumericString).charSet()
	if code, ok := num.code('5', 4); !ok || code != 6 {
		t.Errorf("%s failed: numeric code of '5' is %d/%t", t.Name(), code, ok)
	}
	if ch, ok := num.char(0, 4); !ok || ch != ' ' {
		t.Errorf("%s failed: numeric char 0 is %q/%t", t.Name(), ch, ok)
	}
	if _, ok := num.char(11, 4); ok {
		t.Errorf("%s failed: numeric char 11 accepted", t.Name())
	}
	if _, ok := num.code('x', 4); ok {
		t.Errorf("%s failed: numeric code of 'x' accepted", t.Name())
	}
	if _, ok := prim(KindIA5String).charSet().char(0x80, 8); ok {
		t.Errorf("%s failed: IA5 char 0x80 accepted", t.Name())
	}
}

func TestPER_ExtensibleAlphabet(t *testing.T) {
	// only the non-extensible alphabet is PER-visible
	n := prim(KindIA5String, Alphabet{Chars: "ab", Extensible: true}, Alphabet{Chars: "abc"}, Size(3))
	enc, err := Encode(n, String("cab"), With(UPER))
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	} else if got := hexOf(enc); got != "84" {
		t.Errorf("%s failed: want 84, got %s", t.Name(), got)
	}

	loose := prim(KindIA5String, Alphabet{Chars: "ab", Extensible: true}, Size(1))
	enc, err = Encode(loose, String("z"), With(UPER))
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	} else if got := hexOf(enc); got != "F4" {
		t.Errorf("%s failed: want F4, got %s", t.Name(), got)
	}
}
