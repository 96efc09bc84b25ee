package asn1rt

import (
	"errors"
	"testing"
)

func TestBER_Vectors(t *testing.T) {
	color := &Node{Name: "Color", Kind: KindEnumerated,
		Numbers: []NamedNumber{{"red", 0}, {"blue", -1}}}
	pair := &Node{Name: "Pair", Kind: KindSequence, Components: []*Node{
		Field("a", prim(KindBoolean)),
		Field("b", prim(KindNull)),
	}}
	ints := &Node{Kind: KindSequenceOf, Of: prim(KindInteger)}
	oid, _ := NewObjectIdentifier("1.2.840.113549")
	bits, _ := NewBitString("'101'B")

	for idx, tc := range []struct {
		node *Node
		in   Value
		want string
		out  Value // decoded value when it differs from in
	}{
		{prim(KindBoolean), Boolean(true), "01 01 FF", nil},
		{prim(KindBoolean), Boolean(false), "01 01 00", nil},
		{prim(KindNull), Null{}, "05 00", nil},
		{prim(KindInteger), Int(0), "02 01 00", nil},
		{prim(KindInteger), Int(127), "02 01 7F", nil},
		{prim(KindInteger), Int(128), "02 02 00 80", nil},
		{prim(KindInteger), Int(-128), "02 01 80", nil},
		{prim(KindInteger), Int(-129), "02 02 FF 7F", nil},
		{color, Enumerated("blue"), "0A 01 FF", nil},
		{prim(KindBitString), bits, "03 02 05 A0", nil},
		{prim(KindOctetString), OctetString("hi"), "04 02 68 69", nil},
		{prim(KindIA5String), String("hi"), "16 02 68 69", nil},
		{prim(KindUTF8String), String("é"), "0C 02 C3 A9", nil},
		{prim(KindBMPString), String("A"), "1E 02 00 41", nil},
		{prim(KindOID), oid, "06 06 2A 86 48 86 F7 0D", nil},
		{pair, Record{"a": Boolean(true)}, "30 05 01 01 FF 05 00",
			Record{"a": Boolean(true), "b": Null{}}},
		{ints, List{Int(1), Int(2)}, "30 06 02 01 01 02 01 02", nil},
		{ints, List{}, "30 00", List(nil)},
		{prim(KindInteger).Tagged(Implicit(0)), Int(5), "80 01 05", nil},
		{prim(KindInteger).Tagged(Explicit(1)), Int(5), "A1 03 02 01 05", nil},
		{prim(KindOctetString).Tagged(Application(2, false)), OctetString{0xAA}, "42 01 AA", nil},
		{pair.Tagged(Implicit(3)), Record{"a": Boolean(false), "b": Null{}},
			"A3 05 01 01 00 05 00", nil},
	} {
		enc, err := Encode(tc.node, tc.in)
		if err != nil {
			t.Errorf("%s[%d] failed: encode error: %v", t.Name(), idx, err)
			continue
		}
		if want := hexOf(hexBytes(t, tc.want)); hexOf(enc) != want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, want, hexOf(enc))
			continue
		}

		want := tc.in
		if tc.out != nil {
			want = tc.out
		}
		got, n, err := Decode(tc.node, enc)
		if err != nil {
			t.Errorf("%s[%d] failed: decode error: %v", t.Name(), idx, err)
		} else if n != len(enc) || !Equal(got, want) {
			t.Errorf("%s[%d] failed: decoded %s (%d octets), want %s",
				t.Name(), idx, valueString(got), n, valueString(want))
		}
	}
}

func TestBER_Options(t *testing.T) {
	seq := &Node{Kind: KindSequence, Components: []*Node{Field("a", prim(KindBoolean))}}

	enc, err := Encode(seq, Record{"a": Boolean(true)},
		With(Options{Indefinite: true, BooleanTrue: 0x01}))
	if err != nil || hexOf(enc) != "30800101010000" {
		t.Errorf("%s failed: indefinite encoding %s (%v)", t.Name(), hexOf(enc), err)
	}

	v, n, err := Decode(seq, enc)
	if err != nil || n != 7 || !Equal(v, Record{"a": Boolean(true)}) {
		t.Errorf("%s failed: indefinite decoding %s (%d, %v)", t.Name(), valueString(v), n, err)
	}

	data := hexBytes(t, "80 01 05")
	if _, _, err = Decode(prim(KindInteger), data); err == nil {
		t.Errorf("%s failed: expected tag mismatch", t.Name())
	}
	if v, _, err = Decode(prim(KindInteger), data, With(Options{LenientTags: true})); err != nil || !Equal(v, Int(5)) {
		t.Errorf("%s failed: lenient decoding %s (%v)", t.Name(), valueString(v), err)
	}
}

func TestBER_ConstructedStrings(t *testing.T) {
	v, n, err := Decode(prim(KindOctetString), hexBytes(t, "24 08 04 02 68 69 04 02 21 21"))
	if err != nil || n != 10 || !Equal(v, OctetString("hi!!")) {
		t.Errorf("%s failed: segmented OCTET STRING %s (%v)", t.Name(), valueString(v), err)
	}

	v, _, err = Decode(prim(KindIA5String), hexBytes(t, "36 80 16 01 61 16 01 62 00 00"))
	if err != nil || !Equal(v, String("ab")) {
		t.Errorf("%s failed: segmented IA5String %s (%v)", t.Name(), valueString(v), err)
	}

	var de DecodingError
	if _, _, err = Decode(prim(KindBitString), hexBytes(t, "23 04 03 02 00 FF")); !errors.As(err, &de) {
		t.Errorf("%s failed: constructed BIT STRING accepted (%v)", t.Name(), err)
	}
}

func TestBER_SequenceDecoding(t *testing.T) {
	withDefault := &Node{Kind: KindSequence, Components: []*Node{
		Defaulted("a", prim(KindInteger), Int(3)),
		Field("b", prim(KindBoolean)),
	}}

	enc, err := Encode(withDefault, Record{"a": Int(3), "b": Boolean(true)})
	if err != nil || hexOf(enc) != "30030101FF" {
		t.Errorf("%s failed: DEFAULT value not omitted: %s (%v)", t.Name(), hexOf(enc), err)
	}
	if v, _, err := Decode(withDefault, enc); err != nil ||
		!Equal(v, Record{"a": Int(3), "b": Boolean(true)}) {
		t.Errorf("%s failed: DEFAULT value not filled: %s (%v)", t.Name(), valueString(v), err)
	}

	v1 := &Node{Kind: KindSequence, Extensible: true, Components: []*Node{
		Field("a", prim(KindBoolean)),
	}}
	fromV2 := hexBytes(t, "30 06 01 01 FF 02 01 07")
	if v, _, err := Decode(v1, fromV2); err != nil || !Equal(v, Record{"a": Boolean(true)}) {
		t.Errorf("%s failed: unknown addition not skipped: %s (%v)", t.Name(), valueString(v), err)
	}

	closed := &Node{Kind: KindSequence, Components: []*Node{Field("a", prim(KindBoolean))}}
	if _, _, err := Decode(closed, fromV2); !errors.Is(err, errorTrailingData) {
		t.Errorf("%s failed: want trailing data error, got %v", t.Name(), err)
	}

	both := &Node{Kind: KindSequence, Components: []*Node{
		Field("a", prim(KindBoolean)),
		Field("b", prim(KindInteger)),
	}}
	var de DecodingError
	if _, _, err := Decode(both, hexBytes(t, "30 03 01 01 FF")); !errors.As(err, &de) {
		t.Errorf("%s failed: missing component accepted (%v)", t.Name(), err)
	}
	if _, _, err := Decode(both, hexBytes(t, "30 06 02 01 05 01 01 FF")); !errors.As(err, &de) {
		t.Errorf("%s failed: misplaced component accepted (%v)", t.Name(), err)
	}
}

func TestBER_SetAnyOrder(t *testing.T) {
	set := &Node{Kind: KindSet, Components: []*Node{
		Field("a", prim(KindInteger).Tagged(Implicit(0))),
		Field("b", prim(KindBoolean).Tagged(Implicit(1))),
	}}
	want := Record{"a": Int(5), "b": Boolean(true)}

	enc, err := Encode(set, want)
	if err != nil || hexOf(enc) != "31068001058101FF" {
		t.Errorf("%s failed: %s (%v)", t.Name(), hexOf(enc), err)
	}

	v, _, err := Decode(set, hexBytes(t, "31 06 81 01 FF 80 01 05"))
	if err != nil || !Equal(v, want) {
		t.Errorf("%s failed: reordered SET decoded as %s (%v)", t.Name(), valueString(v), err)
	}

	if _, _, err = Decode(set, hexBytes(t, "31 06 80 01 05 80 01 06")); err == nil {
		t.Errorf("%s failed: duplicate SET component accepted", t.Name())
	}
}

func TestBER_Choice(t *testing.T) {
	ch := &Node{Kind: KindChoice, Extensible: true, Components: []*Node{
		Field("a", prim(KindInteger).Tagged(Implicit(0))),
	}}

	enc, err := Encode(ch, Choice{Name: "a", Value: Int(9)})
	if err != nil || hexOf(enc) != "800109" {
		t.Errorf("%s failed: %s (%v)", t.Name(), hexOf(enc), err)
	}

	unknown := hexBytes(t, "81 01 FF")
	v, n, err := Decode(ch, unknown)
	ua, ok := v.(UnknownAlternative)
	if err != nil || !ok || ua.Index != -1 || hexOf(ua.Raw) != "8101FF" || n != 3 {
		t.Errorf("%s failed: unknown alternative decoded as %s (%v)", t.Name(), valueString(v), err)
	}

	if enc, err = Encode(ch, v); err != nil || hexOf(enc) != "8101FF" {
		t.Errorf("%s failed: unknown alternative re-encoded as %s (%v)", t.Name(), hexOf(enc), err)
	}

	closed := ch.Clone()
	closed.Extensible = false
	if _, _, err = Decode(closed, unknown); err == nil {
		t.Errorf("%s failed: unknown tag accepted by a closed CHOICE", t.Name())
	}

	tagged := ch.Tagged(Implicit(7))
	if enc, err = Encode(tagged, Choice{Name: "a", Value: Int(9)}); err != nil || hexOf(enc) != "A703800109" {
		t.Errorf("%s failed: tagged CHOICE encoded as %s (%v)", t.Name(), hexOf(enc), err)
	}
}

func TestBER_Containing(t *testing.T) {
	inner := prim(KindInteger)
	oct := prim(KindOctetString, Containing{Type: inner})
	bs := prim(KindBitString, Containing{Type: inner})

	for idx, tc := range []struct {
		node *Node
		want string
	}{
		{oct, "04 03 02 01 05"},
		{bs, "03 04 00 02 01 05"},
	} {
		enc, err := Encode(tc.node, Contained{Value: Int(5)})
		if want := hexOf(hexBytes(t, tc.want)); err != nil || hexOf(enc) != want {
			t.Errorf("%s[%d] failed: want %s, got %s (%v)", t.Name(), idx, want, hexOf(enc), err)
			continue
		}
		v, _, err := Decode(tc.node, enc)
		cv, ok := v.(Contained)
		if err != nil || !ok || cv.Type != inner || !Equal(cv.Value, Int(5)) {
			t.Errorf("%s[%d] failed: decoded %s (%v)", t.Name(), idx, valueString(v), err)
		}
	}

	var cv ConstraintViolation
	other := &Node{Name: "Other", Kind: KindBoolean}
	if _, err := Encode(oct, Contained{Type: other, Value: Boolean(true)}); !errors.As(err, &cv) {
		t.Errorf("%s failed: want CONTAINING type violation, got %v", t.Name(), err)
	}
}

func TestBER_DecodingErrors(t *testing.T) {
	color := &Node{Kind: KindEnumerated, Numbers: []NamedNumber{{"red", 0}}}

	for idx, tc := range []struct {
		node *Node
		in   string
	}{
		{prim(KindBoolean), "01 02 FF FF"},
		{prim(KindNull), "05 01 00"},
		{prim(KindInteger), "02 00"},
		{color, "0A 01 05"},
		{prim(KindBitString), "03 01 01"},
		{prim(KindBMPString), "1E 01 41"},
		{prim(KindNumericString), "12 01 41"},
		{prim(KindOID), "06 02 80 01"},
		{prim(KindBoolean), "01 05 FF"},
	} {
		var de DecodingError
		if _, _, err := Decode(tc.node, hexBytes(t, tc.in)); !errors.As(err, &de) {
			t.Errorf("%s[%d] failed: want DecodingError, got %v", t.Name(), idx, err)
		}
	}
}

func TestBER_TrailingOctetsLeftToCaller(t *testing.T) {
	v, n, err := Decode(prim(KindBoolean), hexBytes(t, "01 01 FF 00 00"))
	if err != nil || n != 3 || !Equal(v, Boolean(true)) {
		t.Errorf("%s failed: %s consumed %d (%v)", t.Name(), valueString(v), n, err)
	}
}
