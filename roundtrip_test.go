package asn1rt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
message returns a SEQUENCE touching every composite and scalar kind
the codecs support.

	Message ::= SEQUENCE {
		flag    BOOLEAN,
		count   INTEGER (0..1000),
		delta   INTEGER,
		color   Color,
		mask    BIT STRING (SIZE (0..16)),
		blob    OCTET STRING,
		name    IA5String (SIZE (1..32)),
		note    UTF8String OPTIONAL,
		oid     OBJECT IDENTIFIER,
		items   SEQUENCE (SIZE (0..8)) OF INTEGER (0..255),
		pick    CHOICE { n [0] NULL, s [1] IA5String },
		wrapped OCTET STRING (CONTAINING INTEGER (0..7)),
		level   INTEGER DEFAULT 3 }
*/
func message() *Node {
	pick := &Node{Kind: KindChoice, Components: []*Node{
		Field("n", prim(KindNull).Tagged(Implicit(0))),
		Field("s", prim(KindIA5String).Tagged(Implicit(1))),
	}}

	return &Node{Name: "Message", Kind: KindSequence, Components: []*Node{
		Field("flag", prim(KindBoolean)),
		Field("count", intRange(0, 1000)),
		Field("delta", prim(KindInteger)),
		Field("color", color()),
		Field("mask", prim(KindBitString, Range(0, 16))),
		Field("blob", prim(KindOctetString)),
		Field("name", prim(KindIA5String, Range(1, 32))),
		Optional("note", prim(KindUTF8String)),
		Field("oid", prim(KindOID)),
		Field("items", &Node{Kind: KindSequenceOf, Of: intRange(0, 255),
			Constraints: []Constraint{Range(0, 8)}}),
		Field("pick", pick),
		Field("wrapped", prim(KindOctetString, Containing{Type: intRange(0, 7)})),
		Defaulted("level", prim(KindInteger), Int(3)),
	}}
}

func TestRoundTrip_Message(t *testing.T) {
	mask, err := NewBitString("'10110'B")
	require.NoError(t, err)
	oid, err := NewObjectIdentifier("1.3.6.1.4.1.56521")
	require.NoError(t, err)

	schema := message()
	for idx, in := range []Record{
		{
			"flag": Boolean(true), "count": Int(1000), "delta": Int(-300),
			"color": Enumerated("blue"), "mask": mask, "blob": OctetString{0xDE, 0xAD},
			"name": String("alpha"), "oid": oid, "items": List{Int(1), Int(255)},
			"pick": Choice{Name: "s", Value: String("x")}, "wrapped": Contained{Value: Int(6)},
		},
		{
			"flag": Boolean(false), "count": Int(0), "delta": Int(1 << 40),
			"color": Enumerated("violet"), "mask": BitString{}, "blob": OctetString{},
			"name": String("b"), "note": String("héllo"), "oid": oid, "items": List{},
			"pick": Choice{Name: "n", Value: Null{}}, "wrapped": Contained{Value: Int(0)},
			"level": Int(9),
		},
	} {
		bound, err := Bind(schema, in)
		require.NoError(t, err, "value %d", idx)

		for _, rule := range encodingRules[:2] {
			enc, err := Encode(schema, in, With(rule))
			require.NoError(t, err, "%s value %d", rule, idx)

			out, n, err := Decode(schema, enc, With(rule))
			require.NoError(t, err, "%s value %d", rule, idx)
			require.Equal(t, len(enc), n, "%s value %d", rule, idx)
			require.True(t, Equal(bound.Value, out), "%s value %d:\n\twant: %s\n\tgot:  %s",
				rule, idx, valueString(bound.Value), valueString(out))

			// the decoded value encodes to the same octets
			again, err := Encode(schema, out, With(rule))
			require.NoError(t, err, "%s value %d", rule, idx)
			require.Equal(t, enc, again, "%s value %d", rule, idx)
		}
	}
}

func TestRoundTrip_Scalars(t *testing.T) {
	mask, err := NewBitString("'1100101'B")
	require.NoError(t, err)
	big, err := NewInteger("-9223372036854775808")
	require.NoError(t, err)

	for idx, tc := range []struct {
		node *Node
		in   Value
	}{
		{prim(KindNull), Null{}},
		{prim(KindBoolean), Boolean(true)},
		{prim(KindInteger), Int(-5)},
		{prim(KindInteger), big},
		{intRange(0, 1000), Int(999)},
		{intRange(-10, 10), Int(-10)},
		{prim(KindInteger, AtLeast(1)), Int(70000)},
		{prim(KindInteger, Range(0, 7).Ext()), Int(12)},
		{color(), Enumerated("blue")},
		{color(), Enumerated("violet")},
		{prim(KindBitString), mask},
		{prim(KindBitString, Size(7)), mask},
		{prim(KindOctetString, Range(0, 8)), OctetString{1, 2, 3}},
		{prim(KindOctetString), make(OctetString, 300)},
		{prim(KindIA5String), String("hello")},
		{prim(KindNumericString, Range(1, 4)), String("0 9")},
		{prim(KindPrintableString), String("Abc-1")},
		{prim(KindVisibleString, Alphabet{Chars: "xyz"}), String("zyx")},
		{prim(KindUTF8String), String("日本")},
		{prim(KindBMPString), String("Ωmega")},
	} {
		for _, rule := range encodingRules {
			enc, err := Encode(tc.node, tc.in, With(rule))
			require.NoError(t, err, "%s[%d] %s", t.Name(), idx, rule)

			out, n, err := Decode(tc.node, enc, With(rule))
			require.NoError(t, err, "%s[%d] %s", t.Name(), idx, rule)
			require.Equal(t, len(enc), n, "%s[%d] %s", t.Name(), idx, rule)
			require.True(t, Equal(tc.in, out), "%s[%d] %s: want %s, got %s",
				t.Name(), idx, rule, valueString(tc.in), valueString(out))
		}
	}
}

func TestRoundTrip_UPERRejectsComposites(t *testing.T) {
	_, err := Encode(message(), Record{}, With(UPER))
	require.Error(t, err)

	list := &Node{Kind: KindSequenceOf, Of: prim(KindBoolean)}
	_, err = Encode(list, List{Boolean(true)}, With(UPER))
	require.ErrorIs(t, err, errorUPERComposite)
	_, _, err = Decode(list, []byte{0x01, 0x80}, With(UPER))
	require.ErrorIs(t, err, errorUPERComposite)
}
