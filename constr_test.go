package asn1rt

import (
	"errors"
	"fmt"
	"testing"
)

func ExampleRange() {
	fmt.Println(Range(0, 7))
	fmt.Println(Range(1, 64).Ext())
	fmt.Println(AtLeast(0))
	fmt.Println(Alphabet{Chars: "ab"})
	fmt.Println(SingleValue{Values: []Value{Int(1), Int(2)}, Extensible: true})
	// Output:
	// (0..7)
	// (1..64, ...)
	// (0..MAX)
	// (FROM ("ab"))
	// (1 | 2, ...)
}

func TestSpan(t *testing.T) {
	for idx, tc := range []struct {
		node   *Node
		lb, ub string
		ext    bool
	}{
		{prim(KindInteger), "MIN", "MAX", false},
		{intRange(0, 7), "0", "7", false},
		{prim(KindInteger, Range(0, 100), Range(10, 200)), "10", "100", false},
		{prim(KindInteger, Range(0, 100).Ext(), Range(10, 200)), "10", "100", false},
		{prim(KindInteger, Range(0, 100), AtLeast(5).Ext()), "5", "100", true},
		{prim(KindInteger, SingleValue{Values: []Value{Int(3), Int(-2), Int(9)}}), "-2", "9", false},
		{prim(KindOctetString), "0", "MAX", false},
		{prim(KindIA5String, Size(4)), "4", "4", false},
		{prim(KindIA5String, SingleValue{Values: []Value{String("a")}}), "0", "MAX", false},
	} {
		s := tc.node.span()
		lb, ub := "MIN", "MAX"
		if s.lb != nil {
			lb = fmtInt(*s.lb, 10)
		}
		if s.ub != nil {
			ub = fmtInt(*s.ub, 10)
		}
		if lb != tc.lb || ub != tc.ub || s.ext != tc.ext {
			t.Errorf("%s[%d] failed: want %s..%s ext=%t, got %s..%s ext=%t",
				t.Name(), idx, tc.lb, tc.ub, tc.ext, lb, ub, s.ext)
		}
	}

	if !Size(3).Ext().Extensible || Size(3).Extensible {
		t.Errorf("%s failed: Ext must copy the receiver", t.Name())
	}
	if s := prim(KindInteger, Size(5)).span(); !s.fixed() || !s.contains(5) || s.contains(6) {
		t.Errorf("%s failed: fixed span misbehaves", t.Name())
	}
}

func TestAlphabet(t *testing.T) {
	for idx, tc := range []struct {
		node        *Node
		want        string
		constrained bool
	}{
		{prim(KindIA5String), "", false},
		{prim(KindIA5String, Alphabet{Chars: "cabba"}), "abc", true},
		{prim(KindIA5String, Alphabet{Chars: "abc"}, Alphabet{Chars: "bcd"}), "bc", true},
		{prim(KindIA5String, Alphabet{Chars: "abc", Extensible: true}), "", false},
	} {
		chars, constrained := tc.node.alphabet()
		if string(chars) != tc.want || constrained != tc.constrained {
			t.Errorf("%s[%d] failed: want %q/%t, got %q/%t", t.Name(), idx,
				tc.want, tc.constrained, string(chars), constrained)
		}
	}
}

func TestConstraintChecks(t *testing.T) {
	for idx, tc := range []struct {
		node *Node
		in   Value
		ok   bool
	}{
		{intRange(-5, 5), Int(-5), true},
		{intRange(-5, 5), Int(6), false},
		{prim(KindBitString, Range(1, 3)), BitString{Bytes: []byte{0}, BitLength: 4}, false},
		{prim(KindUTF8String, Size(2)), String("éa"), true},
		{prim(KindSequenceOf, Range(0, 1)), List{Null{}, Null{}}, false},
		{prim(KindIA5String, Alphabet{Chars: "0123456789"}), String("123"), true},
		{prim(KindIA5String, Alphabet{Chars: "0123456789"}), String("12a"), false},
		{prim(KindEnumerated, SingleValue{Values: []Value{Enumerated("x")}}), Enumerated("x"), true},
		{prim(KindInteger, Range(0, 10).Ext(), SingleValue{Values: []Value{Int(4)}}), Int(5), false},
	} {
		err := tc.node.constraintChecks().Constrain(tc.in)
		var cv ConstraintViolation
		if tc.ok && err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
		} else if !tc.ok && !errors.As(err, &cv) {
			t.Errorf("%s[%d] failed: want ConstraintViolation, got %v", t.Name(), idx, err)
		}
	}
}

func TestConstraintAccessors(t *testing.T) {
	inner := &Node{Name: "Inner", Kind: KindBoolean}
	_, set, _ := attributes()
	sr := SetReference{Set: set, Field: "Type", At: "id"}
	n := prim(KindOctetString, Containing{Type: inner}, sr)

	if got := n.containing(); got != inner {
		t.Errorf("%s failed: containing returned %s", t.Name(), got)
	}
	if got, ok := n.setReference(); !ok || got.At != "id" {
		t.Errorf("%s failed: setReference returned %v/%t", t.Name(), got, ok)
	}
	if prim(KindOctetString).containing() != nil {
		t.Errorf("%s failed: unexpected CONTAINING target", t.Name())
	}

	for idx, tc := range []struct {
		c    Constraint
		want string
	}{
		{Containing{Type: inner}, "(CONTAINING Inner)"},
		{sr, "({Attrs}{@id}).Type"},
		{ValueRange{Upper: ptrTo(int64(9))}, "(MIN..9)"},
	} {
		if got := tc.c.String(); got != tc.want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, tc.want, got)
		}
	}
}
