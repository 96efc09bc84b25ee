package asn1rt

import (
	"fmt"
	"math/big"
	"testing"
)

func ExampleNewInteger() {
	i, err := NewInteger("-170141183460469231731687303715884105728")
	if err != nil {
		fmt.Println(err)
		return
	}
	_, fits := i.Int64()
	fmt.Println(i, fits)
	// Output: -170141183460469231731687303715884105728 false
}

func TestNewInteger(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	for idx, tc := range []struct {
		in     any
		want   string
		native bool
	}{
		{5, "5", true},
		{int32(-7), "-7", true},
		{int64(1) << 40, "1099511627776", true},
		{uint64(1) << 63, "9223372036854775808", false},
		{uint64(42), "42", true},
		{big.NewInt(-3), "-3", true},
		{huge, "123456789012345678901234567890", false},
		{"-12", "-12", true},
		{Int(9), "9", true},
	} {
		var i Integer
		var err error
		switch tv := tc.in.(type) {
		case int:
			i, err = NewInteger(tv)
		case int32:
			i, err = NewInteger(tv)
		case int64:
			i, err = NewInteger(tv)
		case uint64:
			i, err = NewInteger(tv)
		case *big.Int:
			i, err = NewInteger(tv)
		case string:
			i, err = NewInteger(tv)
		case Integer:
			i, err = NewInteger(tv)
		}
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
			continue
		}
		if got := i.String(); got != tc.want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, tc.want, got)
		}
		if _, fits := i.Int64(); fits != tc.native {
			t.Errorf("%s[%d] failed: want int64 fit %t", t.Name(), idx, tc.native)
		}
	}

	if _, err := NewInteger("twelve"); err == nil {
		t.Errorf("%s failed: expected error for non-numeric string", t.Name())
	}
	if _, err := NewInteger(1.5); err == nil {
		t.Errorf("%s failed: expected error for float input", t.Name())
	}
}

func TestInteger_Compare(t *testing.T) {
	big1, _ := NewInteger("100000000000000000000")
	big2, _ := NewInteger("100000000000000000000")

	if !big1.Eq(big2) || big1.Gt(big2) || big1.Lt(big2) {
		t.Errorf("%s failed: equal big values misordered", t.Name())
	}
	if !big1.Gt(Int(1)) || !Int(-1).Lt(big1) || Int(3).Eq(Int(4)) {
		t.Errorf("%s failed: mixed comparison", t.Name())
	}
	// a big.Int in int64 range is stored natively
	if v, ok := intFromBig(big.NewInt(-5)).Int64(); !ok || v != -5 {
		t.Errorf("%s failed: intFromBig gave %d/%t", t.Name(), v, ok)
	}
}

func TestIntegerContent(t *testing.T) {
	for idx, tc := range []struct {
		in   string
		want string
	}{
		{"0", "00"},
		{"127", "7F"},
		{"128", "0080"},
		{"256", "0100"},
		{"-1", "FF"},
		{"-128", "80"},
		{"-129", "FF7F"},
		{"-256", "FF00"},
		{"-32769", "FF7FFF"},
		{"9223372036854775808", "008000000000000000"},
		{"-9223372036854775809", "FF7FFFFFFFFFFFFFFF"},
	} {
		i, _ := NewInteger(tc.in)
		enc := encodeIntegerContent(i.Big())
		if got := hexOf(enc); got != tc.want {
			t.Errorf("%s[%d] failed: %s: want %s, got %s", t.Name(), idx, tc.in, tc.want, got)
			continue
		}
		if back := decodeIntegerContent(enc); back.String() != tc.in {
			t.Errorf("%s[%d] failed: decoded %s, want %s", t.Name(), idx, back, tc.in)
		}
	}

	if _, err := decodeIntegerBER(nil); err != errorBadInteger {
		t.Errorf("%s failed: want %v, got %v", t.Name(), errorBadInteger, err)
	}
}

func TestInteger_BigBER(t *testing.T) {
	i, _ := NewInteger("-9223372036854775809")
	enc, err := Encode(prim(KindInteger), i)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	} else if got := hexOf(enc); got != "0209FF7FFFFFFFFFFFFFFF" {
		t.Errorf("%s failed: got %s", t.Name(), got)
	}

	v, _, err := Decode(prim(KindInteger), enc)
	if err != nil || !Equal(i, v) {
		t.Errorf("%s failed: decoded %s, %v", t.Name(), valueString(v), err)
	}
}

func BenchmarkIntegerConstructor(b *testing.B) {
	for _, v := range []string{"0", "-42", "123456789012345678901234567890"} {
		b.Run(v, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := NewInteger(v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
