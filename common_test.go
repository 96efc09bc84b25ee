package asn1rt

import (
	"encoding/hex"
	"strings"
	"testing"
)

/*
hexBytes decodes a space separated hex string, failing the test on
malformed input.
*/
func hexBytes(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("%s failed: bad hex fixture %q: %v", t.Name(), s, err)
	}
	return b
}

func hexOf(b []byte) string { return uc(hexstr(b)) }

func prim(k Kind, cs ...Constraint) *Node {
	return &Node{Kind: k, Constraints: cs}
}

func intRange(lb, ub int64) *Node { return prim(KindInteger, Range(lb, ub)) }

func TestBitsFor(t *testing.T) {
	for idx, tc := range []struct {
		in   uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{254, 8},
		{255, 8},
		{256, 9},
		{1<<63 + 1, 64},
	} {
		if got := bitsFor(tc.in); got != tc.want {
			t.Errorf("%s[%d] failed: bitsFor(%d) want %d, got %d",
				t.Name(), idx, tc.in, tc.want, got)
		}
	}
}

func TestOctetsFor(t *testing.T) {
	for idx, tc := range []struct {
		in   uint64
		want int
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{^uint64(0), 8},
	} {
		if got := octetsFor(tc.in); got != tc.want {
			t.Errorf("%s[%d] failed: octetsFor(%d) want %d, got %d",
				t.Name(), idx, tc.in, tc.want, got)
		}
	}
}

func TestPadBits(t *testing.T) {
	for off, want := range []int{0, 7, 6, 5, 4, 3, 2, 1, 0} {
		if got := padBits(off); got != want {
			t.Errorf("%s failed: padBits(%d) want %d, got %d", t.Name(), off, want, got)
		}
	}
}

func TestStrInSlice(t *testing.T) {
	if !strInSlice("b", []string{"a", "b"}) || strInSlice("c", []string{"a", "b"}) {
		t.Errorf("%s failed: unexpected membership result", t.Name())
	}
}
