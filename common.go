package asn1rt

/*
common.go contains elements, types and functions used by myriad
components throughout this package.
*/

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"math/bits"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

/*
official import aliases.
*/
var (
	mkerr      func(string) error                     = errors.New
	itoa       func(int) string                       = strconv.Itoa
	fmtInt     func(int64, int) string                = strconv.FormatInt
	fmtUint    func(uint64, int) string               = strconv.FormatUint
	puint      func(string, int, int) (uint64, error) = strconv.ParseUint
	uc         func(string) string                    = strings.ToUpper
	join       func([]string, string) string          = strings.Join
	split      func(string, string) []string          = strings.Split
	hexstr     func([]byte) string                    = hex.EncodeToString
	trimS      func(string) string                    = strings.TrimSpace
	hasPfx     func(string, string) bool              = strings.HasPrefix
	cntns      func(string, string) bool              = strings.Contains
	lidx       func(string, string) int               = strings.LastIndex
	replaceAll func(string, string, string) string    = strings.ReplaceAll
	strrpt     func(string, int) string               = strings.Repeat
	streq      func(string, string) bool              = strings.EqualFold
	btseq      func([]byte, []byte) bool              = bytes.Equal
	utf16Enc   func([]rune) []uint16                  = utf16.Encode
	utf16Dec   func([]uint16) []rune                  = utf16.Decode
	utf8OK     func([]byte) bool                      = utf8.Valid
	newBigInt  func(int64) *big.Int                   = big.NewInt
	slicesSort func([]rune)                           = slices.Sort[[]rune]
	sortStrs   func([]string)                         = slices.Sort[[]string]
)

func newStrBuilder() strings.Builder { return strings.Builder{} }

func bool2str(b bool) (s string) {
	if s = `false`; b {
		s = `true`
	}
	return
}

/*
bitsFor returns the minimum number of bits needed to represent
every value in the range [0, n]. Zero needs zero bits.
*/
func bitsFor[T constraints.Unsigned](n T) int {
	return bits.Len64(uint64(n))
}

/*
octetsFor returns the minimum number of octets needed to hold n
as a non-negative binary integer. Zero still needs one octet.
*/
func octetsFor[T constraints.Unsigned](n T) int {
	if n == 0 {
		return 1
	}
	return (bits.Len64(uint64(n)) + 7) / 8
}

/*
padBits returns the number of zero bits needed to advance the
bit offset off to the next octet boundary.
*/
func padBits[T constraints.Integer](off T) T {
	return (8 - off%8) % 8
}

func ptrTo[T any](v T) *T { return &v }

func strInSlice(s string, slice []string) bool {
	for i := 0; i < len(slice); i++ {
		if slice[i] == s {
			return true
		}
	}
	return false
}
