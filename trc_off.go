//go:build !asn1_debug

package asn1rt

type labeledItem struct{}

func debugEnter(_ ...any)                  {}
func debugExit(_ ...any)                   {}
func debugInfo(_ ...any)                   {}
func debugTLV(_ ...any)                    {}
func debugBER(_ ...any)                    {}
func debugPER(_ ...any)                    {}
func debugSchema(_ ...any)                 {}
func debugChoice(_ ...any)                 {}
func debugConstraint(_ ...any)             {}
func newLItem(_ any, _ ...any) labeledItem { return labeledItem{} }
func (_ labeledItem) String() string       { return `` }
