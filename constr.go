package asn1rt

/*
constr.go contains the constraint variants which may be attached to
a Node, the derivation of PER-visible bounds and the generic checks
used during value binding.
*/

import (
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

/*
Constraint is implemented by [SingleValue], [ValueRange], [Containing],
[Alphabet] and [SetReference]. Constraints listed on a [Node] apply
serially; the effective constraint is their intersection.
*/
type Constraint interface {
	isConstraint()
	String() string
}

/*
SingleValue restricts a value to one of Values.
*/
type SingleValue struct {
	Values     []Value
	Extensible bool
}

/*
ValueRange restricts an INTEGER to Lower..Upper. On BIT STRING, OCTET
STRING, the character string kinds and SEQUENCE OF / SET OF it is a
SIZE constraint over the bit, octet, character or element count. A
nil bound is unbounded.
*/
type ValueRange struct {
	Lower, Upper *int64
	Extensible   bool
}

/*
Containing ties the content of a BIT STRING or OCTET STRING to the
encoding of Type.
*/
type Containing struct {
	Type *Node
}

/*
Alphabet restricts the characters of a character string to Chars
(the FROM notation).
*/
type Alphabet struct {
	Chars      string
	Extensible bool
}

/*
SetReference constrains an OPEN component to the type found in field
Field of the information object in Set whose UNIQUE field equals the
value of sibling component At (the {Set}{@At} notation).
*/
type SetReference struct {
	Set   *Node
	Field string
	At    string
}

func (SingleValue) isConstraint()  {}
func (ValueRange) isConstraint()   {}
func (Containing) isConstraint()   {}
func (Alphabet) isConstraint()     {}
func (SetReference) isConstraint() {}

/*
Range returns a non-extensible [ValueRange] of lb..ub.
*/
func Range(lb, ub int64) ValueRange {
	return ValueRange{Lower: ptrTo(lb), Upper: ptrTo(ub)}
}

/*
AtLeast returns a non-extensible [ValueRange] of lb..MAX.
*/
func AtLeast(lb int64) ValueRange {
	return ValueRange{Lower: ptrTo(lb)}
}

/*
Size returns a non-extensible SIZE constraint of exactly n.
*/
func Size(n int64) ValueRange { return Range(n, n) }

/*
Ext returns a copy of the receiver marked extensible.
*/
func (r ValueRange) Ext() ValueRange {
	r.Extensible = true
	return r
}

func (r SingleValue) String() string {
	s := newStrBuilder()
	s.WriteString("(")
	for i, v := range r.Values {
		if i > 0 {
			s.WriteString(" | ")
		}
		s.WriteString(valueString(v))
	}
	if r.Extensible {
		s.WriteString(", ...")
	}
	s.WriteString(")")
	return s.String()
}

func (r ValueRange) String() string {
	lo, hi := "MIN", "MAX"
	if r.Lower != nil {
		lo = fmtInt(*r.Lower, 10)
	}
	if r.Upper != nil {
		hi = fmtInt(*r.Upper, 10)
	}
	s := "(" + lo + ".." + hi
	if r.Extensible {
		s += ", ..."
	}
	return s + ")"
}

func (r Containing) String() string { return "(CONTAINING " + r.Type.label() + ")" }

func (r Alphabet) String() string {
	s := `(FROM ("` + r.Chars + `")`
	if r.Extensible {
		s += ", ..."
	}
	return s + ")"
}

func (r SetReference) String() string {
	return "({" + r.Set.label() + "}{@" + r.At + "})." + r.Field
}

/*
span holds an effective PER-visible range: value bounds for INTEGER
or count bounds for SIZE-constrained kinds.
*/
type span struct {
	lb, ub *int64
	ext    bool
}

func (r span) fixed() bool {
	return r.lb != nil && r.ub != nil && *r.lb == *r.ub
}

func (r span) lower(def int64) int64 {
	if r.lb != nil {
		return *r.lb
	}
	return def
}

func (r span) contains(x int64) bool {
	return inRange(x, r.lb, r.ub)
}

/*
span returns the effective PER-visible bounds of the receiver. Ranges
intersect in order; the extensibility of the last contributing
constraint wins. On INTEGER, single values contribute the range of
their minimum and maximum.
*/
func (r *Node) span() (s span) {
	for _, c := range r.Constraints {
		var lo, hi *int64
		var ext bool

		switch tv := c.(type) {
		case ValueRange:
			lo, hi, ext = tv.Lower, tv.Upper, tv.Extensible
		case SingleValue:
			if r.Kind != KindInteger {
				continue
			}
			var ok bool
			if lo, hi, ok = intExtremes(tv.Values); !ok {
				continue
			}
			ext = tv.Extensible
		default:
			continue
		}

		if lo != nil && (s.lb == nil || *lo > *s.lb) {
			s.lb = lo
		}
		if hi != nil && (s.ub == nil || *hi < *s.ub) {
			s.ub = hi
		}
		s.ext = ext
	}

	if r.Kind.sized() && s.lb == nil {
		s.lb = ptrTo(int64(0))
	}

	return
}

func intExtremes(vals []Value) (lo, hi *int64, ok bool) {
	for _, v := range vals {
		i, isInt := v.(Integer)
		if !isInt {
			continue
		}
		x, fits := i.Int64()
		if !fits {
			return nil, nil, false
		}
		if lo == nil || x < *lo {
			lo = ptrTo(x)
		}
		if hi == nil || x > *hi {
			hi = ptrTo(x)
		}
		ok = true
	}
	return
}

/*
alphabet returns the effective permitted alphabet of the receiver as
sorted runes, along with a Boolean value indicative of an Alphabet
constraint being present. Extensible Alphabet constraints are not
PER-visible and are ignored.
*/
func (r *Node) alphabet() (chars []rune, constrained bool) {
	for _, c := range r.Constraints {
		if a, ok := c.(Alphabet); ok && !a.Extensible {
			set := sortedRunes(a.Chars)
			if constrained {
				set = intersectRunes(chars, set)
			}
			chars, constrained = set, true
		}
	}
	return
}

/*
containing returns the CONTAINING target of the receiver, if any.
*/
func (r *Node) containing() *Node {
	for _, c := range r.Constraints {
		if ct, ok := c.(Containing); ok {
			return ct.Type
		}
	}
	return nil
}

/*
setReference returns the SET-REFERENCE constraint of the receiver,
if any.
*/
func (r *Node) setReference() (SetReference, bool) {
	for _, c := range r.Constraints {
		if sr, ok := c.(SetReference); ok {
			return sr, true
		}
	}
	return SetReference{}, false
}

/*
check implements a generic closure which returns an error when its
input violates a constraint.
*/
type check[T any] func(T) error

/*
checkGroup implements an ordered collection of [check] closures, all
of which must pass.
*/
type checkGroup[T any] []check[T]

/*
Constrain returns the first error produced by the receiver's checks
against x.
*/
func (r checkGroup[T]) Constrain(x T) (err error) {
	for i := 0; i < len(r) && err == nil; i++ {
		if r[i] != nil {
			err = r[i](x)
		}
	}
	return
}

func inRange[T constraints.Ordered](x T, lb, ub *T) bool {
	return (lb == nil || x >= *lb) && (ub == nil || x <= *ub)
}

/*
rangeCheck returns a check rejecting values outside of lb..ub. The
label names what is measured in the error message.
*/
func rangeCheck[T constraints.Integer](label string, lb, ub *int64) check[T] {
	return func(x T) error {
		if !inRange(int64(x), lb, ub) {
			return constraintViolationf(label, " ", int64(x), " outside of ",
				ValueRange{Lower: lb, Upper: ub}.String())
		}
		return nil
	}
}

/*
constraintChecks returns the non-extensible checks the receiver
applies to values of its kind.
*/
func (r *Node) constraintChecks() (grp checkGroup[Value]) {
	for _, c := range r.Constraints {
		switch tv := c.(type) {
		case ValueRange:
			if !tv.Extensible {
				grp = append(grp, r.rangeChecker(tv))
			}
		case SingleValue:
			if !tv.Extensible {
				grp = append(grp, singleValueCheck(tv))
			}
		case Alphabet:
			if !tv.Extensible && r.Kind.IsString() {
				grp = append(grp, alphabetCheck(tv))
			}
		}
	}
	return
}

func (r *Node) rangeChecker(vr ValueRange) check[Value] {
	if r.Kind.sized() {
		sizeOK := rangeCheck[int]("size", vr.Lower, vr.Upper)
		return func(v Value) error {
			if n, ok := sizeOf(v); ok {
				return sizeOK(n)
			}
			return nil
		}
	}

	return func(v Value) error {
		i, ok := v.(Integer)
		if !ok {
			return nil
		}
		if (vr.Lower != nil && i.Lt(Int(*vr.Lower))) ||
			(vr.Upper != nil && i.Gt(Int(*vr.Upper))) {
			return constraintViolationf("value ", i.String(),
				" outside of ", vr.String())
		}
		return nil
	}
}

func singleValueCheck(sv SingleValue) check[Value] {
	return func(v Value) error {
		for _, x := range sv.Values {
			if Equal(x, v) {
				return nil
			}
		}
		return constraintViolationf("value ", valueString(v),
			" not permitted by ", sv.String())
	}
}

func alphabetCheck(a Alphabet) check[Value] {
	return func(v Value) error {
		s, ok := v.(String)
		if !ok {
			return nil
		}
		for _, ch := range string(s) {
			if !cntns(a.Chars, string(ch)) {
				return constraintViolationf("character ", string(ch),
					" not permitted by ", a.String())
			}
		}
		return nil
	}
}

/*
sizeOf returns the SIZE measure of v: bits, octets, characters or
elements.
*/
func sizeOf(v Value) (int, bool) {
	switch tv := v.(type) {
	case BitString:
		return tv.BitLength, true
	case OctetString:
		return len(tv), true
	case String:
		return utf8.RuneCountInString(string(tv)), true
	case List:
		return len(tv), true
	}
	return 0, false
}

func sortedRunes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, ch := range s {
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	slicesSort(out)
	return out
}

func intersectRunes(a, b []rune) (out []rune) {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return
}
