package asn1rt

/*
tag.go contains the Tag type and tag resolution.
*/

/*
Tag describes an explicit tagging of a [Node]: a tag number, a class
and whether the tag is EXPLICIT (wrapping) or IMPLICIT (replacing).
*/
type Tag struct {
	Number   int
	Class    int
	Explicit bool
}

/*
Implicit returns an IMPLICIT CONTEXT-SPECIFIC [Tag] bearing number n.
*/
func Implicit(n int) *Tag { return &Tag{Number: n, Class: ClassContextSpecific} }

/*
Explicit returns an EXPLICIT CONTEXT-SPECIFIC [Tag] bearing number n.
*/
func Explicit(n int) *Tag {
	return &Tag{Number: n, Class: ClassContextSpecific, Explicit: true}
}

/*
Application returns an APPLICATION [Tag] bearing number n.
*/
func Application(n int, explicit bool) *Tag {
	return &Tag{Number: n, Class: ClassApplication, Explicit: explicit}
}

/*
String returns the ASN.1 notation of the receiver, e.g. "[APPLICATION 3]".
*/
func (r Tag) String() string {
	s := "["
	if r.Class != ClassContextSpecific {
		s += ClassNames[r.Class] + " "
	}
	s += itoa(r.Number) + "]"
	if r.Explicit {
		s += " EXPLICIT"
	}
	return s
}

type tagKey struct {
	class  int
	number int
}

func (r Tag) key() tagKey { return tagKey{r.Class, r.Number} }

func (r tagKey) String() string {
	return Tag{Number: r.number, Class: r.class}.String()
}

/*
ResolveTag returns the effective outermost [Tag] of n alongside a
Boolean value indicative of n bearing a tag at all. An explicit tag
on the node wins; otherwise the UNIVERSAL tag of its kind is used.
CHOICE, OPEN and CLASS nodes without an explicit tag have none.

Self-reference markers are resolved through their owning module.
*/
func ResolveTag(n *Node) (Tag, bool) {
	if n == nil {
		return Tag{}, false
	}
	if n.Tag != nil {
		return *n.Tag, true
	}
	if n.Kind == KindSelfRef {
		if m := n.owner(); m != nil {
			if target, err := m.Resolve(n); err == nil {
				return ResolveTag(target)
			}
		}
		return Tag{}, false
	}
	if num := n.Kind.universalTag(); num >= 0 {
		return Tag{Number: num, Class: ClassUniversal}, true
	}
	return Tag{}, false
}

/*
innerTag returns the UNIVERSAL tag of n's kind, ignoring any explicit
tag, or false when the kind is untagged.
*/
func innerTag(n *Node) (Tag, bool) {
	if num := n.Kind.universalTag(); num >= 0 {
		return Tag{Number: num, Class: ClassUniversal}, true
	}
	return Tag{}, false
}
