package asn1rt

/*
value.go contains the Value union and structural value comparison.
*/

/*
Value is implemented by every value type this package exchanges with
its caller. The set of implementations is closed; see [Null],
[Boolean], [Integer], [Enumerated], [BitString], [OctetString],
[String], [ObjectIdentifier], [Choice], [UnknownAlternative],
[Record], [List], [Open], [Contained], [Object], [TypeField] and
[ValueSet].
*/
type Value interface {
	isValue()
}

/*
Null implements the ASN.1 NULL value.
*/
type Null struct{}

/*
Boolean implements the ASN.1 BOOLEAN value.
*/
type Boolean bool

/*
Enumerated holds the name of the selected ENUMERATED item.
*/
type Enumerated string

/*
OctetString holds OCTET STRING content.
*/
type OctetString []byte

/*
String holds the value of any of the character string kinds.
*/
type String string

/*
Choice holds the selected alternative of a CHOICE and its value.
*/
type Choice struct {
	Name  string
	Value Value
}

/*
UnknownAlternative holds a CHOICE alternative that was not known to
the schema at decode time. Index is the extension index observed in
PER, or -1 for BER, and Raw is the opaque encoding: the open-type
octets in PER or the complete TLV in BER. Encoding an UnknownAlternative
reproduces Raw exactly.
*/
type UnknownAlternative struct {
	Index int
	Raw   []byte
}

/*
Record holds the components of a SEQUENCE or SET, keyed by component
name. Absent OPTIONAL components have no key.
*/
type Record map[string]Value

/*
List holds the elements of a SEQUENCE OF or SET OF. An empty list is
always represented as nil.
*/
type List []Value

/*
Open holds an open type value. When the type is known, Type and Value
are set; otherwise Raw carries the encoding: the complete TLV in BER
or the open-type octets in PER.
*/
type Open struct {
	Type  *Node
	Value Value
	Raw   []byte
}

/*
Contained holds the value of a BIT STRING or OCTET STRING bearing a
CONTAINING constraint. Type names the contained type.
*/
type Contained struct {
	Type  *Node
	Value Value
}

/*
Object holds an information object: a value of a CLASS, keyed by
field name.
*/
type Object map[string]Value

/*
TypeField holds the type setting of a CLASS type field.
*/
type TypeField struct {
	Type *Node
}

/*
ValueSet holds the root and extension values of a value set.
*/
type ValueSet struct {
	Root      []Value
	Extension []Value
}

func (Null) isValue()               {}
func (Boolean) isValue()            {}
func (Integer) isValue()            {}
func (Enumerated) isValue()         {}
func (BitString) isValue()          {}
func (OctetString) isValue()        {}
func (String) isValue()             {}
func (ObjectIdentifier) isValue()   {}
func (Choice) isValue()             {}
func (UnknownAlternative) isValue() {}
func (Record) isValue()             {}
func (List) isValue()               {}
func (Open) isValue()               {}
func (Contained) isValue()          {}
func (Object) isValue()             {}
func (TypeField) isValue()          {}
func (ValueSet) isValue()           {}

/*
Equal returns a Boolean value indicative of a and b being structurally
equal. An [Open] value with a known type compares by value, otherwise
by its raw octets.
*/
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Integer:
		y, ok := b.(Integer)
		return ok && x.Eq(y)
	case Enumerated:
		y, ok := b.(Enumerated)
		return ok && x == y
	case BitString:
		y, ok := b.(BitString)
		return ok && x.Eq(y)
	case OctetString:
		y, ok := b.(OctetString)
		return ok && btseq(x, y)
	case String:
		y, ok := b.(String)
		return ok && x == y
	case ObjectIdentifier:
		y, ok := b.(ObjectIdentifier)
		return ok && x.Eq(y)
	case Choice:
		y, ok := b.(Choice)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case UnknownAlternative:
		y, ok := b.(UnknownAlternative)
		return ok && x.Index == y.Index && btseq(x.Raw, y.Raw)
	case Record:
		y, ok := b.(Record)
		return ok && equalMaps(x, y)
	case Object:
		y, ok := b.(Object)
		return ok && equalMaps(x, y)
	case List:
		y, ok := b.(List)
		return ok && equalSlices(x, y)
	case Open:
		y, ok := b.(Open)
		return ok && equalOpen(x, y)
	case Contained:
		y, ok := b.(Contained)
		return ok && Equal(x.Value, y.Value)
	case TypeField:
		y, ok := b.(TypeField)
		return ok && x.Type == y.Type
	case ValueSet:
		y, ok := b.(ValueSet)
		return ok && equalSlices(x.Root, y.Root) &&
			equalSlices(x.Extension, y.Extension)
	}

	return false
}

func equalMaps[M ~map[string]Value](x, y M) bool {
	if len(x) != len(y) {
		return false
	}
	for k, xv := range x {
		yv, ok := y[k]
		if !ok || !Equal(xv, yv) {
			return false
		}
	}
	return true
}

func equalSlices[S ~[]Value](x, y S) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

func equalOpen(x, y Open) bool {
	if x.Value != nil && y.Value != nil {
		return Equal(x.Value, y.Value)
	}
	return x.Value == nil && y.Value == nil && btseq(x.Raw, y.Raw)
}

/*
valueString returns a short ASN.1 value notation of v, for use in
messages and traces.
*/
func valueString(v Value) string {
	switch tv := v.(type) {
	case nil:
		return "<nil>"
	case Null:
		return "NULL"
	case Boolean:
		return uc(tv.String())
	case Integer:
		return tv.String()
	case Enumerated:
		return string(tv)
	case BitString:
		return tv.Bits()
	case OctetString:
		return tv.String()
	case String:
		return `"` + string(tv) + `"`
	case ObjectIdentifier:
		return "{ " + replaceAll(tv.String(), ".", " ") + " }"
	case Choice:
		return tv.Name + " : " + valueString(tv.Value)
	case UnknownAlternative:
		return "<unknown alternative " + itoa(tv.Index) + ": '" + uc(hexstr(tv.Raw)) + "'H>"
	case Record:
		return mapString(tv, "")
	case Object:
		return mapString(tv, "&")
	case List:
		return sliceString(tv, ", ")
	case Open:
		if tv.Value != nil {
			return tv.Type.label() + " : " + valueString(tv.Value)
		}
		return "'" + uc(hexstr(tv.Raw)) + "'H"
	case Contained:
		return "CONTAINING " + valueString(tv.Value)
	case TypeField:
		return tv.Type.label()
	case ValueSet:
		s := sliceString(tv.Root, " | ")
		if tv.Extension != nil {
			s = s[:len(s)-2] + ", ..., " + sliceString(tv.Extension, " | ")[2:]
		}
		return s
	}
	return "<unknown value>"
}

func mapString[M ~map[string]Value](m M, pfx string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrs(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = pfx + k + " " + valueString(m[k])
	}
	return "{ " + join(parts, ", ") + " }"
}

func sliceString[S ~[]Value](vals S, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = valueString(v)
	}
	return "{ " + join(parts, sep) + " }"
}
