package asn1rt

/*
err.go contains error types, constructors and literals used frequently
throughout this package.
*/

import (
	"reflect"
	"sync"
)

/*
Error taxonomy. Each type wraps a single underlying error and prefixes
its message so that the failing stage is obvious in logs. Use [errors.As]
to test for a particular category.

  - [SchemaError]: malformed type graph
  - [ValueError]: value shape does not match the node kind
  - [ConstraintViolation]: value outside non-extensible bounds
  - [EncodingError]: value exceeds an engine limit, or no codec path exists
  - [DecodingError]: malformed, truncated or mismatching input
*/
type (
	SchemaError         struct{ e error }
	ValueError          struct{ e error }
	ConstraintViolation struct{ e error }
	EncodingError       struct{ e error }
	DecodingError       struct{ e error }
)

func (r SchemaError) Error() string         { return `SCHEMA ERROR: ` + r.e.Error() }
func (r ValueError) Error() string          { return `VALUE ERROR: ` + r.e.Error() }
func (r ConstraintViolation) Error() string { return `CONSTRAINT VIOLATION: ` + r.e.Error() }
func (r EncodingError) Error() string       { return `ENCODING ERROR: ` + r.e.Error() }
func (r DecodingError) Error() string       { return `DECODING ERROR: ` + r.e.Error() }

func (r SchemaError) Unwrap() error         { return r.e }
func (r ValueError) Unwrap() error          { return r.e }
func (r ConstraintViolation) Unwrap() error { return r.e }
func (r EncodingError) Unwrap() error       { return r.e }
func (r DecodingError) Unwrap() error       { return r.e }

func schemaErrorf(m ...any) error         { return SchemaError{mkerrf(m...)} }
func valueErrorf(m ...any) error          { return ValueError{mkerrf(m...)} }
func constraintViolationf(m ...any) error { return ConstraintViolation{mkerrf(m...)} }
func encodingErrorf(m ...any) error       { return EncodingError{mkerrf(m...)} }
func decodingErrorf(m ...any) error       { return DecodingError{mkerrf(m...)} }

/*
PermissiveError is returned alongside best-effort output when a codec
operation ran with [Options.Permissive] set and at least one error was
suppressed. Output returned together with this error may be malformed
and must not be treated as a successful result.
*/
type PermissiveError struct {
	Suppressed []error
}

func (r *PermissiveError) Error() string {
	var msgs []string
	for i := 0; i < len(r.Suppressed); i++ {
		msgs = append(msgs, r.Suppressed[i].Error())
	}
	return `PERMISSIVE: ` + itoa(len(r.Suppressed)) +
		` suppressed error(s): ` + join(msgs, `; `)
}

/*
Unwrap returns the suppressed errors, allowing [errors.As] to reach
the individual categories.
*/
func (r *PermissiveError) Unwrap() []error { return r.Suppressed }

/*
schema errors.
*/
var (
	errorNilNode            = SchemaError{mkerr("nil schema node")}
	errorUntaggedOpen       = SchemaError{mkerr("untagged open type has no resolvable tag path")}
	errorNilContaining      = SchemaError{mkerr("CONTAINING constraint without a referenced type")}
	errorNilSetReference    = SchemaError{mkerr("SET-REFERENCE constraint without a referenced set")}
	errorNoModule           = SchemaError{mkerr("self-reference outside of any module")}
	errorNoInnerType        = SchemaError{mkerr("SEQUENCE OF / SET OF without an inner type")}
	errorNoUniqueField      = SchemaError{mkerr("CLASS has no UNIQUE field")}
	errorEmptyEnumeration   = SchemaError{mkerr("ENUMERATED without root items")}
	errorTooManyEnumeration = SchemaError{mkerr("ENUMERATED root count must be less than 256")}
)

/*
value errors.
*/
var (
	errorNilValue       = ValueError{mkerr("nil value")}
	errorChoiceNoName   = ValueError{mkerr("CHOICE value selects no alternative")}
	errorBadUTF8        = ValueError{mkerr("invalid UTF-8 content")}
	errorBadBitLength   = ValueError{mkerr("BIT STRING bit length does not fit its octets")}
	errorOIDTooShort    = ValueError{mkerr("OBJECT IDENTIFIER requires two or more arcs")}
	errorOIDFirstArc    = ValueError{mkerr("OBJECT IDENTIFIER first arc must be 0, 1 or 2")}
	errorOIDSecondArc   = ValueError{mkerr("OBJECT IDENTIFIER second arc must be < 40 under arcs 0 and 1")}
	errorContainingType = ConstraintViolation{mkerr("CONTAINING type mismatch")}
)

/*
encoding errors.
*/
var (
	errorIntTooLarge    = EncodingError{mkerr("integer needs more than 8 octets")}
	errorLengthTooLarge = EncodingError{mkerr("length determinant exceeds 65536 or is not a 16K multiple")}
	errorClassEncoding  = EncodingError{mkerr("CLASS definitions carry no encoding")}
	errorNoRule         = EncodingError{mkerr("no encoding rule selected")}
	errorUPERComposite  = EncodingError{mkerr("unaligned PER supports scalar kinds only")}
	errorBadExtOrder    = EncodingError{mkerr("mandatory extension addition absent before a present one")}
	errorValueMode      = EncodingError{mkerr("value-set and CLASS nodes cannot be encoded")}
)

/*
decoding errors.
*/
var (
	errorTruncated       = DecodingError{mkerr("truncated input")}
	errorTruncatedTag    = DecodingError{mkerr("truncated high-tag-number form")}
	errorTagTooLarge     = DecodingError{mkerr("tag too large (≥ 2^28)")}
	errorEmptyLength     = DecodingError{mkerr("length octets not found")}
	errorLengthTooLong   = DecodingError{mkerr("length octets too large (>4 octets)")}
	errorTruncatedLength = DecodingError{mkerr("length is truncated")}
	errorNoEOC           = DecodingError{mkerr("missing end-of-contents for indefinite value")}
	errorIndefPrimitive  = DecodingError{mkerr("indefinite length on a primitive value")}
	errorBadBoolean      = DecodingError{mkerr("BOOLEAN content must be one octet")}
	errorBadNull         = DecodingError{mkerr("NULL content must be empty")}
	errorBadInteger      = DecodingError{mkerr("INTEGER content is empty")}
	errorBadBitString    = DecodingError{mkerr("malformed BIT STRING content")}
	errorBadOID          = DecodingError{mkerr("malformed OBJECT IDENTIFIER content")}
	errorBadUCS2         = DecodingError{mkerr("BMPString content has odd length")}
	errorTrailingData    = DecodingError{mkerr("trailing data inside constructed value")}
	errorBadFragment     = DecodingError{mkerr("fragmented length determinants are not supported")}
)

func errorTagMismatch(want Tag, class, number int) error {
	return decodingErrorf("tag mismatch: expected ", want,
		", got [", ClassNames[class], " ", number, "]")
}

func errorMissingComponent(seq, name string) error {
	return decodingErrorf(seq, ": missing mandatory component ", name)
}

func errorAbsentComponent(seq, name string) error {
	return valueErrorf(seq, ": mandatory component ", name, " has no value")
}

func errorUnknownComponent(seq, name string) error {
	return valueErrorf(seq, ": unknown component ", name)
}

func errorDuplicateTag(parent string, t Tag) error {
	return schemaErrorf(parent, ": duplicate or ambiguous sibling tag ", t)
}

func errorUnresolved(name string) error {
	return schemaErrorf("unresolvable type reference ", name)
}

func errorKindMismatch(n *Node, v Value) error {
	return valueErrorf(n.label(), ": ", n.Kind, " cannot hold ",
		reflect.TypeOf(v))
}

func errorBadIndex(what string, idx, max int) error {
	return decodingErrorf(what, ": decoded index ", idx,
		" out of range [0..", max, ")")
}

var errCache sync.Map

func mkerrf(parts ...any) error {
	if len(parts) == 0 {
		return nil
	}

	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			if v, hit := errCache.Load(s); hit {
				return v.(error)
			}
		} else if parts[0] == nil {
			return nil
		}
	}

	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		case int64:
			b.WriteString(fmtInt(v, 10))
		case uint64:
			b.WriteString(fmtUint(v, 10))
		case error:
			b.WriteString(v.Error())
		case interface{ String() string }:
			b.WriteString(v.String())
		case nil:
			b.WriteString("<nil>")
		default:
			b.WriteString("<not supported>")
		}
	}
	msg := b.String()

	if v, hit := errCache.Load(msg); hit {
		return v.(error)
	}
	e := mkerr(msg)
	errCache.Store(msg, e)
	return e
}
