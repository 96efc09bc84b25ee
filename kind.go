package asn1rt

/*
kind.go contains the closed set of ASN.1 kinds modeled by this package,
along with node modes and component flags.
*/

/*
Kind describes the basic ASN.1 kind of a [Node]. The set is closed;
every codec dispatches over it with an exhaustive switch.
*/
type Kind int

const (
	invalidKind Kind = iota - 1
	KindNull
	KindBoolean
	KindInteger
	KindEnumerated
	KindBitString
	KindOctetString
	KindUTF8String
	KindNumericString
	KindPrintableString
	KindIA5String
	KindVisibleString
	KindBMPString
	KindOID
	KindChoice
	KindSequence
	KindSet
	KindSequenceOf
	KindSetOf
	KindClass
	KindOpen
	KindSelfRef
)

var kindNames = map[Kind]string{
	invalidKind:         "INVALID",
	KindNull:            "NULL",
	KindBoolean:         "BOOLEAN",
	KindInteger:         "INTEGER",
	KindEnumerated:      "ENUMERATED",
	KindBitString:       "BIT STRING",
	KindOctetString:     "OCTET STRING",
	KindUTF8String:      "UTF8String",
	KindNumericString:   "NumericString",
	KindPrintableString: "PrintableString",
	KindIA5String:       "IA5String",
	KindVisibleString:   "VisibleString",
	KindBMPString:       "BMPString",
	KindOID:             "OBJECT IDENTIFIER",
	KindChoice:          "CHOICE",
	KindSequence:        "SEQUENCE",
	KindSet:             "SET",
	KindSequenceOf:      "SEQUENCE OF",
	KindSetOf:           "SET OF",
	KindClass:           "CLASS",
	KindOpen:            "OPEN",
	KindSelfRef:         "SELF-REFERENCE",
}

/*
String returns the ASN.1 notation name of the receiver instance.
*/
func (r Kind) String() string {
	if s, ok := kindNames[r]; ok {
		return s
	}
	return kindNames[invalidKind]
}

/*
universalTag returns the UNIVERSAL tag number of the receiver, or
-1 if the kind bears no tag of its own (CHOICE, OPEN, CLASS and
unresolved self-references).
*/
func (r Kind) universalTag() int {
	switch r {
	case KindNull:
		return TagNull
	case KindBoolean:
		return TagBoolean
	case KindInteger:
		return TagInteger
	case KindEnumerated:
		return TagEnum
	case KindBitString:
		return TagBitString
	case KindOctetString:
		return TagOctetString
	case KindUTF8String:
		return TagUTF8String
	case KindNumericString:
		return TagNumericString
	case KindPrintableString:
		return TagPrintableString
	case KindIA5String:
		return TagIA5String
	case KindVisibleString:
		return TagVisibleString
	case KindBMPString:
		return TagBMPString
	case KindOID:
		return TagOID
	case KindSequence, KindSequenceOf:
		return TagSequence
	case KindSet, KindSetOf:
		return TagSet
	case KindChoice, KindOpen, KindClass, KindSelfRef:
		return -1
	}
	return -1
}

/*
constructed returns a Boolean value indicative of the receiver being
encoded in BER as a constructed value.
*/
func (r Kind) constructed() bool {
	switch r {
	case KindSequence, KindSet, KindSequenceOf, KindSetOf:
		return true
	}
	return false
}

/*
IsString returns a Boolean value indicative of the receiver being one
of the character string kinds.
*/
func (r Kind) IsString() bool {
	switch r {
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		return true
	}
	return false
}

/*
sized returns a Boolean value indicative of the receiver interpreting a
[ValueRange] constraint as a SIZE constraint.
*/
func (r Kind) sized() bool {
	switch r {
	case KindBitString, KindOctetString, KindSequenceOf, KindSetOf:
		return true
	}
	return r.IsString()
}

/*
scalar returns a Boolean value indicative of the receiver being eligible
for the unaligned PER path.
*/
func (r Kind) scalar() bool {
	switch r {
	case KindNull, KindBoolean, KindInteger, KindEnumerated,
		KindBitString, KindOctetString:
		return true
	}
	return r.IsString()
}

/*
Mode describes whether a [Node] defines a type, a single value or a
set of values.
*/
type Mode int

const (
	ModeType Mode = iota
	ModeValue
	ModeValueSet
)

func (r Mode) String() (s string) {
	switch r {
	case ModeType:
		s = `type`
	case ModeValue:
		s = `value`
	case ModeValueSet:
		s = `value-set`
	default:
		s = `invalid`
	}
	return
}

/*
Flag qualifies a component within its parent SEQUENCE, SET or CLASS.
*/
type Flag int

const (
	FlagNone Flag = iota
	FlagOptional
	FlagDefault
	FlagUnique
)

/*
absentable returns a Boolean value indicative of the receiver allowing
a component to be left out of an encoding.
*/
func (r Flag) absentable() bool {
	return r == FlagOptional || r == FlagDefault
}

func (r Flag) String() (s string) {
	switch r {
	case FlagOptional:
		s = `OPTIONAL`
	case FlagDefault:
		s = `DEFAULT`
	case FlagUnique:
		s = `UNIQUE`
	}
	return
}
