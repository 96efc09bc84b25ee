package asn1rt

/*
var.go contains global variables and constants used throughout this package.
*/

/*
ASN.1 UNIVERSAL tag constants for the kinds modeled by this package.
*/
const (
	invalidTag         = 0
	TagBoolean         = 1
	TagInteger         = 2
	TagBitString       = 3
	TagOctetString     = 4
	TagNull            = 5
	TagOID             = 6
	TagEnum            = 10
	TagUTF8String      = 12
	TagSequence        = 16
	TagSet             = 17
	TagNumericString   = 18
	TagPrintableString = 19
	TagIA5String       = 22
	TagVisibleString   = 26
	TagBMPString       = 30
)

/*
ASN.1 class constants.
*/
const (
	invalidClass int = iota - 1
	ClassUniversal
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

/*
ClassNames facilitates access to string ASN.1 class names.
*/
var ClassNames = map[int]string{
	invalidClass:         "INVALID CLASS",
	ClassUniversal:       "UNIVERSAL",
	ClassApplication:     "APPLICATION",
	ClassContextSpecific: "CONTEXT SPECIFIC",
	ClassPrivate:         "PRIVATE",
}

/*
TagNames facilitates access to string ASN.1 tag names.
*/
var TagNames = map[int]string{
	invalidTag:         "INVALID TAG",       //  0
	TagBoolean:         "BOOLEAN",           //  1
	TagInteger:         "INTEGER",           //  2
	TagBitString:       "BIT STRING",        //  3
	TagOctetString:     "OCTET STRING",      //  4
	TagNull:            "NULL",              //  5
	TagOID:             "OBJECT IDENTIFIER", //  6
	TagEnum:            "ENUMERATED",        // 10
	TagUTF8String:      "UTF8 STRING",       // 12
	TagSequence:        "SEQUENCE",          // 16
	TagSet:             "SET",               // 17
	TagNumericString:   "NUMERIC STRING",    // 18
	TagPrintableString: "PRINTABLE STRING",  // 19
	TagIA5String:       "IA5 STRING",        // 22
	TagVisibleString:   "VISIBLE STRING",    // 26
	TagBMPString:       "BMP STRING",        // 30
}

/*
PER hard limits. Lengths are never fragmented beyond the quantized
16K multiples and whole numbers never exceed eight (8) octets.
*/
const (
	perFragment       = 16384
	perMaxLength      = 4 * perFragment
	perMaxIntOctets   = 8
	perNSValThreshold = 64
)

const (
	cmpndByte byte = 0x20
	indefByte byte = 0x80
)

var indefEoC = []byte{0x00, 0x00}

const hexDigits = "0123456789ABCDEF"
