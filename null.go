package asn1rt

/*
null.go contains all types and methods pertaining to the ASN.1
NULL type.
*/

/*
String returns the ASN.1 notation of the receiver instance.
*/
func (_ Null) String() string { return "NULL" }

func decodeNullBER(content []byte) (Value, error) {
	if len(content) != 0 {
		return nil, errorBadNull
	}
	return Null{}, nil
}
