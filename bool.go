package asn1rt

/*
bool.go contains all types and methods pertaining to the ASN.1
BOOLEAN type.
*/

/*
Byte returns the verisimilitude of the receiver instance expressed
as a byte: 0x0 for false, t for true.
*/
func (r Boolean) Byte(t byte) byte {
	var b byte
	if bool(r) {
		b = t
	}

	return b
}

/*
String returns the string representation of the receiver instance.
*/
func (r Boolean) String() string { return bool2str(bool(r)) }

func decodeBooleanBER(content []byte) (Value, error) {
	if len(content) != 1 {
		return nil, errorBadBoolean
	}
	return Boolean(content[0] != 0x00), nil
}

func (c *perCodec) encodeBoolean(buf *BitBuffer, off int, v Boolean) (int, error) {
	return c.putBit(buf, off, bool(v)), nil
}

func (c *perCodec) decodeBoolean(buf *BitBuffer, off int) (Value, int, error) {
	b, off, err := c.getBit(buf, off)
	if err != nil {
		return nil, off, err
	}
	return Boolean(b), off, nil
}
