package asn1rt

/*
int.go contains all types and methods pertaining to the ASN.1
INTEGER type.
*/

import (
	"math"
	"math/big"
)

/*
Integer implements the unbounded ASN.1 INTEGER type (tag 2). Note
that *[big.Int] is used internally ONLY if the number overflows int64.
*/
type Integer struct {
	big    bool
	native int64    // Stores native integer values
	bigInt *big.Int // Stores big.Int values when necessary
}

/*
Int returns an [Integer] bearing the native value v.
*/
func Int(v int64) Integer { return Integer{native: v} }

/*
NewInteger returns an instance of [Integer] supporting any signed
magnitude.

Input types may be int, int32, int64, uint64, string or *[math/big.Int].
*/
func NewInteger[T any](v T) (i Integer, err error) {
	switch value := any(v).(type) {
	case int:
		i = Integer{native: int64(value)}
	case int32:
		i = Integer{native: int64(value)}
	case int64:
		i = Integer{native: value}
	case uint64:
		// If the value cannot fit in an int64, use big.Int.
		if value > uint64(math.MaxInt64) {
			i = Integer{big: true, bigInt: newBigInt(0).SetUint64(value)}
		} else {
			i = Integer{native: int64(value)}
		}
	case *big.Int:
		i = intFromBig(value)
	case string:
		// Attempt to parse the string in base 10.
		if _i, ok := newBigInt(0).SetString(value, 10); !ok {
			err = valueErrorf("invalid string value for ASN.1 INTEGER: ", value)
		} else {
			i = intFromBig(_i)
		}
	case Integer:
		i = value
	default:
		err = valueErrorf("unsupported INTEGER input type")
	}

	return
}

/*
intFromBig returns an [Integer] using the native form whenever b fits
within an int64.
*/
func intFromBig(b *big.Int) Integer {
	if b.IsInt64() {
		return Integer{native: b.Int64()}
	}
	return Integer{big: true, bigInt: new(big.Int).Set(b)}
}

/*
String returns the string representation of the receiver instance.
*/
func (r Integer) String() string {
	var s string
	if r.big {
		s = r.bigInt.String()
	} else {
		s = fmtInt(r.native, 10)
	}

	return s
}

/*
Int64 returns the native value of the receiver alongside a Boolean
value indicative of the value fitting within an int64.
*/
func (r Integer) Int64() (int64, bool) {
	if r.big {
		if r.bigInt.IsInt64() {
			return r.bigInt.Int64(), true
		}
		return 0, false
	}
	return r.native, true
}

/*
Big returns the *[big.Int] form of the receiver instance.
*/
func (r Integer) Big() (i *big.Int) {
	if r.big {
		i = r.bigInt
	} else {
		i = newBigInt(r.native)
	}

	return
}

/*
Eq returns a bool indicative of an equality match between the
receiver instance and x.
*/
func (r Integer) Eq(x Integer) bool {
	return r.Big().Cmp(x.Big()) == 0
}

/*
Gt returns a bool indicative of r being greater than x.
*/
func (r Integer) Gt(x Integer) bool {
	return r.Big().Cmp(x.Big()) > 0
}

/*
Lt returns a bool indicative of r being less than x.
*/
func (r Integer) Lt(x Integer) bool {
	return r.Big().Cmp(x.Big()) < 0
}

func decodeIntegerContent(encoded []byte) (val *big.Int) {
	val = newBigInt(0)
	val.SetBytes(encoded)
	if len(encoded) > 0 && encoded[0]&0x80 != 0 {
		// Compute 2^(len(encoded)*8) and subtract it.
		bitLen := uint(len(encoded) * 8)
		twoPow := new(big.Int).Lsh(newBigInt(1), bitLen)
		val.Sub(val, twoPow)
	}

	return
}

/*
encodeIntegerContent returns the minimal two's complement octets of i.
*/
func encodeIntegerContent(i *big.Int) (data []byte) {
	if i.Sign() >= 0 {
		b := i.Bytes()
		if len(b) == 0 {
			b = []byte{0x00}
		}
		// A set high bit would read as negative.
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}

	// Smallest n such that i >= -(1 << (8n-1)).
	abs := new(big.Int).Abs(i)
	n := (abs.BitLen() + 7) / 8
	if n == 0 {
		n = 1
	}
	min := new(big.Int).Lsh(newBigInt(1), uint(8*n-1))
	min.Neg(min)
	if i.Cmp(min) < 0 {
		n++
	}

	mod := new(big.Int).Lsh(newBigInt(1), uint(8*n))
	data = new(big.Int).Add(mod, i).Bytes()
	if len(data) < n {
		data = append(make([]byte, n-len(data)), data...)
	}

	return
}

func decodeIntegerBER(content []byte) (Value, error) {
	if len(content) == 0 {
		return nil, errorBadInteger
	}
	return intFromBig(decodeIntegerContent(content)), nil
}

/*
encodeInteger appends a PER INTEGER: an extension bit when the range
is extensible, then a constrained, semi-constrained or unconstrained
whole number depending on the bounds present.
*/
func (c *perCodec) encodeInteger(buf *BitBuffer, off int, n *Node, v Integer) (int, error) {
	x, ok := v.Int64()
	if !ok {
		return off, errorIntTooLarge
	}

	sp := n.span()
	if sp.ext {
		in := sp.contains(x)
		if off = c.putBit(buf, off, !in); !in {
			return c.putUnconstrained(buf, off, x)
		}
	}

	switch {
	case sp.lb != nil && sp.ub != nil:
		return c.putConstrained(buf, off, *sp.lb, *sp.ub, x)
	case sp.lb != nil:
		if x < *sp.lb {
			return off, encodingErrorf("value ", x, " below lower bound ", *sp.lb)
		}
		return c.putSemiConstrained(buf, off, uint64(x)-uint64(*sp.lb))
	}

	return c.putUnconstrained(buf, off, x)
}

func (c *perCodec) decodeInteger(buf *BitBuffer, off int, n *Node) (Value, int, error) {
	sp := n.span()
	if sp.ext {
		out, off, err := c.getBit(buf, off)
		if err != nil || out {
			if err != nil {
				return nil, off, err
			}
			return c.getUnconstrained(buf, off)
		}
		return c.decodeIntegerRoot(buf, off, sp)
	}
	return c.decodeIntegerRoot(buf, off, sp)
}

func (c *perCodec) decodeIntegerRoot(buf *BitBuffer, off int, sp span) (Value, int, error) {
	switch {
	case sp.lb != nil && sp.ub != nil:
		x, off, err := c.getConstrained(buf, off, *sp.lb, *sp.ub)
		return Int(x), off, err
	case sp.lb != nil:
		u, off, err := c.getSemiConstrained(buf, off)
		if err != nil {
			return nil, off, err
		}
		sum := new(big.Int).SetUint64(u)
		return intFromBig(sum.Add(sum, newBigInt(*sp.lb))), off, nil
	}

	return c.getUnconstrained(buf, off)
}
