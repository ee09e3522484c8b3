package anson

import (
	"fmt"
	"math/big"

	"github.com/hamba/avro/v2"
	"github.com/shopspring/decimal"
)

// Decimal maps decimal.Decimal onto Avro BYTES with the decimal logical type:
// the unscaled value as a two's-complement big-endian integer.
//
// Encoding requires the value's scale to equal the schema's scale exactly and
// its digit count to stay within the schema's precision. Decoding re-checks
// precision but takes the scale from the logical type as-is. Round trips hold
// for values with matching scale and in-range precision.
func Decimal(precision, scale int) Codec[decimal.Decimal] {
	const label = "decimal"
	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				if precision <= 0 {
					return nil, fmt.Errorf("decimal precision %d must be positive", precision)
				}
				if scale < 0 {
					return nil, fmt.Errorf("decimal scale %d must not be negative", scale)
				}
				if scale > precision {
					return nil, fmt.Errorf("decimal scale %d must not exceed precision %d", scale, precision)
				}
				return avro.NewPrimitiveSchema(avro.Bytes, avro.NewDecimalLogicalSchema(precision, scale)), nil
			})
		},
		func(a decimal.Decimal, s avro.Schema) (any, error) {
			dl, err := decimalLogical(OpEncode, s)
			if err != nil {
				return nil, err
			}
			if got := int(-a.Exponent()); got != dl.Scale() {
				return nil, errScaleMismatch(got, dl.Scale())
			}
			unscaled := a.Coefficient()
			if digits := digitCount(unscaled); digits > dl.Precision() {
				return nil, errPrecisionExceeded(OpEncode, digits, dl.Precision())
			}
			return twosComplement(unscaled), nil
		},
		func(v any, s avro.Schema) (decimal.Decimal, error) {
			dl, err := decimalLogical(OpDecode, s)
			if err != nil {
				return decimal.Decimal{}, err
			}
			b, ok := v.([]byte)
			if !ok {
				return decimal.Decimal{}, errValueType(OpDecode, label, v, "[]byte")
			}
			unscaled := fromTwosComplement(b)
			if digits := digitCount(unscaled); digits > dl.Precision() {
				return decimal.Decimal{}, errPrecisionExceeded(OpDecode, digits, dl.Precision())
			}
			return decimal.NewFromBigInt(unscaled, int32(-dl.Scale())), nil
		})
}

// decimalLogical extracts the decimal logical type from a BYTES schema.
func decimalLogical(op Op, s avro.Schema) (*avro.DecimalLogicalSchema, error) {
	const label = "decimal"
	if s.Type() != avro.Bytes {
		return nil, errSchemaType(op, label, s, avro.Bytes)
	}
	ls, ok := s.(avro.LogicalTypeSchema)
	if !ok || ls.Logical() == nil {
		return nil, errLogicalType(op, label, "", avro.Decimal)
	}
	dl, ok := ls.Logical().(*avro.DecimalLogicalSchema)
	if !ok {
		return nil, errLogicalType(op, label, ls.Logical().Type(), avro.Decimal)
	}
	return dl, nil
}

// digitCount returns the number of decimal digits in the unscaled value.
// Zero counts as one digit.
func digitCount(n *big.Int) int {
	return len(new(big.Int).Abs(n).String())
}

// twosComplement renders n as the minimal two's-complement big-endian byte
// sequence.
func twosComplement(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}
	abs := new(big.Int).Abs(n)
	bits := abs.BitLen()
	size := (bits + 7) / 8
	if bits%8 == 0 {
		// The top bit of the top byte is set; it still fits when the
		// magnitude is exactly the sign-bit power of two (e.g. -128).
		pow := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if abs.Cmp(pow) != 0 {
			size++
		}
	}
	t := new(big.Int).Lsh(big.NewInt(1), uint(8*size))
	t.Sub(t, abs)
	return t.Bytes()
}

// fromTwosComplement reads a two's-complement big-endian byte sequence.
func fromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return n
}
