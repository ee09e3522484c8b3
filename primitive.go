package anson

import (
	"github.com/hamba/avro/v2"
)

// primitive builds a codec for a type whose runtime representation is the
// user type itself.
func primitive[A any](label string, typ avro.Type, tag string) Codec[A] {
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(typ, nil), nil
		},
		func(a A, s avro.Schema) (any, error) {
			if s.Type() != typ {
				return nil, errSchemaType(OpEncode, label, s, typ)
			}
			return a, nil
		},
		func(v any, s avro.Schema) (A, error) {
			var zero A
			if s.Type() != typ {
				return zero, errSchemaType(OpDecode, label, s, typ)
			}
			a, ok := v.(A)
			if !ok {
				return zero, errValueType(OpDecode, label, v, tag)
			}
			return a, nil
		})
}

// Boolean maps bool onto Avro BOOLEAN.
func Boolean() Codec[bool] {
	return primitive[bool]("boolean", avro.Boolean, "bool")
}

// Int maps int32 onto Avro INT.
func Int() Codec[int32] {
	return primitive[int32]("int", avro.Int, "int32")
}

// Long maps int64 onto Avro LONG.
func Long() Codec[int64] {
	return primitive[int64]("long", avro.Long, "int64")
}

// Float maps float32 onto Avro FLOAT.
func Float() Codec[float32] {
	return primitive[float32]("float", avro.Float, "float32")
}

// Double maps float64 onto Avro DOUBLE.
func Double() Codec[float64] {
	return primitive[float64]("double", avro.Double, "float64")
}

// String maps string onto Avro STRING.
func String() Codec[string] {
	return primitive[string]("string", avro.String, "string")
}

// Null maps struct{} onto Avro NULL.
func Null() Codec[struct{}] {
	const label = "null"
	return New(label,
		func() (avro.Schema, error) {
			return &avro.NullSchema{}, nil
		},
		func(_ struct{}, s avro.Schema) (any, error) {
			if s.Type() != avro.Null {
				return nil, errSchemaType(OpEncode, label, s, avro.Null)
			}
			return nil, nil
		},
		func(v any, s avro.Schema) (struct{}, error) {
			if s.Type() != avro.Null {
				return struct{}{}, errSchemaType(OpDecode, label, s, avro.Null)
			}
			if v != nil {
				return struct{}{}, errValueType(OpDecode, label, v, "nil")
			}
			return struct{}{}, nil
		})
}

// Int8 maps int8 onto Avro INT. Decoding range-checks the value against
// [-128, 127] and fails with ErrUnexpectedByte outside it.
func Int8() Codec[int8] {
	const label = "int8"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.Int, nil), nil
		},
		func(a int8, s avro.Schema) (any, error) {
			if s.Type() != avro.Int {
				return nil, errSchemaType(OpEncode, label, s, avro.Int)
			}
			return int32(a), nil
		},
		func(v any, s avro.Schema) (int8, error) {
			if s.Type() != avro.Int {
				return 0, errSchemaType(OpDecode, label, s, avro.Int)
			}
			i, ok := v.(int32)
			if !ok {
				return 0, errValueType(OpDecode, label, v, "int32")
			}
			if i < -128 || i > 127 {
				return 0, errUnexpectedByte(int(i))
			}
			return int8(i), nil
		})
}

// Int16 maps int16 onto Avro INT. Decoding range-checks the value against
// [-32768, 32767] and fails with ErrUnexpectedShort outside it.
func Int16() Codec[int16] {
	const label = "int16"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.Int, nil), nil
		},
		func(a int16, s avro.Schema) (any, error) {
			if s.Type() != avro.Int {
				return nil, errSchemaType(OpEncode, label, s, avro.Int)
			}
			return int32(a), nil
		},
		func(v any, s avro.Schema) (int16, error) {
			if s.Type() != avro.Int {
				return 0, errSchemaType(OpDecode, label, s, avro.Int)
			}
			i, ok := v.(int32)
			if !ok {
				return 0, errValueType(OpDecode, label, v, "int32")
			}
			if i < -32768 || i > 32767 {
				return 0, errUnexpectedShort(int(i))
			}
			return int16(i), nil
		})
}

// Rune maps a single character onto Avro STRING. Decoding fails with
// ErrUnexpectedChar when the string is not exactly one character long.
func Rune() Codec[rune] {
	const label = "rune"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.String, nil), nil
		},
		func(a rune, s avro.Schema) (any, error) {
			if s.Type() != avro.String {
				return nil, errSchemaType(OpEncode, label, s, avro.String)
			}
			return string(a), nil
		},
		func(v any, s avro.Schema) (rune, error) {
			if s.Type() != avro.String {
				return 0, errSchemaType(OpDecode, label, s, avro.String)
			}
			str, ok := v.(string)
			if !ok {
				return 0, errValueType(OpDecode, label, v, "string")
			}
			runes := []rune(str)
			if len(runes) != 1 {
				return 0, errUnexpectedChar(len(runes))
			}
			return runes[0], nil
		})
}

// logicalOf returns the logical type annotation carried by a schema, or the
// empty string when it has none.
func logicalOf(s avro.Schema) avro.LogicalType {
	ls, ok := s.(avro.LogicalTypeSchema)
	if !ok {
		return ""
	}
	l := ls.Logical()
	if l == nil {
		return ""
	}
	return l.Type()
}

// checkLogical verifies both the schema type and its logical annotation.
func checkLogical(op Op, label string, s avro.Schema, typ avro.Type, logical avro.LogicalType) error {
	if s.Type() != typ {
		return errSchemaType(op, label, s, typ)
	}
	if actual := logicalOf(s); actual != logical {
		return errLogicalType(op, label, actual, logical)
	}
	return nil
}
