package anson

import (
	"github.com/google/uuid"
	"github.com/hamba/avro/v2"
)

// UUID maps uuid.UUID onto Avro STRING with the uuid logical type. Decoding
// parses the string form and fails with ErrInvalidValue when it is not a
// valid UUID.
func UUID() Codec[uuid.UUID] {
	const label = "uuid"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.String, avro.NewPrimitiveLogicalSchema(avro.UUID)), nil
		},
		func(a uuid.UUID, s avro.Schema) (any, error) {
			if err := checkLogical(OpEncode, label, s, avro.String, avro.UUID); err != nil {
				return nil, err
			}
			return a.String(), nil
		},
		func(v any, s avro.Schema) (uuid.UUID, error) {
			if err := checkLogical(OpDecode, label, s, avro.String, avro.UUID); err != nil {
				return uuid.Nil, err
			}
			str, ok := v.(string)
			if !ok {
				return uuid.Nil, errValueType(OpDecode, label, v, "string")
			}
			u, err := uuid.Parse(str)
			if err != nil {
				return uuid.Nil, errInvalidValue(OpDecode, label, err)
			}
			return u, nil
		})
}
