package anson

import (
	"github.com/hamba/avro/v2"

	"github.com/caltha/anson/generic"
)

// Bytes maps []byte onto Avro BYTES, or onto FIXED when handed a fixed
// schema. Encoding against FIXED zero-pads the payload up to the fixed size
// and fails with ErrExceedsFixedSize beyond it, so fixed round trips preserve
// length only up to padding.
func Bytes() Codec[[]byte] {
	const label = "bytes"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.Bytes, nil), nil
		},
		func(a []byte, s avro.Schema) (any, error) {
			switch s.Type() {
			case avro.Bytes:
				out := make([]byte, len(a))
				copy(out, a)
				return out, nil
			case avro.Fixed:
				fs := s.(*avro.FixedSchema)
				if len(a) > fs.Size() {
					return nil, errExceedsFixedSize(OpEncode, len(a), fs.Size())
				}
				padded := make([]byte, fs.Size())
				copy(padded, a)
				return generic.NewFixed(fs, padded), nil
			default:
				return nil, errSchemaType(OpEncode, label, s, avro.Bytes, avro.Fixed)
			}
		},
		func(v any, s avro.Schema) ([]byte, error) {
			switch s.Type() {
			case avro.Bytes:
				b, ok := v.([]byte)
				if !ok {
					return nil, errValueType(OpDecode, label, v, "[]byte")
				}
				out := make([]byte, len(b))
				copy(out, b)
				return out, nil
			case avro.Fixed:
				fs := s.(*avro.FixedSchema)
				f, ok := v.(generic.Fixed)
				if !ok {
					return nil, errValueType(OpDecode, label, v, "generic.Fixed")
				}
				if len(f.Bytes()) > fs.Size() {
					return nil, errExceedsFixedSize(OpDecode, len(f.Bytes()), fs.Size())
				}
				out := make([]byte, len(f.Bytes()))
				copy(out, f.Bytes())
				return out, nil
			default:
				return nil, errSchemaType(OpDecode, label, s, avro.Bytes, avro.Fixed)
			}
		})
}
