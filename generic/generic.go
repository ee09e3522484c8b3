// Package generic provides the runtime value representation exchanged between
// codecs and the Avro wire layer.
//
// Primitive values travel as plain Go values (nil, bool, int32, int64,
// float32, float64, string, []byte) and compound unnamed values as []any and
// map[string]any. Named Avro types need a container that carries its writer
// schema so that union resolution can recover the branch by full name; this
// package supplies those three containers: Record, EnumSymbol and Fixed.
//
// Native converts any value in this representation into the shape
// github.com/hamba/avro/v2 marshals natively, for callers that want to put a
// codec's output on the wire.
package generic

import (
	"github.com/hamba/avro/v2"
)

// Record is a generic Avro record: an ordered set of field values positioned
// according to its schema.
type Record struct {
	schema *avro.RecordSchema
	values []any
}

// NewRecord returns an empty record for the given schema. Every field value
// starts as nil; use Set to place values by field position.
func NewRecord(schema *avro.RecordSchema) *Record {
	return &Record{
		schema: schema,
		values: make([]any, len(schema.Fields())),
	}
}

// Schema returns the record schema this value was built against.
func (r *Record) Schema() *avro.RecordSchema {
	return r.schema
}

// Set places v at field position i. Positions follow the schema's field order.
func (r *Record) Set(i int, v any) {
	r.values[i] = v
}

// Get returns the value at field position i.
func (r *Record) Get(i int) any {
	return r.values[i]
}

// Values returns the positional field values. The slice is the record's own
// backing storage; callers must not modify it.
func (r *Record) Values() []any {
	return r.values
}

// EnumSymbol is a generic Avro enum value: one symbol of a named symbol set.
type EnumSymbol struct {
	schema *avro.EnumSchema
	symbol string
}

// NewEnumSymbol returns the given symbol tagged with its enum schema. The
// symbol is not validated against the schema here; codecs do that.
func NewEnumSymbol(schema *avro.EnumSchema, symbol string) EnumSymbol {
	return EnumSymbol{schema: schema, symbol: symbol}
}

// Schema returns the enum schema this symbol belongs to.
func (e EnumSymbol) Schema() *avro.EnumSchema {
	return e.schema
}

// Symbol returns the symbol string.
func (e EnumSymbol) Symbol() string {
	return e.symbol
}

func (e EnumSymbol) String() string {
	return e.symbol
}

// Fixed is a generic Avro fixed value: a byte payload of the exact size its
// schema declares.
type Fixed struct {
	schema *avro.FixedSchema
	bytes  []byte
}

// NewFixed returns the given bytes tagged with their fixed schema.
func NewFixed(schema *avro.FixedSchema, bytes []byte) Fixed {
	return Fixed{schema: schema, bytes: bytes}
}

// Schema returns the fixed schema this value was built against.
func (f Fixed) Schema() *avro.FixedSchema {
	return f.schema
}

// Bytes returns the payload. The slice is the value's own backing storage;
// callers must not modify it.
func (f Fixed) Bytes() []byte {
	return f.bytes
}

// Native recursively converts a value in this package's representation into
// the generic shape hamba/avro marshals directly: records become
// map[string]any keyed by field name, enum symbols become their symbol string,
// fixed values become their raw bytes, and arrays and maps are converted
// element-wise. All other values pass through unchanged.
func Native(v any) any {
	switch cv := v.(type) {
	case *Record:
		out := make(map[string]any, len(cv.values))
		for i, f := range cv.schema.Fields() {
			out[f.Name()] = Native(cv.values[i])
		}
		return out
	case EnumSymbol:
		return cv.symbol
	case Fixed:
		return cv.bytes
	case []any:
		out := make([]any, len(cv))
		for i, e := range cv {
			out[i] = Native(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(cv))
		for k, e := range cv {
			out[k] = Native(e)
		}
		return out
	default:
		return v
	}
}
