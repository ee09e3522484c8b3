package anson

import (
	"context"
	"reflect"
	"time"

	"github.com/hamba/avro/v2"
)

// Codec describes how values of a user type A travel through Avro: a schema
// producer, an encoder into the runtime value representation and a decoder
// back to A.
//
// Codecs are immutable and safe to share across goroutines. The schema
// producer is memoized per codec instance, so repeated Schema calls return
// the same structurally equal schema (or the same construction error).
//
// Encode and Decode always validate the supplied schema before touching the
// value: a schema outside the codec's supported set fails with
// ErrUnexpectedSchemaType and a value with the wrong runtime shape fails with
// ErrUnexpectedType.
type Codec[A any] struct {
	label  string
	schema func() (avro.Schema, error)
	encode func(A, avro.Schema) (any, error)
	decode func(any, avro.Schema) (A, error)
}

// New assembles a codec from its three operations. The label names the user
// type in error messages. The schema producer is wrapped in a once guard so
// it runs at most one time per codec value.
//
// Most callers want the built-in codecs or the Record/Union/Enum builders
// instead; New is the extension point for custom codecs.
func New[A any](label string,
	schema func() (avro.Schema, error),
	encode func(A, avro.Schema) (any, error),
	decode func(any, avro.Schema) (A, error),
) Codec[A] {
	return Codec[A]{
		label:  label,
		schema: memoizeSchema(label, schema),
		encode: encode,
		decode: decode,
	}
}

// Label returns the name this codec uses for its user type in error messages.
func (c Codec[A]) Label() string {
	return c.label
}

// Schema returns the Avro schema this codec writes and reads. The result is
// deterministic: every call returns a structurally equal schema.
func (c Codec[A]) Schema() (avro.Schema, error) {
	return c.schema()
}

// Encode converts a into the runtime value representation fitting schema.
func (c Codec[A]) Encode(a A, schema avro.Schema) (any, error) {
	return c.encode(a, schema)
}

// Decode parses a runtime value interpreted as schema back into an A.
func (c Codec[A]) Decode(v any, schema avro.Schema) (A, error) {
	return c.decode(v, schema)
}

// Marshal encodes a against the codec's own schema.
func (c Codec[A]) Marshal(a A) (any, error) {
	start := time.Now()
	v, err := c.marshal(a)
	emitMarshalComplete(context.Background(), c.label, time.Since(start), err)
	return v, err
}

func (c Codec[A]) marshal(a A) (any, error) {
	s, err := c.schema()
	if err != nil {
		return nil, err
	}
	return c.encode(a, s)
}

// Unmarshal decodes a runtime value against the codec's own schema.
func (c Codec[A]) Unmarshal(v any) (A, error) {
	start := time.Now()
	a, err := c.unmarshal(v)
	emitUnmarshalComplete(context.Background(), c.label, time.Since(start), err)
	return a, err
}

func (c Codec[A]) unmarshal(v any) (A, error) {
	s, err := c.schema()
	if err != nil {
		var zero A
		return zero, err
	}
	return c.decode(v, s)
}

// String renders the codec as the canonical JSON of its schema, or as the
// schema error when construction fails.
func (c Codec[A]) String() string {
	s, err := c.schema()
	if err != nil {
		return err.Error()
	}
	return s.String()
}

// Imap maps a codec bidirectionally onto another type: encoding goes through
// g back to A, decoding goes through f forward to B. The schema is unchanged.
func Imap[A, B any](c Codec[A], f func(A) B, g func(B) A) Codec[B] {
	return ImapError(c, func(a A) (B, error) { return f(a), nil }, g)
}

// ImapError is Imap with a forward mapping that may fail during decode. An
// error returned by f that is not already an *Error is wrapped as an
// ErrInvalidValue for this codec's type label.
func ImapError[A, B any](c Codec[A], f func(A) (B, error), g func(B) A) Codec[B] {
	return Codec[B]{
		label:  c.label,
		schema: c.schema,
		encode: func(b B, s avro.Schema) (any, error) {
			return c.encode(g(b), s)
		},
		decode: func(v any, s avro.Schema) (B, error) {
			var zero B
			a, err := c.decode(v, s)
			if err != nil {
				return zero, err
			}
			b, err := f(a)
			if err != nil {
				return zero, wrapDecodeError(c.label, err)
			}
			return b, nil
		},
	}
}

// wrapDecodeError coerces a user-level failure into the error taxonomy,
// leaving values that already belong to it untouched.
func wrapDecodeError(label string, err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return errInvalidValue(OpDecode, label, err)
}

// typeLabel derives an error label from a Go type, for builders that have no
// schema name of their own (unions).
func typeLabel[A any]() string {
	t := reflect.TypeOf((*A)(nil)).Elem()
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
