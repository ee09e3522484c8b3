package anson

import (
	"fmt"

	"github.com/hamba/avro/v2"

	"github.com/caltha/anson/generic"
)

// Prism is a partial bidirectional view from a sum type A onto one of its
// cases B. GetOption projects a value onto the case, reporting whether it
// belongs to it; ReverseGet embeds a case value back into the sum.
type Prism[A, B any] struct {
	GetOption  func(A) (B, bool)
	ReverseGet func(B) A
}

// Alt is one alternative of a union codec: a case codec paired with the prism
// selecting its values, erased to the union's user type. Build one with
// NewAlt.
type Alt[A any] struct {
	schema  func() (avro.Schema, error)
	attempt func(A) (func(avro.Schema) (any, error), bool)
	decode  func(any, avro.Schema) (A, error)
}

// NewAlt binds a case codec to a union through the given prism.
func NewAlt[A, B any](codec Codec[B], prism Prism[A, B]) Alt[A] {
	return Alt[A]{
		schema: codec.schema,
		attempt: func(a A) (func(avro.Schema) (any, error), bool) {
			b, ok := prism.GetOption(a)
			if !ok {
				return nil, false
			}
			return func(member avro.Schema) (any, error) {
				return codec.encode(b, member)
			}, true
		},
		decode: func(v any, member avro.Schema) (A, error) {
			var zero A
			b, err := codec.decode(v, member)
			if err != nil {
				return zero, err
			}
			return prism.ReverseGet(b), nil
		},
	}
}

// Union maps a sum type A onto an Avro UNION whose members are the
// alternatives' schemas, in declaration order.
//
// Encoding selects the first alternative whose prism accepts the value and
// writes against the union member carrying that alternative's full name.
// Decoding of named values (records, enums, fixeds) resolves the alternative
// by the full name the value's own schema carries; unnamed values are tried
// positionally, pairing each alternative with the union member at the same
// index, and the first successful decode wins.
//
// A union with no alternatives fails schema construction.
func Union[A any](alts ...Alt[A]) Codec[A] {
	label := typeLabel[A]()
	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				if len(alts) == 0 {
					return nil, fmt.Errorf("union %s: at least one alternative is required", label)
				}
				members := make([]avro.Schema, len(alts))
				for i, alt := range alts {
					ms, err := alt.schema()
					if err != nil {
						return nil, err
					}
					members[i] = ms
				}
				return avro.NewUnionSchema(members)
			})
		},
		func(a A, s avro.Schema) (any, error) {
			us, ok := s.(*avro.UnionSchema)
			if !ok {
				return nil, errSchemaType(OpEncode, label, s, avro.Union)
			}
			for _, alt := range alts {
				enc, ok := alt.attempt(a)
				if !ok {
					continue
				}
				as, err := alt.schema()
				if err != nil {
					return nil, err
				}
				name := schemaFullName(as)
				member := unionMember(us, name)
				if member == nil {
					return nil, errMissingUnionSchema(OpEncode, label, name)
				}
				return enc(member)
			}
			return nil, errExhaustedAlternatives(OpEncode, label, a)
		},
		func(v any, s avro.Schema) (A, error) {
			var zero A
			us, ok := s.(*avro.UnionSchema)
			if !ok {
				return zero, errSchemaType(OpDecode, label, s, avro.Union)
			}
			if name, named := carriedName(v); named {
				member := unionMember(us, name)
				if member == nil {
					return zero, errMissingUnionSchema(OpDecode, label, name)
				}
				for _, alt := range alts {
					as, err := alt.schema()
					if err != nil {
						return zero, err
					}
					if schemaFullName(as) != name {
						continue
					}
					return alt.decode(v, member)
				}
				return zero, errMissingUnionAlternative(label, name)
			}
			members := us.Types()
			for i, alt := range alts {
				if i >= len(members) {
					break
				}
				a, err := alt.decode(v, members[i])
				if err == nil {
					return a, nil
				}
			}
			return zero, errExhaustedAlternatives(OpDecode, label, v)
		})
}

// schemaFullName names a schema for union member resolution: the full name
// for named schemas, the type name otherwise.
func schemaFullName(s avro.Schema) string {
	if ns, ok := s.(avro.NamedSchema); ok {
		return ns.FullName()
	}
	return string(s.Type())
}

// unionMember finds the union member with the given resolution name.
func unionMember(us *avro.UnionSchema, name string) avro.Schema {
	for _, t := range us.Types() {
		if schemaFullName(t) == name {
			return t
		}
	}
	return nil
}

// carriedName extracts the full name a named runtime value carries via its
// own schema. The second result is false for unnamed values.
func carriedName(v any) (string, bool) {
	switch cv := v.(type) {
	case *generic.Record:
		return cv.Schema().FullName(), true
	case generic.EnumSymbol:
		return cv.Schema().FullName(), true
	case generic.Fixed:
		return cv.Schema().FullName(), true
	}
	return "", false
}
