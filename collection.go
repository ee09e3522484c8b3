package anson

import (
	"cmp"
	"slices"

	"github.com/hamba/avro/v2"
)

// Slice maps []A onto an Avro ARRAY of the element codec's schema. Encoded
// ordering follows the slice; nil and empty slices both encode as an empty
// array and decode as an empty non-nil slice.
func Slice[A any](element Codec[A]) Codec[[]A] {
	label := "[]" + element.label
	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				es, err := element.Schema()
				if err != nil {
					return nil, err
				}
				return avro.NewArraySchema(es), nil
			})
		},
		func(a []A, s avro.Schema) (any, error) {
			if s.Type() != avro.Array {
				return nil, errSchemaType(OpEncode, label, s, avro.Array)
			}
			items := s.(*avro.ArraySchema).Items()
			out := make([]any, len(a))
			for i, e := range a {
				v, err := element.encode(e, items)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		func(v any, s avro.Schema) ([]A, error) {
			if s.Type() != avro.Array {
				return nil, errSchemaType(OpDecode, label, s, avro.Array)
			}
			items := s.(*avro.ArraySchema).Items()
			arr, ok := v.([]any)
			if !ok {
				return nil, errValueType(OpDecode, label, v, "[]any")
			}
			out := make([]A, len(arr))
			for i, e := range arr {
				a, err := element.decode(e, items)
				if err != nil {
					return nil, err
				}
				out[i] = a
			}
			return out, nil
		})
}

// NonEmptySlice is Slice with decoding that rejects empty arrays with
// ErrEmptyCollection.
func NonEmptySlice[A any](element Codec[A]) Codec[[]A] {
	inner := Slice(element)
	label := "non-empty " + inner.label
	return Codec[[]A]{
		label:  label,
		schema: inner.schema,
		encode: inner.encode,
		decode: func(v any, s avro.Schema) ([]A, error) {
			out, err := inner.decode(v, s)
			if err != nil {
				return nil, err
			}
			if len(out) == 0 {
				return nil, errEmptyCollection(label)
			}
			return out, nil
		},
	}
}

// Set maps map[A]struct{} onto an Avro ARRAY of the element codec's schema.
// Encoded ordering follows map iteration order and is therefore unspecified;
// decoding deduplicates.
func Set[A comparable](element Codec[A]) Codec[map[A]struct{}] {
	inner := Slice(element)
	label := "set[" + element.label + "]"
	return setCodec(inner, label, func(a map[A]struct{}) []A {
		keys := make([]A, 0, len(a))
		for k := range a {
			keys = append(keys, k)
		}
		return keys
	}, false)
}

// NonEmptySet is Set over an ordered element type: encoding visits elements
// in ascending order and decoding rejects empty arrays with
// ErrEmptyCollection.
func NonEmptySet[A cmp.Ordered](element Codec[A]) Codec[map[A]struct{}] {
	inner := Slice(element)
	label := "non-empty set[" + element.label + "]"
	return setCodec(inner, label, func(a map[A]struct{}) []A {
		keys := make([]A, 0, len(a))
		for k := range a {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}, true)
}

func setCodec[A comparable](inner Codec[[]A], label string, keys func(map[A]struct{}) []A, nonEmpty bool) Codec[map[A]struct{}] {
	return Codec[map[A]struct{}]{
		label:  label,
		schema: inner.schema,
		encode: func(a map[A]struct{}, s avro.Schema) (any, error) {
			return inner.encode(keys(a), s)
		},
		decode: func(v any, s avro.Schema) (map[A]struct{}, error) {
			elems, err := inner.decode(v, s)
			if err != nil {
				return nil, err
			}
			if nonEmpty && len(elems) == 0 {
				return nil, errEmptyCollection(label)
			}
			out := make(map[A]struct{}, len(elems))
			for _, e := range elems {
				out[e] = struct{}{}
			}
			return out, nil
		},
	}
}

// MapOf maps map[string]A onto an Avro MAP of the element codec's schema.
func MapOf[A any](element Codec[A]) Codec[map[string]A] {
	label := "map[string]" + element.label
	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				es, err := element.Schema()
				if err != nil {
					return nil, err
				}
				return avro.NewMapSchema(es), nil
			})
		},
		func(a map[string]A, s avro.Schema) (any, error) {
			if s.Type() != avro.Map {
				return nil, errSchemaType(OpEncode, label, s, avro.Map)
			}
			values := s.(*avro.MapSchema).Values()
			out := make(map[string]any, len(a))
			for k, e := range a {
				v, err := element.encode(e, values)
				if err != nil {
					return nil, err
				}
				out[k] = v
			}
			return out, nil
		},
		func(v any, s avro.Schema) (map[string]A, error) {
			if s.Type() != avro.Map {
				return nil, errSchemaType(OpDecode, label, s, avro.Map)
			}
			values := s.(*avro.MapSchema).Values()
			m, ok := v.(map[string]any)
			if !ok {
				return nil, errValueType(OpDecode, label, v, "map[string]any")
			}
			out := make(map[string]A, len(m))
			for k, e := range m {
				a, err := element.decode(e, values)
				if err != nil {
					return nil, err
				}
				out[k] = a
			}
			return out, nil
		})
}
