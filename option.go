package anson

import (
	"github.com/hamba/avro/v2"
)

// Option maps *A onto a UNION of null and the inner codec's schema. A nil
// pointer encodes as null; decoding null yields nil and anything else yields
// a pointer to the decoded inner value.
func Option[A any](inner Codec[A]) Codec[*A] {
	label := "option[" + inner.label + "]"
	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				is, err := inner.Schema()
				if err != nil {
					return nil, err
				}
				return avro.NewUnionSchema([]avro.Schema{&avro.NullSchema{}, is})
			})
		},
		func(a *A, s avro.Schema) (any, error) {
			branch, err := optionBranch(OpEncode, s)
			if err != nil {
				return nil, err
			}
			if a == nil {
				return nil, nil
			}
			return inner.encode(*a, branch)
		},
		func(v any, s avro.Schema) (*A, error) {
			branch, err := optionBranch(OpDecode, s)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, nil
			}
			a, err := inner.decode(v, branch)
			if err != nil {
				return nil, err
			}
			return &a, nil
		})
}

// optionBranch returns the non-null member of a two-member union containing
// NULL in either position.
func optionBranch(op Op, s avro.Schema) (avro.Schema, error) {
	us, ok := s.(*avro.UnionSchema)
	if !ok {
		return nil, errUnexpectedOptionSchema(op, s)
	}
	types := us.Types()
	if len(types) != 2 {
		return nil, errUnexpectedOptionSchema(op, s)
	}
	switch {
	case types[0].Type() == avro.Null:
		return types[1], nil
	case types[1].Type() == avro.Null:
		return types[0], nil
	}
	return nil, errUnexpectedOptionSchema(op, s)
}
