package anson

import (
	"context"
	"sync"

	"github.com/hamba/avro/v2"
)

// memoizeSchema wraps a schema producer so it runs at most once per codec
// value, emitting a build signal with the outcome of the first run. Later
// calls return the cached schema or error.
func memoizeSchema(label string, fn func() (avro.Schema, error)) func() (avro.Schema, error) {
	var once sync.Once
	var schema avro.Schema
	var err error
	return func() (avro.Schema, error) {
		once.Do(func() {
			schema, err = fn()
			emitSchemaBuilt(context.Background(), label, schema, err)
		})
		return schema, err
	}
}

// Lazy defers codec construction until first use, allowing mutually recursive
// codecs to be defined:
//
//	var node anson.Codec[Node]
//	node = anson.Lazy(func() anson.Codec[Node] { ... refers to node ... })
//
// The build function runs at most once; its result is cached.
func Lazy[A any](build func() Codec[A]) Codec[A] {
	var once sync.Once
	var inner Codec[A]
	get := func() Codec[A] {
		once.Do(func() {
			inner = build()
		})
		return inner
	}
	return Codec[A]{
		label: typeLabel[A](),
		schema: func() (avro.Schema, error) {
			return get().schema()
		},
		encode: func(a A, s avro.Schema) (any, error) {
			return get().encode(a, s)
		},
		decode: func(v any, s avro.Schema) (A, error) {
			return get().decode(v, s)
		},
	}
}
