package anson

import (
	"fmt"
	"slices"

	"github.com/hamba/avro/v2"

	"github.com/caltha/anson/generic"
)

// EnumOption configures an enum codec under construction.
type EnumOption func(*enumSettings)

type enumSettings struct {
	namespace  string
	doc        string
	aliases    []string
	def        any
	hasDefault bool
}

// EnumNamespace places the enum's name inside an Avro namespace.
func EnumNamespace(namespace string) EnumOption {
	return func(s *enumSettings) { s.namespace = namespace }
}

// EnumDoc attaches documentation to the enum schema.
func EnumDoc(doc string) EnumOption {
	return func(s *enumSettings) { s.doc = doc }
}

// EnumAliases attaches alternate names to the enum schema.
func EnumAliases(aliases ...string) EnumOption {
	return func(s *enumSettings) { s.aliases = aliases }
}

// EnumDefault declares the schema's default symbol via a value of the user
// type. The value must be assignable to the enum's Go type and must encode to
// one of the declared symbols; otherwise schema construction fails.
func EnumDefault(def any) EnumOption {
	return func(s *enumSettings) {
		s.def = def
		s.hasDefault = true
	}
}

// Enum maps a user type A onto an Avro ENUM with the given name and symbol
// set. The encode function renders a value as a symbol and the decode
// function parses a symbol back; a decode failure that is not already part of
// the error taxonomy is wrapped as an invalid-value error.
//
// Encoding rejects symbols outside the schema's symbol set with
// ErrSymbolNotInSchema, as does decoding of unknown incoming symbols.
func Enum[A any](name string, symbols []string,
	encode func(A) string, decode func(string) (A, error),
	opts ...EnumOption,
) Codec[A] {
	var settings enumSettings
	for _, opt := range opts {
		opt(&settings)
	}
	fullName := name
	if settings.namespace != "" {
		fullName = settings.namespace + "." + name
	}
	label := fullName

	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				var schemaOpts []avro.SchemaOption
				if settings.doc != "" {
					schemaOpts = append(schemaOpts, avro.WithDoc(settings.doc))
				}
				if len(settings.aliases) > 0 {
					schemaOpts = append(schemaOpts, avro.WithAliases(settings.aliases))
				}
				if settings.hasDefault {
					d, ok := settings.def.(A)
					if !ok {
						return nil, fmt.Errorf("enum %q: default has type %T, want %s",
							name, settings.def, typeLabel[A]())
					}
					schemaOpts = append(schemaOpts, avro.WithDefault(encode(d)))
				}
				return avro.NewEnumSchema(name, settings.namespace, symbols, schemaOpts...)
			})
		},
		func(a A, s avro.Schema) (any, error) {
			es, ok := s.(*avro.EnumSchema)
			if !ok {
				return nil, errSchemaType(OpEncode, label, s, avro.Enum)
			}
			if es.FullName() != fullName {
				return nil, errNameMismatch(OpEncode, label, es.FullName(), fullName)
			}
			symbol := encode(a)
			if !slices.Contains(es.Symbols(), symbol) {
				return nil, errSymbolNotInSchema(OpEncode, label, symbol, es.Symbols())
			}
			return generic.NewEnumSymbol(es, symbol), nil
		},
		func(v any, s avro.Schema) (A, error) {
			var zero A
			es, ok := s.(*avro.EnumSchema)
			if !ok {
				return zero, errSchemaType(OpDecode, label, s, avro.Enum)
			}
			if es.FullName() != fullName {
				return zero, errNameMismatch(OpDecode, label, es.FullName(), fullName)
			}
			sym, ok := v.(generic.EnumSymbol)
			if !ok {
				return zero, errValueType(OpDecode, label, v, "generic.EnumSymbol")
			}
			symbol := sym.Symbol()
			if !slices.Contains(es.Symbols(), symbol) {
				return zero, errSymbolNotInSchema(OpDecode, label, symbol, es.Symbols())
			}
			a, err := decode(symbol)
			if err != nil {
				return zero, wrapDecodeError(label, err)
			}
			return a, nil
		})
}
