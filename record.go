package anson

import (
	"fmt"
	"slices"

	"github.com/hamba/avro/v2"

	"github.com/caltha/anson/generic"
)

// RecordOption configures a record codec under construction.
type RecordOption func(*recordSettings)

type recordSettings struct {
	namespace string
	doc       string
	aliases   []string
	props     map[string]any
}

// Namespace places the record's name inside an Avro namespace.
func Namespace(namespace string) RecordOption {
	return func(s *recordSettings) { s.namespace = namespace }
}

// RecordDoc attaches documentation to the record schema.
func RecordDoc(doc string) RecordOption {
	return func(s *recordSettings) { s.doc = doc }
}

// RecordAliases attaches alternate names to the record schema.
func RecordAliases(aliases ...string) RecordOption {
	return func(s *recordSettings) { s.aliases = aliases }
}

// RecordProps attaches custom properties to the record schema.
func RecordProps(props map[string]any) RecordOption {
	return func(s *recordSettings) { s.props = props }
}

// FieldOption configures a single record field.
type FieldOption func(*fieldSettings)

type fieldSettings struct {
	doc        string
	def        any
	hasDefault bool
	order      avro.Order
	aliases    []string
	props      map[string]any
}

// FieldDoc attaches documentation to the field schema.
func FieldDoc(doc string) FieldOption {
	return func(s *fieldSettings) { s.doc = doc }
}

// FieldDefault declares a default for the field, used when decoding a record
// whose schema lacks the field. The value must be assignable to the field's
// Go type; a mismatch fails schema construction. The default is rendered into
// the field schema through the field's codec.
func FieldDefault(def any) FieldOption {
	return func(s *fieldSettings) {
		s.def = def
		s.hasDefault = true
	}
}

// FieldOrder sets the field's sort order attribute.
func FieldOrder(order avro.Order) FieldOption {
	return func(s *fieldSettings) { s.order = order }
}

// FieldAliases attaches alternate names to the field schema.
func FieldAliases(aliases ...string) FieldOption {
	return func(s *fieldSettings) { s.aliases = aliases }
}

// FieldProps attaches custom properties to the field schema.
func FieldProps(props map[string]any) FieldOption {
	return func(s *fieldSettings) { s.props = props }
}

// RecordBuilder accumulates the fields of a record codec. Create one with
// NewRecord, bind fields with Field, then call Codec. Field declaration order
// is schema field order.
//
// Builders are single-use and not safe for concurrent mutation; the codec
// produced by Codec is immutable like any other.
type RecordBuilder[A any] struct {
	name     string
	settings recordSettings
	fields   []boundField[A]
	err      error
}

// boundField is one field binding, erased to the record's user type: a schema
// field producer plus encode/decode hooks closing over the field codec and the
// get/set accessors.
type boundField[A any] struct {
	name        string
	schemaField func() (*avro.Field, error)
	encode      func(A, avro.Schema) (any, error)
	decode      func(any, avro.Schema, *A) error
	fallback    func(*A) bool
}

// NewRecord starts a record codec for user type A under the given schema name.
func NewRecord[A any](name string, opts ...RecordOption) *RecordBuilder[A] {
	b := &RecordBuilder[A]{name: name}
	for _, opt := range opts {
		opt(&b.settings)
	}
	if name == "" {
		b.err = fmt.Errorf("record name must not be empty")
	}
	return b
}

// Field binds one field of the record: its schema name, the codec for its
// value, and accessors projecting it out of and back into A. Binding problems
// (empty or duplicate names, a default of the wrong type) are held on the
// builder and surface when the codec builds its schema.
func Field[A, B any](b *RecordBuilder[A], name string, codec Codec[B],
	get func(A) B, set func(*A, B), opts ...FieldOption,
) {
	if b.err != nil {
		return
	}
	if name == "" {
		b.err = fmt.Errorf("record %q: field name must not be empty", b.name)
		return
	}
	for _, f := range b.fields {
		if f.name == name {
			b.err = fmt.Errorf("record %q: duplicate field %q", b.name, name)
			return
		}
	}

	var settings fieldSettings
	for _, opt := range opts {
		opt(&settings)
	}

	var def B
	hasDefault := false
	if settings.hasDefault {
		d, ok := settings.def.(B)
		if !ok {
			b.err = fmt.Errorf("record %q: default for field %q has type %T, want %s",
				b.name, name, settings.def, typeLabel[B]())
			return
		}
		def = d
		hasDefault = true
	}

	b.fields = append(b.fields, boundField[A]{
		name: name,
		schemaField: func() (*avro.Field, error) {
			cs, err := codec.Schema()
			if err != nil {
				return nil, err
			}
			var fieldOpts []avro.SchemaOption
			if settings.doc != "" {
				fieldOpts = append(fieldOpts, avro.WithDoc(settings.doc))
			}
			if len(settings.aliases) > 0 {
				fieldOpts = append(fieldOpts, avro.WithAliases(settings.aliases))
			}
			if settings.order != "" {
				fieldOpts = append(fieldOpts, avro.WithOrder(settings.order))
			}
			if len(settings.props) > 0 {
				fieldOpts = append(fieldOpts, avro.WithProps(settings.props))
			}
			if hasDefault {
				v, err := codec.encode(def, cs)
				if err != nil {
					return nil, fmt.Errorf("record %q: encoding default for field %q: %w", b.name, name, err)
				}
				fieldOpts = append(fieldOpts, avro.WithDefault(fieldDefault(v)))
			}
			return avro.NewField(name, cs, fieldOpts...)
		},
		encode: func(a A, fs avro.Schema) (any, error) {
			return codec.encode(get(a), fs)
		},
		decode: func(v any, fs avro.Schema, into *A) error {
			bv, err := codec.decode(v, fs)
			if err != nil {
				return err
			}
			set(into, bv)
			return nil
		},
		fallback: func(into *A) bool {
			if !hasDefault {
				return false
			}
			set(into, def)
			return true
		},
	})
}

// Codec finalizes the builder into a record codec. The schema is assembled
// lazily and memoized, so binding problems and field codecs whose schemas
// fail are reported when the schema is first requested, not at bind time.
func (b *RecordBuilder[A]) Codec() Codec[A] {
	fields := slices.Clone(b.fields)
	settings := b.settings
	name := b.name
	buildErr := b.err
	fullName := name
	if settings.namespace != "" {
		fullName = settings.namespace + "." + name
	}
	label := fullName

	return New(label,
		func() (avro.Schema, error) {
			return catchSchema(func() (avro.Schema, error) {
				if buildErr != nil {
					return nil, buildErr
				}
				avroFields := make([]*avro.Field, len(fields))
				for i, f := range fields {
					af, err := f.schemaField()
					if err != nil {
						return nil, err
					}
					avroFields[i] = af
				}
				var opts []avro.SchemaOption
				if settings.doc != "" {
					opts = append(opts, avro.WithDoc(settings.doc))
				}
				if len(settings.aliases) > 0 {
					opts = append(opts, avro.WithAliases(settings.aliases))
				}
				if len(settings.props) > 0 {
					opts = append(opts, avro.WithProps(settings.props))
				}
				return avro.NewRecordSchema(name, settings.namespace, avroFields, opts...)
			})
		},
		func(a A, s avro.Schema) (any, error) {
			rs, ok := s.(*avro.RecordSchema)
			if !ok {
				return nil, errSchemaType(OpEncode, label, s, avro.Record)
			}
			if rs.FullName() != fullName {
				return nil, errNameMismatch(OpEncode, label, rs.FullName(), fullName)
			}
			rec := generic.NewRecord(rs)
			for i := range fields {
				bf := &fields[i]
				pos := fieldPosition(rs, bf.name)
				if pos < 0 {
					return nil, errMissingRecordField(OpEncode, label, bf.name)
				}
				sf := rs.Fields()[pos]
				v, err := bf.encode(a, sf.Type())
				if err != nil {
					return nil, err
				}
				rec.Set(pos, v)
			}
			return rec, nil
		},
		func(v any, s avro.Schema) (A, error) {
			var out A
			if s.Type() != avro.Record {
				return out, errSchemaType(OpDecode, label, s, avro.Record)
			}
			rec, ok := v.(*generic.Record)
			if !ok {
				return out, errValueType(OpDecode, label, v, "*generic.Record")
			}
			writer := rec.Schema()
			if writer.FullName() != fullName {
				return out, errUnexpectedRecordName(label, writer.FullName(), fullName)
			}
			for i := range fields {
				bf := &fields[i]
				pos := fieldPosition(writer, bf.name)
				if pos < 0 {
					if !bf.fallback(&out) {
						return out, errMissingRecordField(OpDecode, label, bf.name)
					}
					continue
				}
				wf := writer.Fields()[pos]
				if err := bf.decode(rec.Get(pos), wf.Type(), &out); err != nil {
					return out, err
				}
			}
			return out, nil
		})
}

func fieldPosition(rs *avro.RecordSchema, name string) int {
	for i, f := range rs.Fields() {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// fieldDefault converts an encoded default into the shape the Avro runtime
// accepts on field schemas: nil stays nil, which the runtime records as an
// explicit null default (distinct from having no default), and everything
// else is converted to the native generic form.
func fieldDefault(v any) any {
	if v == nil {
		return nil
	}
	return nativeDefault(generic.Native(v))
}

func nativeDefault(v any) any {
	switch cv := v.(type) {
	case int32:
		return int(cv)
	case float32:
		return float64(cv)
	case []byte:
		return string(cv)
	case []any:
		out := make([]any, len(cv))
		for i, e := range cv {
			out[i] = nativeDefault(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(cv))
		for k, e := range cv {
			out[k] = nativeDefault(e)
		}
		return out
	default:
		return v
	}
}
