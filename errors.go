package anson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hamba/avro/v2"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnexpectedSchemaType indicates a codec was handed a schema whose type
	// is outside its supported set.
	ErrUnexpectedSchemaType = errors.New("unexpected schema type")

	// ErrUnexpectedLogicalType indicates a schema's logical type annotation did
	// not match the one the codec requires.
	ErrUnexpectedLogicalType = errors.New("unexpected logical type")

	// ErrUnexpectedType indicates a runtime value had the wrong shape for the
	// schema it was encoded or decoded against.
	ErrUnexpectedType = errors.New("unexpected value type")

	// ErrNameMismatch indicates a named schema's full name did not match the
	// codec's type name.
	ErrNameMismatch = errors.New("name mismatch")

	// ErrUnexpectedRecordName indicates an incoming record carried a schema
	// whose full name did not match the codec's type name.
	ErrUnexpectedRecordName = errors.New("unexpected record name")

	// ErrMissingRecordField indicates a field declared by a record codec was
	// absent from the schema in play and no default was available.
	ErrMissingRecordField = errors.New("missing record field")

	// ErrSymbolNotInSchema indicates an enum symbol was not part of the
	// schema's symbol set.
	ErrSymbolNotInSchema = errors.New("symbol not in schema")

	// ErrMissingUnionSchema indicates a union schema had no member with the
	// required full name.
	ErrMissingUnionSchema = errors.New("missing union schema")

	// ErrMissingUnionAlternative indicates no declared alternative matched a
	// union member's full name.
	ErrMissingUnionAlternative = errors.New("missing union alternative")

	// ErrExhaustedAlternatives indicates no union alternative accepted a value.
	ErrExhaustedAlternatives = errors.New("exhausted alternatives")

	// ErrPrecisionExceeded indicates a decimal's digit count exceeded the
	// schema's declared precision.
	ErrPrecisionExceeded = errors.New("decimal precision exceeded")

	// ErrScaleMismatch indicates a decimal's scale differed from the schema's
	// declared scale.
	ErrScaleMismatch = errors.New("decimal scale mismatch")

	// ErrExceedsFixedSize indicates a byte payload was longer than the fixed
	// schema's size.
	ErrExceedsFixedSize = errors.New("exceeds fixed size")

	// ErrUnexpectedByte indicates an int value fell outside [-128, 127].
	ErrUnexpectedByte = errors.New("byte out of range")

	// ErrUnexpectedShort indicates an int value fell outside [-32768, 32767].
	ErrUnexpectedShort = errors.New("short out of range")

	// ErrUnexpectedChar indicates a string value was not exactly one character.
	ErrUnexpectedChar = errors.New("not a single character")

	// ErrEmptyCollection indicates a non-empty collection codec decoded an
	// empty array.
	ErrEmptyCollection = errors.New("empty collection")

	// ErrUnexpectedOptionSchema indicates an option codec was handed a union
	// that is not exactly null paired with one other type.
	ErrUnexpectedOptionSchema = errors.New("unexpected option schema")

	// ErrSchemaConstruction indicates the Avro runtime rejected a schema while
	// a codec was assembling it.
	ErrSchemaConstruction = errors.New("schema construction failed")

	// ErrInvalidValue indicates a value-level conversion failed, such as an
	// unparseable UUID string or a failing user-supplied mapping.
	ErrInvalidValue = errors.New("invalid value")
)

// Op identifies which half of a codec an error was raised in.
type Op string

const (
	// OpEncode marks errors raised while encoding a user value.
	OpEncode Op = "encoding"

	// OpDecode marks errors raised while decoding a runtime value.
	OpDecode Op = "decoding"
)

// Error is the structured error produced by every codec operation. It wraps
// one of the sentinel errors above with the context needed to render a
// deterministic, human-readable message.
//
// Only the fields relevant to the wrapped sentinel are populated.
type Error struct {
	Err error // Underlying sentinel error (ErrUnexpectedSchemaType, etc.)
	Op  Op    // Operation in flight when the error was raised

	TypeLabel    string   // Label of the codec's user type (e.g. "int8", "p.Foo")
	SchemaType   string   // Actual schema or logical type encountered
	Expected     []string // Schema, logical or runtime types the codec supports
	Name         string   // Actual full name or field name in play
	ExpectedName string   // Full name the codec required
	Symbol       string   // Enum symbol in play
	Symbols      []string // Symbols known to the schema
	Value        any      // Offending runtime value
	Given        int      // Observed count (precision, scale, length, int value)
	Limit        int      // Permitted count
	Cause        error    // Original error from the runtime or a user function
}

func (e *Error) Error() string {
	switch e.Err {
	case ErrUnexpectedSchemaType:
		return fmt.Sprintf("%s %s: unexpected schema type %q, expected %s",
			e.Op, e.TypeLabel, e.SchemaType, quoteList(e.Expected))
	case ErrUnexpectedLogicalType:
		if e.SchemaType == "" {
			return fmt.Sprintf("%s %s: schema has no logical type, expected %s",
				e.Op, e.TypeLabel, quoteList(e.Expected))
		}
		return fmt.Sprintf("%s %s: unexpected logical type %q, expected %s",
			e.Op, e.TypeLabel, e.SchemaType, quoteList(e.Expected))
	case ErrUnexpectedType:
		return fmt.Sprintf("%s %s: unexpected value type %T, expected %s",
			e.Op, e.TypeLabel, e.Value, quoteList(e.Expected))
	case ErrNameMismatch:
		return fmt.Sprintf("%s %s: schema name %q does not match expected name %q",
			e.Op, e.TypeLabel, e.Name, e.ExpectedName)
	case ErrUnexpectedRecordName:
		return fmt.Sprintf("%s %s: record name %q does not match expected name %q",
			e.Op, e.TypeLabel, e.Name, e.ExpectedName)
	case ErrMissingRecordField:
		return fmt.Sprintf("%s %s: missing record field %q", e.Op, e.TypeLabel, e.Name)
	case ErrSymbolNotInSchema:
		return fmt.Sprintf("%s %s: symbol %q is not one of [%s]",
			e.Op, e.TypeLabel, e.Symbol, strings.Join(e.Symbols, ", "))
	case ErrMissingUnionSchema:
		return fmt.Sprintf("%s %s: union schema has no member named %q",
			e.Op, e.TypeLabel, e.Name)
	case ErrMissingUnionAlternative:
		return fmt.Sprintf("%s %s: no alternative with schema name %q",
			e.Op, e.TypeLabel, e.Name)
	case ErrExhaustedAlternatives:
		return fmt.Sprintf("%s %s: exhausted alternatives for value of type %T",
			e.Op, e.TypeLabel, e.Value)
	case ErrPrecisionExceeded:
		return fmt.Sprintf("%s decimal: precision %d exceeds schema precision %d",
			e.Op, e.Given, e.Limit)
	case ErrScaleMismatch:
		return fmt.Sprintf("%s decimal: scale %d does not match schema scale %d",
			e.Op, e.Given, e.Limit)
	case ErrExceedsFixedSize:
		return fmt.Sprintf("%s bytes: length %d exceeds fixed size %d",
			e.Op, e.Given, e.Limit)
	case ErrUnexpectedByte:
		return fmt.Sprintf("%s int8: value %d is out of range [-128, 127]", e.Op, e.Given)
	case ErrUnexpectedShort:
		return fmt.Sprintf("%s int16: value %d is out of range [-32768, 32767]", e.Op, e.Given)
	case ErrUnexpectedChar:
		return fmt.Sprintf("%s rune: expected a string of length 1, got length %d", e.Op, e.Given)
	case ErrEmptyCollection:
		return fmt.Sprintf("%s %s: empty collection", e.Op, e.TypeLabel)
	case ErrUnexpectedOptionSchema:
		return fmt.Sprintf("%s option: expected a union of null and one other type, got %s",
			e.Op, e.SchemaType)
	case ErrSchemaConstruction:
		return fmt.Sprintf("building schema: %v", e.Cause)
	case ErrInvalidValue:
		return fmt.Sprintf("%s %s: %v", e.Op, e.TypeLabel, e.Cause)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = fmt.Sprintf("%q", it)
	}
	return strings.Join(quoted, " or ")
}

func typeNames(types []avro.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// errSchemaType reports a schema whose type is outside the codec's supported set.
func errSchemaType(op Op, label string, actual avro.Schema, expected ...avro.Type) *Error {
	return &Error{
		Err:        ErrUnexpectedSchemaType,
		Op:         op,
		TypeLabel:  label,
		SchemaType: string(actual.Type()),
		Expected:   typeNames(expected),
	}
}

// errLogicalType reports a schema whose logical type annotation is missing or
// does not match. An empty actual means the schema carried none.
func errLogicalType(op Op, label string, actual, expected avro.LogicalType) *Error {
	return &Error{
		Err:        ErrUnexpectedLogicalType,
		Op:         op,
		TypeLabel:  label,
		SchemaType: string(actual),
		Expected:   []string{string(expected)},
	}
}

// errValueType reports a runtime value with the wrong shape.
func errValueType(op Op, label string, value any, expected string) *Error {
	return &Error{
		Err:       ErrUnexpectedType,
		Op:        op,
		TypeLabel: label,
		Value:     value,
		Expected:  []string{expected},
	}
}

func errNameMismatch(op Op, label, schemaName, expectedName string) *Error {
	return &Error{
		Err:          ErrNameMismatch,
		Op:           op,
		TypeLabel:    label,
		Name:         schemaName,
		ExpectedName: expectedName,
	}
}

func errUnexpectedRecordName(label, actual, expected string) *Error {
	return &Error{
		Err:          ErrUnexpectedRecordName,
		Op:           OpDecode,
		TypeLabel:    label,
		Name:         actual,
		ExpectedName: expected,
	}
}

func errMissingRecordField(op Op, label, field string) *Error {
	return &Error{Err: ErrMissingRecordField, Op: op, TypeLabel: label, Name: field}
}

func errSymbolNotInSchema(op Op, label, symbol string, symbols []string) *Error {
	return &Error{
		Err:       ErrSymbolNotInSchema,
		Op:        op,
		TypeLabel: label,
		Symbol:    symbol,
		Symbols:   symbols,
	}
}

func errMissingUnionSchema(op Op, label, name string) *Error {
	return &Error{Err: ErrMissingUnionSchema, Op: op, TypeLabel: label, Name: name}
}

func errMissingUnionAlternative(label, name string) *Error {
	return &Error{Err: ErrMissingUnionAlternative, Op: OpDecode, TypeLabel: label, Name: name}
}

func errExhaustedAlternatives(op Op, label string, value any) *Error {
	return &Error{Err: ErrExhaustedAlternatives, Op: op, TypeLabel: label, Value: value}
}

func errPrecisionExceeded(op Op, given, limit int) *Error {
	return &Error{Err: ErrPrecisionExceeded, Op: op, Given: given, Limit: limit}
}

func errScaleMismatch(given, required int) *Error {
	return &Error{Err: ErrScaleMismatch, Op: OpEncode, Given: given, Limit: required}
}

func errExceedsFixedSize(op Op, length, size int) *Error {
	return &Error{Err: ErrExceedsFixedSize, Op: op, Given: length, Limit: size}
}

func errUnexpectedByte(value int) *Error {
	return &Error{Err: ErrUnexpectedByte, Op: OpDecode, Given: value}
}

func errUnexpectedShort(value int) *Error {
	return &Error{Err: ErrUnexpectedShort, Op: OpDecode, Given: value}
}

func errUnexpectedChar(length int) *Error {
	return &Error{Err: ErrUnexpectedChar, Op: OpDecode, Given: length}
}

func errEmptyCollection(label string) *Error {
	return &Error{Err: ErrEmptyCollection, Op: OpDecode, TypeLabel: label}
}

func errUnexpectedOptionSchema(op Op, schema avro.Schema) *Error {
	return &Error{Err: ErrUnexpectedOptionSchema, Op: op, SchemaType: schema.String()}
}

func errSchemaConstruction(cause error) *Error {
	return &Error{Err: ErrSchemaConstruction, Cause: cause}
}

func errInvalidValue(op Op, label string, cause error) *Error {
	return &Error{Err: ErrInvalidValue, Op: op, TypeLabel: label, Cause: cause}
}

// catchSchema runs a schema producer, converting panics raised by the Avro
// runtime and plain construction errors into *Error values. It is used only
// around schema assembly, never on encode or decode paths.
func catchSchema(fn func() (avro.Schema, error)) (s avro.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = errSchemaConstruction(fmt.Errorf("%v", r))
		}
	}()
	s, err = fn()
	if err != nil {
		var ae *Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, errSchemaConstruction(err)
	}
	return s, nil
}
