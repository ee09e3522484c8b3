// Package anson provides typed, composable Avro codecs.
//
// A Codec[A] ties a Go type to an Avro schema together with an encoder into
// a generic runtime value representation and a decoder back. Codecs for
// compound types are assembled from codecs for their parts, so the schema a
// value is written with is always derived from the same description that
// encodes and decodes it.
//
// # Built-in Codecs
//
// The primitive catalog covers Avro's scalar types (Boolean, Int, Long,
// Float, Double, String, Bytes, Null) plus narrowed integers (Int8, Int16),
// single characters (Rune), logical types (Instant, LocalDate, UUID,
// Decimal) and collections (Slice, NonEmptySlice, Set, NonEmptySet, MapOf,
// Option).
//
// # Records
//
// Record codecs are assembled field by field against a plain Go struct:
//
//	type User struct {
//	    Name string
//	    Age  int32
//	}
//
//	b := anson.NewRecord[User]("User", anson.Namespace("com.example"))
//	anson.Field(b, "name", anson.String(),
//	    func(u User) string { return u.Name },
//	    func(u *User, v string) { u.Name = v })
//	anson.Field(b, "age", anson.Int(),
//	    func(u User) int32 { return u.Age },
//	    func(u *User, v int32) { u.Age = v },
//	    anson.FieldDefault(int32(0)))
//	user := b.Codec()
//
// Field declaration order is schema field order. Decoding resolves fields by
// name against the incoming record's own schema, falling back to declared
// defaults for fields the writer did not know.
//
// # Unions and Enums
//
// Sum types map onto Avro unions through prisms, one alternative per case:
//
//	shape := anson.Union(
//	    anson.NewAlt(circle, anson.Prism[Shape, Circle]{...}),
//	    anson.NewAlt(square, anson.Prism[Shape, Square]{...}),
//	)
//
// Enum maps a user type onto a named symbol set through a pair of rendering
// functions.
//
// # Deriving Codecs
//
// Imap and ImapError transport an existing codec onto another type without
// changing the schema, for wrapper types and validated parses.
//
// # Errors
//
// Every failure is, or wraps, an *Error wrapping one of the package's sentinel errors
// (ErrUnexpectedSchemaType, ErrUnexpectedType, ErrNameMismatch, ...), so
// callers branch with errors.Is while messages stay deterministic.
//
// # Observability
//
// Schema construction and Marshal/Unmarshal completion emit capitan signals
// (SignalSchemaBuilt, SignalMarshalComplete, SignalUnmarshalComplete) carrying
// the codec's type label and error, if any. The completion signals also carry
// the duration; the schema signal carries the schema type on success.
package anson
