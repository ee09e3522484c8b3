package anson

import (
	"time"

	"github.com/hamba/avro/v2"
)

// epoch is the Avro date origin, 1970-01-01 in UTC.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Instant maps time.Time onto Avro LONG with the timestamp-millis logical
// type. Encoding truncates to millisecond precision; decoded values are in
// UTC. Round trips hold for millisecond-precision instants.
func Instant() Codec[time.Time] {
	const label = "instant"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.Long, avro.NewPrimitiveLogicalSchema(avro.TimestampMillis)), nil
		},
		func(a time.Time, s avro.Schema) (any, error) {
			if err := checkLogical(OpEncode, label, s, avro.Long, avro.TimestampMillis); err != nil {
				return nil, err
			}
			return a.UnixMilli(), nil
		},
		func(v any, s avro.Schema) (time.Time, error) {
			if err := checkLogical(OpDecode, label, s, avro.Long, avro.TimestampMillis); err != nil {
				return time.Time{}, err
			}
			ms, ok := v.(int64)
			if !ok {
				return time.Time{}, errValueType(OpDecode, label, v, "int64")
			}
			return time.UnixMilli(ms).UTC(), nil
		})
}

// LocalDate maps time.Time onto Avro INT with the date logical type, counting
// whole days since the epoch. The time-of-day component is discarded on
// encode; decoded values are midnight UTC.
func LocalDate() Codec[time.Time] {
	const label = "local-date"
	return New(label,
		func() (avro.Schema, error) {
			return avro.NewPrimitiveSchema(avro.Int, avro.NewPrimitiveLogicalSchema(avro.Date)), nil
		},
		func(a time.Time, s avro.Schema) (any, error) {
			if err := checkLogical(OpEncode, label, s, avro.Int, avro.Date); err != nil {
				return nil, err
			}
			y, m, d := a.Date()
			midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			return int32(midnight.Sub(epoch) / (24 * time.Hour)), nil
		},
		func(v any, s avro.Schema) (time.Time, error) {
			if err := checkLogical(OpDecode, label, s, avro.Int, avro.Date); err != nil {
				return time.Time{}, err
			}
			days, ok := v.(int32)
			if !ok {
				return time.Time{}, errValueType(OpDecode, label, v, "int32")
			}
			return epoch.AddDate(0, 0, int(days)), nil
		})
}
