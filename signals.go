package anson

import (
	"context"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalSchemaBuilt       = capitan.NewSignal("anson.schema.built", "Codec schema assembled")
	SignalMarshalComplete   = capitan.NewSignal("anson.marshal.complete", "Marshal operation finished")
	SignalUnmarshalComplete = capitan.NewSignal("anson.unmarshal.complete", "Unmarshal operation finished")
)

// Keys for typed event data.
var (
	KeyTypeLabel  = capitan.NewStringKey("type_label")
	KeySchemaType = capitan.NewStringKey("schema_type")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitSchemaBuilt emits an event the first time a codec's schema producer runs.
func emitSchemaBuilt(ctx context.Context, label string, schema avro.Schema, err error) {
	fields := []capitan.Field{
		KeyTypeLabel.Field(label),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSchemaBuilt, fields...)
		return
	}
	fields = append(fields, KeySchemaType.Field(string(schema.Type())))
	capitan.Emit(ctx, SignalSchemaBuilt, fields...)
}

// emitMarshalComplete emits an event when a Marshal call finishes.
func emitMarshalComplete(ctx context.Context, label string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeLabel.Field(label),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalMarshalComplete, fields...)
}

// emitUnmarshalComplete emits an event when an Unmarshal call finishes.
func emitUnmarshalComplete(ctx context.Context, label string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeLabel.Field(label),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnmarshalComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalUnmarshalComplete, fields...)
}
