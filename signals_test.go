package anson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
)

func TestEmitSchemaBuilt_Success(_ *testing.T) {
	emitSchemaBuilt(context.Background(), "int", avro.NewPrimitiveSchema(avro.Int, nil), nil)
}

func TestEmitSchemaBuilt_Error(_ *testing.T) {
	emitSchemaBuilt(context.Background(), "decimal", nil, errors.New("test error"))
}

func TestEmitMarshalComplete_Success(_ *testing.T) {
	emitMarshalComplete(context.Background(), "int", 100*time.Microsecond, nil)
}

func TestEmitMarshalComplete_Error(_ *testing.T) {
	emitMarshalComplete(context.Background(), "int", 100*time.Microsecond, errors.New("test error"))
}

func TestEmitUnmarshalComplete_Success(_ *testing.T) {
	emitUnmarshalComplete(context.Background(), "int", 100*time.Microsecond, nil)
}

func TestEmitUnmarshalComplete_Error(_ *testing.T) {
	emitUnmarshalComplete(context.Background(), "int", 100*time.Microsecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalSchemaBuilt", SignalSchemaBuilt},
		{"SignalMarshalComplete", SignalMarshalComplete},
		{"SignalUnmarshalComplete", SignalUnmarshalComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyTypeLabel", KeyTypeLabel},
		{"KeySchemaType", KeySchemaType},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
