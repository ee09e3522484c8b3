package anson

import (
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/require"
)

func TestInstant_Schema(t *testing.T) {
	want := `{"type":"long","logicalType":"timestamp-millis"}`
	if got := Instant().String(); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInstant_RoundTrip(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 12, 30, 45, 123_000_000, time.UTC)

	v, err := Instant().Marshal(ts)
	require.NoError(t, err)
	got, err := Instant().Unmarshal(v)
	require.NoError(t, err)
	require.True(t, got.Equal(ts))
}

func TestInstant_TruncatesToMillis(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 12, 30, 45, 123_456_789, time.UTC)

	v, err := Instant().Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, ts.UnixMilli(), v)

	got, err := Instant().Unmarshal(v)
	require.NoError(t, err)
	require.True(t, got.Equal(ts.Truncate(time.Millisecond)))
}

func TestInstant_DecodesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2024, time.March, 15, 14, 0, 0, 0, loc)

	got, err := Instant().Unmarshal(ts.UnixMilli())
	require.NoError(t, err)
	require.Equal(t, time.UTC, got.Location())
	require.True(t, got.Equal(ts))
}

func TestInstant_LogicalTypeRequired(t *testing.T) {
	bare := avro.NewPrimitiveSchema(avro.Long, nil)

	_, err := Instant().Encode(time.Now(), bare)
	if !errors.Is(err, ErrUnexpectedLogicalType) {
		t.Errorf("Encode error = %v, want ErrUnexpectedLogicalType", err)
	}

	wrong := avro.NewPrimitiveSchema(avro.Int, avro.NewPrimitiveLogicalSchema(avro.Date))
	_, err = Instant().Encode(time.Now(), wrong)
	if !errors.Is(err, ErrUnexpectedSchemaType) {
		t.Errorf("Encode error = %v, want ErrUnexpectedSchemaType", err)
	}
}

func TestLocalDate_Schema(t *testing.T) {
	want := `{"type":"int","logicalType":"date"}`
	if got := LocalDate().String(); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestLocalDate_DayCounts(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		days int32
	}{
		{"epoch", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
		{"next day", time.Date(1970, time.January, 2, 0, 0, 0, 0, time.UTC), 1},
		{"before epoch", time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC), -1},
		{"leap year day", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), 19782},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := LocalDate().Marshal(tt.date)
			require.NoError(t, err)
			require.Equal(t, tt.days, v)

			got, err := LocalDate().Unmarshal(tt.days)
			require.NoError(t, err)
			require.True(t, got.Equal(tt.date))
		})
	}
}

func TestLocalDate_DiscardsTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.March, 15, 9, 45, 0, 0, time.UTC)
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	a, err := LocalDate().Marshal(morning)
	require.NoError(t, err)
	b, err := LocalDate().Marshal(midnight)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
