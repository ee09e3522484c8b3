package anson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlice_Schema(t *testing.T) {
	want := `{"type":"array","items":"int"}`
	if got := Slice(Int()).String(); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestSlice_RoundTrip(t *testing.T) {
	c := Slice(Int())

	roundTrip(t, c, []int32{1, 2, 3})
	roundTrip(t, c, []int32{})
}

func TestSlice_NilEncodesAsEmpty(t *testing.T) {
	c := Slice(Int())

	v, err := c.Marshal(nil)
	require.NoError(t, err)
	require.Equal(t, []any{}, v)

	got, err := c.Unmarshal(v)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSlice_ElementError(t *testing.T) {
	c := Slice(Int8())

	_, err := c.Unmarshal([]any{int32(1), int32(300)})
	if !errors.Is(err, ErrUnexpectedByte) {
		t.Errorf("Unmarshal error = %v, want ErrUnexpectedByte", err)
	}
}

func TestSlice_ValueMismatch(t *testing.T) {
	_, err := Slice(Int()).Unmarshal("nope")
	if !errors.Is(err, ErrUnexpectedType) {
		t.Errorf("Unmarshal error = %v, want ErrUnexpectedType", err)
	}
}

func TestNonEmptySlice(t *testing.T) {
	c := NonEmptySlice(String())

	roundTrip(t, c, []string{"a", "b"})

	_, err := c.Unmarshal([]any{})
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("Unmarshal error = %v, want ErrEmptyCollection", err)
	}
}

func TestSet_RoundTrip(t *testing.T) {
	c := Set(String())
	in := map[string]struct{}{"a": {}, "b": {}, "c": {}}

	v, err := c.Marshal(in)
	require.NoError(t, err)
	require.Len(t, v, 3)

	got, err := c.Unmarshal(v)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestSet_DecodingDeduplicates(t *testing.T) {
	got, err := Set(String()).Unmarshal([]any{"a", "b", "a"})
	require.NoError(t, err)
	require.Equal(t, map[string]struct{}{"a": {}, "b": {}}, got)
}

func TestNonEmptySet(t *testing.T) {
	c := NonEmptySet(Int())

	t.Run("encodes in ascending order", func(t *testing.T) {
		v, err := c.Marshal(map[int32]struct{}{3: {}, 1: {}, 2: {}})
		require.NoError(t, err)
		require.Equal(t, []any{int32(1), int32(2), int32(3)}, v)
	})

	t.Run("rejects empty arrays", func(t *testing.T) {
		_, err := c.Unmarshal([]any{})
		if !errors.Is(err, ErrEmptyCollection) {
			t.Errorf("Unmarshal error = %v, want ErrEmptyCollection", err)
		}
	})
}

func TestMapOf_Schema(t *testing.T) {
	want := `{"type":"map","values":"long"}`
	if got := MapOf(Long()).String(); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestMapOf_RoundTrip(t *testing.T) {
	c := MapOf(Long())

	roundTrip(t, c, map[string]int64{"a": 1, "b": 2})
	roundTrip(t, c, map[string]int64{})
}

func TestMapOf_ValueMismatch(t *testing.T) {
	_, err := MapOf(Long()).Unmarshal([]any{})
	if !errors.Is(err, ErrUnexpectedType) {
		t.Errorf("Unmarshal error = %v, want ErrUnexpectedType", err)
	}
}
