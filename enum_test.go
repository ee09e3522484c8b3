package anson

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/require"

	"github.com/caltha/anson/generic"
)

type suit int

const (
	hearts suit = iota
	spades
	diamonds
	clubs
)

var suitNames = map[suit]string{
	hearts:   "HEARTS",
	spades:   "SPADES",
	diamonds: "DIAMONDS",
	clubs:    "CLUBS",
}

func suitCodec(opts ...EnumOption) Codec[suit] {
	return Enum("Suit",
		[]string{"HEARTS", "SPADES", "DIAMONDS", "CLUBS"},
		func(s suit) string { return suitNames[s] },
		func(symbol string) (suit, error) {
			for s, n := range suitNames {
				if n == symbol {
					return s, nil
				}
			}
			return 0, fmt.Errorf("unknown suit %q", symbol)
		},
		append([]EnumOption{EnumNamespace("com.example")}, opts...)...)
}

func TestEnum_Schema(t *testing.T) {
	want := avro.MustParse(`{
		"type": "enum",
		"name": "Suit",
		"namespace": "com.example",
		"symbols": ["HEARTS", "SPADES", "DIAMONDS", "CLUBS"]
	}`)

	got, err := suitCodec().Schema()
	require.NoError(t, err)

	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "com.example.Suit", got.(*avro.EnumSchema).FullName())
}

func TestEnum_RoundTrip(t *testing.T) {
	c := suitCodec()

	for s, name := range suitNames {
		t.Run(name, func(t *testing.T) {
			v, err := c.Marshal(s)
			require.NoError(t, err)

			sym, ok := v.(generic.EnumSymbol)
			require.True(t, ok)
			require.Equal(t, name, sym.Symbol())

			got, err := c.Unmarshal(v)
			require.NoError(t, err)
			require.Equal(t, s, got)
		})
	}
}

func TestEnum_EncodeUnknownSymbol(t *testing.T) {
	_, err := suitCodec().Marshal(suit(99))
	if !errors.Is(err, ErrSymbolNotInSchema) {
		t.Errorf("Marshal error = %v, want ErrSymbolNotInSchema", err)
	}
}

func TestEnum_DecodeUnknownSymbol(t *testing.T) {
	es, err := suitCodec().Schema()
	require.NoError(t, err)

	_, err = suitCodec().Unmarshal(generic.NewEnumSymbol(es.(*avro.EnumSchema), "JOKER"))
	if !errors.Is(err, ErrSymbolNotInSchema) {
		t.Errorf("Unmarshal error = %v, want ErrSymbolNotInSchema", err)
	}
}

func TestEnum_NameMismatch(t *testing.T) {
	other := avro.MustParse(`{
		"type": "enum",
		"name": "Rank",
		"namespace": "com.example",
		"symbols": ["HEARTS", "SPADES", "DIAMONDS", "CLUBS"]
	}`)

	_, err := suitCodec().Encode(hearts, other)
	if !errors.Is(err, ErrNameMismatch) {
		t.Errorf("Encode error = %v, want ErrNameMismatch", err)
	}
}

func TestEnum_Default(t *testing.T) {
	s, err := suitCodec(EnumDefault(hearts)).Schema()
	require.NoError(t, err)

	// The built schema carries the default symbol, and its rendering parses
	// back under the same full name.
	require.Equal(t, "HEARTS", s.(*avro.EnumSchema).Default())
	reparsed := avro.MustParse(s.String()).(*avro.EnumSchema)
	require.Equal(t, "com.example.Suit", reparsed.FullName())
}

func TestEnum_DefaultWrongType(t *testing.T) {
	_, err := suitCodec(EnumDefault("HEARTS")).Schema()
	if !errors.Is(err, ErrSchemaConstruction) {
		t.Errorf("Schema() error = %v, want ErrSchemaConstruction", err)
	}
}

func TestEnum_DecodeFailureWrapped(t *testing.T) {
	c := Enum("Letter", []string{"A", "B"},
		func(s string) string { return s },
		func(string) (string, error) { return "", errors.New("always fails") })

	es, err := c.Schema()
	require.NoError(t, err)

	_, err = c.Unmarshal(generic.NewEnumSymbol(es.(*avro.EnumSchema), "A"))
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Unmarshal error = %v, want ErrInvalidValue", err)
	}
}

func TestEnum_ValueMismatch(t *testing.T) {
	_, err := suitCodec().Unmarshal("HEARTS")
	if !errors.Is(err, ErrUnexpectedType) {
		t.Errorf("Unmarshal error = %v, want ErrUnexpectedType", err)
	}
}

func TestEnum_SchemaMismatch(t *testing.T) {
	intSchema := avro.NewPrimitiveSchema(avro.Int, nil)

	_, err := suitCodec().Encode(hearts, intSchema)
	if !errors.Is(err, ErrUnexpectedSchemaType) {
		t.Errorf("Encode error = %v, want ErrUnexpectedSchemaType", err)
	}
}
