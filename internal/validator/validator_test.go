package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/adapter-bridge/internal/core"
)

func TestValidate(t *testing.T) {
	schema := core.FieldSchema{
		{Key: "base", Aka: []string{"base", "from", "coin"}},
		{Key: "quote", Aka: []string{"quote", "to", "market"}},
	}

	tests := []struct {
		name        string
		provided    map[string]any
		schema      core.FieldSchema
		wantParams  map[string]any
		wantMissing []string
	}{
		{
			name:       "all keys resolved through aliases",
			provided:   map[string]any{"from": "ETH", "market": "USD", "extra": true},
			schema:     schema,
			wantParams: map[string]any{"base": "ETH", "quote": "USD"},
		},
		{
			name:        "one key missing discards resolved params",
			provided:    map[string]any{"coin": "ETH"},
			schema:      schema,
			wantParams:  map[string]any{},
			wantMissing: []string{"quote(quote,to,market)"},
		},
		{
			name:        "all keys missing reported in schema order",
			provided:    map[string]any{},
			schema:      schema,
			wantParams:  map[string]any{},
			wantMissing: []string{"base(base,from,coin)", "quote(quote,to,market)"},
		},
		{
			name:        "missing key before a resolved key",
			provided:    map[string]any{"to": "EUR"},
			schema:      schema,
			wantParams:  map[string]any{},
			wantMissing: []string{"base(base,from,coin)"},
		},
		{
			name:       "empty schema always resolves",
			provided:   map[string]any{"anything": 1},
			schema:     core.FieldSchema{},
			wantParams: map[string]any{},
		},
		{
			name:       "nil payload with empty schema",
			provided:   nil,
			schema:     nil,
			wantParams: map[string]any{},
		},
		{
			name:       "nil value still counts as present",
			provided:   map[string]any{"base": nil, "quote": "USD"},
			schema:     schema,
			wantParams: map[string]any{"base": nil, "quote": "USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.provided, tt.schema)
			assert.Equal(t, tt.wantParams, got.Params)
			assert.Equal(t, tt.wantMissing, got.MissingKeys)
			assert.Equal(t, len(tt.wantMissing) == 0, got.Resolved())
		})
	}
}

func TestValidate_FirstListedAliasWins(t *testing.T) {
	schema := core.FieldSchema{{Key: "x", Aka: []string{"a", "b"}}}

	got := Validate(map[string]any{"b": 1, "a": 2}, schema)

	require.True(t, got.Resolved())
	assert.Equal(t, 2, got.Params["x"])
}

func TestValidate_MissingMessageIncludesAliases(t *testing.T) {
	schema := core.FieldSchema{{Key: "price", Aka: []string{"p", "price"}}}

	got := Validate(map[string]any{}, schema)

	require.False(t, got.Resolved())
	assert.Equal(t, "price(p,price)", got.MissingMessage())
}

func TestValidate_IsIdempotentAndDoesNotMutateInput(t *testing.T) {
	schema := core.FieldSchema{{Key: "x", Aka: []string{"a"}}, {Key: "y", Aka: []string{"b"}}}
	provided := map[string]any{"a": "one"}

	first := Validate(provided, schema)
	second := Validate(provided, schema)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"a": "one"}, provided)
	assert.Equal(t, core.FieldSchema{{Key: "x", Aka: []string{"a"}}, {Key: "y", Aka: []string{"b"}}}, schema)
}
