package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldSchema_UnmarshalYAMLKeepsOrder(t *testing.T) {
	doc := `
zeta: {aka: [z, last]}
alpha: {aka: [a]}
mid:
  aka: [m, middle]
`
	var schema FieldSchema
	require.NoError(t, yaml.Unmarshal([]byte(doc), &schema))

	assert.Equal(t, FieldSchema{
		{Key: "zeta", Aka: []string{"z", "last"}},
		{Key: "alpha", Aka: []string{"a"}},
		{Key: "mid", Aka: []string{"m", "middle"}},
	}, schema)
}

func TestFieldSchema_UnmarshalJSONDocument(t *testing.T) {
	doc := `{"price": {"aka": ["p", "price"]}, "base": {"aka": ["from"]}}`

	var schema FieldSchema
	require.NoError(t, yaml.Unmarshal([]byte(doc), &schema))

	require.Len(t, schema, 2)
	assert.Equal(t, "price", schema[0].Key)
	assert.Equal(t, "base", schema[1].Key)
}

func TestFieldSchema_UnmarshalRejectsSequence(t *testing.T) {
	var schema FieldSchema
	err := yaml.Unmarshal([]byte(`[a, b]`), &schema)
	assert.Error(t, err)
}

func TestFieldSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  FieldSchema
		wantErr bool
	}{
		{name: "valid", schema: FieldSchema{{Key: "a", Aka: []string{"a"}}}},
		{name: "empty schema", schema: FieldSchema{}},
		{name: "empty key", schema: FieldSchema{{Key: " ", Aka: []string{"a"}}}, wantErr: true},
		{name: "no aliases", schema: FieldSchema{{Key: "a"}}, wantErr: true},
		{name: "duplicate key", schema: FieldSchema{{Key: "a", Aka: []string{"a"}}, {Key: "a", Aka: []string{"b"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseJobRunID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: ``, want: "1"},
		{raw: `null`, want: "1"},
		{raw: `""`, want: "1"},
		{raw: `"abc-123"`, want: "abc-123"},
		{raw: `42`, want: "42"},
		{raw: `{"nested":true}`, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJobRunID([]byte(tt.raw)))
		})
	}
}

func TestAdapterResult_Fields(t *testing.T) {
	r := &AdapterResult{JobRunID: "9", Status: 200, Data: map[string]any{"USD": 1.5}}

	fields := r.Fields()

	assert.Equal(t, "9", fields["jobRunID"])
	assert.Equal(t, 200, fields["status"])
	assert.Equal(t, false, fields["error"])
	assert.Equal(t, map[string]any{"USD": 1.5}, fields["data"])
	assert.NotContains(t, fields, "message")
}
