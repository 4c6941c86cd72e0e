package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldSpec maps a canonical key to the alias names that may carry it in a payload.
type FieldSpec struct {
	Key string
	Aka []string
}

// FieldSchema is an ordered set of required fields. Order is significant: it is
// the order in which keys are resolved and missing keys are reported.
type FieldSchema []FieldSpec

type fieldAliases struct {
	Aka []string `yaml:"aka"`
}

// UnmarshalYAML decodes a mapping of `key: {aka: [...]}` entries keeping document
// order. JSON documents decode the same way.
func (s *FieldSchema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("field schema must be a mapping, got %s", value.ShortTag())
	}
	out := make(FieldSchema, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("invalid field key at line %d: %w", value.Content[i].Line, err)
		}
		var aliases fieldAliases
		if err := value.Content[i+1].Decode(&aliases); err != nil {
			return fmt.Errorf("invalid aliases for %q: %w", key, err)
		}
		out = append(out, FieldSpec{Key: key, Aka: aliases.Aka})
	}
	*s = out
	return nil
}

// Validate checks that every key is named and has at least one alias.
func (s FieldSchema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("field schema contains an empty key")
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("field %q declared more than once", f.Key)
		}
		seen[f.Key] = struct{}{}
		if len(f.Aka) == 0 {
			return fmt.Errorf("field %q has no aliases", f.Key)
		}
	}
	return nil
}

// ValidationOutcome is the result of resolving a payload against a FieldSchema.
// Exactly one of Params or MissingKeys is meaningful: when MissingKeys is empty
// the outcome is resolved and Params holds every canonical key.
type ValidationOutcome struct {
	Params      map[string]any
	MissingKeys []string
}

// Resolved reports whether every required key was found.
func (o ValidationOutcome) Resolved() bool {
	return len(o.MissingKeys) == 0
}

// MissingMessage renders the missing keys for diagnostics.
func (o ValidationOutcome) MissingMessage() string {
	return strings.Join(o.MissingKeys, " ")
}
