package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/adapter-bridge/internal/core"
	"github.com/sevigo/adapter-bridge/internal/transport"
)

var (
	ErrAdapterSpecNotFound = errors.New("adapter spec file not found")
	ErrAdapterSpecParsing  = errors.New("adapter spec parsing failed")
)

// Tokens holds the bearer tokens shared with the node operator.
type Tokens struct {
	// Incoming lists the tokens accepted on the request endpoints.
	Incoming []string `yaml:"incoming"`
	// Outgoing is sent with callbacks back to the node.
	Outgoing string `yaml:"outgoing"`
}

// RequiredKeys declares the schemas checked before and after the upstream call.
type RequiredKeys struct {
	In  core.FieldSchema `yaml:"in"`
	Out core.FieldSchema `yaml:"out"`
}

// AdapterSpec is the declarative description of one adapter.
type AdapterSpec struct {
	Tokens       Tokens                `yaml:"tokens"`
	APIRequest   transport.Template    `yaml:"apiRequest"`
	RequiredKeys RequiredKeys          `yaml:"requiredKeys"`
	Retry        transport.RetryPolicy `yaml:"retry"`
}

// LoadAdapterSpec reads and validates the adapter spec at path. YAML and JSON
// documents are both accepted.
func LoadAdapterSpec(path string) (*AdapterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAdapterSpecNotFound, path)
		}
		return nil, fmt.Errorf("failed to read adapter spec %s: %w", path, err)
	}
	return ParseAdapterSpec(data)
}

// ParseAdapterSpec decodes and validates an adapter spec document.
func ParseAdapterSpec(data []byte) (*AdapterSpec, error) {
	spec := &AdapterSpec{Retry: transport.DefaultRetryPolicy()}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdapterSpecParsing, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks every section and fills defaults where they apply.
func (s *AdapterSpec) Validate() error {
	if err := s.APIRequest.Validate(); err != nil {
		return fmt.Errorf("invalid apiRequest: %w", err)
	}
	if err := s.RequiredKeys.In.Validate(); err != nil {
		return fmt.Errorf("invalid requiredKeys.in: %w", err)
	}
	if err := s.RequiredKeys.Out.Validate(); err != nil {
		return fmt.Errorf("invalid requiredKeys.out: %w", err)
	}
	if err := s.Retry.Validate(); err != nil {
		return fmt.Errorf("invalid retry policy: %w", err)
	}
	for i, tok := range s.Tokens.Incoming {
		if tok == "" {
			return fmt.Errorf("incoming token %d is empty", i)
		}
	}
	return nil
}

// Schema returns the required keys for the given direction ("in" or "out").
func (s *AdapterSpec) Schema(direction string) (core.FieldSchema, error) {
	switch direction {
	case "in", "":
		return s.RequiredKeys.In, nil
	case "out":
		return s.RequiredKeys.Out, nil
	default:
		return nil, fmt.Errorf("unknown direction %q, expected in or out", direction)
	}
}
