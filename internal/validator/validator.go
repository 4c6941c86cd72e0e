// Package validator resolves payload fields against a required-field schema.
package validator

import (
	"fmt"
	"strings"

	"github.com/sevigo/adapter-bridge/internal/core"
)

// Validate resolves every canonical key in required against the keys present in
// provided. The first alias in schema order that is present wins. When any key
// is missing the returned Params is empty and MissingKeys lists every missing
// key, rendered with its aliases, in schema order.
func Validate(provided map[string]any, required core.FieldSchema) core.ValidationOutcome {
	params := make(map[string]any, len(required))
	var missing []string

	for _, field := range required {
		alias, ok := firstPresent(field.Aka, provided)
		if !ok {
			missing = append(missing, renderMissing(field))
			continue
		}
		if len(missing) == 0 {
			params[field.Key] = provided[alias]
		}
	}

	if len(missing) > 0 {
		return core.ValidationOutcome{Params: map[string]any{}, MissingKeys: missing}
	}
	return core.ValidationOutcome{Params: params}
}

func firstPresent(aliases []string, provided map[string]any) (string, bool) {
	for _, alias := range aliases {
		if _, ok := provided[alias]; ok {
			return alias, true
		}
	}
	return "", false
}

func renderMissing(field core.FieldSpec) string {
	return fmt.Sprintf("%s(%s)", field.Key, strings.Join(field.Aka, ","))
}
