package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/adapter-bridge/internal/validator"
)

var (
	payloadFile string
	direction   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks a JSON payload against the adapter's required keys",
	Long: `Reads a JSON object from --file and resolves it against the input (default) or
output schema of the adapter, printing the resolved parameters or the missing keys.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, spec, err := loadEnvironment()
		if err != nil {
			return err
		}
		schema, err := spec.Schema(direction)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(payloadFile)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("payload must be a JSON object: %w", err)
		}

		out := cmd.OutOrStdout()
		outcome := validator.Validate(payload, schema)
		titleColor.Fprintf(out, "Validating %s against %d required key(s) (%s)\n", payloadFile, len(schema), direction)

		if !outcome.Resolved() {
			errorColor.Fprintf(out, "✗ missing: %s\n", outcome.MissingMessage())
			return fmt.Errorf("%d required key(s) not found", len(outcome.MissingKeys))
		}

		successColor.Fprintln(out, "✓ all required keys resolved")
		for _, f := range schema {
			fmt.Fprintf(out, "  %s = %v\n", f.Key, outcome.Params[f.Key])
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	validateCmd.Flags().StringVarP(&payloadFile, "file", "f", "", "JSON payload to validate")
	validateCmd.Flags().StringVar(&direction, "direction", "in", "schema to check against: in or out")
	_ = validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}
