package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sevigo/adapter-bridge/internal/adapter"
	"github.com/sevigo/adapter-bridge/internal/core"
	"github.com/sevigo/adapter-bridge/internal/transport"
)

var (
	requestData string
	requestID   string
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Runs one synchronous request against the configured API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, log, spec, err := loadEnvironment()
		if err != nil {
			return err
		}

		var data map[string]any
		if err := json.Unmarshal([]byte(requestData), &data); err != nil {
			return fmt.Errorf("--data must be a JSON object: %w", err)
		}

		tr, err := transport.New(spec.APIRequest, spec.Retry, log)
		if err != nil {
			return fmt.Errorf("failed to create transport: %w", err)
		}
		a := adapter.NewAdapter(adapter.Schemas{Input: spec.RequiredKeys.In, Output: spec.RequiredKeys.Out}, tr, nil, log)

		jobRunID := requestID
		if jobRunID == "" {
			jobRunID = core.DefaultJobRunID
		}
		result := a.Handle(ctx, &core.JobRequest{JobRunID: jobRunID, Data: data})

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if result.Error {
			return fmt.Errorf("request finished with status %d", result.Status)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	requestCmd.Flags().StringVarP(&requestData, "data", "d", "{}", "request data as a JSON object")
	requestCmd.Flags().StringVar(&requestID, "id", "", "job run ID to report")
	rootCmd.AddCommand(requestCmd)
}
