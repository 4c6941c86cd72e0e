package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sevigo/adapter-bridge/internal/db"
	"github.com/sevigo/adapter-bridge/internal/storage"
)

var (
	runsLimit  int
	outputJSON bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Lists the most recent job runs recorded in the ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()

		cfg, log, _, err := loadEnvironment()
		if err != nil {
			return err
		}
		if !cfg.Database.Enabled() {
			return storage.ErrLedgerDisabled
		}

		conn, cleanup, err := db.NewDatabase(&cfg.Database, log)
		if err != nil {
			return err
		}
		defer cleanup()

		runs, err := storage.NewStore(conn.DB).RecentRuns(ctx, runsLimit)
		if err != nil {
			return fmt.Errorf("failed to retrieve job runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if outputJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(runs)
		}

		if len(runs) == 0 {
			dimColor.Fprintln(out, "No job runs recorded yet.")
			return nil
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.AppendHeader(table.Row{"Job Run", "Mode", "Status", "Error", "Callback", "Message", "Recorded"})
		for _, r := range runs {
			tw.AppendRow(table.Row{
				r.JobRunID,
				r.Mode,
				r.Status,
				r.Error,
				r.CallbackDelivered,
				r.Message,
				r.CreatedAt.Local().Format(time.RFC822),
			})
		}
		tw.Render()
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list")
	runsCmd.Flags().BoolVar(&outputJSON, "json", false, "Output runs as JSON")
	rootCmd.AddCommand(runsCmd)
}
