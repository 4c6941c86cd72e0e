package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/adapter-bridge/internal/config"
	"github.com/sevigo/adapter-bridge/internal/logger"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var adapterConfigPath string

var rootCmd = &cobra.Command{
	Use:   "bridge-cli",
	Short: "bridge-cli is the command-line interface for the adapter bridge.",
	Long:  `A CLI for checking payloads against the adapter's required keys, running one-off requests and inspecting recorded job runs.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&adapterConfigPath, "adapter-config", "c", "", "path to the adapter spec file")

	if err := viper.BindPFlag("ADAPTER_CONFIG_PATH", rootCmd.PersistentFlags().Lookup("adapter-config")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads ENV variables, prefixed with BRIDGE_, on top of the defaults.
func initConfig() {
	viper.SetEnvPrefix("BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())
}

// loadEnvironment returns the process config, a logger writing to stderr and
// the adapter spec.
func loadEnvironment() (*config.Config, *slog.Logger, *config.AdapterSpec, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.NewLogger(cfg.Logging, os.Stderr)

	spec, err := config.LoadAdapterSpec(cfg.AdapterConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, spec, nil
}
