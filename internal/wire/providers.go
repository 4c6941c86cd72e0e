package wire

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/sevigo/adapter-bridge/internal/adapter"
	"github.com/sevigo/adapter-bridge/internal/callback"
	"github.com/sevigo/adapter-bridge/internal/config"
	"github.com/sevigo/adapter-bridge/internal/core"
	"github.com/sevigo/adapter-bridge/internal/db"
	"github.com/sevigo/adapter-bridge/internal/jobs"
	"github.com/sevigo/adapter-bridge/internal/logger"
	"github.com/sevigo/adapter-bridge/internal/server"
	"github.com/sevigo/adapter-bridge/internal/storage"
	"github.com/sevigo/adapter-bridge/internal/transport"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

func provideAdapterSpec(cfg *config.Config) (*config.AdapterSpec, error) {
	spec, err := config.LoadAdapterSpec(cfg.AdapterConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load adapter spec: %w", err)
	}
	return spec, nil
}

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideTransport(spec *config.AdapterSpec, clock clockwork.Clock, logger *slog.Logger) (core.Transport, error) {
	return transport.New(spec.APIRequest, spec.Retry, logger, transport.WithClock(clock))
}

func provideCallbackSender(spec *config.AdapterSpec, logger *slog.Logger) core.CallbackSender {
	return callback.NewSender(nil, spec.Tokens.Outgoing, logger)
}

// provideStore connects the run ledger, or returns a store that discards runs
// when no database is configured.
func provideStore(cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	if !cfg.Database.Enabled() {
		logger.Info("job run ledger disabled")
		return storage.NewNopStore(), func() {}, nil
	}
	conn, cleanup, err := db.NewDatabase(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewStore(conn.DB), cleanup, nil
}

func provideScheduler(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *jobs.Scheduler {
	return jobs.NewScheduler(jobs.Config{
		MaxWorkers: cfg.Async.Workers,
		MaxPending: cfg.Async.MaxPending,
	}, clock, logger)
}

func provideAdapter(spec *config.AdapterSpec, tr core.Transport, store storage.Store, logger *slog.Logger) *adapter.Adapter {
	schemas := adapter.Schemas{Input: spec.RequiredKeys.In, Output: spec.RequiredKeys.Out}
	return adapter.NewAdapter(schemas, tr, store, logger)
}

func provideAsyncAdapter(cfg *config.Config, a *adapter.Adapter, scheduler *jobs.Scheduler, sender core.CallbackSender, logger *slog.Logger) *adapter.AsyncAdapter {
	return adapter.NewAsyncAdapter(a, scheduler, sender, cfg.Async.Delay, logger)
}

func provideServer(cfg *config.Config, spec *config.AdapterSpec, a *adapter.Adapter, async *adapter.AsyncAdapter, logger *slog.Logger) *server.Server {
	routes := server.RouterConfig{
		IncomingTokens:  spec.Tokens.Incoming,
		NodeMockEnabled: cfg.CallbackMockEnabled,
	}
	return server.NewServer(cfg.ServerPort, routes, a, async, logger)
}
