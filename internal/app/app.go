// Package app holds the running components of the adapter bridge and controls
// their lifecycle.
package app

import (
	"log/slog"

	"github.com/sevigo/adapter-bridge/internal/config"
)

// HTTPServer is the blocking server the App runs.
type HTTPServer interface {
	Start() error
	Stop() error
}

// RunScheduler is the part of the deferred-run scheduler the App shuts down.
type RunScheduler interface {
	Stop()
	Pending() int
}

// App holds the main application components.
type App struct {
	cfg       *config.Config
	server    HTTPServer
	scheduler RunScheduler
	logger    *slog.Logger
}

// NewApp assembles an App from already constructed components.
func NewApp(cfg *config.Config, server HTTPServer, scheduler RunScheduler, logger *slog.Logger) *App {
	return &App{cfg: cfg, server: server, scheduler: scheduler, logger: logger}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting adapter bridge",
		"server_port", a.cfg.ServerPort,
		"async_delay", a.cfg.Async.Delay,
		"async_workers", a.cfg.Async.Workers,
		"ledger_enabled", a.cfg.Database.Enabled())

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the server down first so no new runs are accepted, then lets the
// scheduler finish every pending run.
func (a *App) Stop() error {
	a.logger.Info("shutting down adapter bridge")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.logger.Info("completing pending deferred runs", "pending", a.scheduler.Pending())
	a.scheduler.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("adapter bridge stopped")
	return nil
}
