//go:build wireinject
// +build wireinject

// Package wire builds the application object graph.
package wire

import (
	"github.com/google/wire"

	"github.com/sevigo/adapter-bridge/internal/app"
	"github.com/sevigo/adapter-bridge/internal/config"
	"github.com/sevigo/adapter-bridge/internal/jobs"
	"github.com/sevigo/adapter-bridge/internal/server"
)

func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		config.LoadConfig,
		provideLogger,
		provideAdapterSpec,
		provideClock,
		provideTransport,
		provideCallbackSender,
		provideStore,
		provideScheduler,
		provideAdapter,
		provideAsyncAdapter,
		provideServer,
		wire.Bind(new(app.HTTPServer), new(*server.Server)),
		wire.Bind(new(app.RunScheduler), new(*jobs.Scheduler)),
		app.NewApp,
	)
	return &app.App{}, nil, nil
}
