package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/adapter-bridge/internal/server/handler"
)

// RouterConfig selects the routes and credentials of the router.
type RouterConfig struct {
	IncomingTokens  []string
	NodeMockEnabled bool
}

// NewRouter creates the HTTP router with middleware and the adapter routes.
func NewRouter(cfg RouterConfig, sync handler.SyncRunner, async handler.AsyncRunner, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	adapterHandler := handler.NewAdapterHandler(sync, async, logger)
	r.Group(func(r chi.Router) {
		r.Use(newTokenAuth(cfg.IncomingTokens, logger))
		r.Post("/", adapterHandler.HandleSync)
		r.Post("/async", adapterHandler.HandleAsync)
	})

	if cfg.NodeMockEnabled {
		r.Patch("/nodemock", handler.NewNodeMockHandler(logger).Handle)
	}

	return r
}
