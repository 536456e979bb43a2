// Package server wires the HTTP routes that expose gauge rendering and arc
// geometry.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/config"
	"github.com/garrettladley/arcgauge/internal/server/handler"
	servermw "github.com/garrettladley/arcgauge/internal/server/middleware"
	"github.com/garrettladley/arcgauge/internal/service/render"
	"github.com/garrettladley/arcgauge/internal/storage"
	"github.com/garrettladley/arcgauge/internal/xhttp/middleware"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

type Deps struct {
	Cache  storage.Cache
	Logger *slog.Logger
	// Limiter is optional; nil disables rate limiting.
	Limiter storage.RateLimiter
	// Engine defaults to arc.Default.
	Engine arc.Engine
}

// Routes builds the full handler tree including middleware.
func Routes(cfg config.Config, deps Deps) http.Handler {
	renderService := render.NewCached(deps.Cache, cfg.Cache.TTL)

	healthHandler := handler.NewHealth(deps.Cache)
	gaugesHandler := handler.NewGauges(renderService, cfg.Cache.MaxAge, cfg.Server.MaxBodyBytes)
	geometryHandler := handler.NewGeometry(deps.Engine, cfg.Server.MaxBodyBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.HandleHealth)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /gauge.svg", gaugesHandler.HandleGauge)
	apiMux.HandleFunc("POST /segments.svg", gaugesHandler.HandleSegments)
	apiMux.HandleFunc("POST /legend.svg", gaugesHandler.HandleLegend)
	apiMux.HandleFunc("GET /api/arc", geometryHandler.HandleArc)
	apiMux.HandleFunc("GET /api/needle", geometryHandler.HandleNeedle)
	apiMux.HandleFunc("POST /api/segments", geometryHandler.HandleSegments)

	var rateLimit middleware.Middleware
	if deps.Limiter != nil {
		rateLimit = servermw.RateLimit(deps.Limiter)
	}
	mux.Handle("/", middleware.Chain(apiMux, rateLimit))

	requestIDOpts := []middleware.RequestIDOption{}
	if cfg.Server.TrustRequestID {
		requestIDOpts = append(requestIDOpts, middleware.WithTrustedHeader())
	}

	return middleware.Chain(mux,
		middleware.RequestID(requestIDOpts...),
		middleware.Logger(deps.Logger),
		middleware.Logging,
		middleware.Recovery,
		middleware.Version,
		middleware.SecurityHeaders,
		middleware.NoCache,
		middleware.Gzip,
	)
}

func New(cfg config.Config, deps Deps) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           Routes(cfg, deps),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(deps.Logger.Handler(), slog.LevelWarn),
	}
}

// Run serves on srv until ctx is cancelled, then shuts down gracefully
// within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg config.Config, srv *http.Server, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			xslog.Port(cfg.Port),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}
