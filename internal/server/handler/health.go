package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/arcgauge/internal/storage"
	"github.com/garrettladley/arcgauge/internal/version"
	"github.com/garrettladley/arcgauge/internal/xerrors"
	"github.com/garrettladley/arcgauge/internal/xhttp"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

const healthPingTimeout = 2 * time.Second

type Health struct {
	cache storage.Cache
}

func NewHealth(cache storage.Cache) *Health {
	return &Health{cache: cache}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleHealth handles GET /health. It fails when the render cache is unreachable.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		xslog.FromContext(ctx).ErrorContext(ctx, "cache ping failed", xslog.Error(err))
		xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("cache unavailable"),
			xerrors.WithCause(err),
		))
		return
	}

	xhttp.WriteOK(w, healthResponse{Status: "ok", Version: version.Get()})
}
