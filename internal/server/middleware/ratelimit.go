package middleware

import (
	"net/http"
	"strconv"

	"github.com/garrettladley/arcgauge/internal/storage"
	"github.com/garrettladley/arcgauge/internal/xerrors"
	"github.com/garrettladley/arcgauge/internal/xhttp"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

const retryAfter = "Retry-After"

// RateLimit applies IP-based rate limiting. Requests pass when the limiter
// itself errors.
func RateLimit(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.GetRequestIP(r)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).WarnContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.RequestIP(r),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				secs := max(1, int(result.RetryAfter.Seconds()+0.5))
				w.Header().Set(retryAfter, strconv.Itoa(secs))
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
