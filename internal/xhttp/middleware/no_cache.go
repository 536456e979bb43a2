package middleware

import (
	"net/http"

	"github.com/garrettladley/arcgauge/internal/xcontext"
	"github.com/garrettladley/arcgauge/internal/xhttp"
)

// NoCache flags requests sent with "Cache-Control: no-cache" so the render
// service skips its cache lookup.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xhttp.NoCacheRequested(r) {
			r = r.WithContext(xcontext.SetNoCache(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}
