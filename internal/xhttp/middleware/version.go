package middleware

import (
	"net/http"

	"github.com/garrettladley/arcgauge/internal/version"
)

// Version stamps every response with the server build version.
func Version(next http.Handler) http.Handler {
	v := version.Get()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(version.Header, v)
		next.ServeHTTP(w, r)
	})
}
