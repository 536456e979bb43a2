package middleware

import (
	"net/http"
	"regexp"

	"github.com/garrettladley/arcgauge/internal/xcontext"
	"github.com/garrettladley/arcgauge/internal/xhttp"
	"github.com/google/uuid"
)

type RequestIDMiddleware struct {
	IDFunc func(*http.Request) string
	// TrustHeader reuses a well-formed inbound X-Request-ID, e.g. one set
	// by a reverse proxy.
	TrustHeader bool
}

type RequestIDOption func(*RequestIDMiddleware)

func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(m *RequestIDMiddleware) { m.IDFunc = fn }
}

func WithTrustedHeader() RequestIDOption {
	return func(m *RequestIDMiddleware) { m.TrustHeader = true }
}

var inboundIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	m := &RequestIDMiddleware{
		IDFunc: func(_ *http.Request) string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(xhttp.XRequestID)
			if !m.TrustHeader || !inboundIDPattern.MatchString(id) {
				id = m.IDFunc(r)
			}
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(xcontext.SetRequestID(r.Context(), id)))
		})
	}
}
