package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garrettladley/arcgauge/internal/xcontext"
	"github.com/garrettladley/arcgauge/internal/xhttp"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "first,second,handler" {
		t.Errorf("order = %q", got)
	}
}

func TestChainSkipsNil(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mws := []Middleware{mark("outer"), nil, mark("inner")}
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	})

	// building twice from one slice must not change the order
	for range 2 {
		order = nil
		Chain(handler, mws...).ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

		if got := strings.Join(order, ","); got != "outer,inner,handler" {
			t.Errorf("order = %q", got)
		}
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []RequestIDOption
		inbound string
		want    string
	}{
		{name: "generated", opts: []RequestIDOption{WithIDFunc(func(*http.Request) string { return "gen" })}, inbound: "proxy-1", want: "gen"},
		{name: "trusted inbound", opts: []RequestIDOption{WithTrustedHeader(), WithIDFunc(func(*http.Request) string { return "gen" })}, inbound: "proxy-1", want: "proxy-1"},
		{name: "malformed inbound replaced", opts: []RequestIDOption{WithTrustedHeader(), WithIDFunc(func(*http.Request) string { return "gen" })}, inbound: "bad id\n", want: "gen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := RequestID(tt.opts...)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen, _ = xcontext.GetRequestID(r.Context())
			}))

			req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil)
			req.Header.Set(xhttp.XRequestID, tt.inbound)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen != tt.want {
				t.Errorf("context id = %q, want %q", seen, tt.want)
			}
			if got := rec.Header().Get(xhttp.XRequestID); got != tt.want {
				t.Errorf("header id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Logger(logger), Recovery)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/gauge.svg", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("log = %q, want panic entry", buf.String())
	}
}

func TestLoggingRecordsStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := xslog.NewLogger(&buf, xslog.LevelInfo, xslog.FormatJSON)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xhttp.WriteSVG(w, http.StatusCreated, []byte("<svg/>"))
	}), RequestID(), Logger(logger), Logging)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/gauge.svg", nil))

	out := buf.String()
	for _, want := range []string{`"status":201`, `"bytes":6`, `"request_id"`, `"path":"/gauge.svg"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil))

	if got := rec.Header().Get(xhttp.XContentTypeOpts); got != "nosniff" {
		t.Errorf("%s = %q", xhttp.XContentTypeOpts, got)
	}
	if got := rec.Header().Get(xhttp.ContentSecurityPolicy); !strings.Contains(got, "default-src 'none'") {
		t.Errorf("%s = %q", xhttp.ContentSecurityPolicy, got)
	}
}

func TestNoCache(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "no-cache"} {
		var got bool
		h := NoCache(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = xcontext.NoCache(r.Context())
		}))
		req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(xhttp.CacheControl, header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if want := header != ""; got != want {
			t.Errorf("Cache-Control %q: NoCache = %v, want %v", header, got, want)
		}
	}
}
