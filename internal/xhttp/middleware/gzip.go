package middleware

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/garrettladley/arcgauge/internal/xhttp"
)

const (
	gzipMinSize  = 1024
	gzipEncoding = "gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// compressible lists media types worth compressing. SVG documents are
// verbose XML and typically shrink by an order of magnitude.
var compressible = map[string]struct{}{
	xhttp.MIMEImageSVG:        {},
	xhttp.MIMEApplicationJSON: {},
	"text/plain":              {},
	"text/xml":                {},
}

type gzipResponseWriter struct {
	http.ResponseWriter
	writer      *gzip.Writer
	buf         bytes.Buffer
	wroteHeader bool
	statusCode  int
	useGzip     bool
	decided     bool
}

var (
	_ http.ResponseWriter = (*gzipResponseWriter)(nil)
	_ http.Flusher        = (*gzipResponseWriter)(nil)
	_ io.Closer           = (*gzipResponseWriter)(nil)
)

func (g *gzipResponseWriter) WriteHeader(code int) {
	if g.wroteHeader {
		return
	}
	g.statusCode = code
	g.wroteHeader = true
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.wroteHeader {
		g.WriteHeader(http.StatusOK)
	}

	if !g.decided {
		g.buf.Write(b)
		if g.buf.Len() < gzipMinSize {
			return len(b), nil
		}
		if err := g.decide(g.shouldCompress()); err != nil {
			return 0, err
		}
		return len(b), nil
	}

	if g.useGzip {
		n, err := g.writer.Write(b)
		if err != nil {
			return n, fmt.Errorf("failed to write gzip: %w", err)
		}
		return n, nil
	}
	n, err := g.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

func (g *gzipResponseWriter) shouldCompress() bool {
	h := g.ResponseWriter.Header()
	if h.Get(xhttp.ContentEncoding) != "" {
		return false
	}
	ct := h.Get(xhttp.ContentType)
	if ct == "" {
		ct = http.DetectContentType(g.buf.Bytes())
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	_, ok := compressible[mediaType]
	return ok
}

// decide commits the buffered bytes, compressed or not. Only the first call
// has an effect.
func (g *gzipResponseWriter) decide(compress bool) error {
	if g.decided {
		return nil
	}
	g.decided = true
	g.useGzip = compress

	if !compress {
		g.ResponseWriter.WriteHeader(g.statusCode)
		if _, err := g.ResponseWriter.Write(g.buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write uncompressed response: %w", err)
		}
		return nil
	}

	g.ResponseWriter.Header().Set(xhttp.ContentEncoding, gzipEncoding)
	g.ResponseWriter.Header().Del(xhttp.ContentLength)
	g.ResponseWriter.WriteHeader(g.statusCode)

	g.writer = gzipWriterPool.Get().(*gzip.Writer)
	g.writer.Reset(g.ResponseWriter)
	if _, err := g.writer.Write(g.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to gzip writer: %w", err)
	}
	return nil
}

func (g *gzipResponseWriter) Close() error {
	if !g.decided {
		return g.decide(false)
	}
	if g.useGzip && g.writer != nil {
		err := g.writer.Close()
		gzipWriterPool.Put(g.writer)
		g.writer = nil
		if err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
	}
	return nil
}

func (g *gzipResponseWriter) Flush() {
	if !g.decided {
		_ = g.decide(g.buf.Len() >= gzipMinSize && g.shouldCompress())
	}
	if g.useGzip && g.writer != nil {
		_ = g.writer.Flush()
	}
	if flusher, ok := g.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}

// Gzip compresses SVG, JSON and text responses of at least gzipMinSize bytes
// for clients that accept it.
func Gzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get(xhttp.AcceptEncoding), gzipEncoding) || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add(xhttp.Vary, xhttp.AcceptEncoding)

		gw := &gzipResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		defer gw.Close() //nolint:errcheck // best-effort flush on response completion

		next.ServeHTTP(gw, r)
	})
}
