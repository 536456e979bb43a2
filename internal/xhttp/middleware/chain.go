package middleware

import "net/http"

// Middleware wraps a handler with behavior that runs around it.
type Middleware = func(http.Handler) http.Handler

// Chain wraps h so that the first middleware sees each request first. Nil
// entries are skipped, which lets callers pass optional middleware inline.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}
