package xhttp

import (
	"net/http"
	"strconv"
	"time"
)

const (
	XForwardedFor         = "X-Forwarded-For"
	XRequestID            = "X-Request-ID"
	XContentTypeOpts      = "X-Content-Type-Options"
	XFrameOpts            = "X-Frame-Options"
	XXSSProtection        = "X-Xss-Protection"
	XCache                = "X-Cache"
	ReferrerPolicy        = "Referrer-Policy"
	ContentSecurityPolicy = "Content-Security-Policy"
	ContentType           = "Content-Type"
	ContentLength         = "Content-Length"
	ContentEncoding       = "Content-Encoding"
	AcceptEncoding        = "Accept-Encoding"
	CacheControl          = "Cache-Control"
	ETag                  = "ETag"
	IfNoneMatch           = "If-None-Match"
	Vary                  = "Vary"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEImageSVG        = "image/svg+xml"
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, MIMEApplicationJSON)
}

func SetHeaderContentTypeImageSVG(w http.ResponseWriter) {
	w.Header().Set(ContentType, MIMEImageSVG)
}

// SetHeaderCacheMaxAge marks a response as publicly cacheable for maxAge.
func SetHeaderCacheMaxAge(w http.ResponseWriter, maxAge time.Duration) {
	w.Header().Set(CacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
}

func SetHeaderETag(w http.ResponseWriter, tag string) {
	w.Header().Set(ETag, `"`+tag+`"`)
}

func SetHeaderCacheStatus(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(XCache, "HIT")
		return
	}
	w.Header().Set(XCache, "MISS")
}

// NoCacheRequested reports whether the client asked to skip cached responses.
func NoCacheRequested(r *http.Request) bool {
	return r.Header.Get(CacheControl) == "no-cache"
}
