package xhttp

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// ErrNotFinite is returned by QueryFloat for NaN and infinite values.
var ErrNotFinite = errors.New("not a finite number")

func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		first = strings.TrimSpace(first)
		if ip, _, err := net.SplitHostPort(first); err == nil {
			return ip
		}
		return first
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

// QueryFloat parses the named query parameter. ok is false when it is absent.
func QueryFloat(r *http.Request, key string) (v float64, ok bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, true, fmt.Errorf("%s: not a number: %q", key, raw)
	}
	// out of range parses as ±Inf
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, fmt.Errorf("%s: %w: %q", key, ErrNotFinite, raw)
	}
	return v, true, nil
}

func QueryInt(r *http.Request, key string) (v int, ok bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s: not an integer: %q", key, raw)
	}
	return v, true, nil
}

// QueryBool treats "1", "true", "yes" and "on" as true and "0", "false", "no"
// and "off" as false.
func QueryBool(r *http.Request, key string) (v bool, ok bool, err error) {
	raw := r.URL.Query().Get(key)
	switch strings.ToLower(raw) {
	case "":
		return false, false, nil
	case "1", "true", "yes", "on":
		return true, true, nil
	case "0", "false", "no", "off":
		return false, true, nil
	default:
		return false, true, fmt.Errorf("%s: not a boolean: %q", key, raw)
	}
}
