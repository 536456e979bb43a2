package xhttp

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		xForwardedFor string
		remoteAddr    string
		expectedIP    string
	}{
		{
			name:          "x-forwarded-for with IP only",
			xForwardedFor: "203.0.113.195",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "203.0.113.195",
		},
		{
			name:          "x-forwarded-for with IP and port",
			xForwardedFor: "203.0.113.195:8080",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "203.0.113.195",
		},
		{
			name:          "remote addr with IP and port",
			xForwardedFor: "",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "192.0.2.1",
		},
		{
			name:          "remote addr with IP only",
			xForwardedFor: "",
			remoteAddr:    "192.0.2.1",
			expectedIP:    "192.0.2.1",
		},
		{
			name:          "IPv6 in x-forwarded-for",
			xForwardedFor: "2001:db8::1",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "2001:db8::1",
		},
		{
			name:          "IPv6 with port in x-forwarded-for",
			xForwardedFor: "[2001:db8::1]:8080",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "2001:db8::1",
		},
		{
			name:          "IPv6 in remote addr",
			xForwardedFor: "",
			remoteAddr:    "[2001:db8::1]:1234",
			expectedIP:    "2001:db8::1",
		},
		{
			name:          "IPv6 without port in remote addr",
			xForwardedFor: "",
			remoteAddr:    "2001:db8::1",
			expectedIP:    "2001:db8::1",
		},
		{
			name:          "localhost IPv4",
			xForwardedFor: "",
			remoteAddr:    "127.0.0.1:8080",
			expectedIP:    "127.0.0.1",
		},
		{
			name:          "localhost IPv6",
			xForwardedFor: "",
			remoteAddr:    "[::1]:8080",
			expectedIP:    "::1",
		},
		{
			name:          "x-forwarded-for takes precedence",
			xForwardedFor: "203.0.113.195",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "203.0.113.195",
		},
		{
			name:          "x-forwarded-for list uses first hop",
			xForwardedFor: "203.0.113.195, 70.41.3.18, 150.172.238.178",
			remoteAddr:    "192.0.2.1:1234",
			expectedIP:    "203.0.113.195",
		},
		{
			name:          "empty remote addr",
			xForwardedFor: "",
			remoteAddr:    "",
			expectedIP:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := buildRequest(t, tt.xForwardedFor, tt.remoteAddr)
			got := GetRequestIP(req)

			if got != tt.expectedIP {
				t.Errorf("GetIP() = %q, want %q", got, tt.expectedIP)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet,
		"http://example.com/gauge.svg?value=42.5&size=200&needle=yes&bad=x", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if v, ok, err := QueryFloat(req, "value"); err != nil || !ok || v != 42.5 {
		t.Errorf("QueryFloat(value) = %v, %v, %v", v, ok, err)
	}
	if _, ok, err := QueryFloat(req, "min"); err != nil || ok {
		t.Errorf("QueryFloat(min) ok = %v, err = %v; want absent", ok, err)
	}
	if _, _, err := QueryFloat(req, "bad"); err == nil {
		t.Error("QueryFloat(bad) expected error")
	}
	for _, raw := range []string{"NaN", "Inf", "-Inf", "+inf", "1e999"} {
		nonFinite, err := http.NewRequestWithContext(t.Context(), http.MethodGet,
			"http://example.com/api/arc?radius="+url.QueryEscape(raw), nil)
		if err != nil {
			t.Fatalf("failed to create request: %v", err)
		}
		if _, ok, err := QueryFloat(nonFinite, "radius"); !ok || !errors.Is(err, ErrNotFinite) {
			t.Errorf("QueryFloat(radius=%s) ok = %v, err = %v; want ErrNotFinite", raw, ok, err)
		}
	}
	if v, ok, err := QueryInt(req, "size"); err != nil || !ok || v != 200 {
		t.Errorf("QueryInt(size) = %v, %v, %v", v, ok, err)
	}
	if _, _, err := QueryInt(req, "value"); err == nil {
		t.Error("QueryInt(value) expected error")
	}
	if v, ok, err := QueryBool(req, "needle"); err != nil || !ok || !v {
		t.Errorf("QueryBool(needle) = %v, %v, %v", v, ok, err)
	}
	if _, _, err := QueryBool(req, "bad"); err == nil {
		t.Error("QueryBool(bad) expected error")
	}
}

func buildRequest(t *testing.T, xForwardedFor, remoteAddr string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if xForwardedFor != "" {
		req.Header.Set(XForwardedFor, xForwardedFor)
	}

	req.RemoteAddr = remoteAddr

	return req
}
