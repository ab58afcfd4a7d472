// Package clientip derives a best-effort client identifier from request
// headers for use as a rate-limit key.
//
// The identifier is not authenticated. Deployments must make sure the
// fronting proxy overwrites X-Forwarded-For, otherwise a client can pick its
// own key.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no header identifies the client.
// All such clients share one rate-limit bucket.
const Unknown = "unknown"

const (
	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-IP"
)

// FromHeaders returns the first entry of X-Forwarded-For, then X-Real-IP,
// then Unknown.
func FromHeaders(h http.Header) string {
	if xff := h.Get(headerForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if rip := strings.TrimSpace(h.Get(headerRealIP)); rip != "" {
		return rip
	}

	return Unknown
}

// FromRequest applies FromHeaders to r.
func FromRequest(r *http.Request) string {
	return FromHeaders(r.Header)
}

// FromRequestWithFallback behaves like FromRequest but uses the host part of
// r.RemoteAddr instead of Unknown. Use it when the server is reached directly
// and not through a proxy.
func FromRequestWithFallback(r *http.Request) string {
	if key := FromHeaders(r.Header); key != Unknown {
		return key
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return Unknown
}
