package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	bodyOK          = "OK"
	bodyUnavailable = "Service Unavailable"
)

// LivenessHandler reports that the process is serving requests. It never
// touches a dependency.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request and answers 503 when any
// fails. The plain-text body names the failing checks, for example
// "Service Unavailable: redis".
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		status := http.StatusOK
		if resp.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		write(w, r, status, resp)
	}
}

func write(w http.ResponseWriter, r *http.Request, status int, resp *Response) {
	w.Header().Set("Cache-Control", "no-store")

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(plainBody(resp)))
}

func plainBody(resp *Response) string {
	if resp.Status == StatusHealthy {
		return bodyOK
	}
	failing := resp.Failing()
	if len(failing) == 0 {
		return bodyUnavailable
	}
	return bodyUnavailable + ": " + strings.Join(failing, ", ")
}

// wantsJSON honours ?format=json before the Accept header.
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
