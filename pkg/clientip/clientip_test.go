package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/pkg/clientip"
)

func TestFromHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "single forwarded address",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "203.0.113.7",
		},
		{
			name:    "first of forwarded chain",
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1, 10.0.0.2"},
			want:    "203.0.113.7",
		},
		{
			name: "forwarded wins over real ip",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "198.51.100.1",
			},
			want: "203.0.113.7",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": " 198.51.100.1 "},
			want:    "198.51.100.1",
		},
		{
			name: "empty first forwarded entry falls through",
			headers: map[string]string{
				"X-Forwarded-For": " , 10.0.0.1",
				"X-Real-IP":       "198.51.100.1",
			},
			want: "198.51.100.1",
		},
		{
			name: "no headers",
			want: clientip.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}

			require.Equal(t, tt.want, clientip.FromHeaders(h))
		})
	}
}

func TestFromRequestWithFallback(t *testing.T) {
	t.Parallel()

	t.Run("uses headers first", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("X-Real-IP", "198.51.100.1")
		require.Equal(t, "198.51.100.1", clientip.FromRequestWithFallback(r))
	})

	t.Run("falls back to remote addr host", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "192.0.2.10:54321"
		require.Equal(t, "192.0.2.10", clientip.FromRequestWithFallback(r))
		require.Equal(t, clientip.Unknown, clientip.FromRequest(r))
	})

	t.Run("remote addr without port", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "192.0.2.10"
		require.Equal(t, "192.0.2.10", clientip.FromRequestWithFallback(r))
	})
}
