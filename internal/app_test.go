package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

type ctxKey struct{}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestApp_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.POST("/send-message", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
	})))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", decodeBody(t, w)["error"])

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/send-message", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", decodeBody(t, w)["error"])
}

func TestApp_ErrorHandling(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/limited", func(c internal.Context) error {
			return internal.ErrTooManyRequests("slow down",
				internal.WithErrorCode("RATE_LIMIT_EXCEEDED"),
				internal.WithField("remainingTime", 1500),
				internal.WithHeader("Retry-After", "2"),
			)
		})
		r.GET("/wrapped", func(c internal.Context) error {
			return fmt.Errorf("handler: %w", c.Error(http.StatusBadRequest, "bad", internal.WithErrorCode("BAD")))
		})
		r.GET("/plain", func(c internal.Context) error {
			return errors.New("database password is hunter2")
		})
		r.GET("/late", func(c internal.Context) error {
			_ = c.JSON(http.StatusOK, map[string]bool{"ok": true})
			return errors.New("after write")
		})
	})))

	t.Run("fields and headers", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, "2", w.Header().Get("Retry-After"))

		body := decodeBody(t, w)
		require.Equal(t, "slow down", body["message"])
		require.Equal(t, "RATE_LIMIT_EXCEEDED", body["error"])
		require.InDelta(t, 1500, body["remainingTime"], 0)
	})

	t.Run("wrapped http error", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wrapped", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "BAD", decodeBody(t, w)["error"])
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, w.Body.String(), "hunter2")
		require.Equal(t, "INTERNAL_ERROR", decodeBody(t, w)["error"])
	})

	t.Run("error after write keeps response", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, true, decodeBody(t, w)["ok"])
	})
}

func TestApp_Middleware(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	setValue := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(ctxKey{}, "from-middleware")
			return next(c)
		}
	}

	reject := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.Header("X-Block") != "" {
				return internal.ErrBadRequest("blocked", internal.WithErrorCode("BLOCKED"))
			}
			return next(c)
		}
	}

	var seen any
	app := internal.New(
		internal.WithMiddleware(mark("global"), setValue, reject),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				seen = c.Value(ctxKey{})
				return c.NoContent(http.StatusNoContent)
			}, mark("route-1"), mark("route-2"))
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "from-middleware", seen)
	require.Equal(t, []string{"global", "route-1", "route-2"}, order)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Block", "1")
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "BLOCKED", decodeBody(t, w)["error"])
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("redis", func(context.Context) error { return errors.New("down") }),
	))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	var hookCalled bool

	app := internal.New(internal.WithHealthChecks())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.OnListen(func(a net.Addr) { addrCh <- a.String() }),
			internal.ShutdownHook(func(context.Context) error {
				hookCalled = true
				return nil
			}),
		)
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/health/live")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-errCh)
	require.True(t, hookCalled)
}

func TestApp_StartupHookError(t *testing.T) {
	t.Parallel()

	err := internal.New().Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error {
		return errors.New("redis unreachable")
	}))
	require.ErrorContains(t, err, "redis unreachable")
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := fmt.Errorf("outer: %w", internal.ErrInternal("boom", internal.WithError(cause)))

	require.NotNil(t, internal.AsHTTPError(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, http.StatusInternalServerError, internal.AsHTTPError(err).StatusCode())
	require.Nil(t, internal.AsHTTPError(nil))
	require.Nil(t, internal.AsHTTPError(errors.New(strings.Repeat("x", 3))))
}

func TestApp_HTTPMiddleware(t *testing.T) {
	t.Parallel()

	var order []string
	app := internal.New(
		internal.WithHTTPMiddleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "http")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
			})
		}),
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, "app")
				return next(c)
			}
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/send-message", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send-message", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"http", "app"}, order)

	// Plain middleware can answer before routing, e.g. CORS preflight.
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/send-message", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}
