package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-management.com/task-management/internal/errors"
)

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_PerClientWindow(t *testing.T) {
	current := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	var rejected []error
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		rejected = append(rejected, err)
		_ = c.NoContent(apperrors.StatusCode(err))
	}
	e.Use(newRateLimiter(2, time.Minute, clock).middleware)
	e.GET("/", ok)

	assert.Equal(t, http.StatusOK, serve(e, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, serve(e, "10.0.0.1:1000").Code)

	rec := serve(e, "10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "61", rec.Header().Get("Retry-After"))
	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], apperrors.ErrRateLimited)

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, serve(e, "10.0.0.2:1000").Code)

	current = current.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, serve(e, "10.0.0.1:1000").Code)
}

func TestRateLimiter_DropsExpiredBuckets(t *testing.T) {
	current := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(5, time.Minute, func() time.Time { return current })

	e := echo.New()
	e.Use(limiter.middleware)
	e.GET("/", ok)

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		require.Equal(t, http.StatusOK, serve(e, addr).Code)
	}
	require.Equal(t, 3, limiter.size())

	current = current.Add(2 * time.Minute)
	require.Equal(t, http.StatusOK, serve(e, "10.0.0.4:1").Code)
	assert.Equal(t, 1, limiter.size(), "only the fresh client keeps a bucket")
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", ok)

	rec := serve(e, "10.0.0.1:1000")
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLogger_WritesRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter})

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if !c.Response().Committed {
			_ = c.NoContent(apperrors.StatusCode(err))
		}
	}
	e.Use(RequestID(), RequestLogger(logger))
	e.GET("/", ok)
	e.GET("/missing", func(c echo.Context) error { return apperrors.ErrTaskNotFound })

	serve(e, "10.0.0.1:1000")
	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=")

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), "request rejected")
	assert.Contains(t, buf.String(), "status=404")
}
