package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/health"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live?format=json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"a": ok, "b": ok})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("unhealthy json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"db": ok, "redis": failing})(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["db"].Status)
		require.Equal(t, "connection refused", resp.Checks["redis"].Error)
	})

	t.Run("unhealthy plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"redis": failing})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "Service Unavailable", rec.Body.String())
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, health.StatusHealthy, health.Run(context.Background(), nil).Status)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		slow := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		resp := health.Run(context.Background(), health.Checks{"slow": slow}, health.WithTimeout(10*time.Millisecond))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
	})
}

func TestWarm(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(
		domaindb.WithLoaderFunc(func(context.Context, string, string) (domaindb.Messages, error) {
			return domaindb.Messages{"hello": "Hello"}, nil
		}),
		domaindb.WithNeededDomains("main", "errors"),
	)
	require.NoError(t, err)

	check := health.Warm(db, "en-US")
	require.ErrorIs(t, check(context.Background()), health.ErrNotWarm)

	_, err = db.LoadDomains(context.Background(), "en-US")
	require.NoError(t, err)
	require.NoError(t, check(context.Background()))
}

func TestWarm_DefaultsOnly(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(
		domaindb.WithDefaults("main", domaindb.Messages{"hello": "Hello"}),
		domaindb.WithNeededDomains("main"),
	)
	require.NoError(t, err)

	_, err = db.LoadDomains(context.Background(), "en-US")
	require.NoError(t, err)
	require.NoError(t, health.Warm(db, "en-US")(context.Background()))

	db.RegisterNeededDomain("errors")
	require.ErrorIs(t, health.Warm(db, "en-US")(context.Background()), health.ErrNotWarm)
}
