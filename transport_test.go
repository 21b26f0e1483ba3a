package giantbomb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanm101/giantbomb/internal/metrics"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent/2.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, "gone")
			return
		}
		_, _ = fmt.Fprint(w, "hello")
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), "custom-agent/2.0")

	body, err := f.Fetch(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	body, err = f.Fetch(context.Background(), srv.URL+"/missing")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "gone", string(se.Body))
	assert.Equal(t, "gone", string(body))
}

func TestHTTPFetcherBadURL(t *testing.T) {
	f := NewHTTPFetcher(nil, "")
	_, err := f.Fetch(context.Background(), "://bad?api_key=secret")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}

func TestBreakerSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), true},
		{"client status", &StatusError{StatusCode: 404}, true},
		{"server status", &StatusError{StatusCode: 503}, false},
		{"network", errors.New("connection refused"), false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, breakerSuccess(tt.err))
		})
	}
}

func TestBreakerFetcherTrips(t *testing.T) {
	calls := 0
	failing := FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	cfg := DefaultBreakerConfig("test-trips")
	cfg.MinRequests = 2
	cfg.Timeout = time.Minute
	f := NewBreakerFetcher(failing, cfg)
	assert.Equal(t, "test-trips", f.Name())
	assert.Equal(t, gobreaker.StateClosed, f.State())

	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), "http://x")
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, f.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.BreakerState.WithLabelValues("test-trips")))

	_, err := f.Fetch(context.Background(), "http://x")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, calls, "open circuit should not reach the upstream")
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	notFound := FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	})

	cfg := DefaultBreakerConfig("test-client-errors")
	cfg.MinRequests = 1
	f := NewBreakerFetcher(notFound, cfg)

	for i := 0; i < 5; i++ {
		_, err := f.Fetch(context.Background(), "http://x")
		var se *StatusError
		require.True(t, errors.As(err, &se))
	}
	assert.Equal(t, gobreaker.StateClosed, f.State())
}

func TestBreakerFetcherWithClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, envelope(`{"id": 3, "name": "Zelda"}`))
	}))
	defer srv.Close()

	f := NewBreakerFetcher(NewHTTPFetcher(srv.Client(), ""), DefaultBreakerConfig("test-client"))
	c, err := New("k", WithBaseURL(srv.URL), WithFetcher(f))
	require.NoError(t, err)

	fr, err := c.Franchise(context.Background(), ID(3))
	require.NoError(t, err)
	assert.Equal(t, "Zelda", fr.Name)
}

func TestStateToFloat(t *testing.T) {
	assert.Equal(t, float64(0), stateToFloat(gobreaker.StateClosed))
	assert.Equal(t, float64(1), stateToFloat(gobreaker.StateHalfOpen))
	assert.Equal(t, float64(2), stateToFloat(gobreaker.StateOpen))
}

func TestRequestMetrics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status_code": 101, "error": "Object Not Found"}`)
	})

	before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("accessory", metrics.OutcomeAPIError))
	_, err := c.Get(context.Background(), ResourceAccessory, ID(1))
	require.Error(t, err)
	after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("accessory", metrics.OutcomeAPIError))
	assert.Equal(t, before+1, after)
}
