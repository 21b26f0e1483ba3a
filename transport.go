package giantbomb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/metrics"
)

const (
	// DefaultUserAgent is sent when no other agent is configured. The API
	// rejects requests that carry no User-Agent.
	DefaultUserAgent = "giantbomb-go/1.0"
	// DefaultTimeout bounds one request made by the default HTTP client.
	DefaultTimeout = 30 * time.Second

	maxBodySize = 32 << 20
)

// Fetcher performs one GET and returns the response body.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// DefaultHTTPClient returns an http.Client instrumented with OpenTelemetry.
// Client spans see the request URL with the API key masked.
func DefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &maskTransport{
			next: otelhttp.NewTransport(&unmaskTransport{next: http.DefaultTransport}),
		},
		Timeout: timeout,
	}
}

type originalURLKey struct{}

// maskTransport hands next a copy of the request whose URL has the API key
// masked. The real URL travels in the context.
type maskTransport struct {
	next http.RoundTripper
}

func (t *maskTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.Contains(req.URL.RawQuery, "api_key=") {
		return t.next.RoundTrip(req)
	}
	masked := *req.URL
	masked.RawQuery = logging.RedactURL(req.URL.RawQuery)

	r := req.Clone(context.WithValue(req.Context(), originalURLKey{}, req.URL))
	r.URL = &masked
	return t.next.RoundTrip(r)
}

// unmaskTransport restores the URL stored by maskTransport.
type unmaskTransport struct {
	next http.RoundTripper
}

func (t *unmaskTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u, ok := req.Context().Value(originalURLKey{}).(*url.URL)
	if !ok {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.URL = u
	return t.next.RoundTrip(r)
}

// HTTPFetcher fetches over net/http. Connection pooling, timeouts and
// cancellation are whatever the wrapped http.Client provides.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher wraps hc. A nil client gets DefaultHTTPClient(DefaultTimeout).
func NewHTTPFetcher(hc *http.Client, userAgent string) *HTTPFetcher {
	if hc == nil {
		hc = DefaultHTTPClient(DefaultTimeout)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{client: hc, userAgent: userAgent}
}

// Fetch returns the body of a 2xx response. Any other status returns the
// body together with a *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", sanitize(err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, sanitize(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return body, nil
}

// sanitize masks the API key that net/http embeds in *url.Error.
func sanitize(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = logging.RedactURL(urlErr.URL)
	}
	return err
}

// ErrCircuitOpen is returned by a BreakerFetcher while its circuit is open.
var ErrCircuitOpen = gobreaker.ErrOpenState

// BreakerConfig configures a BreakerFetcher.
type BreakerConfig struct {
	// Name identifies this breaker in metrics and logs.
	Name string

	// MaxRequests is the number of requests allowed while half-open.
	MaxRequests uint32

	// Interval clears the failure counts while closed. 0 never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// MinRequests must be seen before FailureRatio is evaluated.
	MinRequests uint32
}

// DefaultBreakerConfig returns sensible defaults for a breaker.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// BreakerFetcher stops calling an unhealthy upstream. It never retries: each
// Fetch either reaches next once or fails fast with ErrCircuitOpen.
type BreakerFetcher struct {
	next    Fetcher
	breaker *gobreaker.CircuitBreaker[[]byte]
	name    string
}

// NewBreakerFetcher wraps next with a circuit breaker.
func NewBreakerFetcher(next Fetcher, cfg BreakerConfig) *BreakerFetcher {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logging.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	metrics.BreakerState.WithLabelValues(cfg.Name).Set(0)

	return &BreakerFetcher{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		name:    cfg.Name,
	}
}

func (f *BreakerFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f.breaker.Execute(func() ([]byte, error) {
		return f.next.Fetch(ctx, rawURL)
	})
}

// Name returns the breaker name used in logs and metrics.
func (f *BreakerFetcher) Name() string {
	return f.name
}

// State returns the current state of the breaker.
func (f *BreakerFetcher) State() gobreaker.State {
	return f.breaker.State()
}

// breakerSuccess counts only upstream trouble as failure: client errors
// and caller cancellation leave the breaker alone.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode < 500
	}
	return false
}

// stateToFloat maps gobreaker states to gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
