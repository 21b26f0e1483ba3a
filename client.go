// Package giantbomb is a client for the GiantBomb video game database API.
//
// A Client builds signed GET requests, validates the status embedded in the
// response envelope and maps results onto typed records. It keeps no state
// between calls: no cache, no retries, one request per method call.
package giantbomb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/metrics"
	"github.com/ryanm101/giantbomb/internal/tracing"
)

// DefaultBaseURL is the root of the public API.
const DefaultBaseURL = "https://www.giantbomb.com/api/"

// DecodeFunc parses a response body into generic JSON values
// (map[string]any, []any, string, json.Number, bool, nil).
type DecodeFunc func(data []byte) (any, error)

// DecodeJSON is the default DecodeFunc. Numbers decode as json.Number so
// ids survive without float rounding.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// Client talks to the API on behalf of one API key. It is immutable after
// New and safe for concurrent use if its Fetcher is.
type Client struct {
	apiKey  string
	baseURL string
	fetcher Fetcher
	decode  DecodeFunc
}

type options struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	fetcher    Fetcher
	decode     DecodeFunc
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(o *options) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		o.baseURL = base
	}
}

// WithFetcher replaces the transport. It takes precedence over
// WithHTTPClient and WithUserAgent.
func WithFetcher(f Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithHTTPClient sets the http.Client used by the default fetcher.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithUserAgent sets the User-Agent sent by the default fetcher.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithDecoder replaces the JSON decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(o *options) { o.decode = fn }
}

// New creates a client bound to apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required: %w", ErrInvalidArgument)
	}

	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(o.httpClient, o.userAgent)
	}
	decode := o.decode
	if decode == nil {
		decode = DecodeJSON
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: o.baseURL,
		fetcher: fetcher,
		decode:  decode,
	}, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the signed request URL for path and params.
func (c *Client) URL(path string, params Params) string {
	return buildURL(c.baseURL, path, c.apiKey, params)
}

// call performs one request and returns the envelope's results payload.
// op names the operation in errors; label is the metrics resource label.
func (c *Client) call(ctx context.Context, op, label, path string, params Params) (any, error) {
	ctx, span := tracing.StartSpan(ctx, "giantbomb."+strings.ReplaceAll(op, " ", "_"),
		tracing.WithAttributes(
			attribute.String("giantbomb.resource", label),
			attribute.String("giantbomb.path", path),
		),
	)
	defer span.End()

	u := c.URL(path, params)
	start := time.Now()
	logging.Debug("giantbomb request", "op", op, "url", logging.RedactURL(u))

	results, err := c.roundTrip(ctx, op, u)
	metrics.RecordRequest(label, outcome(err), start)
	if err != nil {
		tracing.RecordError(span, err)
		logging.Debug("giantbomb request failed", "op", op, "error", err)
		return nil, err
	}

	tracing.SetSpanOK(span)
	return results, nil
}

func (c *Client) roundTrip(ctx context.Context, op, u string) (any, error) {
	body, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		// Error statuses usually still carry an envelope worth reporting.
		var se *StatusError
		if errors.As(err, &se) {
			if apiErr := c.envelopeError(se.Body); apiErr != nil {
				return nil, apiErr
			}
		}
		return nil, &TransportError{Op: op, URL: logging.RedactURL(u), Err: err}
	}

	v, err := c.decode(body)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return checkEnvelope(op, v)
}

// envelopeError extracts the *APIError from an error response body, or nil.
func (c *Client) envelopeError(body []byte) *APIError {
	if len(body) == 0 {
		return nil
	}
	v, err := c.decode(body)
	if err != nil {
		return nil
	}
	var apiErr *APIError
	if _, err := checkEnvelope("", v); errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// checkEnvelope validates status_code and returns results.
func checkEnvelope(op string, v any) (any, error) {
	env := asRaw(v)
	if env == nil {
		return nil, &DecodeError{Op: op, Err: errors.New("response is not a JSON object")}
	}
	if _, ok := env["status_code"]; !ok {
		return nil, &DecodeError{Op: op, Err: errors.New("envelope has no status_code")}
	}
	if code := env.integer("status_code"); code != StatusOK {
		return nil, &APIError{Code: code, Message: env.str("error")}
	}
	return env["results"], nil
}

// outcome classifies err for the request metrics.
func outcome(err error) string {
	var (
		apiErr       *APIError
		decodeErr    *DecodeError
		transportErr *TransportError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	case errors.As(err, &decodeErr):
		return metrics.OutcomeDecodeError
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransportError
	default:
		return metrics.OutcomeTransportError
	}
}

// fetchOne fetches a single object and maps it with fn.
func fetchOne[T any](ctx context.Context, c *Client, r Resource, id Identifier, fn func(raw) T) (T, error) {
	var zero T
	op := "get " + string(r)

	ep, ok := endpoints[r]
	if !ok || ep.detail == "" {
		return zero, fmt.Errorf("%s: %w: no single-item endpoint", op, ErrInvalidArgument)
	}
	if id == nil {
		return zero, fmt.Errorf("%s: %w: nil id", op, ErrInvalidArgument)
	}
	n := id.GiantBombID()
	if n < 0 {
		return zero, fmt.Errorf("%s: %w: negative id %d", op, ErrInvalidArgument, n)
	}

	results, err := c.call(ctx, op, string(r), fmt.Sprintf("%s/%d", ep.detail, n), nil)
	if err != nil {
		return zero, err
	}
	obj := asRaw(results)
	if obj == nil {
		return zero, &DecodeError{Op: op, Err: errors.New("results is not an object")}
	}
	return fn(obj), nil
}

// listOf fetches one page of a list endpoint and maps every element with fn.
func listOf[T any](ctx context.Context, c *Client, r Resource, opts ListOptions, fn func(raw) T) ([]T, error) {
	op := "list " + string(r)

	ep, ok := endpoints[r]
	if !ok || ep.list == "" {
		return nil, fmt.Errorf("%s: %w: no list endpoint", op, ErrInvalidArgument)
	}
	params, err := opts.params(r)
	if err != nil {
		return nil, err
	}
	return fetchMany(ctx, c, op, string(r), ep.list, params, fn)
}

func fetchMany[T any](ctx context.Context, c *Client, op, label, path string, params Params, fn func(raw) T) ([]T, error) {
	results, err := c.call(ctx, op, label, path, params)
	if err != nil {
		return nil, err
	}
	if results == nil {
		return []T{}, nil
	}
	items, ok := results.([]any)
	if !ok {
		return nil, &DecodeError{Op: op, Err: errors.New("results is not a list")}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if obj := asRaw(item); obj != nil {
			out = append(out, fn(obj))
		}
	}
	return out, nil
}
