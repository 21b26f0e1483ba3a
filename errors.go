package giantbomb

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnsupportedOption = errors.New("unsupported option")
	ErrInvalidAPIKey     = errors.New("invalid API key")
	ErrNotFound          = errors.New("object not found")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// Status codes reported in the envelope's status_code field.
const (
	StatusOK             = 1
	StatusInvalidAPIKey  = 100
	StatusObjectNotFound = 101
	StatusURLFormatError = 102
	StatusJSONPCallback  = 103
	StatusFilterError    = 104
	StatusSubscriberOnly = 105
	StatusRateLimited    = 107
)

// TransportError is returned when the request could not be completed:
// DNS, connection, timeout or a non-2xx response without an error envelope.
type TransportError struct {
	Op  string // Operation that failed (e.g., "get game")
	URL string // Request URL with the API key masked
	Err error  // Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the response body is not valid JSON or is
// not shaped like an envelope.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError carries a non-success status reported by the service.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("giantbomb: error code %d: %s", e.Code, e.Message)
}

// Is maps well-known status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidAPIKey:
		return e.Code == StatusInvalidAPIKey
	case ErrNotFound:
		return e.Code == StatusObjectNotFound
	case ErrRateLimited:
		return e.Code == StatusRateLimited
	}
	return false
}

// StatusError reports a non-2xx HTTP response. Body holds whatever the
// server sent, which for this API is usually an error envelope.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: %s", e.Status)
}

// OptionError reports a list option the resource's endpoint does not accept.
type OptionError struct {
	Resource Resource
	Option   string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Resource, ErrUnsupportedOption, e.Option)
}

func (e *OptionError) Unwrap() error {
	return ErrUnsupportedOption
}
