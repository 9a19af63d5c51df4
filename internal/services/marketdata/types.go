package marketdata

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned by clients whose API key is missing. The
// router reports these feeds as unavailable instead of failing the question.
var ErrNotConfigured = errors.New("api key not configured")

// ErrNoData is returned when the upstream responded but had nothing for the
// symbol.
var ErrNoData = errors.New("no data for symbol")

// APIError describes a non-200 response from an upstream API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// RateLimitError indicates the upstream rejected the call for quota reasons,
// or the local limiter could not admit it before the context expired.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
