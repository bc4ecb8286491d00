package confluence

import (
	"errors"
	"fmt"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// ErrMissingBaseURL indicates no store base URL was configured.
var ErrMissingBaseURL = errors.New("confluence: base URL is required")

// RateLimitError represents a rate limit exceeded error with retry time.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("confluence: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// Is makes the error match domain.ErrRateLimited in errors.Is chains.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-2xx API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("confluence: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
