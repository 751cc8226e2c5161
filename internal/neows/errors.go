package neows

import (
	"errors"
	"fmt"
)

// ErrUpstream matches any UpstreamError with errors.Is.
var ErrUpstream = errors.New("upstream error")

// UpstreamError is returned when the feed answers with a non-200 status.
type UpstreamError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("unexpected status code %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
