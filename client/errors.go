package client

import "fmt"

// ConfigurationError reports mutually exclusive or invalid request
// parameters. It is a caller bug and is never retried.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// UpstreamError reports a failed call to the Transport NSW API: either a
// non-2xx status (StatusCode set) or a transport-level failure such as a
// timeout (Err set). The caller may retry on its own schedule.
type UpstreamError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("upstream request %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
