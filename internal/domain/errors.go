package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned by report generation when the store holds no
// transactions. Callers surface it as an actionable client error rather than
// a server fault.
var ErrEmptyDataset = errors.New("no transactions found, upload some data first")

// ConfigError reports a missing credential or endpoint. It is raised before
// any network call is attempted.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return "server configuration error: missing " + e.Missing
}

// UpstreamError reports a non-success response from an external service.
// The upstream's diagnostic body is preserved for the caller.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

// StoreError wraps a failed store operation. Store failures are propagated
// to the caller as-is, never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
