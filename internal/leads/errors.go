package leads

import "errors"

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrStorageFailure wraps repository failures that should surface to
	// the caller as a retry-later condition
	ErrStorageFailure = errors.New("lead storage failure")
)
