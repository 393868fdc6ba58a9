package extraction

import "fmt"

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind string

const (
	ErrorKindTransient ErrorKind = "transient" // worth retrying: rate limits, timeouts, 5xx
	ErrorKindPermanent ErrorKind = "permanent" // fail fast: auth failures, malformed requests
)

// ProviderError wraps a provider failure with its retry classification.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is worth retrying.
func (e *ProviderError) Transient() bool {
	return e.Kind == ErrorKindTransient
}

// TimeoutError marks a per-call deadline overrun. It is always classified
// transient; repeated timeouts exhaust the retry budget like any other
// transient failure.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	return "extraction call deadline exceeded"
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ExtractionFailedError is the terminal failure for a transcript once the
// retry budget is exhausted. No partial results are persisted behind it.
type ExtractionFailedError struct {
	Attempts int
	Err      error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("extraction failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Err
}

// ValidationError explains why a single raw entry was discarded. It is
// recorded as a diagnostic and never fails the batch.
type ValidationError struct {
	Index int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %d: missing required field %q", e.Index, e.Field)
}
