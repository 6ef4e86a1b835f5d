package llm

import (
	"errors"
	"fmt"
)

// ErrorKind tags a backend failure for the retry/fallback orchestrator.
// Adapters map their SDK's native errors into this taxonomy; nothing above
// them ever inspects provider-specific error shapes.
type ErrorKind int

const (
	// Transient marks rate-limit and capacity-exhaustion failures; these
	// are the only retryable errors.
	Transient ErrorKind = iota
	// Permanent marks everything else; it propagates immediately.
	Permanent
)

// ErrExhausted is returned after the primary model, every fallback model
// and the alternate provider have all failed.
var ErrExhausted = errors.New("all completion backends exhausted")

// BackendError is a provider failure mapped into the taxonomy.
type BackendError struct {
	Kind     ErrorKind
	Provider string
	Model    string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Provider, e.Model, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable capacity failure.
func IsTransient(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == Transient
}

// ConfigError means the completion client cannot be constructed: missing
// credentials or an unknown provider. Raised at startup, never per call.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "llm config: " + e.Reason
}
