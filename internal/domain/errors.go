package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrBusy          = errors.New("operation already running")
	ErrNoCandidates  = errors.New("no candidates")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindBusy          ErrorKind = "busy"
	KindNoCandidates  ErrorKind = "no_candidates"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	switch kind {
	case KindBusy:
		return errors.Is(err, ErrBusy)
	case KindNoCandidates:
		return errors.Is(err, ErrNoCandidates)
	case KindInvalidInput:
		return errors.Is(err, ErrInvalidInput)
	case KindNotFound:
		return errors.Is(err, ErrNotFound)
	case KindInvalidConfig:
		return errors.Is(err, ErrInvalidConfig)
	}
	return false
}
