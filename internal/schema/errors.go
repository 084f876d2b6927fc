package schema

import (
	"errors"
	"fmt"
)

// Kind classifies a SetupError.
type Kind string

const (
	KindUsage          Kind = "usage"
	KindFile           Kind = "file"
	KindEmpty          Kind = "empty"
	KindIdentityColumn Kind = "identity_column"
	KindColumn         Kind = "column"
)

// SetupError is a fatal problem with the run's input, detected before any
// network request is issued.
type SetupError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError builds a SetupError of the given kind.
func NewSetupError(kind Kind, path string, err error) *SetupError {
	return &SetupError{Kind: kind, Path: path, Err: err}
}

// IsSetupError reports whether err wraps a SetupError.
func IsSetupError(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}
