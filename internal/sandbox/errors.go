package sandbox

import (
	"errors"
	"fmt"
)

// Kind classifies why an analysis program failed.
type Kind string

const (
	KindUnsafe        Kind = "unsafe"
	KindCompile       Kind = "compile"
	KindRuntime       Kind = "runtime"
	KindInvalidResult Kind = "invalid_result"
	KindTimeout       Kind = "timeout"
)

// ErrTimeout is wrapped by every KindTimeout error.
var ErrTimeout = errors.New("analysis program exceeded its time limit")

// ExecError reports a failed analysis program together with its source.
type ExecError struct {
	Kind Kind
	Code string
	Err  error
}

func (e *ExecError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("analysis %s error", e.Kind)
	}
	return fmt.Sprintf("analysis %s error: %v", e.Kind, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// AsExecError attempts to unwrap an error into an ExecError.
func AsExecError(err error) (*ExecError, bool) {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr, true
	}
	return nil, false
}

func newExecError(kind Kind, code string, err error) *ExecError {
	return &ExecError{Kind: kind, Code: code, Err: err}
}
