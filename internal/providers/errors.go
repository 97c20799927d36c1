package providers

import (
	"errors"
	"fmt"
)

// DecodeError reports a source record that could not be decoded.
type DecodeError struct {
	Provider string
	File     string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: decode raw game: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: decode %s: %v", e.Provider, e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AsDecodeError attempts to unwrap an error into a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr, true
	}
	return nil, false
}
