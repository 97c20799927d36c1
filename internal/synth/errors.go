package synth

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestion   = errors.New("question text is required")
	ErrEmptyResponse   = errors.New("model returned no code")
	ErrMissingAPIKey   = errors.New("synthesizer API key is required")
	ErrUnknownProvider = errors.New("unknown synthesizer provider")
)

// Error wraps a failed model call.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed (status=%d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError attempts to unwrap an error into a synthesizer Error.
func AsError(err error) (*Error, bool) {
	var synthErr *Error
	if errors.As(err, &synthErr) {
		return synthErr, true
	}
	return nil, false
}
