package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnconfigured      = errors.New("API key is not configured")
	ErrNotFound          = errors.New("sound not found in current results")
	ErrNoPreview         = errors.New("no HQ MP3 preview available")
	ErrNoAsset           = errors.New("no suitable download URL available")
	ErrTransport         = errors.New("request to FreeSound failed")
	ErrFetchFailed       = errors.New("preview fetch failed")
	ErrMalformedResponse = errors.New("could not decode FreeSound response")
	ErrDecodeFailed      = errors.New("audio file is empty or could not be decoded")
	ErrWriteFailed       = errors.New("could not write file")
	ErrInterrupted       = errors.New("interrupted by user")
)

// SoundError wraps errors with additional context
type SoundError struct {
	Op    string // Operation that failed
	Sound string // Sound ID if applicable
	Err   error  // Underlying error
}

func (e *SoundError) Error() string {
	if e.Sound != "" {
		return fmt.Sprintf("%s failed for sound %s: %v", e.Op, e.Sound, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *SoundError) Unwrap() error {
	return e.Err
}

// NewSoundError creates a new SoundError
func NewSoundError(op, sound string, err error) *SoundError {
	return &SoundError{Op: op, Sound: sound, Err: err}
}
