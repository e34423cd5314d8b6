package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceEmpty is returned when a video opens but yields no frame.
	ErrSourceEmpty = errors.New("session: video has no frames")

	// ErrAborted is returned when the user closes the run early.
	ErrAborted = errors.New("session: run aborted")

	// ErrNoSubject is returned when subject selection is cancelled.
	ErrNoSubject = errors.New("session: no subject selected")

	// ErrNotCalibrated is returned when the loop starts without calibration.
	ErrNotCalibrated = errors.New("session: run not calibrated")
)

// SourceError reports a video that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("session: could not open video %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}
