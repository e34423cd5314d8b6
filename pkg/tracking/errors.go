package tracking

import "errors"

var (
	// ErrUnknownAlgorithm is returned for names that are not registered.
	ErrUnknownAlgorithm = errors.New("tracking: unknown algorithm")

	// ErrUnavailable is returned for algorithms this build cannot construct.
	ErrUnavailable = errors.New("tracking: algorithm unavailable")

	// ErrInitFailed is returned when the tracker rejects the initial box.
	ErrInitFailed = errors.New("tracking: init failed")

	// ErrAlreadyInitialized is returned when Init is called twice.
	ErrAlreadyInitialized = errors.New("tracking: already initialized")

	// ErrFrameType is returned for frames that carry no OpenCV matrix.
	ErrFrameType = errors.New("tracking: frame has no gocv.Mat")
)
