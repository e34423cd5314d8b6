package tracking

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-ymaze/pkg/debug"
	"github.com/teslashibe/go-ymaze/pkg/session"
)

// MatFrame is implemented by frames backed by an OpenCV matrix,
// such as *video.Frame.
type MatFrame interface {
	Mat() gocv.Mat
}

// Tracker wraps a gocv.Tracker behind the session.Tracker contract.
type Tracker struct {
	alg Algorithm
	cv  gocv.Tracker

	mu          sync.Mutex
	initialized bool
	closed      bool
}

// New constructs the tracker registered for alg.
func New(alg Algorithm) (*Tracker, error) {
	f, ok := factory(alg)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	cv, err := f()
	if err != nil {
		return nil, err
	}
	return Wrap(alg, cv), nil
}

// Wrap adapts an existing gocv tracker.
func Wrap(alg Algorithm, cv gocv.Tracker) *Tracker {
	return &Tracker{alg: alg, cv: cv}
}

var _ session.Tracker = (*Tracker)(nil)

// Name returns the algorithm name.
func (t *Tracker) Name() string {
	return string(t.alg)
}

// Init seeds the tracker with the subject box on frame.
func (t *Tracker) Init(frame session.Frame, box image.Rectangle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return ErrAlreadyInitialized
	}
	mf, ok := frame.(MatFrame)
	if !ok {
		return ErrFrameType
	}
	if box.Empty() {
		return fmt.Errorf("%w: empty box", ErrInitFailed)
	}
	if !t.cv.Init(mf.Mat(), box) {
		return fmt.Errorf("%w: %s rejected box %v", ErrInitFailed, t.alg, box)
	}
	t.initialized = true
	return nil
}

// Update refines the box on frame. It reports false when the algorithm
// lost the subject, when Init has not succeeded, or when frame carries
// no matrix.
func (t *Tracker) Update(frame session.Frame) (image.Rectangle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.closed {
		return image.Rectangle{}, false
	}
	mf, ok := frame.(MatFrame)
	if !ok {
		debug.Log("tracking: %T is not a MatFrame\n", frame)
		return image.Rectangle{}, false
	}
	return t.cv.Update(mf.Mat())
}

// Close releases the OpenCV tracker. Safe to call more than once.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	return t.cv.Close()
}
