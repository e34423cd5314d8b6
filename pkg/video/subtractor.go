package video

import (
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-ymaze/pkg/session"
)

// Subtractor is a MOG2 background model. Its masks are advisory: they are
// shown and logged but never reach the classifier.
type Subtractor struct {
	mog    gocv.BackgroundSubtractorMOG2
	closed bool
}

// NewSubtractor creates a MOG2 model with OpenCV's default history and
// variance threshold.
func NewSubtractor() (session.Subtractor, error) {
	return &Subtractor{mog: gocv.NewBackgroundSubtractorMOG2()}, nil
}

// Apply folds frame into the model and returns the foreground mask.
// Frames without a matrix yield an empty mask.
func (s *Subtractor) Apply(frame session.Frame) session.Frame {
	mask := gocv.NewMat()
	mf, ok := frame.(interface{ Mat() gocv.Mat })
	if !ok || s.closed {
		return NewFrame(mask, 0)
	}
	s.mog.Apply(mf.Mat(), &mask)
	return NewFrame(mask, 0)
}

// Close releases the model. Safe to call more than once.
func (s *Subtractor) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.mog.Close()
}

// ForegroundRatio returns the fraction of non-zero pixels in mask, or 0
// for masks without a matrix or pixels.
func ForegroundRatio(mask session.Frame) float64 {
	mf, ok := mask.(interface{ Mat() gocv.Mat })
	if !ok {
		return 0
	}
	m := mf.Mat()
	if m.Empty() {
		return 0
	}
	total := m.Rows() * m.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(m)) / float64(total)
}
