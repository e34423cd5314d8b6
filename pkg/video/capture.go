// Package video reads video files frame by frame with OpenCV and hosts
// the background-subtraction model run alongside tracking.
package video

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-ymaze/internal/log"
	"github.com/teslashibe/go-ymaze/pkg/session"
)

// ErrNotOpened is returned when OpenCV cannot open the file for decoding.
var ErrNotOpened = errors.New("video: capture not opened")

// Frame is a decoded frame owned by the caller.
type Frame struct {
	mat    gocv.Mat
	index  int
	closed bool
}

// NewFrame takes ownership of mat.
func NewFrame(mat gocv.Mat, index int) *Frame {
	return &Frame{mat: mat, index: index}
}

// Mat returns the underlying matrix. It is invalid after Close.
func (f *Frame) Mat() gocv.Mat {
	return f.mat
}

// Index returns the 1-based decode position, 0 for derived frames.
func (f *Frame) Index() int {
	return f.index
}

// Size implements session.Frame.
func (f *Frame) Size() image.Point {
	return image.Pt(f.mat.Cols(), f.mat.Rows())
}

// Close releases the matrix. Safe to call more than once.
func (f *Frame) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.mat.Close()
}

// Info describes an opened video.
type Info struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// Capture decodes a video file sequentially.
type Capture struct {
	cap  *gocv.VideoCapture
	info Info

	mu     sync.Mutex
	index  int
	closed bool
}

// Open opens path for decoding.
func Open(path string) (*Capture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}

	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("video: open %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotOpened, path)
	}

	return &Capture{
		cap: vc,
		info: Info{
			Width:      int(vc.Get(gocv.VideoCaptureFrameWidth)),
			Height:     int(vc.Get(gocv.VideoCaptureFrameHeight)),
			FPS:        vc.Get(gocv.VideoCaptureFPS),
			FrameCount: int(vc.Get(gocv.VideoCaptureFrameCount)),
		},
	}, nil
}

// OpenSource is a session.Opener backed by Open.
func OpenSource(path string) (session.Source, error) {
	c, err := Open(path)
	if err != nil {
		return nil, err
	}
	info := c.Info()
	log.Debug("video opened", "path", path,
		"size", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"fps", info.FPS, "frames", info.FrameCount)
	return c, nil
}

// Info returns the container metadata reported by the decoder.
// FrameCount is an estimate for some codecs.
func (c *Capture) Info() Info {
	return c.info
}

// Next implements session.Source.
func (c *Capture) Next() (session.Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, false
	}
	c.index++
	return NewFrame(mat, c.index), true
}

// Close releases the decoder. Safe to call more than once.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.cap.Close()
}
