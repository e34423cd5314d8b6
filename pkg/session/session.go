package session

import (
	"image"
	"time"
)

// Frame is one decoded video frame. Pixel storage belongs to the
// implementation and is released by Close.
type Frame interface {
	Size() image.Point
	Close() error
}

// Source yields frames sequentially. No seeking is required.
// Close must be safe to call more than once.
type Source interface {
	// Next decodes the next frame. ok is false once the video is exhausted.
	Next() (frame Frame, ok bool)
	Close() error
}

// Opener opens a video file for sequential reading.
type Opener func(path string) (Source, error)

// Tracker follows a single object across frames.
//
// Init is called exactly once, after calibration, before the first Update.
// Update returns the refined box and whether tracking succeeded on frame.
// On failure the returned box must be ignored.
type Tracker interface {
	Name() string
	Init(frame Frame, box image.Rectangle) error
	Update(frame Frame) (image.Rectangle, bool)
	Close() error
}

// Subtractor is a stateful foreground/background model. Apply folds frame
// into the model and returns the foreground mask, which the caller closes.
type Subtractor interface {
	Apply(frame Frame) Frame
	Close() error
}

// Display is the on-screen window used for calibration and playback.
//
// Mouse activity is delivered on Events; the display only enqueues, the
// calibration stage owns all state derived from clicks. Events are
// typically produced while WaitKey or PollKey is running.
// Close must be safe to call more than once.
type Display interface {
	Show(v View) error
	Events() <-chan MouseEvent
	// WaitKey waits up to timeout for a key press. A zero timeout waits
	// until a key is pressed. KeyNone is returned on timeout.
	WaitKey(timeout time.Duration) Key
	// PollKey checks for a key press without blocking the pipeline for
	// more than a fixed short interval.
	PollKey() Key
	Close() error
}

// MaskViewer is implemented by displays that can show the foreground mask
// next to the annotated frame.
type MaskViewer interface {
	ShowMask(mask Frame) error
}

// Notifier surfaces run-level messages to the user: the fatal open error
// and the final summary.
type Notifier interface {
	Notify(title, message string)
	Alert(title, message string)
}

// Observer receives a read-only view of the run as it progresses.
// Calls happen on the loop goroutine and must not block.
type Observer interface {
	Calibrated(info RunInfo)
	FrameProcessed(res FrameResult)
	Finished(sum Summary)
}
