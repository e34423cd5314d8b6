package session

import "image"

// Key is a key code as reported by the display. KeyNone means no key.
type Key int

// Key codes the session reacts to.
const (
	KeyNone     Key = -1
	KeyLineFeed Key = 10
	KeyEnter    Key = 13
	KeyEscape   Key = 27
	KeySpace    Key = 32
	KeyCancel   Key = 'c'
	KeyQuit     Key = 'q'
)

// Proceed reports whether k confirms the current calibration step.
func (k Key) Proceed() bool {
	return k == KeyEnter || k == KeyLineFeed || k == KeySpace
}

// Quit reports whether k asks to abandon the run.
func (k Key) Quit() bool {
	return k == KeyEscape || k == KeyQuit
}

// MouseAction identifies what happened in a MouseEvent.
type MouseAction int

// Mouse actions delivered by the display.
const (
	MouseMove MouseAction = iota
	MouseDown
	MouseUp
)

// MouseEvent is a left-button mouse event in frame coordinates.
type MouseEvent struct {
	Action MouseAction
	X, Y   int
}

// Point returns the event position.
func (e MouseEvent) Point() image.Point {
	return image.Pt(e.X, e.Y)
}
