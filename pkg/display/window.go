package display

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-ymaze/internal/log"
	"github.com/teslashibe/go-ymaze/pkg/debug"
	"github.com/teslashibe/go-ymaze/pkg/session"
)

// OpenCV mouse event codes.
const (
	cvEventMouseMove   = 0
	cvEventLButtonDown = 1
	cvEventLButtonUp   = 4
)

// Config controls the display window.
type Config struct {
	WindowName string
	MaskName   string
	PollDelay  time.Duration // how long PollKey lets the GUI loop run
	ShowMask   bool
	EventQueue int

	// Sink, when set, receives a copy of every rendered view it asks for.
	Sink FrameSink
}

// DefaultConfig returns the window layout used by the command.
func DefaultConfig() Config {
	return Config{
		WindowName: "Tracker",
		MaskName:   "Foreground",
		PollDelay:  time.Millisecond,
		EventQueue: 64,
	}
}

// FrameSink receives rendered frames, for example a web dashboard.
// WantsFrame is checked first so conversion only happens when needed.
type FrameSink interface {
	WantsFrame() bool
	RenderedFrame(img image.Image)
}

// Window is a session.Display backed by a HighGUI window.
type Window struct {
	cfg    Config
	win    *gocv.Window
	mask   *gocv.Window
	events chan session.MouseEvent

	mu      sync.Mutex
	closed  bool
	dropped int
}

// New opens the main window and installs the mouse handler.
func New(cfg Config) *Window {
	def := DefaultConfig()
	if cfg.WindowName == "" {
		cfg.WindowName = def.WindowName
	}
	if cfg.MaskName == "" {
		cfg.MaskName = def.MaskName
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = def.PollDelay
	}
	if cfg.EventQueue <= 0 {
		cfg.EventQueue = def.EventQueue
	}

	w := &Window{
		cfg:    cfg,
		win:    gocv.NewWindow(cfg.WindowName),
		events: make(chan session.MouseEvent, cfg.EventQueue),
	}
	w.win.SetMouseHandler(w.onMouse, nil)
	return w
}

// NewDisplay is the session.Deps constructor.
func NewDisplay(cfg Config) func() (session.Display, error) {
	return func() (session.Display, error) {
		return New(cfg), nil
	}
}

func (w *Window) onMouse(event, x, y, flags int, _ interface{}) {
	ev, ok := translateMouse(event, x, y)
	if !ok {
		return
	}
	w.enqueue(ev)
}

// enqueue never blocks the GUI thread; when the queue is full the event
// is dropped.
func (w *Window) enqueue(ev session.MouseEvent) {
	select {
	case w.events <- ev:
	default:
		w.mu.Lock()
		w.dropped++
		n := w.dropped
		w.mu.Unlock()
		debug.Log("🖱️  display: dropped mouse event %+v (%d total)\n", ev, n)
	}
}

func translateMouse(event, x, y int) (session.MouseEvent, bool) {
	var a session.MouseAction
	switch event {
	case cvEventMouseMove:
		a = session.MouseMove
	case cvEventLButtonDown:
		a = session.MouseDown
	case cvEventLButtonUp:
		a = session.MouseUp
	default:
		return session.MouseEvent{}, false
	}
	return session.MouseEvent{Action: a, X: x, Y: y}, true
}

// Show renders v and displays it. The view's frame is not modified.
func (w *Window) Show(v session.View) error {
	if w.isClosed() {
		return nil
	}
	canvas, err := Render(v)
	defer canvas.Close()
	if err != nil {
		return err
	}
	w.win.IMShow(canvas)

	if s := w.cfg.Sink; s != nil && s.WantsFrame() {
		img, err := canvas.ToImage()
		if err != nil {
			log.Debug("display: frame conversion failed", "error", err)
			return nil
		}
		s.RenderedFrame(img)
	}
	return nil
}

// ShowMask displays the foreground mask in a second window when enabled.
func (w *Window) ShowMask(mask session.Frame) error {
	if !w.cfg.ShowMask || w.isClosed() {
		return nil
	}
	mf, ok := mask.(matFrame)
	if !ok {
		return ErrFrameType
	}
	m := mf.Mat()
	if m.Empty() {
		return nil
	}
	if w.mask == nil {
		w.mask = gocv.NewWindow(w.cfg.MaskName)
	}
	w.mask.IMShow(m)
	return nil
}

// Events implements session.Display.
func (w *Window) Events() <-chan session.MouseEvent {
	return w.events
}

// WaitKey implements session.Display.
func (w *Window) WaitKey(timeout time.Duration) session.Key {
	if w.isClosed() {
		return session.KeyNone
	}
	ms := 0
	if timeout > 0 {
		ms = int(timeout / time.Millisecond)
		if ms < 1 {
			ms = 1
		}
	}
	return toKey(w.win.WaitKey(ms))
}

// PollKey implements session.Display.
func (w *Window) PollKey() session.Key {
	return w.WaitKey(w.cfg.PollDelay)
}

func toKey(code int) session.Key {
	if code < 0 {
		return session.KeyNone
	}
	return session.Key(code & 0xFF)
}

func (w *Window) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Close destroys the windows. Safe to call more than once.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	var err error
	if w.mask != nil {
		err = w.mask.Close()
	}
	if cerr := w.win.Close(); cerr != nil {
		err = cerr
	}
	return err
}
