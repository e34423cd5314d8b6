package session

import (
	"image"
	"sync"
	"time"
)

// MockFrame is a Frame with no pixels, for tests.
type MockFrame struct {
	W, H   int
	Closed bool
}

// Size implements Frame.
func (f *MockFrame) Size() image.Point { return image.Pt(f.W, f.H) }

// Close implements Frame.
func (f *MockFrame) Close() error {
	f.Closed = true
	return nil
}

// MockSource replays a fixed number of frames.
type MockSource struct {
	Frames []*MockFrame
	pos    int
	Closed bool
}

// NewMockSource creates a source of n frames sized w×h.
func NewMockSource(n, w, h int) *MockSource {
	s := &MockSource{Frames: make([]*MockFrame, n)}
	for i := range s.Frames {
		s.Frames[i] = &MockFrame{W: w, H: h}
	}
	return s
}

// Next implements Source.
func (s *MockSource) Next() (Frame, bool) {
	if s.Closed || s.pos >= len(s.Frames) {
		return nil, false
	}
	f := s.Frames[s.pos]
	s.pos++
	return f, true
}

// Close implements Source.
func (s *MockSource) Close() error {
	s.Closed = true
	return nil
}

// MockTracker implements Tracker with scripted behaviour.
type MockTracker struct {
	// NameValue is returned by Name.
	NameValue string

	// InitFunc is called when Init is invoked.
	InitFunc func(frame Frame, box image.Rectangle) error

	// UpdateFunc is called with the 1-based update count.
	UpdateFunc func(n int, frame Frame) (image.Rectangle, bool)

	mu      sync.Mutex
	inits   int
	updates int
	closed  bool
}

// NewMockTracker returns a tracker that always reports box.
func NewMockTracker(name string, box image.Rectangle) *MockTracker {
	return &MockTracker{
		NameValue: name,
		InitFunc:  func(Frame, image.Rectangle) error { return nil },
		UpdateFunc: func(int, Frame) (image.Rectangle, bool) {
			return box, true
		},
	}
}

// Name implements Tracker.
func (m *MockTracker) Name() string { return m.NameValue }

// Init implements Tracker.
func (m *MockTracker) Init(frame Frame, box image.Rectangle) error {
	m.mu.Lock()
	m.inits++
	m.mu.Unlock()
	if m.InitFunc == nil {
		return nil
	}
	return m.InitFunc(frame, box)
}

// Update implements Tracker.
func (m *MockTracker) Update(frame Frame) (image.Rectangle, bool) {
	m.mu.Lock()
	m.updates++
	n := m.updates
	m.mu.Unlock()
	if m.UpdateFunc == nil {
		return image.Rectangle{}, false
	}
	return m.UpdateFunc(n, frame)
}

// Close implements Tracker.
func (m *MockTracker) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Inits returns how many times Init was called.
func (m *MockTracker) Inits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inits
}

// Updates returns how many times Update was called.
func (m *MockTracker) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

// MockSubtractor counts applied frames and returns empty masks.
type MockSubtractor struct {
	Applied int
	Masks   []*MockFrame
	Closed  bool
}

// Apply implements Subtractor.
func (m *MockSubtractor) Apply(frame Frame) Frame {
	m.Applied++
	sz := frame.Size()
	mask := &MockFrame{W: sz.X, H: sz.Y}
	m.Masks = append(m.Masks, mask)
	return mask
}

// Close implements Subtractor.
func (m *MockSubtractor) Close() error {
	m.Closed = true
	return nil
}

// Step is one scripted display interaction: the mouse events delivered
// during a wait, followed by the key that wait returns.
type Step struct {
	Events []MouseEvent
	Key    Key
}

// MockDisplay replays scripted input and records every shown view.
// Once the script runs out, waits return KeyNone.
type MockDisplay struct {
	Script []Step
	Polls  []Key
	Views  []View
	Masks  int
	Closed bool
	events chan MouseEvent
	waits  int
	polled int
}

// NewMockDisplay creates a display that plays script for WaitKey calls
// and polls for PollKey calls.
func NewMockDisplay(script []Step, polls ...Key) *MockDisplay {
	return &MockDisplay{
		Script: script,
		Polls:  polls,
		events: make(chan MouseEvent, 64),
	}
}

// Show implements Display.
func (d *MockDisplay) Show(v View) error {
	d.Views = append(d.Views, v)
	return nil
}

// ShowMask implements MaskViewer.
func (d *MockDisplay) ShowMask(Frame) error {
	d.Masks++
	return nil
}

// Events implements Display.
func (d *MockDisplay) Events() <-chan MouseEvent { return d.events }

// WaitKey implements Display.
func (d *MockDisplay) WaitKey(time.Duration) Key {
	if d.waits >= len(d.Script) {
		return KeyNone
	}
	step := d.Script[d.waits]
	d.waits++
	for _, ev := range step.Events {
		d.events <- ev
	}
	return step.Key
}

// PollKey implements Display.
func (d *MockDisplay) PollKey() Key {
	if d.polled >= len(d.Polls) {
		return KeyNone
	}
	k := d.Polls[d.polled]
	d.polled++
	return k
}

// Close implements Display.
func (d *MockDisplay) Close() error {
	d.Closed = true
	return nil
}

// LastView returns the most recent view, or an empty one.
func (d *MockDisplay) LastView() View {
	if len(d.Views) == 0 {
		return View{}
	}
	return d.Views[len(d.Views)-1]
}

// MockNotifier records messages.
type MockNotifier struct {
	Notes  []string
	Alerts []string
}

// Notify implements Notifier.
func (n *MockNotifier) Notify(title, message string) {
	n.Notes = append(n.Notes, title+": "+message)
}

// Alert implements Notifier.
func (n *MockNotifier) Alert(title, message string) {
	n.Alerts = append(n.Alerts, title+": "+message)
}
