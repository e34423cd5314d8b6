package session

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/teslashibe/go-ymaze/pkg/maze"
)

// Calibration prompts shown on the first frame.
const (
	TrianglePrompt = "select center of the maze and then press enter"
	SubjectPrompt  = "box select the mouse and then press enter"
)

const markerRadius = 7

// Calibration is the result of the interactive setup stage.
type Calibration struct {
	Triangle maze.Triangle
	Subject  image.Rectangle
}

// Calibrator drives the two calibration phases against the first frame:
// marking the maze center triangle, then boxing the subject.
type Calibrator struct {
	disp   Display
	cfg    Config
	logger *slog.Logger
}

// NewCalibrator creates a calibrator bound to disp.
func NewCalibrator(disp Display, cfg Config, logger *slog.Logger) *Calibrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calibrator{disp: disp, cfg: cfg, logger: logger}
}

// Run collects the triangle and the subject box. It blocks on user input
// and returns ErrAborted if the user quits or ctx is cancelled.
func (c *Calibrator) Run(ctx context.Context, first Frame) (Calibration, error) {
	tri, err := c.markTriangle(ctx, first)
	if err != nil {
		return Calibration{}, err
	}
	c.logger.Info("maze triangle marked",
		"p0", tri[0], "p1", tri[1], "p2", tri[2], "centroid", tri.Centroid())

	if err := c.confirmTriangle(ctx, first, tri); err != nil {
		return Calibration{}, err
	}

	box, err := c.selectSubject(ctx, first)
	if err != nil {
		return Calibration{}, err
	}
	c.logger.Info("subject selected", "box", box)

	return Calibration{Triangle: tri, Subject: box}, nil
}

// markTriangle keeps the last three left clicks until the user proceeds.
// Proceeding is ignored until three points exist.
func (c *Calibrator) markTriangle(ctx context.Context, first Frame) (maze.Triangle, error) {
	var clicks maze.ClickBuffer
	if err := c.disp.Show(triangleView(first, &clicks)); err != nil {
		return maze.Triangle{}, fmt.Errorf("show calibration frame: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return maze.Triangle{}, fmt.Errorf("%w: %v", ErrAborted, err)
		}

		key := c.disp.WaitKey(c.cfg.CalibrationPoll)

		changed := false
		c.drain(func(ev MouseEvent) {
			if ev.Action == MouseDown {
				clicks.Push(maze.PointFrom(ev.Point()))
				changed = true
			}
		})
		if changed {
			if err := c.disp.Show(triangleView(first, &clicks)); err != nil {
				return maze.Triangle{}, fmt.Errorf("show calibration frame: %w", err)
			}
		}

		switch {
		case key.Quit():
			return maze.Triangle{}, ErrAborted
		case key.Proceed():
			if tri, ok := clicks.Triangle(); ok {
				return tri, nil
			}
			c.logger.Debug("need three points before continuing", "points", clicks.Len())
		}
	}
}

// confirmTriangle shows the filled triangle and waits for any key.
func (c *Calibrator) confirmTriangle(ctx context.Context, first Frame, tri maze.Triangle) error {
	var v View
	v.Frame = first
	v.Overlay.text(InstructionPos, TrianglePrompt, RoleInstruction)
	v.Overlay.Polygons = append(v.Overlay.Polygons, Polygon{Points: tri.Image(), Role: RoleZone})
	if err := c.disp.Show(v); err != nil {
		return fmt.Errorf("show triangle: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrAborted, err)
		}
		key := c.disp.WaitKey(c.cfg.CalibrationPoll)
		c.drain(func(MouseEvent) {})
		if key.Quit() {
			return ErrAborted
		}
		if key != KeyNone {
			return nil
		}
	}
}

// selectSubject lets the user drag a box on the first frame. There is no
// crosshair and the drag starts at a corner, not the center.
func (c *Calibrator) selectSubject(ctx context.Context, first Frame) (image.Rectangle, error) {
	bounds := image.Rectangle{Max: first.Size()}
	var sel boxSelector

	if err := c.disp.Show(subjectView(first, sel.box)); err != nil {
		return image.Rectangle{}, fmt.Errorf("show subject frame: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return image.Rectangle{}, fmt.Errorf("%w: %v", ErrAborted, err)
		}

		key := c.disp.WaitKey(c.cfg.CalibrationPoll)

		changed := false
		c.drain(func(ev MouseEvent) {
			changed = sel.handle(ev, bounds) || changed
		})
		if changed {
			if err := c.disp.Show(subjectView(first, sel.box)); err != nil {
				return image.Rectangle{}, fmt.Errorf("show subject frame: %w", err)
			}
		}

		switch {
		case key.Quit():
			return image.Rectangle{}, ErrAborted
		case key == KeyCancel:
			return image.Rectangle{}, ErrNoSubject
		case key.Proceed():
			if !sel.box.Empty() {
				return sel.box, nil
			}
		}
	}
}

// drain hands every queued mouse event to fn without blocking.
func (c *Calibrator) drain(fn func(MouseEvent)) {
	events := c.disp.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			fn(ev)
		default:
			return
		}
	}
}

func triangleView(first Frame, clicks *maze.ClickBuffer) View {
	v := View{Frame: first}
	v.Overlay.text(InstructionPos, TrianglePrompt, RoleInstruction)
	for _, p := range clicks.Points() {
		v.Overlay.Circles = append(v.Overlay.Circles, Circle{
			Center: p.Image(),
			Radius: markerRadius,
			Filled: true,
			Role:   RoleMarker,
		})
	}
	return v
}

func subjectView(first Frame, box image.Rectangle) View {
	v := View{Frame: first}
	v.Overlay.text(InstructionPos, SubjectPrompt, RoleInstruction)
	if !box.Empty() {
		v.Overlay.Rects = append(v.Overlay.Rects, Rect{Box: box, Role: RoleSelection})
	}
	return v
}

// boxSelector turns a press-drag-release gesture into a rectangle.
type boxSelector struct {
	anchor   image.Point
	box      image.Rectangle
	dragging bool
}

// handle applies ev and reports whether the box changed.
func (s *boxSelector) handle(ev MouseEvent, bounds image.Rectangle) bool {
	p := ev.Point()
	switch ev.Action {
	case MouseDown:
		s.anchor = p
		s.dragging = true
		s.box = image.Rectangle{}
		return true
	case MouseMove:
		if !s.dragging {
			return false
		}
	case MouseUp:
		if !s.dragging {
			return false
		}
		s.dragging = false
	default:
		return false
	}

	s.box = image.Rectangle{Min: s.anchor, Max: p}.Canon().Intersect(bounds)
	return true
}
