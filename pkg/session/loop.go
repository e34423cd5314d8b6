package session

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/teslashibe/go-ymaze/pkg/debug"
	"github.com/teslashibe/go-ymaze/pkg/maze"
)

// FailureNotice is drawn on frames where the tracker lost the subject.
const FailureNotice = "Tracking failure detected"

const centerRadius = 3

// State is the tracking loop state.
type State int

// Loop states.
const (
	StateRunning State = iota
	StateExhausted
)

func (s State) String() string {
	if s == StateExhausted {
		return "exhausted"
	}
	return "running"
}

// FrameResult describes one processed frame.
type FrameResult struct {
	Index   int
	Tracked bool
	Box     image.Rectangle // last known box; unchanged on failure
	Center  maze.Point      // valid when Tracked
	Zone    maze.Zone       // valid when Tracked
	Tally   maze.Tally      // snapshot after this frame
	Mask    Frame           // foreground mask, nil unless enabled; valid during the callback only
	Elapsed time.Duration
}

// Label returns the zone label, or "" when tracking failed.
func (r FrameResult) Label() string {
	if !r.Tracked {
		return ""
	}
	return r.Zone.String()
}

// Loop is the per-frame tracking state machine. It owns the tracker,
// the optional subtractor and the run's tally for the duration of Run.
type Loop struct {
	rc        *RunContext
	src       Source
	tracker   Tracker
	sub       Subtractor
	disp      Display
	observers []Observer
	logger    *slog.Logger

	state     State
	index     int
	quit      bool
	failing   bool
	durations []float64
}

// NewLoop creates a loop for a calibrated run. sub may be nil.
func NewLoop(rc *RunContext, src Source, tracker Tracker, sub Subtractor, disp Display, observers ...Observer) *Loop {
	return &Loop{
		rc:        rc,
		src:       src,
		tracker:   tracker,
		sub:       sub,
		disp:      disp,
		observers: observers,
		logger:    rc.Logger,
	}
}

// State returns the current loop state.
func (l *Loop) State() State {
	return l.state
}

// Run processes frames until the source is exhausted. It returns
// ErrAborted, and no summary, when the user quits or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) (Summary, error) {
	if !l.rc.Calibrated() {
		return Summary{}, ErrNotCalibrated
	}

	for l.state == StateRunning {
		if l.quit {
			return Summary{}, ErrAborted
		}
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("%w: %v", ErrAborted, err)
		}
		if err := l.step(); err != nil {
			return Summary{}, err
		}
	}

	sum := l.summary()
	l.logger.Info("video exhausted",
		"frames", sum.Frames,
		"tracked", sum.Tracked,
		"failed", sum.Failed,
		"tally", sum.Tally.String(),
		"frame_ms_mean", sum.FrameTime.Mean,
		"frame_ms_stddev", sum.FrameTime.StdDev,
	)
	return sum, nil
}

// step decodes and processes one frame.
func (l *Loop) step() error {
	frame, ok := l.src.Next()
	if !ok {
		l.state = StateExhausted
		return nil
	}
	defer frame.Close()

	start := time.Now()
	l.index++
	res := FrameResult{Index: l.index}

	if l.sub != nil {
		res.Mask = l.sub.Apply(frame)
		if res.Mask != nil {
			defer res.Mask.Close()
		}
	}

	if box, ok := l.tracker.Update(frame); ok {
		res.Tracked = true
		l.rc.Box = box
		res.Center = maze.BoxCenter(box)
		res.Zone = maze.Classify(res.Center, l.rc.Triangle)
		l.rc.Tally.Add(res.Zone)
		if l.failing {
			l.logger.Info("tracking recovered", "frame", l.index)
			l.failing = false
		}
	} else if !l.failing {
		l.logger.Warn("tracking failure", "frame", l.index, "last_box", l.rc.Box)
		l.failing = true
	}
	res.Box = l.rc.Box
	res.Tally = l.rc.Tally

	if err := l.disp.Show(l.view(frame, res)); err != nil {
		return fmt.Errorf("show frame %d: %w", l.index, err)
	}
	if res.Mask != nil {
		if mv, ok := l.disp.(MaskViewer); ok {
			if err := mv.ShowMask(res.Mask); err != nil {
				l.logger.Debug("show mask failed", "frame", l.index, "error", err)
			}
		}
	}

	res.Elapsed = time.Since(start)
	l.durations = append(l.durations, float64(res.Elapsed)/float64(time.Millisecond))

	debug.FrameLog("frame %d tracked=%v zone=%q tally=%s\n",
		res.Index, res.Tracked, res.Label(), res.Tally.String())
	for _, o := range l.observers {
		o.FrameProcessed(res)
	}

	if l.disp.PollKey().Quit() {
		l.quit = true
	}
	return nil
}

// view builds the annotated display for res.
func (l *Loop) view(frame Frame, res FrameResult) View {
	v := View{Frame: frame}
	if res.Tracked {
		v.Overlay.Rects = append(v.Overlay.Rects, Rect{Box: res.Box, Role: RoleSubject})
		v.Overlay.Circles = append(v.Overlay.Circles, Circle{
			Center: res.Center.Image(),
			Radius: centerRadius,
			Role:   RoleCenter,
		})
	} else {
		v.Overlay.text(InstructionPos, FailureNotice, RoleInstruction)
	}
	v.Overlay.text(TitlePos, l.tracker.Name()+" Tracker", RoleStatus)
	v.Overlay.text(CaptionPos, fmt.Sprintf("Frame:%d, Arm:%s", res.Index, res.Label()), RoleStatus)
	return v
}

func (l *Loop) summary() Summary {
	return Summary{
		RunID:     l.rc.ID,
		Tracker:   l.tracker.Name(),
		Frames:    l.index,
		Tracked:   l.rc.Tally.Total(),
		Failed:    l.index - l.rc.Tally.Total(),
		Tally:     l.rc.Tally,
		FrameTime: newTiming(l.durations),
	}
}
