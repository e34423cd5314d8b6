package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-ymaze/pkg/maze"
)

// RunContext holds everything that lives for exactly one video run.
// It is owned by the goroutine executing Run and never shared.
type RunContext struct {
	ID        string
	Path      string
	Algorithm string
	BackSub   bool
	StartedAt time.Time

	Triangle maze.Triangle
	Box      image.Rectangle
	Tally    maze.Tally

	Logger *slog.Logger

	calibrated bool
}

// NewRunContext creates a fresh context for the video at path.
func NewRunContext(cfg Config, path string, logger *slog.Logger) *RunContext {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &RunContext{
		ID:        id,
		Path:      path,
		Algorithm: cfg.Algorithm,
		BackSub:   cfg.BackgroundSubtraction,
		StartedAt: time.Now(),
		Logger:    logger.With("run", id),
	}
}

// Apply stores the calibration result. The triangle is immutable for the
// rest of the run.
func (rc *RunContext) Apply(cal Calibration) {
	rc.Triangle = cal.Triangle
	rc.Box = cal.Subject
	rc.calibrated = true
}

// Calibrated reports whether Apply has been called.
func (rc *RunContext) Calibrated() bool {
	return rc.calibrated
}

// Info returns a read-only snapshot for observers.
func (rc *RunContext) Info() RunInfo {
	return RunInfo{
		ID:        rc.ID,
		Path:      rc.Path,
		Algorithm: rc.Algorithm,
		BackSub:   rc.BackSub,
		StartedAt: rc.StartedAt,
		Triangle:  rc.Triangle,
		Subject:   rc.Box,
	}
}

// RunInfo describes a calibrated run.
type RunInfo struct {
	ID        string
	Path      string
	Algorithm string
	BackSub   bool
	StartedAt time.Time
	Triangle  maze.Triangle
	Subject   image.Rectangle
}

// Deps are the collaborators a run needs. NewSubtractor is only called
// when background subtraction is enabled.
type Deps struct {
	Open          Opener
	NewTracker    func() (Tracker, error)
	NewSubtractor func() (Subtractor, error)
	NewDisplay    func() (Display, error)
	Notifier      Notifier
	Observers     []Observer
	Logger        *slog.Logger
}

// OpenErrorTitle and SummaryTitle title the user-visible messages.
const (
	OpenErrorTitle = "Could not open the input video"
	SummaryTitle   = "Result"
)

// Run executes one full run against the video at path: open, calibrate,
// track to the end and report the tally.
//
// A video that cannot be opened is reported through the notifier and
// returned as a *SourceError before any frame is processed. When the user
// quits early, ErrAborted is returned and no summary is emitted.
func Run(ctx context.Context, cfg Config, path string, deps Deps) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rc := NewRunContext(cfg, path, deps.Logger)
	log := rc.Logger

	tracker, err := deps.NewTracker()
	if err != nil {
		return nil, fmt.Errorf("create %s tracker: %w", cfg.Algorithm, err)
	}
	defer tracker.Close()

	src, err := deps.Open(path)
	if err != nil {
		deps.Notifier.Alert(OpenErrorTitle, path)
		return nil, &SourceError{Path: path, Err: err}
	}
	defer src.Close()

	first, ok := src.Next()
	if !ok {
		deps.Notifier.Alert(OpenErrorTitle, path)
		return nil, &SourceError{Path: path, Err: ErrSourceEmpty}
	}
	defer first.Close()

	var sub Subtractor
	if cfg.BackgroundSubtraction {
		sub, err = deps.NewSubtractor()
		if err != nil {
			return nil, fmt.Errorf("create background subtractor: %w", err)
		}
		defer sub.Close()
	}

	disp, err := deps.NewDisplay()
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}
	defer disp.Close()

	log.Info("run started", "path", path, "tracker", tracker.Name(), "backsub", cfg.BackgroundSubtraction)

	cal, err := NewCalibrator(disp, cfg, log).Run(ctx, first)
	if err != nil {
		return nil, err
	}
	rc.Apply(cal)

	if err := tracker.Init(first, cal.Subject); err != nil {
		return nil, fmt.Errorf("init %s tracker: %w", tracker.Name(), err)
	}
	for _, o := range deps.Observers {
		o.Calibrated(rc.Info())
	}

	sum, err := NewLoop(rc, src, tracker, sub, disp, deps.Observers...).Run(ctx)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			log.Info("run aborted by user")
		}
		return nil, err
	}

	// Release the video and window before reporting.
	src.Close()
	disp.Close()

	for _, o := range deps.Observers {
		o.Finished(sum)
	}
	deps.Notifier.Notify(SummaryTitle, sum.String())
	return &sum, nil
}
