package ymaze

import (
	"context"
	"fmt"

	"github.com/teslashibe/go-ymaze/internal/log"
	"github.com/teslashibe/go-ymaze/pkg/debug"
	"github.com/teslashibe/go-ymaze/pkg/display"
	"github.com/teslashibe/go-ymaze/pkg/session"
	"github.com/teslashibe/go-ymaze/pkg/tracking"
	"github.com/teslashibe/go-ymaze/pkg/video"
	"github.com/teslashibe/go-ymaze/pkg/web"
)

// App runs one tracking session against a video file.
type App struct {
	config   Config
	alg      tracking.Algorithm
	notifier session.Notifier

	// Web dashboard, nil unless a port is configured
	webServer *web.Server
}

// New creates an App with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Enabled = cfg.Debug
	debug.Frames = cfg.DebugFrames

	return &App{
		config:   cfg,
		alg:      tracking.Algorithm(cfg.Session.Algorithm),
		notifier: NewConsoleNotifier(),
	}, nil
}

// Init starts optional components.
// Call this after New() and before Run().
func (a *App) Init() error {
	log.Info("Y-maze tracker", "tracker", a.alg, "backsub", a.config.Session.BackgroundSubtraction)
	if debug.Enabled {
		log.Debug("debug mode enabled")
	}

	if a.config.Web.Enabled() {
		a.webServer = web.NewServer(a.config.Web, web.WithMaskRatio(video.ForegroundRatio))
		a.webServer.StartAsync()
		a.config.Display.Sink = a.webServer
	}
	return nil
}

// Run executes the session. It returns session.ErrAborted when the user
// quits before the end of the video.
func (a *App) Run(ctx context.Context) (*session.Summary, error) {
	sum, err := session.Run(ctx, a.config.Session, a.config.Video, a.deps())
	if err != nil {
		return nil, err
	}
	log.Info("frame timing",
		"mean_ms", fmt.Sprintf("%.2f", sum.FrameTime.Mean),
		"stddev_ms", fmt.Sprintf("%.2f", sum.FrameTime.StdDev),
		"max_ms", fmt.Sprintf("%.2f", sum.FrameTime.Max))
	return sum, nil
}

func (a *App) deps() session.Deps {
	d := session.Deps{
		Open: video.OpenSource,
		NewTracker: func() (session.Tracker, error) {
			return tracking.New(a.alg)
		},
		NewSubtractor: video.NewSubtractor,
		NewDisplay:    display.NewDisplay(a.config.Display),
		Notifier:      a.notifier,
		Logger:        log.L(),
	}
	if a.webServer != nil {
		d.Observers = append(d.Observers, a.webServer)
	}
	return d
}

// Shutdown releases the dashboard.
func (a *App) Shutdown() {
	if a.webServer != nil {
		if err := a.webServer.Shutdown(); err != nil {
			log.Warn("dashboard shutdown", "error", err)
		}
	}
}
