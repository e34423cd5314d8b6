// Y-maze tracker - counts how many frames a mouse spends in each arm
// of a Y maze, using a user-selected OpenCV tracker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-ymaze/internal/config"
	"github.com/teslashibe/go-ymaze/internal/log"
	"github.com/teslashibe/go-ymaze/pkg/session"
	"github.com/teslashibe/go-ymaze/pkg/tracking"
	"github.com/teslashibe/go-ymaze/pkg/ymaze"
)

func main() {
	cfg, level := parseFlags()
	log.Init(level)

	if cfg.Video == "" {
		path, err := ymaze.PromptPath(os.Stdin, os.Stdout)
		if err != nil {
			fatalf("❌ %v", err)
		}
		if path == "" {
			return // cancelled
		}
		cfg.Video = path
	}

	app, err := ymaze.New(cfg)
	if err != nil {
		fatalf("❌ Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		fatalf("❌ Initialization failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	_, err = app.Run(ctx)
	cancel()
	app.Shutdown()

	var srcErr *session.SourceError
	switch {
	case err == nil:
	case errors.Is(err, session.ErrAborted), errors.Is(err, session.ErrNoSubject):
		// User closed the run; nothing to report.
	case errors.As(err, &srcErr):
		// Already shown by the notifier.
		os.Exit(1)
	default:
		fatalf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration plus the
// log level. Environment variables provide defaults; flags win.
func parseFlags() (ymaze.Config, string) {
	cfg := ymaze.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	debugFrames := flag.Bool("debug-frames", false, "Print a line for every processed frame")
	tracker := flag.String("tracker", config.Tracker(config.DefaultTracker),
		"Tracking algorithm: "+tracking.Names())
	backsub := flag.Bool("backsub", config.BackSub(false), "Run background subtraction alongside tracking")
	showMask := flag.Bool("show-mask", false, "Show the foreground mask window (implies -backsub)")
	port := flag.String("dashboard-port", config.DashboardPort(""), "Serve a live dashboard on this port (empty disables)")
	level := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [video]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Debug, cfg.DebugFrames = *debug, *debugFrames
	cfg.Session.Algorithm = *tracker
	cfg.Session.BackgroundSubtraction = *backsub || *showMask
	cfg.Display.ShowMask = *showMask
	cfg.Web.Port = *port
	cfg.Video = flag.Arg(0)

	if *debug && *level == config.DefaultLogLevel {
		*level = "debug"
	}
	return cfg, *level
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
