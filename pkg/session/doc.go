// Package session runs one Y-maze video analysis: the interactive
// calibration stage followed by the per-frame tracking loop.
//
// The package owns no OpenCV handles. Frames, trackers, background
// subtractors and the on-screen window are reached through the small
// interfaces in session.go, implemented by pkg/video, pkg/tracking and
// pkg/display. Everything runs on the caller's goroutine: calibration
// may block on user input, the tracking loop only polls.
//
// Typical wiring:
//
//	deps := session.Deps{
//		Open:          video.OpenSource,
//		NewTracker:    func() (session.Tracker, error) { return tracking.New(alg) },
//		NewSubtractor: video.NewSubtractor,
//		NewDisplay:    display.NewDisplay(dcfg),
//		Notifier:      notifier,
//	}
//	summary, err := session.Run(ctx, cfg, path, deps)
package session
