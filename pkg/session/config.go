package session

import (
	"fmt"
	"time"
)

// Config holds the run-wide choices fixed before calibration begins.
type Config struct {
	// Algorithm is the display name of the selected tracker.
	Algorithm string

	// BackgroundSubtraction enables the advisory foreground model.
	BackgroundSubtraction bool

	// CalibrationPoll bounds each wait for input during calibration so
	// clicks are redrawn promptly and cancellation is noticed.
	CalibrationPoll time.Duration
}

// DefaultConfig returns the defaults used by cmd/ymaze.
func DefaultConfig() Config {
	return Config{
		Algorithm:       "CSRT",
		CalibrationPoll: 30 * time.Millisecond,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Algorithm == "" {
		return fmt.Errorf("session: algorithm is required")
	}
	if c.CalibrationPoll <= 0 {
		return fmt.Errorf("session: calibration poll must be positive, got %v", c.CalibrationPoll)
	}
	return nil
}
