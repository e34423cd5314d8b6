package web

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Config controls the dashboard server.
type Config struct {
	Port string

	// Thumbnail bounds; frames are scaled to fit, keeping aspect ratio.
	ThumbWidth  int
	ThumbHeight int
	JPEGQuality int

	// FrameInterval is the minimum gap between streamed thumbnails.
	FrameInterval time.Duration

	// RecentFrames is how many frame results /api/frames keeps.
	RecentFrames int
}

// DefaultConfig returns a disabled dashboard with sensible stream limits.
func DefaultConfig() Config {
	return Config{
		ThumbWidth:    480,
		ThumbHeight:   360,
		JPEGQuality:   75,
		FrameInterval: 100 * time.Millisecond,
		RecentFrames:  300,
	}
}

// Enabled reports whether a port was configured.
func (c Config) Enabled() bool {
	return c.Port != "" && c.Port != "0"
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.Enabled() {
		p, err := strconv.Atoi(c.Port)
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("web: invalid port %q", c.Port)
		}
	}
	if c.ThumbWidth <= 0 || c.ThumbHeight <= 0 {
		return errors.New("web: thumbnail size must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("web: JPEG quality %d out of range 1-100", c.JPEGQuality)
	}
	if c.RecentFrames < 0 {
		return errors.New("web: recent frame count must not be negative")
	}
	return nil
}
