// Package ymaze wires the Y-maze tracker together: video, tracker,
// display, dashboard and the calibration/tracking session.
package ymaze

import (
	"github.com/teslashibe/go-ymaze/pkg/display"
	"github.com/teslashibe/go-ymaze/pkg/session"
	"github.com/teslashibe/go-ymaze/pkg/tracking"
	"github.com/teslashibe/go-ymaze/pkg/web"
)

// Config holds all configuration for one tracker run.
// Flag parsing is done in cmd/ymaze/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// DebugFrames prints one line per processed frame.
	DebugFrames bool

	// Video is the input path. Empty means the user cancelled selection.
	Video string

	Session session.Config
	Display display.Config
	Web     web.Config
}

// DefaultConfig returns sensible defaults for a run.
func DefaultConfig() Config {
	return Config{
		Session: session.DefaultConfig(),
		Display: display.DefaultConfig(),
		Web:     web.DefaultConfig(),
	}
}

// Validate checks the configuration and canonicalizes the tracker name.
func (c *Config) Validate() error {
	alg, err := tracking.Parse(c.Session.Algorithm)
	if err != nil {
		return &ConfigError{Field: "Tracker", Message: err.Error()}
	}
	c.Session.Algorithm = string(alg)

	if err := c.Session.Validate(); err != nil {
		return &ConfigError{Field: "Session", Message: err.Error()}
	}
	if err := c.Web.Validate(); err != nil {
		return &ConfigError{Field: "Dashboard", Message: err.Error()}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
