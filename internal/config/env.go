// Package config provides environment overrides for go-ymaze commands.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by the commands.
const (
	EnvTracker       = "YMAZE_TRACKER"
	EnvBackSub       = "YMAZE_BACKSUB"
	EnvDashboardPort = "YMAZE_DASHBOARD_PORT"
	EnvLogLevel      = "YMAZE_LOG_LEVEL"
)

// Default values used when neither flag nor environment is set.
const (
	DefaultTracker  = "CSRT"
	DefaultLogLevel = "info"
)

// Tracker returns the tracker name from YMAZE_TRACKER.
// Falls back to the provided default if not set.
func Tracker(def string) string {
	return String(EnvTracker, def)
}

// BackSub returns the background subtraction toggle from YMAZE_BACKSUB.
// Unparseable values fall back to def.
func BackSub(def bool) bool {
	return Bool(EnvBackSub, def)
}

// DashboardPort returns the dashboard port from YMAZE_DASHBOARD_PORT.
// An empty result means the dashboard is disabled.
func DashboardPort(def string) string {
	return String(EnvDashboardPort, def)
}

// LogLevel returns the log level from YMAZE_LOG_LEVEL or the default.
func LogLevel() string {
	return String(EnvLogLevel, DefaultLogLevel)
}

// String returns the trimmed value of key, or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Bool parses key with strconv.ParseBool, returning def on failure.
func Bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
