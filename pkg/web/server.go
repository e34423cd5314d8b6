// Package web provides a live, read-only dashboard for a tracking run.
// The server observes the run; nothing it receives flows back into the
// tracking loop.
package web

import (
	"embed"
	"image"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-ymaze/internal/log"
	"github.com/teslashibe/go-ymaze/pkg/hub"
	"github.com/teslashibe/go-ymaze/pkg/session"
)

//go:embed static
var static embed.FS

// Server is the web dashboard server. It implements session.Observer
// and display.FrameSink.
type Server struct {
	app    *fiber.App
	cfg    Config
	logger *slog.Logger

	state *state

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	frameHub  *hub.Hub

	frameMu   sync.Mutex
	lastFrame time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithMaskRatio sets how foreground masks are measured for the status feed.
func WithMaskRatio(f func(session.Frame) float64) Option {
	return func(s *Server) { s.state.maskRatio = f }
}

// NewServer creates a new web dashboard server
func NewServer(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		logger:    log.With("component", "web"),
		state:     newState(cfg.RecentFrames, nil),
		statusHub: hub.New("status"),
		frameHub:  hub.New("frames"),
	}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Y-Maze Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/summary", s.handleSummary)
	api.Get("/frames", s.handleFrames)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	// Dashboard page
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(static),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	s.app = app
	return s
}

// Start starts the hubs and serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.cfg.Port)

	go s.statusHub.Run()
	go s.frameHub.Run()

	return s.app.Listen(":" + s.cfg.Port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Warn("dashboard stopped", "error", err)
		}
	}()
}

// drainTimeout bounds how long Shutdown waits for queued messages, such
// as the final summary, to be written to connected clients.
const drainTimeout = 2 * time.Second

// Shutdown delivers pending messages, closes client streams and stops
// the web server.
func (s *Server) Shutdown() error {
	s.statusHub.Stop()
	s.frameHub.Stop()
	if !s.statusHub.Drain(drainTimeout) {
		s.logger.Warn("dashboard clients did not drain before shutdown")
	}
	s.frameHub.Drain(drainTimeout)
	return s.app.Shutdown()
}

// Calibrated implements session.Observer.
func (s *Server) Calibrated(info session.RunInfo) {
	st := s.state.calibrated(info)
	s.statusHub.BroadcastJSON(Event{Type: "status", Data: st})
}

// FrameProcessed implements session.Observer.
func (s *Server) FrameProcessed(res session.FrameResult) {
	st := s.state.frameProcessed(res)
	if s.statusHub.ClientCount() > 0 {
		s.statusHub.BroadcastJSON(Event{Type: "status", Data: st})
	}
}

// Finished implements session.Observer.
func (s *Server) Finished(sum session.Summary) {
	out := s.state.finished(sum)
	s.statusHub.BroadcastJSON(Event{Type: "summary", Data: out})
}

// WantsFrame reports whether a thumbnail should be produced now: some
// client is watching and the frame interval has passed.
func (s *Server) WantsFrame() bool {
	if s.frameHub.ClientCount() == 0 {
		return false
	}
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	if time.Since(s.lastFrame) < s.cfg.FrameInterval {
		return false
	}
	s.lastFrame = time.Now()
	return true
}

// RenderedFrame encodes img as a JPEG thumbnail for /ws/frames.
func (s *Server) RenderedFrame(img image.Image) {
	data, err := Thumbnail(img, s.cfg.ThumbWidth, s.cfg.ThumbHeight, s.cfg.JPEGQuality)
	if err != nil {
		s.logger.Debug("thumbnail encode failed", "error", err)
		return
	}
	s.frameHub.BroadcastBinary(data)
}
