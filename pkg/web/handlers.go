package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-ymaze/pkg/hub"
)

// handleStatus returns the current run status
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.state.snapshot())
}

// handleSummary returns the final result, or 404 while the run is going
func (s *Server) handleSummary(c *fiber.Ctx) error {
	sum, ok := s.state.result()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "run not finished",
		})
	}
	return c.JSON(sum)
}

// handleFrames returns recent per-frame results
func (s *Server) handleFrames(c *fiber.Ctx) error {
	return c.JSON(s.state.frames())
}

// handleStatusWS streams status events, starting with the current state
func (s *Server) handleStatusWS(c *websocket.Conn) {
	var greeting []hub.Message
	if m, err := hub.EncodeJSON(Event{Type: "status", Data: s.state.snapshot()}); err == nil {
		greeting = append(greeting, m)
	}
	if sum, ok := s.state.result(); ok {
		if m, err := hub.EncodeJSON(Event{Type: "summary", Data: sum}); err == nil {
			greeting = append(greeting, m)
		}
	}
	hub.NewClient(s.statusHub, c, greeting...).Run()
}

// handleFramesWS streams JPEG thumbnails of the annotated view
func (s *Server) handleFramesWS(c *websocket.Conn) {
	hub.NewClient(s.frameHub, c).Run()
}
