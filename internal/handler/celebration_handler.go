package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/service"
)

// CelebrationHandler streams celebration events to presentation clients over
// a websocket. The stream is cosmetic: clients that never connect, or drop,
// change nothing about computed results.
type CelebrationHandler struct {
	celebrations service.CelebrationService
	logger       zerolog.Logger
}

// NewCelebrationHandler constructs the handler.
func NewCelebrationHandler(celebrations service.CelebrationService, logger zerolog.Logger) *CelebrationHandler {
	return &CelebrationHandler{
		celebrations: celebrations,
		logger:       logger.With().Str("component", "celebration_handler").Logger(),
	}
}

// Register binds the websocket route under the provided router group.
func (h *CelebrationHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *CelebrationHandler) handleConnection(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	// An optional session filter: a client showing one calculator only cares
	// about its own session's events.
	sessionFilter := strings.TrimSpace(conn.Query("session_id"))

	events, cleanup := h.celebrations.Subscribe()
	defer cleanup()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Info().Str("session_filter", sessionFilter).Msg("celebration stream connected")
	defer h.logger.Info().Str("session_filter", sessionFilter).Msg("celebration stream disconnected")

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if sessionFilter != "" && event.SessionID != sessionFilter {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
