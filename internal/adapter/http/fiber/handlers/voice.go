package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// VoiceHandler exposes the recorded interaction history.
type VoiceHandler struct {
	voiceLogs ports.VoiceLogRepository
	log       *zap.Logger
}

func NewVoiceHandler(voiceLogs ports.VoiceLogRepository, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		voiceLogs: voiceLogs,
		log:       log,
	}
}

// GetHistory serves GET /api/v1/voice/history?session_id=&limit=.
func (h *VoiceHandler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	sessionID := c.Query("session_id")

	entries, err := h.voiceLogs.FindRecent(c.Context(), sessionID, limit)
	if err != nil {
		h.log.Error("Failed to load voice history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}

	return c.JSON(fiber.Map{
		"count":   len(entries),
		"entries": entries,
	})
}
