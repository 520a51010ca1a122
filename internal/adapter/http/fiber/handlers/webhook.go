package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/service/assistant"
)

// WebhookHandler receives transcript events from the wearable device.
type WebhookHandler struct {
	assistant *assistant.Service
	log       *zap.Logger
}

func NewWebhookHandler(svc *assistant.Service, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		assistant: svc,
		log:       log,
	}
}

// HandleEvent processes POST /omi/event. The response always carries a
// speakable sentence; ok:false means a handler hit a domain or persistence
// error, never a parse failure.
func (h *WebhookHandler) HandleEvent(c *fiber.Ctx) error {
	var req domain.TranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	req.Transcript = strings.TrimSpace(req.Transcript)
	if req.Transcript == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transcript is required"})
	}

	resp := h.assistant.Handle(c.Context(), req)
	return c.JSON(resp)
}
