package websocket

import (
	"context"
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/service/assistant"
)

// VoiceStreamHandler serves an interactive transcript channel: the client
// sends JSON transcript frames and receives the full assistant response for
// each one. Used by devices that keep a connection open instead of posting
// webhooks.
type VoiceStreamHandler struct {
	assistant *assistant.Service
	log       *zap.Logger
}

func NewVoiceStreamHandler(svc *assistant.Service, log *zap.Logger) *VoiceStreamHandler {
	return &VoiceStreamHandler{
		assistant: svc,
		log:       log,
	}
}

// HandleVoiceStream processes transcript frames until the client hangs up.
func (h *VoiceStreamHandler) HandleVoiceStream(c *websocket.Conn) {
	ctx := context.Background()

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			h.log.Debug("Voice stream closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var req domain.TranscriptRequest
		if err := json.Unmarshal(data, &req); err != nil || req.Transcript == "" {
			h.writeError(c, "Expected a JSON frame with a transcript field")
			continue
		}

		resp := h.assistant.Handle(ctx, req)
		payload, err := json.Marshal(resp)
		if err != nil {
			h.log.Error("Failed to encode voice response", zap.Error(err))
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Debug("Failed to write voice response", zap.Error(err))
			return
		}
	}
}

func (h *VoiceStreamHandler) writeError(c *websocket.Conn, msg string) {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.log.Debug("Failed to write error frame", zap.Error(err))
	}
}
