package handlers

import (
	"github.com/gofiber/fiber/v2"

	"voicebox/internal/tts"
)

// VoicesHandler lists the loaded voice personality profiles.
type VoicesHandler struct {
	voices *tts.VoiceRegistry
}

func NewVoicesHandler(voices *tts.VoiceRegistry) *VoicesHandler {
	return &VoicesHandler{voices: voices}
}

// Handle returns the current voices snapshot.
func (h *VoicesHandler) Handle(c *fiber.Ctx) error {
	cfg := h.voices.Snapshot()
	return c.JSON(fiber.Map{
		"default_volume": h.voices.Volume(),
		"voices":         cfg.Voices,
	})
}
