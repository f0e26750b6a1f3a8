package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"voicebox/internal/config"
	"voicebox/internal/tts"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	tts *tts.Service
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *tts.Service, cfg *config.Config) *HealthHandler {
	return &HealthHandler{tts: service, cfg: cfg}
}

// Handle reports provider availability and the active configuration.
// Operator diagnostics only; no business logic.
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"providers": h.tts.Providers(),
		"config": fiber.Map{
			"port":                h.cfg.Port,
			"provider_preference": h.cfg.ProviderPreference,
			"chime_enabled":       h.cfg.ChimeEnabled,
			"volume":              h.cfg.Volume,
			"rate_limit_max":      h.cfg.RateLimitMax,
			"rate_limit_window":   h.cfg.RateLimitWindow.String(),
		},
	})
}
