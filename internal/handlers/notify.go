package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"voicebox/internal/logging"
	"voicebox/internal/metrics"
	"voicebox/internal/models"
	"voicebox/internal/security"
	"voicebox/internal/tts"
)

// synthesisTimeout bounds the whole chime+synthesis+playback pipeline
// for one notification.
const synthesisTimeout = 60 * time.Second

// NotifyHandler handles POST /notify
type NotifyHandler struct {
	tts *tts.Service
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(service *tts.Service) *NotifyHandler {
	return &NotifyHandler{tts: service}
}

// Handle validates and sanitizes the request, then queues synthesis and
// responds immediately. Speech failure after this point is best-effort:
// the caller still gets success.
func (h *NotifyHandler) Handle(c *fiber.Ctx) error {
	var req models.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.CountNotification("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := security.SanitizeMessage(req.Message)
	if err != nil {
		metrics.CountNotification("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := security.ValidateLength("title", req.Title); err != nil {
		metrics.CountNotification("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	title := security.Sanitize(req.Title)

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = req.VoiceName
	}

	voiceEnabled := req.Voice()
	logging.WithRequest(uuid.NewString(), c.IP()).Info("notification accepted",
		"title", title, "voice_enabled", voiceEnabled)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
		defer cancel()
		// Errors are already logged and persisted by the service.
		_ = h.tts.Speak(ctx, title, message, voiceID, voiceEnabled)
	}()

	metrics.CountNotification("success")
	return c.JSON(fiber.Map{"status": "success"})
}
