package handlers

import (
	"github.com/gofiber/fiber/v2"

	"voicebox/internal/database"
)

// HistoryHandler serves the recent notification history.
type HistoryHandler struct {
	db *database.DB
}

func NewHistoryHandler(db *database.DB) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// Handle returns the newest notifications, most recent first.
func (h *HistoryHandler) Handle(c *fiber.Ctx) error {
	if h.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "History persistence is disabled",
		})
	}

	limit := c.QueryInt("limit", 50)
	records, err := h.db.RecentNotifications(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load history",
		})
	}
	return c.JSON(fiber.Map{"notifications": records})
}
