package handlers

import (
	"github.com/gofiber/fiber/v2"

	"edu2job/career-predictor/internal/repositories"
)

type HistoryHandler struct {
	predictionRepo repositories.PredictionRepository
}

func NewHistoryHandler(predictionRepo repositories.PredictionRepository) *HistoryHandler {
	return &HistoryHandler{predictionRepo: predictionRepo}
}

// HandleGetHistory handles GET /predictions/history and returns the calling
// user's predictions, newest first.
func (h *HistoryHandler) HandleGetHistory(c *fiber.Ctx) error {
	predictions, err := h.predictionRepo.FindByUser(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load prediction history",
		})
	}

	return c.JSON(fiber.Map{
		"count":   len(predictions),
		"results": predictions,
	})
}
