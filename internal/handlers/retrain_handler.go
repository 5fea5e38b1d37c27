package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"edu2job/career-predictor/internal/services"
)

type RetrainHandler struct {
	trainer services.TrainerService
}

func NewRetrainHandler(trainer services.TrainerService) *RetrainHandler {
	return &RetrainHandler{trainer: trainer}
}

// HandleRetrain handles POST /admin/retrain. Training runs to completion
// before responding; in-flight predictions keep using the previous model.
func (h *RetrainHandler) HandleRetrain(c *fiber.Ctx) error {
	result, err := h.trainer.Retrain(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrInsufficientData) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No training data found to retrain",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
