package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"edu2job/career-predictor/internal/models"
	"edu2job/career-predictor/internal/services"
)

type PredictHandler struct {
	predictor services.PredictorService
}

func NewPredictHandler(predictor services.PredictorService) *PredictHandler {
	return &PredictHandler{predictor: predictor}
}

// HandlePredict handles POST /predict
func (h *PredictHandler) HandlePredict(c *fiber.Ctx) error {
	var input models.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.predictor.Predict(c.Context(), currentUserID(c), input)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Reason,
			})
		case errors.Is(err, services.ErrModelUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "ML model not trained yet. Contact admin.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Prediction failed internally",
			})
		}
	}

	return c.JSON(result)
}
