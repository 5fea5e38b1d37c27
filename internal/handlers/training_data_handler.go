package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"edu2job/career-predictor/internal/repositories"
	"edu2job/career-predictor/internal/services"
)

type TrainingDataHandler struct {
	exampleRepo   repositories.TrainingExampleRepository
	ingestService services.IngestService
	maxFileSize   int64
}

func NewTrainingDataHandler(
	exampleRepo repositories.TrainingExampleRepository,
	ingestService services.IngestService,
	maxFileSize int64,
) *TrainingDataHandler {
	return &TrainingDataHandler{
		exampleRepo:   exampleRepo,
		ingestService: ingestService,
		maxFileSize:   maxFileSize,
	}
}

// HandleUpload handles POST /admin/training-data/upload (multipart CSV).
func (h *TrainingDataHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CSV file uploaded. Upload the dataset as 'file'.",
		})
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid file extension: %s. Only .csv is accepted.", ext),
		})
	}
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer src.Close()

	result, err := h.ingestService.IngestCSV(src)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Reason,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ingest training data",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleList handles GET /admin/training-data.
func (h *TrainingDataHandler) HandleList(c *fiber.Ctx) error {
	examples, err := h.exampleRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load training data",
		})
	}

	return c.JSON(fiber.Map{
		"count":   len(examples),
		"results": examples,
	})
}
