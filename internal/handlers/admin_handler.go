package handlers

import (
	"github.com/gofiber/fiber/v2"

	"edu2job/career-predictor/internal/models"
	"edu2job/career-predictor/internal/repositories"
	"edu2job/career-predictor/internal/services"
)

type AdminHandler struct {
	predictionRepo repositories.PredictionRepository
	exampleRepo    repositories.TrainingExampleRepository
	store          *services.ModelStore
}

func NewAdminHandler(
	predictionRepo repositories.PredictionRepository,
	exampleRepo repositories.TrainingExampleRepository,
	store *services.ModelStore,
) *AdminHandler {
	return &AdminHandler{
		predictionRepo: predictionRepo,
		exampleRepo:    exampleRepo,
		store:          store,
	}
}

// HandleStats handles GET /admin/stats: dataset and ledger totals, model
// state, and how often encoding fell back to the unseen-category bucket.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	totalPredictions, err := h.predictionRepo.CountAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count predictions",
		})
	}
	totalExamples, err := h.exampleRepo.CountAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count training examples",
		})
	}
	recent, err := h.predictionRepo.FindRecent(5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load recent predictions",
		})
	}

	stats := models.AdminStatsResponse{
		TotalPredictions:  totalPredictions,
		TotalExamples:     totalExamples,
		UnseenCategories:  map[string]uint64{"degree": 0, "branch": 0},
		RecentPredictions: recent,
	}
	if snapshot := h.store.Snapshot(); snapshot != nil {
		stats.ModelLoaded = true
		stats.ModelVersion = snapshot.Version
		stats.UnseenCategories["degree"] = snapshot.Degree.UnseenCount()
		stats.UnseenCategories["branch"] = snapshot.Branch.UnseenCount()
	}

	return c.JSON(stats)
}

// HandleAnalytics handles GET /admin/analytics. Role demand comes from the
// prediction ledger, falling back to the training dataset while the ledger
// is still empty.
func (h *AdminHandler) HandleAnalytics(c *fiber.Ctx) error {
	roleDemand, err := h.predictionRepo.RoleDemand(10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate role demand",
		})
	}
	if len(roleDemand) == 0 {
		roleDemand, err = h.exampleRepo.RoleDistribution(10)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to aggregate role distribution",
			})
		}
	}

	degreeDist, err := h.exampleRepo.DegreeDistribution(6)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate degree distribution",
		})
	}

	return c.JSON(models.AdminAnalyticsResponse{
		RoleDemand:         roleDemand,
		DegreeDistribution: degreeDist,
	})
}
