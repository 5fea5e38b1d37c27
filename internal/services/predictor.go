package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"edu2job/career-predictor/internal/ml"
	"edu2job/career-predictor/internal/models"
	"edu2job/career-predictor/internal/repositories"
)

type PredictorService interface {
	Predict(ctx context.Context, userID uuid.UUID, input models.ProfileInput) (*models.PredictionResponse, error)
}

type predictorService struct {
	predictionRepo repositories.PredictionRepository
	store          *ModelStore
	topK           int
}

func NewPredictorService(
	predictionRepo repositories.PredictionRepository,
	store *ModelStore,
	topK int,
) PredictorService {
	if topK <= 0 {
		topK = 3
	}
	return &predictorService{
		predictionRepo: predictionRepo,
		store:          store,
		topK:           topK,
	}
}

// Predict validates a profile, runs it through the published model pair and
// appends the best match to the user's prediction ledger.
func (p *predictorService) Predict(ctx context.Context, userID uuid.UUID, input models.ProfileInput) (*models.PredictionResponse, error) {
	gpa, err := validateProfile(input)
	if err != nil {
		return nil, err
	}

	// One snapshot read per request: either entirely the pre-retrain pair or
	// entirely the post-retrain pair, never a mix.
	snapshot := p.store.Snapshot()
	if snapshot == nil {
		return nil, ErrModelUnavailable
	}

	row := ml.AssembleFeatures(
		snapshot.Degree.Encode(strings.TrimSpace(input.HighestDegree)),
		snapshot.Branch.Encode(strings.TrimSpace(input.Branch)),
		gpa,
		snapshot.Skills.Transform(input.Skills),
	)
	probabilities := snapshot.Forest.Predict(row)

	matches := rankMatches(snapshot.Forest.Labels, probabilities, p.topK)
	if len(matches) == 0 {
		return nil, newValidationError("Could not determine a suitable role.")
	}

	best := matches[0]
	record := &models.JobPrediction{
		ID:              uuid.New(),
		UserID:          userID,
		HighestDegree:   input.HighestDegree,
		Branch:          input.Branch,
		CGPA:            gpa,
		Skills:          input.Skills,
		PredictedRole:   best.Role,
		ConfidenceScore: best.Score,
		ModelVersion:    snapshot.Version,
	}
	if err := p.predictionRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to record prediction: %w", err)
	}

	return &models.PredictionResponse{
		PredictedRole:   best.Role,
		ConfidenceScore: best.Score,
		Alternatives:    matches[1:],
		ModelVersion:    snapshot.Version,
	}, nil
}

func validateProfile(input models.ProfileInput) (float64, error) {
	if strings.TrimSpace(input.HighestDegree) == "" ||
		strings.TrimSpace(input.Branch) == "" ||
		strings.TrimSpace(input.CGPA) == "" ||
		strings.TrimSpace(input.Skills) == "" {
		return 0, newValidationError("Missing required fields: Degree, Branch, CGPA, or Skills.")
	}

	gpa, err := strconv.ParseFloat(strings.TrimSpace(input.CGPA), 64)
	if err != nil {
		return 0, newValidationError("CGPA must be a valid number.")
	}
	if gpa < 0.0 || gpa > 10.0 {
		return 0, newValidationError("CGPA must be between 0.0 and 10.0")
	}
	return gpa, nil
}

// rankMatches sorts labels by probability descending, ties broken by label
// position in the classifier's fitted label order, and keeps the top k
// entries with a non-zero percentage score.
func rankMatches(labels []string, probabilities []float64, k int) []models.RoleScore {
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probabilities[order[a]] > probabilities[order[b]]
	})

	if len(order) > k {
		order = order[:k]
	}
	matches := make([]models.RoleScore, 0, len(order))
	for _, i := range order {
		score := math.Round(probabilities[i]*10000) / 100
		if score > 0 {
			matches = append(matches, models.RoleScore{Role: labels[i], Score: score})
		}
	}
	return matches
}
