package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"edu2job/career-predictor/internal/ml"
	"edu2job/career-predictor/internal/models"
	"edu2job/career-predictor/internal/repositories"
)

type TrainerService interface {
	Retrain(ctx context.Context) (*models.RetrainResponse, error)
}

// TrainerConfig holds the fitting knobs for a retrain run.
type TrainerConfig struct {
	MaxVocabulary int
	Forest        ml.ForestConfig
}

type trainerService struct {
	exampleRepo repositories.TrainingExampleRepository
	store       *ModelStore
	artifacts   ArtifactStore
	cfg         TrainerConfig

	// mu serializes retrains. Predictions are never blocked: they read the
	// previously published snapshot until the final publish.
	mu sync.Mutex
}

func NewTrainerService(
	exampleRepo repositories.TrainingExampleRepository,
	store *ModelStore,
	artifacts ArtifactStore,
	cfg TrainerConfig,
) TrainerService {
	return &trainerService{
		exampleRepo: exampleRepo,
		store:       store,
		artifacts:   artifacts,
		cfg:         cfg,
	}
}

// Retrain refits encoders and classifier over the full stored dataset and
// publishes the result as one atomic pair. All-or-nothing: on any failure
// the previously published pair stays live.
func (t *trainerService) Retrain(ctx context.Context) (*models.RetrainResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	examples, err := t.exampleRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrainingFailed, err)
	}
	if len(examples) == 0 {
		return nil, ErrInsufficientData
	}

	log.Printf("🔄 Retraining over %d examples\n", len(examples))

	degrees := make([]string, len(examples))
	branches := make([]string, len(examples))
	skills := make([]string, len(examples))
	labels := make([]string, len(examples))
	for i, ex := range examples {
		degrees[i] = ex.Degree
		branches[i] = ex.Branch
		skills[i] = ex.Skills
		labels[i] = ex.JobRole
	}

	degreeEnc := ml.FitLabelEncoder(degrees)
	branchEnc := ml.FitLabelEncoder(branches)
	vectorizer := ml.FitVectorizer(skills, t.cfg.MaxVocabulary)

	features := make([][]float64, len(examples))
	for i, ex := range examples {
		features[i] = ml.AssembleFeatures(
			degreeEnc.Encode(ex.Degree),
			branchEnc.Encode(ex.Branch),
			ex.CGPA,
			vectorizer.Transform(ex.Skills),
		)
	}

	forest, err := ml.TrainForest(features, labels, t.cfg.Forest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrainingFailed, err)
	}

	snapshot := &ModelSnapshot{
		Version: t.store.Version() + 1,
		Degree:  degreeEnc,
		Branch:  branchEnc,
		Skills:  vectorizer,
		Forest:  forest,
	}

	if err := t.artifacts.WritePair(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrainingFailed, err)
	}
	t.store.Publish(snapshot)

	log.Printf("✅ Model v%d published (%d roles, %d features)\n",
		snapshot.Version, len(forest.Labels), forest.FeatureSize)

	return &models.RetrainResponse{
		Message:      "Model retrained successfully",
		ModelVersion: snapshot.Version,
		ExampleCount: len(examples),
	}, nil
}
