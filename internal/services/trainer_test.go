package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu2job/career-predictor/internal/ml"
	"edu2job/career-predictor/internal/models"
)

func testTrainerConfig(numTrees int) TrainerConfig {
	return TrainerConfig{
		MaxVocabulary: 50,
		Forest:        ml.ForestConfig{NumTrees: numTrees, MaxDepth: 8, MinLeaf: 1, Seed: 42},
	}
}

func seedExamples() []models.TrainingExample {
	return []models.TrainingExample{
		{ID: uuid.New(), Degree: "B.Tech", Branch: "CSE", CGPA: 8.5, Skills: "Python, Django", JobRole: "Full Stack Developer"},
		{ID: uuid.New(), Degree: "B.Tech", Branch: "ECE", CGPA: 7.2, Skills: "IoT, C", JobRole: "Embedded Engineer"},
	}
}

func TestRetrainInsufficientData(t *testing.T) {
	store := NewModelStore()
	trainer := NewTrainerService(&fakeExampleRepo{}, store, NewArtifactStore(t.TempDir()), testTrainerConfig(10))

	_, err := trainer.Retrain(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Nil(t, store.Snapshot())
}

func TestRetrainSingleLabel(t *testing.T) {
	examples := []models.TrainingExample{
		{ID: uuid.New(), Degree: "B.Sc", Branch: "Maths", CGPA: 9.0, Skills: "Statistics, R", JobRole: "Data Analyst"},
		{ID: uuid.New(), Degree: "MCA", Branch: "Computer Applications", CGPA: 7.8, Skills: "Java, SQL", JobRole: "Data Analyst"},
	}
	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(examples)

	store := NewModelStore()
	trainer := NewTrainerService(exampleRepo, store, NewArtifactStore(t.TempDir()), testTrainerConfig(10))

	result, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.ExampleCount)

	ledger := &fakePredictionRepo{}
	predictor := NewPredictorService(ledger, store, 3)
	prediction, err := predictor.Predict(context.Background(), uuid.New(), models.ProfileInput{
		HighestDegree: "B.Com",
		Branch:        "Commerce",
		CGPA:          "5.0",
		Skills:        "Accounting",
	})
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", prediction.PredictedRole)
	assert.Equal(t, 100.0, prediction.ConfidenceScore)
	assert.Empty(t, prediction.Alternatives)
}

func TestRetrainThenPredictEndToEnd(t *testing.T) {
	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(seedExamples())

	store := NewModelStore()
	trainer := NewTrainerService(exampleRepo, store, NewArtifactStore(t.TempDir()), testTrainerConfig(100))

	result, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.ModelVersion)

	ledger := &fakePredictionRepo{}
	predictor := NewPredictorService(ledger, store, 3)
	prediction, err := predictor.Predict(context.Background(), uuid.New(), models.ProfileInput{
		HighestDegree: "B.Tech",
		Branch:        "CSE",
		CGPA:          "8.0",
		Skills:        "Python, SQL",
	})
	require.NoError(t, err)

	assert.Equal(t, "Full Stack Developer", prediction.PredictedRole)
	assert.Greater(t, prediction.ConfidenceScore, 50.0)
	assert.Equal(t, 1, ledger.count())
}

func TestRetrainPersistsLoadablePair(t *testing.T) {
	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(seedExamples())

	artifacts := NewArtifactStore(t.TempDir())
	store := NewModelStore()
	trainer := NewTrainerService(exampleRepo, store, artifacts, testTrainerConfig(10))

	_, err := trainer.Retrain(context.Background())
	require.NoError(t, err)

	loaded, err := artifacts.LoadPair()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	published := store.Snapshot()
	assert.Equal(t, published.Version, loaded.Version)
	assert.Equal(t, published.Forest.Labels, loaded.Forest.Labels)
	assert.Equal(t, published.FeatureWidth(), loaded.FeatureWidth())
	assert.Equal(t, published.Degree.Encode("B.Tech"), loaded.Degree.Encode("B.Tech"))
}

func TestRetrainIncrementsVersion(t *testing.T) {
	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(seedExamples())

	store := NewModelStore()
	trainer := NewTrainerService(exampleRepo, store, NewArtifactStore(t.TempDir()), testTrainerConfig(10))

	first, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	second, err := trainer.Retrain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.ModelVersion)
	assert.Equal(t, uint64(2), second.ModelVersion)
	assert.Equal(t, uint64(2), store.Version())
}

type failingArtifactStore struct{}

func (failingArtifactStore) EnsureRoot() error                 { return nil }
func (failingArtifactStore) WritePair(*ModelSnapshot) error    { return errors.New("disk full") }
func (failingArtifactStore) LoadPair() (*ModelSnapshot, error) { return nil, nil }

func TestRetrainKeepsPreviousModelOnPersistFailure(t *testing.T) {
	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(seedExamples())

	store := NewModelStore()
	good := NewTrainerService(exampleRepo, store, NewArtifactStore(t.TempDir()), testTrainerConfig(10))
	_, err := good.Retrain(context.Background())
	require.NoError(t, err)
	previous := store.Snapshot()

	bad := NewTrainerService(exampleRepo, store, failingArtifactStore{}, testTrainerConfig(10))
	_, err = bad.Retrain(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrainingFailed)

	assert.Same(t, previous, store.Snapshot(), "failed retrain must not replace the live pair")
}

func TestRetrainConcurrentWithPredict(t *testing.T) {
	// Alternating datasets with different vocabulary sizes: a predictor that
	// mixed encoders from one run with the classifier of another would build
	// a feature row of the wrong width and panic inside the forest.
	smallSet := seedExamples()
	largeSet := append(seedExamples(),
		models.TrainingExample{ID: uuid.New(), Degree: "M.Tech", Branch: "CSE", CGPA: 8.8, Skills: "Machine Learning, Python, Deep Learning", JobRole: "AI/ML Engineer"},
		models.TrainingExample{ID: uuid.New(), Degree: "B.Com", Branch: "Commerce", CGPA: 8.0, Skills: "Accounting, Tally, Excel", JobRole: "Accountant"},
	)

	exampleRepo := &fakeExampleRepo{}
	exampleRepo.setExamples(smallSet)

	store := NewModelStore()
	trainer := NewTrainerService(exampleRepo, store, NewArtifactStore(t.TempDir()),
		TrainerConfig{MaxVocabulary: 50, Forest: ml.ForestConfig{NumTrees: 5, MaxDepth: 4, MinLeaf: 1, Seed: 42}})
	_, err := trainer.Retrain(context.Background())
	require.NoError(t, err)

	ledger := &fakePredictionRepo{}
	predictor := NewPredictorService(ledger, store, 3)

	done := make(chan struct{})
	var wg sync.WaitGroup
	predictErrs := make(chan error, 4)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := predictor.Predict(context.Background(), uuid.New(), validInput()); err != nil {
					predictErrs <- err
					return
				}
			}
		}()
	}

	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			exampleRepo.setExamples(largeSet)
		} else {
			exampleRepo.setExamples(smallSet)
		}
		_, err := trainer.Retrain(context.Background())
		require.NoError(t, err)
	}

	close(done)
	wg.Wait()
	select {
	case err := <-predictErrs:
		t.Fatalf("concurrent predict failed: %v", err)
	default:
	}
}
