package services

import (
	"sync"

	"github.com/google/uuid"

	"edu2job/career-predictor/internal/models"
)

type fakePredictionRepo struct {
	mu      sync.Mutex
	records []models.JobPrediction
}

func (f *fakePredictionRepo) Create(p *models.JobPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *p)
	return nil
}

func (f *fakePredictionRepo) FindByUser(userID uuid.UUID) ([]models.JobPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.JobPrediction
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakePredictionRepo) FindRecent(limit int) ([]models.JobPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.JobPrediction
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakePredictionRepo) CountAll() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

func (f *fakePredictionRepo) RoleDemand(limit int) ([]models.RoleCount, error) {
	return nil, nil
}

func (f *fakePredictionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakePredictionRepo) last() models.JobPrediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[len(f.records)-1]
}

type fakeExampleRepo struct {
	mu       sync.Mutex
	examples []models.TrainingExample
}

func (f *fakeExampleRepo) Create(example *models.TrainingExample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.examples = append(f.examples, *example)
	return nil
}

func (f *fakeExampleRepo) CreateBatch(examples []models.TrainingExample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.examples = append(f.examples, examples...)
	return nil
}

func (f *fakeExampleRepo) FindAll() ([]models.TrainingExample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.TrainingExample, len(f.examples))
	copy(out, f.examples)
	return out, nil
}

func (f *fakeExampleRepo) CountAll() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.examples)), nil
}

func (f *fakeExampleRepo) RoleDistribution(limit int) ([]models.RoleCount, error) {
	return nil, nil
}

func (f *fakeExampleRepo) DegreeDistribution(limit int) ([]models.DegreeCount, error) {
	return nil, nil
}

func (f *fakeExampleRepo) setExamples(examples []models.TrainingExample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.examples = examples
}
