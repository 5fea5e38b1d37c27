package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"edu2job/career-predictor/internal/models"
)

type TrainingExampleRepository interface {
	Create(example *models.TrainingExample) error
	CreateBatch(examples []models.TrainingExample) error
	FindAll() ([]models.TrainingExample, error)
	CountAll() (int64, error)
	RoleDistribution(limit int) ([]models.RoleCount, error)
	DegreeDistribution(limit int) ([]models.DegreeCount, error)
}

type trainingExampleRepository struct {
	db *gorm.DB
}

func NewTrainingExampleRepository(db *gorm.DB) TrainingExampleRepository {
	return &trainingExampleRepository{db: db}
}

// Create implements TrainingExampleRepository.
func (r *trainingExampleRepository) Create(example *models.TrainingExample) error {
	if err := r.db.Create(example).Error; err != nil {
		return fmt.Errorf("failed to create training example: %w", err)
	}
	return nil
}

// CreateBatch implements TrainingExampleRepository.
func (r *trainingExampleRepository) CreateBatch(examples []models.TrainingExample) error {
	if len(examples) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(examples, 500).Error; err != nil {
		return fmt.Errorf("failed to create training examples: %w", err)
	}
	return nil
}

// FindAll implements TrainingExampleRepository.
func (r *trainingExampleRepository) FindAll() ([]models.TrainingExample, error) {
	var examples []models.TrainingExample
	if err := r.db.Order("created_at DESC").Find(&examples).Error; err != nil {
		return nil, fmt.Errorf("failed to find training examples: %w", err)
	}
	return examples, nil
}

// CountAll implements TrainingExampleRepository.
func (r *trainingExampleRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.TrainingExample{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count training examples: %w", err)
	}
	return count, nil
}

// RoleDistribution implements TrainingExampleRepository.
func (r *trainingExampleRepository) RoleDistribution(limit int) ([]models.RoleCount, error) {
	var counts []models.RoleCount
	err := r.db.Model(&models.TrainingExample{}).
		Select("job_role AS role, COUNT(*) AS count").
		Group("job_role").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate role distribution: %w", err)
	}
	return counts, nil
}

// DegreeDistribution implements TrainingExampleRepository.
func (r *trainingExampleRepository) DegreeDistribution(limit int) ([]models.DegreeCount, error) {
	var counts []models.DegreeCount
	err := r.db.Model(&models.TrainingExample{}).
		Select("degree, COUNT(*) AS count").
		Group("degree").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate degree distribution: %w", err)
	}
	return counts, nil
}
