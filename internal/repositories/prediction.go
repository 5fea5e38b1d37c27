package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edu2job/career-predictor/internal/models"
)

type PredictionRepository interface {
	Create(prediction *models.JobPrediction) error
	FindByUser(userID uuid.UUID) ([]models.JobPrediction, error)
	FindRecent(limit int) ([]models.JobPrediction, error)
	CountAll() (int64, error)
	RoleDemand(limit int) ([]models.RoleCount, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

// Create implements PredictionRepository.
func (r *predictionRepository) Create(prediction *models.JobPrediction) error {
	if err := r.db.Create(prediction).Error; err != nil {
		return fmt.Errorf("failed to create prediction record: %w", err)
	}
	return nil
}

// FindByUser implements PredictionRepository.
func (r *predictionRepository) FindByUser(userID uuid.UUID) ([]models.JobPrediction, error) {
	var predictions []models.JobPrediction
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find predictions: %w", err)
	}
	return predictions, nil
}

// FindRecent implements PredictionRepository.
func (r *predictionRepository) FindRecent(limit int) ([]models.JobPrediction, error) {
	var predictions []models.JobPrediction
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent predictions: %w", err)
	}
	return predictions, nil
}

// CountAll implements PredictionRepository.
func (r *predictionRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.JobPrediction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return count, nil
}

// RoleDemand implements PredictionRepository.
func (r *predictionRepository) RoleDemand(limit int) ([]models.RoleCount, error) {
	var counts []models.RoleCount
	err := r.db.Model(&models.JobPrediction{}).
		Select("predicted_role AS role, COUNT(*) AS count").
		Group("predicted_role").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate role demand: %w", err)
	}
	return counts, nil
}
