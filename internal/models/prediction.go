package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPrediction is one ledger entry: the profile a user submitted and the
// best match the classifier produced for it. Append-only.
type JobPrediction struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	HighestDegree   string    `gorm:"type:text" json:"highest_degree"`
	Branch          string    `gorm:"type:text" json:"branch"`
	CGPA            float64   `json:"cgpa"`
	Skills          string    `gorm:"type:text" json:"skills"`
	PredictedRole   string    `gorm:"type:text;not null" json:"predicted_role"`
	ConfidenceScore float64   `gorm:"not null;default:0" json:"confidence_score"`
	ModelVersion    uint64    `gorm:"not null;default:0" json:"model_version"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (JobPrediction) TableName() string {
	return "job_predictions"
}
