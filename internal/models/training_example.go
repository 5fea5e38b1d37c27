package models

import (
	"time"

	"github.com/google/uuid"
)

type ExampleSource string

const (
	SourceManual     ExampleSource = "manual"
	SourceBulkUpload ExampleSource = "bulk_upload"
)

// TrainingExample is one labeled row of the retraining dataset. Rows are
// immutable once created; retraining always consumes the full set.
type TrainingExample struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Degree    string        `gorm:"type:text;not null" json:"degree"`
	Branch    string        `gorm:"type:text;not null" json:"branch"`
	CGPA      float64       `gorm:"not null" json:"cgpa"`
	Skills    string        `gorm:"type:text;not null" json:"skills"`
	JobRole   string        `gorm:"type:text;not null" json:"job_role"`
	Source    ExampleSource `gorm:"type:text;not null;default:'manual'" json:"source"`
	CreatedAt time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (TrainingExample) TableName() string {
	return "training_examples"
}
