package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Artifact is a generated marketing asset persisted after a job completes.
// One row is written per completed generation; the originating job is kept
// for traceability.
type Artifact struct {
	gorm.Model
	ProjectID uint            `json:"project_id" gorm:"not null; index"`
	JobID     uint            `json:"job_id" gorm:"not null; index"`
	Kind      string          `json:"kind" gorm:"not null; index"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
}
