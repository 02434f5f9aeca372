package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Project represents an app idea and the product context ("DNA") that the
// prompt templates consume. All fields beyond Name are optional; missing
// fields are substituted with a placeholder at prompt-render time.
type Project struct {
	gorm.Model
	Name           string    `json:"name" gorm:"not null; index"`
	Description    string    `json:"description" gorm:"type:text"`
	TargetAudience string    `json:"target_audience" gorm:"type:text"`
	Problem        string    `json:"problem" gorm:"type:text"`
	Solution       string    `json:"solution" gorm:"type:text"`
	Features       string    `json:"features" gorm:"type:text"`
	Tone           string    `json:"tone"`
	Pricing        string    `json:"pricing" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	return p.Validate()
}
