package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcessedJob is a structured job description with AI-derived analysis fields.
type ProcessedJob struct {
	JobID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"job_id"`
	ResumeID            *uuid.UUID `gorm:"type:uuid;index" json:"resume_id,omitempty"`
	JobTitle            string     `gorm:"type:text" json:"job_title"`
	Company             string     `gorm:"type:text" json:"company"`
	Location            string     `gorm:"type:text" json:"location"`
	EmploymentType      string     `gorm:"type:text" json:"employment_type"`
	JobSummary          string     `gorm:"type:text" json:"job_summary"`
	KeyResponsibilities string     `gorm:"type:jsonb" json:"key_responsibilities"`
	Qualifications      string     `gorm:"type:jsonb" json:"qualifications"`
	Compensation        string     `gorm:"type:jsonb" json:"compensation"`
	ExtractedKeywords   string     `gorm:"type:jsonb" json:"extracted_keywords"`
	AnalysisScores      *string    `gorm:"type:jsonb" json:"analysis_scores,omitempty"`
	CreatedAt           time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ProcessedJob) TableName() string {
	return "processed_jobs"
}
