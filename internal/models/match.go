package models

import (
	"time"

	"github.com/google/uuid"
)

// ResumeJobMatch persists one match analysis. Identity is the
// (resume_id, job_id) pair; re-analyzing the same pair inserts a newer row and
// readers take the most recent one.
type ResumeJobMatch struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID               uuid.UUID `gorm:"type:uuid;not null;index" json:"resume_id"`
	JobID                  uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	OverallScore           float64   `gorm:"not null" json:"overall_score"`
	SkillsScore            float64   `json:"skills_score"`
	ExperienceScore        float64   `json:"experience_score"`
	EducationScore         float64   `json:"education_score"`
	KeywordsScore          float64   `json:"keywords_score"`
	MatchAnalysis          string    `gorm:"type:jsonb" json:"match_analysis"`
	ImprovementSuggestions string    `gorm:"type:jsonb" json:"improvement_suggestions"`
	MatchingSkills         string    `gorm:"type:jsonb" json:"matching_skills"`
	MissingSkills          string    `gorm:"type:jsonb" json:"missing_skills"`
	Insight                string    `gorm:"type:text" json:"insight"`
	Confidence             float64   `json:"confidence"`
	AnalysisVersion        string    `gorm:"type:text" json:"analysis_version"`
	CreatedAt              time.Time `gorm:"type:timestamp;default:now();index" json:"created_at"`
	UpdatedAt              time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Job ProcessedJob `gorm:"foreignKey:JobID" json:"-"`
}

func (ResumeJobMatch) TableName() string {
	return "resume_job_matches"
}
