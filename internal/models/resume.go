package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume holds the raw uploaded document converted to markdown.
type Resume struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename    string    `gorm:"type:text" json:"filename"`
	FileType    string    `gorm:"type:text" json:"file_type"`
	FilePath    string    `gorm:"type:text" json:"file_path"`
	Content     string    `gorm:"type:text" json:"content"`
	ContentType string    `gorm:"type:text;default:'md'" json:"content_type"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

// ProcessedResume is the AI-extracted, scored form of a resume. The structured
// sections are stored as serialized JSON, matching the shapes in dto.go.
type ProcessedResume struct {
	ResumeID          uuid.UUID `gorm:"type:uuid;primary_key" json:"resume_id"`
	PersonalData      string    `gorm:"type:jsonb" json:"personal_data"`
	Experiences       string    `gorm:"type:jsonb" json:"experiences"`
	Education         string    `gorm:"type:jsonb" json:"education"`
	Skills            string    `gorm:"type:jsonb" json:"skills"`
	ExtractedKeywords string    `gorm:"type:jsonb" json:"extracted_keywords"`
	AnalysisScores    *string   `gorm:"type:jsonb" json:"analysis_scores,omitempty"`
	Feedback          *string   `gorm:"type:jsonb" json:"feedback,omitempty"`
	ProcessedAt       time.Time `gorm:"type:timestamp;default:now()" json:"processed_at"`
	UpdatedAt         time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
}

func (ProcessedResume) TableName() string {
	return "processed_resumes"
}
