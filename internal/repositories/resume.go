package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clarivue/fitscore/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	SaveProcessed(processed *models.ProcessedResume) error
	FindProcessedByID(id uuid.UUID) (*models.ProcessedResume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("resume not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// SaveProcessed implements ResumeRepository.
func (r *resumeRepository) SaveProcessed(processed *models.ProcessedResume) error {
	if err := r.db.Save(processed).Error; err != nil {
		return fmt.Errorf("failed to save processed resume: %w", err)
	}

	return nil
}

// FindProcessedByID implements ResumeRepository.
func (r *resumeRepository) FindProcessedByID(id uuid.UUID) (*models.ProcessedResume, error) {
	var processed models.ProcessedResume
	if err := r.db.Where("resume_id = ?", id).First(&processed).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("processed resume not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find processed resume: %w", err)
	}

	return &processed, nil
}
