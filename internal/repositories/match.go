package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clarivue/fitscore/internal/models"
)

type MatchRepository interface {
	Create(match *models.ResumeJobMatch) error
	FindByResumeID(resumeID uuid.UUID) ([]models.ResumeJobMatch, error)
	FindLatest(resumeID, jobID uuid.UUID) (*models.ResumeJobMatch, error)
	FindUnanalyzedPairs(limit int) ([]MatchPair, error)
}

// MatchPair identifies one pending resume x job analysis.
type MatchPair struct {
	ResumeID uuid.UUID
	JobID    uuid.UUID
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(match *models.ResumeJobMatch) error {
	if err := r.db.Create(match).Error; err != nil {
		return fmt.Errorf("failed to create match result: %w", err)
	}
	return nil
}

func (r *matchRepository) FindByResumeID(resumeID uuid.UUID) ([]models.ResumeJobMatch, error) {
	var matches []models.ResumeJobMatch
	err := r.db.
		Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find matches for resume: %w", err)
	}

	return matches, nil
}

func (r *matchRepository) FindLatest(resumeID, jobID uuid.UUID) (*models.ResumeJobMatch, error) {
	var match models.ResumeJobMatch
	err := r.db.
		Where("resume_id = ? AND job_id = ?", resumeID, jobID).
		Order("created_at DESC").
		First(&match).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match not found")
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}

	return &match, nil
}

// FindUnanalyzedPairs returns jobs owned by a resume that have no match result
// yet. The background worker drains these.
func (r *matchRepository) FindUnanalyzedPairs(limit int) ([]MatchPair, error) {
	var pairs []MatchPair
	err := r.db.
		Table("processed_jobs").
		Select("processed_jobs.resume_id AS resume_id, processed_jobs.job_id AS job_id").
		Joins("LEFT JOIN resume_job_matches ON resume_job_matches.job_id = processed_jobs.job_id AND resume_job_matches.resume_id = processed_jobs.resume_id").
		Where("processed_jobs.resume_id IS NOT NULL").
		Where("resume_job_matches.id IS NULL").
		Order("processed_jobs.created_at ASC").
		Limit(limit).
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unanalyzed pairs: %w", err)
	}

	return pairs, nil
}
