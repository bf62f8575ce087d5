package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clarivue/fitscore/internal/models"
)

type JobRepository interface {
	Create(job *models.ProcessedJob) error
	FindByID(id uuid.UUID) (*models.ProcessedJob, error)
	FindByIDs(ids []uuid.UUID) ([]models.ProcessedJob, error)
	FindByResumeID(resumeID uuid.UUID) ([]models.ProcessedJob, error)
	FindAll() ([]models.ProcessedJob, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	Search(filters JobSearchFilters) ([]models.ProcessedJob, int64, error)
}

// JobSearchFilters narrows the job search; zero values mean "no filter".
type JobSearchFilters struct {
	Location       string
	EmploymentType string
	Limit          int
	Offset         int
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.ProcessedJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.ProcessedJob, error) {
	var job models.ProcessedJob
	if err := r.db.Where("job_id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindByIDs implements JobRepository.
func (r *jobRepository) FindByIDs(ids []uuid.UUID) ([]models.ProcessedJob, error) {
	var jobs []models.ProcessedJob
	if err := r.db.Where("job_id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}

	return jobs, nil
}

// FindByResumeID implements JobRepository.
func (r *jobRepository) FindByResumeID(resumeID uuid.UUID) ([]models.ProcessedJob, error) {
	var jobs []models.ProcessedJob
	err := r.db.
		Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs for resume: %w", err)
	}

	return jobs, nil
}

// FindAll implements JobRepository. Used by the reindex script.
func (r *jobRepository) FindAll() ([]models.ProcessedJob, error) {
	var jobs []models.ProcessedJob
	if err := r.db.Order("created_at ASC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// Update implements JobRepository.
func (r *jobRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.ProcessedJob{}).
		Where("job_id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("job_id = ?", id).Delete(&models.ProcessedJob{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

// Search implements JobRepository.
func (r *jobRepository) Search(filters JobSearchFilters) ([]models.ProcessedJob, int64, error) {
	query := r.db.Model(&models.ProcessedJob{})

	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.EmploymentType != "" {
		query = query.Where("employment_type = ?", filters.EmploymentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	var jobs []models.ProcessedJob
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}

	return jobs, total, nil
}
