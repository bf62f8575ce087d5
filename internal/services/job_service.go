package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/repositories"
)

// JobService turns raw job descriptions into structured, scored, searchable
// job records.
type JobService interface {
	UploadJobs(ctx context.Context, descriptions []string, resumeID *uuid.UUID) ([]string, error)
	ProcessJob(ctx context.Context, description string, resumeID *uuid.UUID) (*models.ProcessedJobData, error)
	ListByResume(resumeID uuid.UUID) ([]models.ProcessedJobData, error)
	GetJob(id uuid.UUID) (*models.ProcessedJobData, error)
	UpdateJob(id uuid.UUID, req *models.JobUpdateRequest) (*models.ProcessedJobData, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, filters repositories.JobSearchFilters) ([]models.ProcessedJobData, int64, string, error)
	ReindexAll(ctx context.Context) (int, int, error)
}

type jobService struct {
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	jobIndex      JobIndexService
	chunker       TextChunker
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewJobService(
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	jobIndex JobIndexService,
	maxRetries int,
) JobService {
	return &jobService{
		jobRepo:       jobRepo,
		geminiService: geminiService,
		jobIndex:      jobIndex,
		chunker:       NewTextChunker(),
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type extractedJob struct {
	JobTitle            string                `json:"job_title"`
	Company             string                `json:"company"`
	Location            string                `json:"location"`
	EmploymentType      string                `json:"employment_type"`
	JobSummary          string                `json:"job_summary"`
	KeyResponsibilities []string              `json:"key_responsibilities"`
	Qualifications      models.Qualifications `json:"qualifications"`
	Compensation        models.Compensation   `json:"compensation"`
	ExtractedKeywords   []string              `json:"extracted_keywords"`
}

// UploadJobs implements JobService. Each description is processed
// independently; one bad description fails the whole upload so the caller
// never gets a partial id list.
func (s *jobService) UploadJobs(ctx context.Context, descriptions []string, resumeID *uuid.UUID) ([]string, error) {
	var jobIDs []string

	for i, description := range descriptions {
		log.Printf("🔄 Processing job description %d/%d\n", i+1, len(descriptions))

		data, err := s.ProcessJob(ctx, description, resumeID)
		if err != nil {
			return nil, fmt.Errorf("failed to process job description %d: %w", i+1, err)
		}

		jobIDs = append(jobIDs, data.JobID)
	}

	return jobIDs, nil
}

// ProcessJob implements JobService.
func (s *jobService) ProcessJob(ctx context.Context, description string, resumeID *uuid.UUID) (*models.ProcessedJobData, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	// Step 1: Extract structured data with LLM
	log.Println("🤖 Extracting structured job data...")
	extractPrompt := s.promptBuilder.BuildJobExtractionPrompt(description)
	extractResp, err := s.geminiService.GenerateTextWithRetry(ctx, extractPrompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job structure: %w", err)
	}

	var extracted extractedJob
	if err := DecodeLLMResponse(extractResp, &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse job extraction response: %w", err)
	}

	// Step 2: Generate analysis scores
	log.Println("🤖 Scoring job posting...")
	structuredJSON, err := json.Marshal(extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structured job: %w", err)
	}

	var analysis *models.JobAnalysisScores
	analysisPrompt := s.promptBuilder.BuildJobAnalysisPrompt(string(structuredJSON))
	analysisResp, err := s.geminiService.GenerateTextWithRetry(ctx, analysisPrompt, 0.3, s.maxRetries)
	if err != nil {
		// Analysis failure degrades to an unscored job
		log.Printf("⚠️  Job scoring failed, storing without analysis: %v\n", err)
	} else {
		var parsed models.JobAnalysisScores
		if perr := DecodeLLMResponse(analysisResp, &parsed); perr != nil {
			log.Printf("⚠️  Failed to parse job analysis response: %v\n", perr)
		} else {
			analysis = &parsed
		}
	}

	// Step 3: Persist
	job := &models.ProcessedJob{
		JobID:               uuid.New(),
		ResumeID:            resumeID,
		JobTitle:            extracted.JobTitle,
		Company:             extracted.Company,
		Location:            extracted.Location,
		EmploymentType:      extracted.EmploymentType,
		JobSummary:          extracted.JobSummary,
		KeyResponsibilities: mustMarshal(extracted.KeyResponsibilities),
		Qualifications:      mustMarshal(extracted.Qualifications),
		Compensation:        mustMarshal(extracted.Compensation),
		ExtractedKeywords:   mustMarshal(extracted.ExtractedKeywords),
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if analysis != nil {
		scores := mustMarshal(*analysis)
		job.AnalysisScores = &scores
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}

	data, err := toJobData(job)
	if err != nil {
		return nil, err
	}

	// Step 4: Index for semantic search; failures never fail the upload
	if err := s.indexJob(ctx, data); err != nil {
		log.Printf("⚠️  Failed to index job %s: %v\n", job.JobID, err)
	}

	log.Printf("✅ Job %s processed successfully\n", job.JobID)
	return data, nil
}

func (s *jobService) indexJob(ctx context.Context, data *models.ProcessedJobData) error {
	indexText := strings.Join([]string{
		data.JobTitle,
		data.Company,
		data.JobSummary,
		strings.Join(data.KeyResponsibilities, "\n"),
		strings.Join(data.ExtractedKeywords, ", "),
	}, "\n")

	// Keep the embedded text bounded; one point per job
	chunks := s.chunker.ChunkText(indexText, 2000, 0)
	if len(chunks) > 0 {
		indexText = chunks[0]
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, indexText)
	if err != nil {
		return fmt.Errorf("failed to embed job: %w", err)
	}

	return s.jobIndex.UpsertJob(ctx, data.JobID, data.JobTitle, indexText, embedding)
}

// ReindexAll rebuilds the search index from the database. Returns how many
// jobs were indexed and how many failed.
func (s *jobService) ReindexAll(ctx context.Context) (int, int, error) {
	jobs, err := s.jobRepo.FindAll()
	if err != nil {
		return 0, 0, err
	}

	success, failed := 0, 0
	for i := range jobs {
		data, err := toJobData(&jobs[i])
		if err != nil {
			log.Printf("⚠️  Skipping job %s: %v\n", jobs[i].JobID, err)
			failed++
			continue
		}
		if err := s.indexJob(ctx, data); err != nil {
			log.Printf("⚠️  Failed to reindex job %s: %v\n", data.JobID, err)
			failed++
			continue
		}
		success++
	}

	return success, failed, nil
}

// ListByResume implements JobService.
func (s *jobService) ListByResume(resumeID uuid.UUID) ([]models.ProcessedJobData, error) {
	jobs, err := s.jobRepo.FindByResumeID(resumeID)
	if err != nil {
		return nil, err
	}

	return toJobDataList(jobs)
}

// GetJob implements JobService.
func (s *jobService) GetJob(id uuid.UUID) (*models.ProcessedJobData, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	return toJobData(job)
}

// UpdateJob implements JobService. Only presentation fields are mutable; the
// AI-derived structure is re-created by re-processing, not patched.
func (s *jobService) UpdateJob(id uuid.UUID, req *models.JobUpdateRequest) (*models.ProcessedJobData, error) {
	updates := map[string]interface{}{}
	if req.JobTitle != "" {
		updates["job_title"] = req.JobTitle
	}
	if req.Company != "" {
		updates["company"] = req.Company
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.EmploymentType != "" {
		updates["employment_type"] = req.EmploymentType
	}
	if req.JobSummary != "" {
		updates["job_summary"] = req.JobSummary
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no updatable fields in request")
	}

	if err := s.jobRepo.Update(id, updates); err != nil {
		return nil, err
	}

	return s.GetJob(id)
}

// DeleteJob implements JobService.
func (s *jobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := s.jobRepo.Delete(id); err != nil {
		return err
	}

	// The search index follows the database; a stale point is only a
	// cosmetic issue, so index errors are logged and swallowed.
	if err := s.jobIndex.DeleteJob(ctx, id.String()); err != nil {
		log.Printf("⚠️  Failed to remove job %s from index: %v\n", id, err)
	}

	return nil
}

// Search implements JobService. With a query it ranks by embedding similarity
// through the job index; without one it falls back to plain filtering.
func (s *jobService) Search(ctx context.Context, query string, filters repositories.JobSearchFilters) ([]models.ProcessedJobData, int64, string, error) {
	if strings.TrimSpace(query) == "" {
		jobs, total, err := s.jobRepo.Search(filters)
		if err != nil {
			return nil, 0, "", err
		}

		data, err := toJobDataList(jobs)
		return data, total, "filter", err
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to embed search query: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	hits, err := s.jobIndex.SearchJobs(ctx, embedding, limit+filters.Offset)
	if err != nil {
		return nil, 0, "", err
	}
	if filters.Offset < len(hits) {
		hits = hits[filters.Offset:]
	} else {
		hits = nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.JobID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	jobs, err := s.jobRepo.FindByIDs(ids)
	if err != nil {
		return nil, 0, "", err
	}

	// Preserve similarity ranking and apply the remaining filters in memory
	byID := make(map[uuid.UUID]models.ProcessedJob, len(jobs))
	for _, job := range jobs {
		byID[job.JobID] = job
	}

	var ranked []models.ProcessedJob
	for _, id := range ids {
		job, ok := byID[id]
		if !ok {
			continue
		}
		if filters.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(filters.Location)) {
			continue
		}
		if filters.EmploymentType != "" && job.EmploymentType != filters.EmploymentType {
			continue
		}
		ranked = append(ranked, job)
	}

	data, err := toJobDataList(ranked)
	return data, int64(len(ranked)), "semantic", err
}

// toJobData converts the persisted row back into the client-facing shape.
func toJobData(job *models.ProcessedJob) (*models.ProcessedJobData, error) {
	data := &models.ProcessedJobData{
		JobID:          job.JobID.String(),
		JobTitle:       job.JobTitle,
		Company:        job.Company,
		Location:       job.Location,
		EmploymentType: job.EmploymentType,
		JobSummary:     job.JobSummary,
		CreatedAt:      job.CreatedAt,
	}
	if job.ResumeID != nil {
		data.ResumeID = job.ResumeID.String()
	}

	fields := []struct {
		raw    string
		target interface{}
	}{
		{job.KeyResponsibilities, &data.KeyResponsibilities},
		{job.Qualifications, &data.Qualifications},
		{job.ExtractedKeywords, &data.ExtractedKeywords},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.target); err != nil {
			return nil, fmt.Errorf("failed to decode processed job field: %w", err)
		}
	}

	if job.Compensation != "" && job.Compensation != "null" {
		var comp models.Compensation
		if err := json.Unmarshal([]byte(job.Compensation), &comp); err != nil {
			return nil, fmt.Errorf("failed to decode compensation: %w", err)
		}
		data.Compensation = &comp
	}

	if job.AnalysisScores != nil {
		var scores models.JobAnalysisScores
		if err := json.Unmarshal([]byte(*job.AnalysisScores), &scores); err != nil {
			return nil, fmt.Errorf("failed to decode job analysis scores: %w", err)
		}
		data.AnalysisScores = &scores
	}

	return data, nil
}

func toJobDataList(jobs []models.ProcessedJob) ([]models.ProcessedJobData, error) {
	result := make([]models.ProcessedJobData, 0, len(jobs))
	for i := range jobs {
		data, err := toJobData(&jobs[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *data)
	}
	return result, nil
}
