package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/score"
)

type stubResumeRepo struct {
	repositories.ResumeRepository
	known map[uuid.UUID]bool
}

func (s *stubResumeRepo) FindProcessedByID(id uuid.UUID) (*models.ProcessedResume, error) {
	if !s.known[id] {
		return nil, fmt.Errorf("processed resume not found")
	}
	return &models.ProcessedResume{ResumeID: id}, nil
}

type stubJobsByResumeRepo struct {
	repositories.JobRepository
	jobs []models.ProcessedJob
}

func (s *stubJobsByResumeRepo) FindByResumeID(resumeID uuid.UUID) ([]models.ProcessedJob, error) {
	return s.jobs, nil
}

type stubMatchService struct {
	results map[uuid.UUID]*models.MatchResult
}

func (s *stubMatchService) AnalyzeMatch(ctx context.Context, resumeID, jobID uuid.UUID) (*models.MatchResult, error) {
	if match, ok := s.results[jobID]; ok {
		return match, nil
	}
	return nil, fmt.Errorf("analysis failed for %s", jobID)
}

func (s *stubMatchService) GetMatchHistory(resumeID uuid.UUID) ([]models.MatchResult, error) {
	return nil, nil
}

func (s *stubMatchService) GetLatestMatch(resumeID, jobID uuid.UUID) (*models.MatchResult, error) {
	return nil, fmt.Errorf("no match")
}

func TestLatestPerJobKeepsNewestRow(t *testing.T) {
	// Input is newest first; the re-analysis of job-1 must win
	matches := []models.MatchResult{
		{JobID: "job-1", OverallScore: 90},
		{JobID: "job-2", OverallScore: 70},
		{JobID: "job-1", OverallScore: 50},
	}

	latest := latestPerJob(matches)
	assert.Len(t, latest, 2)
	assert.Equal(t, 90.0, latest[0].OverallScore)
	assert.Equal(t, "job-2", latest[1].JobID)
}

func TestTopByCount(t *testing.T) {
	counts := map[string]int{
		"kubernetes": 3,
		"terraform":  1,
		"grpc":       3,
		"kafka":      2,
	}

	top := topByCount(counts, 3)
	// Frequency order, ties alphabetical
	assert.Equal(t, []string{"grpc", "kubernetes", "kafka"}, top)
}

func TestTopByCountShortMap(t *testing.T) {
	assert.Equal(t, []string{"go"}, topByCount(map[string]int{"go": 1}, 5))
	assert.Empty(t, topByCount(map[string]int{}, 5))
}

func TestSummarizeImprovements(t *testing.T) {
	matches := []models.MatchResult{
		{
			JobID: "job-1",
			ImprovementSuggestions: []models.ImprovementSuggestion{
				{Priority: score.PriorityCritical},
				{Priority: score.PriorityMedium},
			},
			MatchAnalysis: models.MatchAnalysis{
				GapAnalysis: models.GapAnalysis{MajorGaps: []string{"cloud experience"}},
			},
			MissingSkills: []string{"kubernetes", "aws"},
		},
		{
			JobID: "job-2",
			ImprovementSuggestions: []models.ImprovementSuggestion{
				{Priority: score.PriorityHigh},
			},
			MatchAnalysis: models.MatchAnalysis{
				GapAnalysis: models.GapAnalysis{MajorGaps: []string{"cloud experience", "leadership"}},
			},
			MissingSkills: []string{"kubernetes"},
		},
	}

	summary := summarizeImprovements(matches)

	assert.Equal(t, 3, summary.TotalSuggestions)
	assert.Equal(t, 2, summary.PriorityIssues)
	assert.Equal(t, []string{"cloud experience", "leadership"}, summary.CommonGaps)
	assert.Equal(t, []string{"kubernetes", "aws"}, summary.SkillRecommendations)
}

func TestBulkAnalysisDefaultsToAllJobsForResume(t *testing.T) {
	resumeID := uuid.New()
	jobA, jobB := uuid.New(), uuid.New()

	svc := NewAnalysisService(
		&stubResumeRepo{known: map[uuid.UUID]bool{resumeID: true}},
		&stubJobsByResumeRepo{jobs: []models.ProcessedJob{{JobID: jobA}, {JobID: jobB}}},
		&stubMatchService{results: map[uuid.UUID]*models.MatchResult{
			jobA: {JobID: jobA.String(), OverallScore: 81},
			jobB: {JobID: jobB.String(), OverallScore: 64},
		}},
	)

	// Empty job id list means every job owned by the resume
	result, err := svc.BulkAnalysis(context.Background(), resumeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.TotalJobsAnalyzed)
	assert.Equal(t, 2, result.Summary.SuccessfulAnalyses)
	assert.Equal(t, 81.0, result.Summary.BestMatchScore)
	assert.Equal(t, jobA.String(), result.Summary.BestMatchJobID)
}

func TestBulkAnalysisIsolatesFailedJobs(t *testing.T) {
	resumeID := uuid.New()
	jobA, jobB := uuid.New(), uuid.New()

	svc := NewAnalysisService(
		&stubResumeRepo{known: map[uuid.UUID]bool{resumeID: true}},
		&stubJobsByResumeRepo{},
		&stubMatchService{results: map[uuid.UUID]*models.MatchResult{
			jobA: {JobID: jobA.String(), OverallScore: 75},
			// jobB fails
		}},
	)

	result, err := svc.BulkAnalysis(context.Background(), resumeID, []uuid.UUID{jobA, jobB})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.SuccessfulAnalyses)
	assert.Equal(t, 1, result.Summary.FailedAnalyses)
	require.Len(t, result.Results, 2)
	for _, r := range result.Results {
		if r.JobID == jobB.String() {
			assert.Equal(t, "failed", r.Status)
			assert.NotEmpty(t, r.Error)
		}
	}
}

func TestBulkAnalysisUnknownResume(t *testing.T) {
	svc := NewAnalysisService(
		&stubResumeRepo{},
		&stubJobsByResumeRepo{},
		&stubMatchService{},
	)

	_, err := svc.BulkAnalysis(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestSummarizeImprovementsEmpty(t *testing.T) {
	summary := summarizeImprovements(nil)

	assert.Equal(t, 0, summary.TotalSuggestions)
	assert.Equal(t, 0, summary.PriorityIssues)
	assert.Empty(t, summary.CommonGaps)
	assert.Empty(t, summary.SkillRecommendations)
}
