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
)

type stubJobRepo struct {
	repositories.JobRepository
	jobs map[uuid.UUID]models.ProcessedJob

	searchResult []models.ProcessedJob
	searchTotal  int64
}

func (s *stubJobRepo) FindByIDs(ids []uuid.UUID) ([]models.ProcessedJob, error) {
	var jobs []models.ProcessedJob
	for _, id := range ids {
		if job, ok := s.jobs[id]; ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (s *stubJobRepo) Search(filters repositories.JobSearchFilters) ([]models.ProcessedJob, int64, error) {
	return s.searchResult, s.searchTotal, nil
}

type stubGemini struct{}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "", fmt.Errorf("not used")
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return "", fmt.Errorf("not used")
}

type stubIndex struct {
	hits []JobSearchHit
}

func (s *stubIndex) InitCollection() error { return nil }

func (s *stubIndex) UpsertJob(ctx context.Context, jobID, jobTitle, text string, embedding []float32) error {
	return nil
}

func (s *stubIndex) SearchJobs(ctx context.Context, queryEmbedding []float32, limit int) ([]JobSearchHit, error) {
	if limit < len(s.hits) {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

func (s *stubIndex) DeleteJob(ctx context.Context, jobID string) error { return nil }

func newSearchFixture() (*stubJobRepo, *stubIndex, []uuid.UUID) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	repo := &stubJobRepo{
		jobs: map[uuid.UUID]models.ProcessedJob{
			ids[0]: {JobID: ids[0], JobTitle: "Platform Engineer", Location: "Berlin", EmploymentType: "full-time"},
			ids[1]: {JobID: ids[1], JobTitle: "SRE", Location: "Remote", EmploymentType: "full-time"},
			ids[2]: {JobID: ids[2], JobTitle: "Backend Engineer", Location: "Berlin", EmploymentType: "contract"},
		},
	}

	index := &stubIndex{
		hits: []JobSearchHit{
			{JobID: ids[2].String(), Score: 0.91},
			{JobID: ids[0].String(), Score: 0.85},
			{JobID: ids[1].String(), Score: 0.60},
		},
	}

	return repo, index, ids
}

func TestSearchFilterModeWithoutQuery(t *testing.T) {
	repo, index, ids := newSearchFixture()
	repo.searchResult = []models.ProcessedJob{repo.jobs[ids[0]]}
	repo.searchTotal = 1

	svc := NewJobService(repo, &stubGemini{}, index, 1)

	jobs, total, matchedBy, err := svc.Search(context.Background(), "", repositories.JobSearchFilters{Location: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "filter", matchedBy)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Platform Engineer", jobs[0].JobTitle)
}

func TestSearchSemanticModePreservesRanking(t *testing.T) {
	repo, index, ids := newSearchFixture()
	svc := NewJobService(repo, &stubGemini{}, index, 1)

	jobs, total, matchedBy, err := svc.Search(context.Background(), "kubernetes", repositories.JobSearchFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "semantic", matchedBy)
	assert.Equal(t, int64(3), total)
	require.Len(t, jobs, 3)
	// Similarity order, not insertion order
	assert.Equal(t, ids[2].String(), jobs[0].JobID)
	assert.Equal(t, ids[0].String(), jobs[1].JobID)
	assert.Equal(t, ids[1].String(), jobs[2].JobID)
}

func TestSearchSemanticModeAppliesFilters(t *testing.T) {
	repo, index, _ := newSearchFixture()
	svc := NewJobService(repo, &stubGemini{}, index, 1)

	jobs, _, _, err := svc.Search(context.Background(), "kubernetes", repositories.JobSearchFilters{
		Location: "berlin",
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.Equal(t, "Berlin", job.Location)
	}

	jobs, _, _, err = svc.Search(context.Background(), "kubernetes", repositories.JobSearchFilters{
		Location:       "Berlin",
		EmploymentType: "contract",
		Limit:          10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].JobTitle)
}

func TestSearchSemanticModeOffset(t *testing.T) {
	repo, index, ids := newSearchFixture()
	svc := NewJobService(repo, &stubGemini{}, index, 1)

	jobs, _, _, err := svc.Search(context.Background(), "kubernetes", repositories.JobSearchFilters{
		Limit:  10,
		Offset: 2,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, ids[1].String(), jobs[0].JobID)

	jobs, _, _, err = svc.Search(context.Background(), "kubernetes", repositories.JobSearchFilters{
		Limit:  10,
		Offset: 99,
	})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestUpdateJobRejectsEmptyRequest(t *testing.T) {
	repo, index, _ := newSearchFixture()
	svc := NewJobService(repo, &stubGemini{}, index, 1)

	_, err := svc.UpdateJob(uuid.New(), &models.JobUpdateRequest{})
	assert.Error(t, err)
}

func TestProcessJobRejectsEmptyDescription(t *testing.T) {
	repo, index, _ := newSearchFixture()
	svc := NewJobService(repo, &stubGemini{}, index, 1)

	_, err := svc.ProcessJob(context.Background(), "   ", nil)
	assert.Error(t, err)
}
