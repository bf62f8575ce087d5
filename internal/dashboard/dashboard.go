package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/score"
)

const DefaultJobLimit = 6

// APIClient is the slice of the Fitscore API the dashboard needs.
type APIClient interface {
	GetResume(ctx context.Context, resumeID string) (*models.ProcessedResumeData, error)
	ListJobs(ctx context.Context, resumeID string) ([]models.ProcessedJobData, error)
	GetDashboard(ctx context.Context, resumeID string) (*models.DashboardData, error)
	BulkAnalysis(ctx context.Context, resumeID string, jobIDs []string) (*models.BulkAnalysisResult, error)
	AnalyzeMatch(ctx context.Context, resumeID, jobID string) (*models.MatchResult, error)
}

// Overview is the assembled dashboard state. Sections that failed to load are
// nil or empty; the overview itself is always usable.
type Overview struct {
	ResumeID string

	Resume *models.ProcessedResumeData
	Server *models.DashboardData
	Jobs   []models.ProcessedJobData
	Bulk   *models.BulkAnalysisResult

	// Matches holds one result per job id. Jobs whose analysis failed are
	// simply absent.
	Matches map[string]models.MatchResult

	Summary        score.Summary
	PriorityIssues int
	AverageScore   float64
	BestJobID      string
	BestScore      float64
}

// Loader assembles the dashboard from individual API calls.
type Loader struct {
	client   APIClient
	jobLimit int
}

func NewLoader(client APIClient, jobLimit int) *Loader {
	if jobLimit <= 0 {
		jobLimit = DefaultJobLimit
	}
	return &Loader{
		client:   client,
		jobLimit: jobLimit,
	}
}

// Load fetches the server aggregate, the job list, the bulk analysis and the
// resume concurrently, then analyzes each displayed job. Every section
// degrades independently; only a resume with no loadable sections at all is an
// error.
func (l *Loader) Load(ctx context.Context, resumeID string) (*Overview, error) {
	overview := &Overview{
		ResumeID: resumeID,
		Matches:  map[string]models.MatchResult{},
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		resume, err := l.client.GetResume(ctx, resumeID)
		if err != nil {
			log.Printf("⚠️  Failed to load resume section: %v\n", err)
			return
		}
		overview.Resume = resume
	}()

	go func() {
		defer wg.Done()
		jobs, err := l.client.ListJobs(ctx, resumeID)
		if err != nil {
			log.Printf("⚠️  Failed to load jobs section: %v\n", err)
			return
		}
		// Display cap, not pagination: excess jobs are not shown here
		if len(jobs) > l.jobLimit {
			jobs = jobs[:l.jobLimit]
		}
		overview.Jobs = jobs
	}()

	go func() {
		defer wg.Done()
		server, err := l.client.GetDashboard(ctx, resumeID)
		if err != nil {
			log.Printf("⚠️  Failed to load server aggregate: %v\n", err)
			return
		}
		overview.Server = server
	}()

	go func() {
		defer wg.Done()
		// Empty job id list means every job owned by the resume
		bulk, err := l.client.BulkAnalysis(ctx, resumeID, nil)
		if err != nil {
			log.Printf("⚠️  Failed to load bulk analysis: %v\n", err)
			return
		}
		overview.Bulk = bulk
	}()

	wg.Wait()

	if overview.Resume == nil && overview.Jobs == nil && overview.Server == nil && overview.Bulk == nil {
		return nil, fmt.Errorf("no dashboard sections available for resume %s", resumeID)
	}

	l.analyzeJobs(ctx, overview)
	fold(overview)

	return overview, nil
}

// analyzeJobs fans out one match analysis per displayed job. A failed job is
// skipped; it never blocks the others.
func (l *Loader) analyzeJobs(ctx context.Context, overview *Overview) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, job := range overview.Jobs {
		wg.Add(1)
		go func(jobID string) {
			defer wg.Done()

			match, err := l.client.AnalyzeMatch(ctx, overview.ResumeID, jobID)
			if err != nil {
				log.Printf("⚠️  Match analysis failed for job %s: %v\n", jobID, err)
				return
			}

			mu.Lock()
			overview.Matches[jobID] = *match
			mu.Unlock()
		}(job.JobID)
	}

	wg.Wait()
}

// fold recomputes the summary figures from the matches actually loaded. The
// same bucketing as the server aggregate, so a fully loaded overview agrees
// with the server's numbers.
func fold(overview *Overview) {
	scores := make([]float64, 0, len(overview.Matches))
	var priorities []score.Priority
	var sum float64

	for jobID, match := range overview.Matches {
		scores = append(scores, match.OverallScore)
		sum += match.OverallScore
		for _, s := range match.ImprovementSuggestions {
			priorities = append(priorities, s.Priority)
		}
		if match.OverallScore > overview.BestScore {
			overview.BestScore = match.OverallScore
			overview.BestJobID = jobID
		}
	}

	overview.Summary = score.Summarize(scores)
	overview.PriorityIssues = score.CountPriorityIssues(priorities)
	if len(scores) > 0 {
		overview.AverageScore = sum / float64(len(scores))
	}
}
