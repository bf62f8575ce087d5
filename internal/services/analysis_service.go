package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/score"
)

const recentMatchLimit = 5

// ErrResumeNotFound distinguishes a missing resume from internal failures so
// handlers can map it to the right status code.
var ErrResumeNotFound = errors.New("resume not found")

// AnalysisService builds the cross-cutting aggregates: the dashboard, bulk
// multi-job analysis and multi-resume comparison.
type AnalysisService interface {
	Dashboard(resumeID uuid.UUID) (*models.DashboardData, error)
	BulkAnalysis(ctx context.Context, resumeID uuid.UUID, jobIDs []uuid.UUID) (*models.BulkAnalysisResult, error)
	Comparison(ctx context.Context, resumeIDs []uuid.UUID, jobID uuid.UUID) (*models.ComparisonResult, error)
}

type analysisService struct {
	resumeRepo   repositories.ResumeRepository
	jobRepo      repositories.JobRepository
	matchService MatchService
}

func NewAnalysisService(
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	matchService MatchService,
) AnalysisService {
	return &analysisService{
		resumeRepo:   resumeRepo,
		jobRepo:      jobRepo,
		matchService: matchService,
	}
}

// Dashboard implements AnalysisService. It folds the full match history into
// analytics, the bucket histogram and the improvement summary.
func (s *analysisService) Dashboard(resumeID uuid.UUID) (*models.DashboardData, error) {
	processed, err := s.resumeRepo.FindProcessedByID(resumeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, resumeID)
	}
	resumeData, err := toResumeData(processed)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchService.GetMatchHistory(resumeID)
	if err != nil {
		return nil, err
	}

	// History contains every analysis run; the dashboard only counts the
	// latest one per job.
	latest := latestPerJob(matches)

	data := &models.DashboardData{
		ResumeID:   resumeID.String(),
		ResumeData: *resumeData,
	}

	scores := make([]float64, 0, len(latest))
	for _, m := range latest {
		scores = append(scores, m.OverallScore)
	}
	data.ScoreSummary = score.Summarize(scores)

	analytics := models.DashboardAnalytics{
		TotalMatchesPerformed: len(latest),
	}
	if resumeData.AnalysisScores != nil {
		analytics.ATSCompatibilityScore = resumeData.AnalysisScores.ATSCompatibility
	}
	var sum float64
	for _, m := range latest {
		sum += m.OverallScore
		if m.OverallScore > analytics.BestMatchScore {
			analytics.BestMatchScore = m.OverallScore
			analytics.BestMatchJobID = m.JobID
		}
	}
	if len(latest) > 0 {
		analytics.AverageMatchScore = sum / float64(len(latest))
	}
	data.Analytics = analytics

	recent := matches
	if len(recent) > recentMatchLimit {
		recent = recent[:recentMatchLimit]
	}
	data.RecentMatches = recent

	data.ImprovementSummary = summarizeImprovements(latest)

	return data, nil
}

// latestPerJob keeps the newest match per job. Input is ordered newest first,
// so the first occurrence of a job wins.
func latestPerJob(matches []models.MatchResult) []models.MatchResult {
	seen := make(map[string]bool, len(matches))
	var latest []models.MatchResult
	for _, m := range matches {
		if seen[m.JobID] {
			continue
		}
		seen[m.JobID] = true
		latest = append(latest, m)
	}
	return latest
}

// summarizeImprovements aggregates suggestions and gaps across matches into
// the dashboard improvement card: top 5 recurring gaps, top 10 missing skills.
func summarizeImprovements(matches []models.MatchResult) models.ImprovementSummary {
	summary := models.ImprovementSummary{}

	gapCounts := map[string]int{}
	skillCounts := map[string]int{}
	var priorities []score.Priority

	for _, m := range matches {
		summary.TotalSuggestions += len(m.ImprovementSuggestions)
		for _, s := range m.ImprovementSuggestions {
			priorities = append(priorities, s.Priority)
		}
		for _, gap := range m.MatchAnalysis.GapAnalysis.MajorGaps {
			gapCounts[gap]++
		}
		for _, skill := range m.MissingSkills {
			skillCounts[skill]++
		}
	}

	summary.PriorityIssues = score.CountPriorityIssues(priorities)
	summary.CommonGaps = topByCount(gapCounts, 5)
	summary.SkillRecommendations = topByCount(skillCounts, 10)

	return summary
}

// topByCount returns the n most frequent keys, most frequent first, ties
// broken alphabetically so the output is stable.
func topByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// BulkAnalysis implements AnalysisService. Jobs are analyzed concurrently and
// one failed job never fails the batch; it shows up as a failed entry instead.
// An empty jobIDs list means every job owned by the resume.
func (s *analysisService) BulkAnalysis(ctx context.Context, resumeID uuid.UUID, jobIDs []uuid.UUID) (*models.BulkAnalysisResult, error) {
	if _, err := s.resumeRepo.FindProcessedByID(resumeID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, resumeID)
	}

	if len(jobIDs) == 0 {
		jobs, err := s.jobRepo.FindByResumeID(resumeID)
		if err != nil {
			return nil, err
		}
		for _, job := range jobs {
			jobIDs = append(jobIDs, job.JobID)
		}
	}

	results := make([]models.BulkJobResult, len(jobIDs))

	var wg sync.WaitGroup
	for i, jobID := range jobIDs {
		wg.Add(1)
		go func(i int, jobID uuid.UUID) {
			defer wg.Done()

			match, err := s.matchService.AnalyzeMatch(ctx, resumeID, jobID)
			if err != nil {
				log.Printf("⚠️  Bulk analysis failed for job %s: %v\n", jobID, err)
				results[i] = models.BulkJobResult{
					JobID:  jobID.String(),
					Status: "failed",
					Error:  err.Error(),
				}
				return
			}

			results[i] = models.BulkJobResult{
				JobID:  jobID.String(),
				Status: "success",
				Match:  match,
			}
		}(i, jobID)
	}
	wg.Wait()

	result := &models.BulkAnalysisResult{
		ResumeID: resumeID.String(),
		Results:  results,
	}

	summary := models.BulkAnalysisSummary{TotalJobsAnalyzed: len(jobIDs)}
	for _, r := range results {
		if r.Status != "success" {
			summary.FailedAnalyses++
			continue
		}
		summary.SuccessfulAnalyses++
		if r.Match.OverallScore > summary.BestMatchScore {
			summary.BestMatchScore = r.Match.OverallScore
			summary.BestMatchJobID = r.JobID
		}
		result.Ranking = append(result.Ranking, models.BulkRankingEntry{
			JobID:           r.JobID,
			OverallScore:    r.Match.OverallScore,
			SkillsScore:     r.Match.SkillsScore,
			ExperienceScore: r.Match.ExperienceScore,
		})
	}
	sort.Slice(result.Ranking, func(i, j int) bool {
		return result.Ranking[i].OverallScore > result.Ranking[j].OverallScore
	})
	result.Summary = summary

	return result, nil
}

// Comparison implements AnalysisService. Several resumes against one job,
// with the same per-entry fault isolation as bulk analysis.
func (s *analysisService) Comparison(ctx context.Context, resumeIDs []uuid.UUID, jobID uuid.UUID) (*models.ComparisonResult, error) {
	entries := make([]models.ComparisonEntryResult, len(resumeIDs))

	var wg sync.WaitGroup
	for i, resumeID := range resumeIDs {
		wg.Add(1)
		go func(i int, resumeID uuid.UUID) {
			defer wg.Done()

			match, err := s.matchService.AnalyzeMatch(ctx, resumeID, jobID)
			if err != nil {
				log.Printf("⚠️  Comparison failed for resume %s: %v\n", resumeID, err)
				entries[i] = models.ComparisonEntryResult{
					ResumeID: resumeID.String(),
					Status:   "failed",
					Error:    err.Error(),
				}
				return
			}

			entries[i] = models.ComparisonEntryResult{
				ResumeID: resumeID.String(),
				Status:   "success",
				Match:    match,
			}
		}(i, resumeID)
	}
	wg.Wait()

	result := &models.ComparisonResult{
		JobID:                jobID.String(),
		TotalResumesCompared: len(resumeIDs),
		Results:              entries,
	}

	var successes []models.ComparisonEntryResult
	for _, e := range entries {
		if e.Status == "success" {
			successes = append(successes, e)
		}
	}
	result.SuccessfulComparisons = len(successes)

	if len(successes) > 0 {
		sort.Slice(successes, func(i, j int) bool {
			return successes[i].Match.OverallScore > successes[j].Match.OverallScore
		})

		result.ScoreRange = models.ComparisonScoreRange{
			Highest: successes[0].Match.OverallScore,
			Lowest:  successes[len(successes)-1].Match.OverallScore,
		}
		result.ScoreRange.Difference = result.ScoreRange.Highest - result.ScoreRange.Lowest

		for rank, e := range successes {
			strengths := e.Match.MatchAnalysis.GapAnalysis.Strengths
			if len(strengths) > 3 {
				strengths = strengths[:3]
			}
			result.Ranking = append(result.Ranking, models.ComparisonRankEntry{
				ResumeID:     e.ResumeID,
				Rank:         rank + 1,
				OverallScore: e.Match.OverallScore,
				KeyStrengths: strengths,
			})
		}
	}

	return result, nil
}
