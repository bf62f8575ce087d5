package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/score"
)

const analysisVersion = "2.0"

// Component weights for the overall match score.
const (
	weightSkills     = 0.4
	weightExperience = 0.3
	weightKeywords   = 0.2
	weightEducation  = 0.1
)

// MatchService analyzes resume x job compatibility and keeps the match
// history.
type MatchService interface {
	AnalyzeMatch(ctx context.Context, resumeID, jobID uuid.UUID) (*models.MatchResult, error)
	GetMatchHistory(resumeID uuid.UUID) ([]models.MatchResult, error)
	GetLatestMatch(resumeID, jobID uuid.UUID) (*models.MatchResult, error)
}

type matchService struct {
	matchRepo     repositories.MatchRepository
	resumeRepo    repositories.ResumeRepository
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	maxRetries int,
) MatchService {
	return &matchService{
		matchRepo:     matchRepo,
		resumeRepo:    resumeRepo,
		jobRepo:       jobRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ComponentScores are the per-area scores extracted from a match analysis.
type ComponentScores struct {
	Skills     float64
	Experience float64
	Education  float64
	Keywords   float64
}

// WeightedOverall folds component scores into the single overall match score.
// Skills dominate, education matters least. The result is clamped so a
// misbehaving model can never push a score out of range.
func WeightedOverall(c ComponentScores) float64 {
	overall := c.Skills*weightSkills +
		c.Experience*weightExperience +
		c.Keywords*weightKeywords +
		c.Education*weightEducation
	return score.ClampWidth(overall)
}

// ExtractComponentScores pulls the per-area scores out of the LLM analysis,
// clamping each to [0,100].
func ExtractComponentScores(analysis *models.MatchAnalysis) ComponentScores {
	return ComponentScores{
		Skills:     score.ClampWidth(analysis.SkillsAnalysis.SkillScore),
		Experience: score.ClampWidth(analysis.ExperienceAnalysis.ExperienceScore),
		Education:  score.ClampWidth(analysis.EducationAnalysis.EducationMatch),
		Keywords:   score.ClampWidth(analysis.KeywordAnalysis.KeywordScore),
	}
}

// AnalyzeMatch implements MatchService. The pipeline is: load both sides,
// run the detailed analysis, derive scores, generate suggestions and the
// insight, persist, return.
func (s *matchService) AnalyzeMatch(ctx context.Context, resumeID, jobID uuid.UUID) (*models.MatchResult, error) {
	log.Printf("🔍 Analyzing match resume=%s job=%s\n", resumeID, jobID)

	processed, err := s.resumeRepo.FindProcessedByID(resumeID)
	if err != nil {
		return nil, fmt.Errorf("resume %s not found: %w", resumeID, err)
	}
	resumeData, err := toResumeData(processed)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("job %s not found: %w", jobID, err)
	}
	jobData, err := toJobData(job)
	if err != nil {
		return nil, err
	}

	resumeJSON, err := json.Marshal(resumeData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	jobJSON, err := json.Marshal(jobData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job data: %w", err)
	}

	// Step 1: Detailed match analysis
	analysisPrompt := s.promptBuilder.BuildMatchAnalysisPrompt(string(resumeJSON), string(jobJSON))
	analysisResp, err := s.geminiService.GenerateTextWithRetry(ctx, analysisPrompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("match analysis failed: %w", err)
	}

	var analysis models.MatchAnalysis
	if err := DecodeLLMResponse(analysisResp, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse match analysis response: %w", err)
	}

	components := ExtractComponentScores(&analysis)
	overall := WeightedOverall(components)

	// Step 2: Improvement suggestions; failure degrades to an empty list
	var suggestions []models.ImprovementSuggestion
	analysisJSON, _ := json.Marshal(analysis)
	improvePrompt := s.promptBuilder.BuildImprovementPrompt(string(analysisJSON))
	improveResp, err := s.geminiService.GenerateTextWithRetry(ctx, improvePrompt, 0.5, s.maxRetries)
	if err != nil {
		log.Printf("⚠️  Improvement suggestions failed: %v\n", err)
	} else if perr := DecodeLLMResponse(improveResp, &suggestions); perr != nil {
		log.Printf("⚠️  Failed to parse improvement suggestions: %v\n", perr)
		suggestions = nil
	}

	// Step 3: Insight; failure degrades to empty text
	insight := ""
	insightPrompt := s.promptBuilder.BuildInsightPrompt(
		jobData.JobTitle,
		overall,
		analysis.SkillsAnalysis.MatchingSkills,
		analysis.SkillsAnalysis.MissingSkills,
	)
	insightResp, err := s.geminiService.GenerateText(ctx, insightPrompt, 0.7)
	if err != nil {
		log.Printf("⚠️  Insight generation failed: %v\n", err)
	} else {
		insight = insightResp
	}

	// Step 4: Persist
	match := &models.ResumeJobMatch{
		ID:                     uuid.New(),
		ResumeID:               resumeID,
		JobID:                  jobID,
		OverallScore:           overall,
		SkillsScore:            components.Skills,
		ExperienceScore:        components.Experience,
		EducationScore:         components.Education,
		KeywordsScore:          components.Keywords,
		MatchAnalysis:          mustMarshal(analysis),
		ImprovementSuggestions: mustMarshal(suggestions),
		MatchingSkills:         mustMarshal(analysis.SkillsAnalysis.MatchingSkills),
		MissingSkills:          mustMarshal(analysis.SkillsAnalysis.MissingSkills),
		Insight:                insight,
		Confidence:             confidenceFor(&analysis),
		AnalysisVersion:        analysisVersion,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}

	if err := s.matchRepo.Create(match); err != nil {
		return nil, fmt.Errorf("failed to store match result: %w", err)
	}

	log.Printf("✅ Match analyzed: overall=%.1f (%s)\n", overall, score.Label(overall))
	return toMatchResult(match)
}

// confidenceFor estimates how much signal the analysis carried. Sparse
// analyses (no skills either way, no keyword overlap) get low confidence.
func confidenceFor(analysis *models.MatchAnalysis) float64 {
	signals := 0
	if len(analysis.SkillsAnalysis.MatchingSkills)+len(analysis.SkillsAnalysis.MissingSkills) > 0 {
		signals++
	}
	if len(analysis.ExperienceAnalysis.RelevantExperience) > 0 {
		signals++
	}
	if len(analysis.KeywordAnalysis.MatchingKeywords)+len(analysis.KeywordAnalysis.MissingKeywords) > 0 {
		signals++
	}
	if len(analysis.GapAnalysis.MajorGaps)+len(analysis.GapAnalysis.Strengths) > 0 {
		signals++
	}

	return 0.2 + 0.2*float64(signals)
}

// GetMatchHistory implements MatchService. Newest first.
func (s *matchService) GetMatchHistory(resumeID uuid.UUID) ([]models.MatchResult, error) {
	matches, err := s.matchRepo.FindByResumeID(resumeID)
	if err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(matches))
	for i := range matches {
		result, err := toMatchResult(&matches[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return results, nil
}

// GetLatestMatch implements MatchService.
func (s *matchService) GetLatestMatch(resumeID, jobID uuid.UUID) (*models.MatchResult, error) {
	match, err := s.matchRepo.FindLatest(resumeID, jobID)
	if err != nil {
		return nil, err
	}

	return toMatchResult(match)
}

// toMatchResult converts the persisted row back into the client-facing shape.
func toMatchResult(m *models.ResumeJobMatch) (*models.MatchResult, error) {
	result := &models.MatchResult{
		ResumeID:        m.ResumeID.String(),
		JobID:           m.JobID.String(),
		OverallScore:    m.OverallScore,
		SkillsScore:     m.SkillsScore,
		ExperienceScore: m.ExperienceScore,
		EducationScore:  m.EducationScore,
		KeywordsScore:   m.KeywordsScore,
		Insight:         m.Insight,
		Confidence:      m.Confidence,
		AnalysisVersion: m.AnalysisVersion,
		CreatedAt:       m.CreatedAt,
	}

	fields := []struct {
		raw    string
		target interface{}
	}{
		{m.MatchAnalysis, &result.MatchAnalysis},
		{m.ImprovementSuggestions, &result.ImprovementSuggestions},
		{m.MatchingSkills, &result.MatchingSkills},
		{m.MissingSkills, &result.MissingSkills},
	}
	for _, f := range fields {
		if f.raw == "" || f.raw == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.target); err != nil {
			return nil, fmt.Errorf("failed to decode match field: %w", err)
		}
	}

	return result, nil
}
