package models

import (
	"time"

	"clarivue/fitscore/internal/score"
)

// Envelope wraps every JSON response the API returns.
type Envelope struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message,omitempty"`
}

// --- structured resume sections ---

type PersonalData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Experience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

// AnalysisScores is the AI score bundle attached to a processed resume.
// All scores are 0-100.
type AnalysisScores struct {
	ATSCompatibility int `json:"ats_compatibility"`
	KeywordDensity   int `json:"keyword_density"`
	StructureQuality int `json:"structure_quality"`
	ContentRelevance int `json:"content_relevance"`
	OverallScore     int `json:"overall_score"`
}

// Feedback is the AI-generated qualitative feedback bundle.
type Feedback struct {
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Suggestions        []string `json:"suggestions"`
	MissingElements    []string `json:"missing_elements"`
	ATSRecommendations []string `json:"ats_recommendations"`
}

// ProcessedResumeData is the full client-facing view of a processed resume.
type ProcessedResumeData struct {
	ResumeID          string          `json:"resume_id"`
	PersonalData      PersonalData    `json:"personal_data"`
	Experiences       []Experience    `json:"experiences"`
	Education         []Education     `json:"education"`
	Skills            []Skill         `json:"skills"`
	ExtractedKeywords []string        `json:"extracted_keywords"`
	AnalysisScores    *AnalysisScores `json:"analysis_scores,omitempty"`
	Feedback          *Feedback       `json:"feedback,omitempty"`
	ProcessedAt       time.Time       `json:"processed_at"`
}

// --- structured job shapes ---

type Qualifications struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

type Compensation struct {
	SalaryMin int    `json:"salary_min,omitempty"`
	SalaryMax int    `json:"salary_max,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Benefits  []string `json:"benefits,omitempty"`
}

// JobAnalysisScores is the AI score bundle attached to a processed job.
type JobAnalysisScores struct {
	RequirementsClarity int    `json:"requirements_clarity"`
	KeywordComplexity   int    `json:"keyword_complexity"`
	MatchPotential      int    `json:"match_potential"`
	DifficultyLevel     string `json:"difficulty_level"`
}

// ProcessedJobData is the full client-facing view of a processed job.
type ProcessedJobData struct {
	JobID               string             `json:"job_id"`
	ResumeID            string             `json:"resume_id,omitempty"`
	JobTitle            string             `json:"job_title"`
	Company             string             `json:"company"`
	Location            string             `json:"location,omitempty"`
	EmploymentType      string             `json:"employment_type,omitempty"`
	JobSummary          string             `json:"job_summary"`
	KeyResponsibilities []string           `json:"key_responsibilities"`
	Qualifications      Qualifications     `json:"qualifications"`
	Compensation        *Compensation      `json:"compensation,omitempty"`
	ExtractedKeywords   []string           `json:"extracted_keywords"`
	AnalysisScores      *JobAnalysisScores `json:"analysis_scores,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// --- match analysis shapes ---

// ImprovementSuggestion is one ranked, categorized recommendation.
type ImprovementSuggestion struct {
	Category    score.Category `json:"category"`
	Priority    score.Priority `json:"priority"`
	Suggestion  string         `json:"suggestion"`
	ImpactScore int            `json:"impact_score"`
	Examples    []string       `json:"examples,omitempty"`
}

// MatchAnalysis is the detailed per-area breakdown produced by the LLM.
type MatchAnalysis struct {
	SkillsAnalysis     SkillsAnalysis     `json:"skills_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	EducationAnalysis  EducationAnalysis  `json:"education_analysis"`
	KeywordAnalysis    KeywordAnalysis    `json:"keyword_analysis"`
	GapAnalysis        GapAnalysis        `json:"gap_analysis"`
}

type SkillsAnalysis struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	SkillGaps      []string `json:"skill_gaps,omitempty"`
	SkillScore     float64  `json:"skill_score"`
}

type ExperienceAnalysis struct {
	RelevantExperience []string `json:"relevant_experience"`
	ExperienceGaps     []string `json:"experience_gaps,omitempty"`
	LevelMatch         float64  `json:"level_match"`
	ExperienceScore    float64  `json:"experience_score"`
}

type EducationAnalysis struct {
	EducationMatch     float64  `json:"education_match"`
	EducationGaps      []string `json:"education_gaps,omitempty"`
	CertificationNeeds []string `json:"certification_needs,omitempty"`
}

type KeywordAnalysis struct {
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	KeywordDensity   float64  `json:"keyword_density"`
	KeywordScore     float64  `json:"keyword_score"`
}

type GapAnalysis struct {
	MajorGaps  []string `json:"major_gaps"`
	MinorGaps  []string `json:"minor_gaps,omitempty"`
	Strengths  []string `json:"strengths"`
	OverallFit float64  `json:"overall_fit"`
}

// MatchResult is the central value object of the aggregation layer: one
// resume x job compatibility analysis. All scores are 0-100, confidence 0-1.
type MatchResult struct {
	ResumeID               string                  `json:"resume_id"`
	JobID                  string                  `json:"job_id"`
	OverallScore           float64                 `json:"overall_score"`
	SkillsScore            float64                 `json:"skills_score"`
	ExperienceScore        float64                 `json:"experience_score"`
	EducationScore         float64                 `json:"education_score"`
	KeywordsScore          float64                 `json:"keywords_score"`
	MatchAnalysis          MatchAnalysis           `json:"match_analysis"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions"`
	MatchingSkills         []string                `json:"matching_skills"`
	MissingSkills          []string                `json:"missing_skills"`
	Insight                string                  `json:"insight,omitempty"`
	Confidence             float64                 `json:"confidence"`
	AnalysisVersion        string                  `json:"analysis_version,omitempty"`
	CreatedAt              time.Time               `json:"created_at"`
}

// PriorityIssueCount returns how many suggestions are critical or high
// priority. Advisory only; rendered as a badge next to the job card.
func (m *MatchResult) PriorityIssueCount() int {
	priorities := make([]score.Priority, 0, len(m.ImprovementSuggestions))
	for _, s := range m.ImprovementSuggestions {
		priorities = append(priorities, s.Priority)
	}
	return score.CountPriorityIssues(priorities)
}

// --- request payloads ---

type JobUploadRequest struct {
	JobDescriptions []string `json:"job_descriptions"`
	ResumeID        string   `json:"resume_id,omitempty"`
}

type JobProcessRequest struct {
	JobDescription string `json:"job_description"`
	ResumeID       string `json:"resume_id,omitempty"`
}

type JobUpdateRequest struct {
	JobTitle       string `json:"job_title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	JobSummary     string `json:"job_summary,omitempty"`
}

type AnalyzeMatchRequest struct {
	ResumeID string `json:"resume_id"`
	JobID    string `json:"job_id"`
}

type ImproveRequest struct {
	ResumeID string `json:"resume_id"`
	JobID    string `json:"job_id"`
}

// --- response payloads ---

type JobUploadResponse struct {
	Envelope
	JobIDs []string `json:"job_ids"`
}

type JobProcessResponse struct {
	Envelope
	Data ProcessedJobData `json:"data"`
}

type JobListResponse struct {
	Envelope
	Data []ProcessedJobData `json:"data"`
}

type JobResponse struct {
	Envelope
	Data ProcessedJobData `json:"data"`
}

type JobSearchResponse struct {
	Envelope
	Data    []ProcessedJobData `json:"data"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Query   string             `json:"query,omitempty"`
	Matched string             `json:"matched_by,omitempty"`
}

type ResumeProcessResponse struct {
	Envelope
	ResumeID string              `json:"resume_id"`
	Data     ProcessedResumeData `json:"data"`
}

type ResumeResponse struct {
	Envelope
	Data ProcessedResumeData `json:"data"`
}

type MatchResponse struct {
	Envelope
	Data MatchResult `json:"data"`
}

type MatchHistoryResponse struct {
	Envelope
	Data struct {
		ResumeID   string        `json:"resume_id"`
		MatchCount int           `json:"match_count"`
		Matches    []MatchResult `json:"matches"`
	} `json:"data"`
}

// DashboardData is the server-computed dashboard aggregate.
type DashboardData struct {
	ResumeID   string              `json:"resume_id"`
	ResumeData ProcessedResumeData `json:"resume_data"`
	Analytics  DashboardAnalytics  `json:"analytics"`
	// ScoreSummary is computed with the same bucketing as the client side.
	ScoreSummary       score.Summary      `json:"score_summary"`
	RecentMatches      []MatchResult      `json:"recent_matches"`
	ImprovementSummary ImprovementSummary `json:"improvement_summary"`
}

type DashboardAnalytics struct {
	TotalMatchesPerformed int     `json:"total_matches_performed"`
	AverageMatchScore     float64 `json:"average_match_score"`
	BestMatchScore        float64 `json:"best_match_score"`
	BestMatchJobID        string  `json:"best_match_job_id,omitempty"`
	ATSCompatibilityScore int     `json:"ats_compatibility_score"`
}

type ImprovementSummary struct {
	TotalSuggestions     int      `json:"total_suggestions"`
	PriorityIssues       int      `json:"priority_issues"`
	CommonGaps           []string `json:"common_gaps"`
	SkillRecommendations []string `json:"skill_recommendations"`
}

type DashboardResponse struct {
	Envelope
	Data DashboardData `json:"data"`
}

// BulkAnalysisResult is the multi-job analysis aggregate.
type BulkAnalysisResult struct {
	ResumeID string              `json:"resume_id"`
	Summary  BulkAnalysisSummary `json:"summary"`
	Results  []BulkJobResult     `json:"results"`
	Ranking  []BulkRankingEntry  `json:"ranking"`
}

type BulkAnalysisSummary struct {
	TotalJobsAnalyzed  int     `json:"total_jobs_analyzed"`
	SuccessfulAnalyses int     `json:"successful_analyses"`
	FailedAnalyses     int     `json:"failed_analyses"`
	BestMatchJobID     string  `json:"best_match_job_id,omitempty"`
	BestMatchScore     float64 `json:"best_match_score"`
}

type BulkJobResult struct {
	JobID  string       `json:"job_id"`
	Status string       `json:"status"`
	Match  *MatchResult `json:"match_result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type BulkRankingEntry struct {
	JobID           string  `json:"job_id"`
	OverallScore    float64 `json:"overall_score"`
	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
}

type BulkAnalysisResponse struct {
	Envelope
	Data BulkAnalysisResult `json:"data"`
}

// ComparisonResult compares several resumes against the same job.
type ComparisonResult struct {
	JobID                 string                  `json:"job_id"`
	TotalResumesCompared  int                     `json:"total_resumes_compared"`
	SuccessfulComparisons int                     `json:"successful_comparisons"`
	ScoreRange            ComparisonScoreRange    `json:"score_range"`
	Results               []ComparisonEntryResult `json:"results"`
	Ranking               []ComparisonRankEntry   `json:"ranking"`
}

type ComparisonScoreRange struct {
	Highest    float64 `json:"highest"`
	Lowest     float64 `json:"lowest"`
	Difference float64 `json:"difference"`
}

type ComparisonEntryResult struct {
	ResumeID string       `json:"resume_id"`
	Status   string       `json:"status"`
	Match    *MatchResult `json:"match_result,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type ComparisonRankEntry struct {
	ResumeID     string   `json:"resume_id"`
	Rank         int      `json:"rank"`
	OverallScore float64  `json:"overall_score"`
	KeyStrengths []string `json:"key_strengths"`
}

type ComparisonResponse struct {
	Envelope
	Data ComparisonResult `json:"data"`
}
