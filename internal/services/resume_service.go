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
)

// ResumeService runs the resume processing pipeline: document parsing,
// structured extraction, AI scoring and feedback, persistence.
type ResumeService interface {
	ProcessResume(ctx context.Context, filePath, fileType, filename string) (*models.ProcessedResumeData, error)
	GetResume(id uuid.UUID) (*models.ProcessedResumeData, error)
}

type resumeService struct {
	resumeRepo    repositories.ResumeRepository
	parser        DocumentParserService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	parser DocumentParserService,
	geminiService GeminiService,
	maxRetries int,
) ResumeService {
	return &resumeService{
		resumeRepo:    resumeRepo,
		parser:        parser,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type extractedResume struct {
	PersonalData      models.PersonalData `json:"personal_data"`
	Experiences       []models.Experience `json:"experiences"`
	Education         []models.Education  `json:"education"`
	Skills            []models.Skill      `json:"skills"`
	ExtractedKeywords []string            `json:"extracted_keywords"`
}

type resumeAnalysis struct {
	Scores   models.AnalysisScores `json:"scores"`
	Feedback models.Feedback       `json:"feedback"`
}

// ProcessResume implements ResumeService.
func (s *resumeService) ProcessResume(ctx context.Context, filePath, fileType, filename string) (*models.ProcessedResumeData, error) {
	// Step 1: Parse the document
	log.Printf("📄 Parsing resume %s...\n", filename)
	content, err := s.parser.ExtractTextWithMetaData(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	text := CleanText(content.Text)

	// Step 2: Extract structured data with LLM
	log.Println("🤖 Extracting structured resume data...")
	extractPrompt := s.promptBuilder.BuildResumeExtractionPrompt(text)
	extractResp, err := s.geminiService.GenerateTextWithRetry(ctx, extractPrompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume structure: %w", err)
	}

	var extracted extractedResume
	if err := DecodeLLMResponse(extractResp, &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse resume extraction response: %w", err)
	}

	// Step 3: Generate analysis scores and feedback
	log.Println("🤖 Scoring resume...")
	structuredJSON, err := json.Marshal(extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structured resume: %w", err)
	}

	analysisPrompt := s.promptBuilder.BuildResumeAnalysisPrompt(string(structuredJSON))
	analysisResp, err := s.geminiService.GenerateTextWithRetry(ctx, analysisPrompt, 0.3, s.maxRetries)

	var analysis *resumeAnalysis
	if err != nil {
		// Scoring failure degrades to an unscored resume instead of failing the upload
		log.Printf("⚠️  Resume scoring failed, storing without analysis: %v\n", err)
	} else {
		var parsed resumeAnalysis
		if perr := DecodeLLMResponse(analysisResp, &parsed); perr != nil {
			log.Printf("⚠️  Failed to parse resume analysis response: %v\n", perr)
		} else {
			analysis = &parsed
		}
	}

	// Step 4: Persist
	log.Println("💾 Saving processed resume...")
	resume := &models.Resume{
		ID:          uuid.New(),
		Filename:    filename,
		FileType:    fileType,
		FilePath:    filePath,
		Content:     text,
		ContentType: "md",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.resumeRepo.Create(resume); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	processed := &models.ProcessedResume{
		ResumeID:          resume.ID,
		PersonalData:      mustMarshal(extracted.PersonalData),
		Experiences:       mustMarshal(extracted.Experiences),
		Education:         mustMarshal(extracted.Education),
		Skills:            mustMarshal(extracted.Skills),
		ExtractedKeywords: mustMarshal(extracted.ExtractedKeywords),
		ProcessedAt:       time.Now(),
		UpdatedAt:         time.Now(),
	}

	if analysis != nil {
		scores := mustMarshal(analysis.Scores)
		feedback := mustMarshal(analysis.Feedback)
		processed.AnalysisScores = &scores
		processed.Feedback = &feedback
	}

	if err := s.resumeRepo.SaveProcessed(processed); err != nil {
		return nil, fmt.Errorf("failed to store processed resume: %w", err)
	}

	log.Printf("✅ Resume %s processed successfully\n", resume.ID)
	return toResumeData(processed)
}

// GetResume implements ResumeService.
func (s *resumeService) GetResume(id uuid.UUID) (*models.ProcessedResumeData, error) {
	processed, err := s.resumeRepo.FindProcessedByID(id)
	if err != nil {
		return nil, err
	}

	return toResumeData(processed)
}

// toResumeData converts the persisted row back into the client-facing shape.
func toResumeData(p *models.ProcessedResume) (*models.ProcessedResumeData, error) {
	data := &models.ProcessedResumeData{
		ResumeID:    p.ResumeID.String(),
		ProcessedAt: p.ProcessedAt,
	}

	fields := []struct {
		raw    string
		target interface{}
	}{
		{p.PersonalData, &data.PersonalData},
		{p.Experiences, &data.Experiences},
		{p.Education, &data.Education},
		{p.Skills, &data.Skills},
		{p.ExtractedKeywords, &data.ExtractedKeywords},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.target); err != nil {
			return nil, fmt.Errorf("failed to decode processed resume field: %w", err)
		}
	}

	if p.AnalysisScores != nil {
		var scores models.AnalysisScores
		if err := json.Unmarshal([]byte(*p.AnalysisScores), &scores); err != nil {
			return nil, fmt.Errorf("failed to decode analysis scores: %w", err)
		}
		data.AnalysisScores = &scores
	}

	if p.Feedback != nil {
		var feedback models.Feedback
		if err := json.Unmarshal([]byte(*p.Feedback), &feedback); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		data.Feedback = &feedback
	}

	return data, nil
}

func mustMarshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
