package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/services"
)

type ResumeHandler struct {
	resumeService  services.ResumeService
	matchService   services.MatchService
	storageService services.StorageService
	maxFileSize    int64
}

func NewResumeHandler(
	resumeService services.ResumeService,
	matchService services.MatchService,
	storageService services.StorageService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeService:  resumeService,
		matchService:   matchService,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleProcessEnhanced handles POST /api/v1/resumes/process-enhanced
func (h *ResumeHandler) HandleProcessEnhanced(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload 'file' as PDF or DOCX.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")

	data, err := h.resumeService.ProcessResume(c.UserContext(), filePath, fileType, file.Filename)
	if err != nil {
		// Processing failed; the stored file is useless without a record
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeProcessResponse{
		Envelope: envelope(c, "Resume processed successfully"),
		ResumeID: data.ResumeID,
		Data:     *data,
	})
}

// HandleGet handles GET /api/v1/resumes/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume id format",
		})
	}

	data, err := h.resumeService.GetResume(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	return c.JSON(models.ResumeResponse{
		Envelope: envelope(c, ""),
		Data:     *data,
	})
}

// HandleAnalyzeMatch handles POST /api/v1/resumes/analyze-match
func (h *ResumeHandler) HandleAnalyzeMatch(c *fiber.Ctx) error {
	var req models.AnalyzeMatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resumeID, jobID, err := parsePair(req.ResumeID, req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	match, err := h.matchService.AnalyzeMatch(c.UserContext(), resumeID, jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.MatchResponse{
		Envelope: envelope(c, "Match analyzed successfully"),
		Data:     *match,
	})
}

// HandleImprove handles POST /api/v1/resumes/improve. It reuses the latest
// match for the pair when one exists; a fresh pair is analyzed first.
func (h *ResumeHandler) HandleImprove(c *fiber.Ctx) error {
	var req models.ImproveRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resumeID, jobID, err := parsePair(req.ResumeID, req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	match, err := h.matchService.GetLatestMatch(resumeID, jobID)
	if err != nil {
		match, err = h.matchService.AnalyzeMatch(c.UserContext(), resumeID, jobID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(models.MatchResponse{
		Envelope: envelope(c, "Improvement suggestions generated"),
		Data:     *match,
	})
}

// HandleMatchHistory handles GET /api/v1/resumes/:id/matches
func (h *ResumeHandler) HandleMatchHistory(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume id format",
		})
	}

	matches, err := h.matchService.GetMatchHistory(resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := models.MatchHistoryResponse{
		Envelope: envelope(c, ""),
	}
	resp.Data.ResumeID = resumeID.String()
	resp.Data.MatchCount = len(matches)
	resp.Data.Matches = matches

	return c.JSON(resp)
}

func parsePair(resumeIDStr, jobIDStr string) (uuid.UUID, uuid.UUID, error) {
	if resumeIDStr == "" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("resume_id is required")
	}
	if jobIDStr == "" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("job_id is required")
	}

	resumeID, err := uuid.Parse(resumeIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid resume_id format")
	}
	jobID, err := uuid.Parse(jobIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid job_id format")
	}

	return resumeID, jobID, nil
}
