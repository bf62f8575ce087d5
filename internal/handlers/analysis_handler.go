package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// HandleDashboard handles GET /api/v1/analysis/dashboard/:resume_id
func (h *AnalysisHandler) HandleDashboard(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("resume_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	data, err := h.analysisService.Dashboard(resumeID)
	if err != nil {
		return c.Status(analysisErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.DashboardResponse{
		Envelope: envelope(c, ""),
		Data:     *data,
	})
}

// HandleBulkAnalysis handles GET /api/v1/analysis/bulk-analysis/:resume_id?job_ids=a,b
// Omitting job_ids analyzes every job owned by the resume.
func (h *AnalysisHandler) HandleBulkAnalysis(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("resume_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	jobIDs, err := parseIDList(c.Query("job_ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_ids: " + err.Error(),
		})
	}

	result, err := h.analysisService.BulkAnalysis(c.UserContext(), resumeID, jobIDs)
	if err != nil {
		return c.Status(analysisErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.BulkAnalysisResponse{
		Envelope: envelope(c, ""),
		Data:     *result,
	})
}

// HandleComparison handles GET /api/v1/analysis/comparison?resume_ids=a,b&job_id=x
func (h *AnalysisHandler) HandleComparison(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Query("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	resumeIDs, err := parseIDList(c.Query("resume_ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_ids: " + err.Error(),
		})
	}
	if len(resumeIDs) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least two resume_ids are required for comparison",
		})
	}

	result, err := h.analysisService.Comparison(c.UserContext(), resumeIDs, jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ComparisonResponse{
		Envelope: envelope(c, ""),
		Data:     *result,
	})
}

// analysisErrorStatus maps a missing resume to 404; everything else is an
// internal failure.
func analysisErrorStatus(err error) int {
	if errors.Is(err, services.ErrResumeNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func parseIDList(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
