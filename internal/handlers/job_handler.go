package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/services"
)

type JobHandler struct {
	jobService services.JobService
	worker     services.Worker
}

func NewJobHandler(jobService services.JobService, worker services.Worker) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		worker:     worker,
	}
}

// HandleUpload handles POST /api/v1/jobs/upload
func (h *JobHandler) HandleUpload(c *fiber.Ctx) error {
	var req models.JobUploadRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.JobDescriptions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_descriptions is required",
		})
	}

	var resumeID *uuid.UUID
	if req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume_id format",
			})
		}
		resumeID = &id
	}

	jobIDs, err := h.jobService.UploadJobs(c.UserContext(), req.JobDescriptions, resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Jobs tied to a resume get their match analysis precomputed
	if resumeID != nil {
		for _, jobID := range jobIDs {
			if id, err := uuid.Parse(jobID); err == nil {
				h.worker.EnqueuePair(repositories.MatchPair{ResumeID: *resumeID, JobID: id})
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(models.JobUploadResponse{
		Envelope: envelope(c, "Job descriptions processed successfully"),
		JobIDs:   jobIDs,
	})
}

// HandleProcessEnhanced handles POST /api/v1/jobs/process-enhanced
func (h *JobHandler) HandleProcessEnhanced(c *fiber.Ctx) error {
	var req models.JobProcessRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	var resumeID *uuid.UUID
	if req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume_id format",
			})
		}
		resumeID = &id
	}

	data, err := h.jobService.ProcessJob(c.UserContext(), req.JobDescription, resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.JobProcessResponse{
		Envelope: envelope(c, "Job processed successfully"),
		Data:     *data,
	})
}

// HandleList handles GET /api/v1/jobs?resume_id=
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	resumeIDStr := c.Query("resume_id")
	if resumeIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id query parameter is required",
		})
	}

	resumeID, err := uuid.Parse(resumeIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	jobs, err := h.jobService.ListByResume(resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.JobListResponse{
		Envelope: envelope(c, ""),
		Data:     jobs,
	})
}

// HandleGet handles GET /api/v1/jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	data, err := h.jobService.GetJob(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(models.JobResponse{
		Envelope: envelope(c, ""),
		Data:     *data,
	})
}

// HandleUpdate handles PUT /api/v1/jobs/:id
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	var req models.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	data, err := h.jobService.UpdateJob(jobID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.JobResponse{
		Envelope: envelope(c, "Job updated successfully"),
		Data:     *data,
	})
}

// HandleDelete handles DELETE /api/v1/jobs/:id
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	if err := h.jobService.DeleteJob(c.UserContext(), jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(fiber.Map{
		"request_id": requestID(c),
		"message":    "Job deleted successfully",
	})
}

// HandleSearch handles GET /api/v1/jobs/search
func (h *JobHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	filters := repositories.JobSearchFilters{
		Location:       c.Query("location"),
		EmploymentType: c.Query("employment_type"),
		Limit:          c.QueryInt("limit", 20),
		Offset:         c.QueryInt("offset", 0),
	}

	jobs, total, matchedBy, err := h.jobService.Search(c.UserContext(), query, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.JobSearchResponse{
		Envelope: envelope(c, ""),
		Data:     jobs,
		Total:    int(total),
		Limit:    filters.Limit,
		Offset:   filters.Offset,
		Query:    query,
		Matched:  matchedBy,
	})
}
