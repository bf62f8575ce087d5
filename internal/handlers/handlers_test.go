package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarivue/fitscore/internal/models"
	"clarivue/fitscore/internal/services"
)

// Validation-path tests: requests rejected before any service is touched, so
// handlers are constructed with nil dependencies.

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New())

	jobHandler := NewJobHandler(nil, nil)
	resumeHandler := NewResumeHandler(nil, nil, nil, 1024)
	analysisHandler := NewAnalysisHandler(nil)

	api := app.Group("/api/v1")
	api.Post("/jobs/upload", jobHandler.HandleUpload)
	api.Get("/jobs/", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Post("/resumes/analyze-match", resumeHandler.HandleAnalyzeMatch)
	api.Post("/resumes/process-enhanced", resumeHandler.HandleProcessEnhanced)
	api.Get("/analysis/dashboard/:resume_id", analysisHandler.HandleDashboard)
	api.Get("/analysis/comparison", analysisHandler.HandleComparison)

	return app
}

func TestUploadRequiresDescriptions(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/jobs/upload", strings.NewReader(`{"job_descriptions":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsBadResumeID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/jobs/upload", strings.NewReader(`{"job_descriptions":["JD"],"resume_id":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListRequiresResumeID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetJobRejectsBadID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeMatchRequiresBothIDs(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/resumes/analyze-match", strings.NewReader(`{"resume_id":"e7a67f9a-99a8-4e43-b34a-7f33113a42c3"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProcessResumeRequiresFile(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/resumes/process-enhanced", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboardRejectsBadResumeID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/analysis/dashboard/xyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

type stubAnalysisService struct {
	dashboardErr error
}

func (s *stubAnalysisService) Dashboard(resumeID uuid.UUID) (*models.DashboardData, error) {
	if s.dashboardErr != nil {
		return nil, s.dashboardErr
	}
	return &models.DashboardData{ResumeID: resumeID.String()}, nil
}

func (s *stubAnalysisService) BulkAnalysis(ctx context.Context, resumeID uuid.UUID, jobIDs []uuid.UUID) (*models.BulkAnalysisResult, error) {
	return &models.BulkAnalysisResult{ResumeID: resumeID.String()}, nil
}

func (s *stubAnalysisService) Comparison(ctx context.Context, resumeIDs []uuid.UUID, jobID uuid.UUID) (*models.ComparisonResult, error) {
	return &models.ComparisonResult{JobID: jobID.String()}, nil
}

func newAnalysisApp(svc services.AnalysisService) *fiber.App {
	app := fiber.New()
	app.Use(requestid.New())

	handler := NewAnalysisHandler(svc)
	app.Get("/api/v1/analysis/dashboard/:resume_id", handler.HandleDashboard)

	return app
}

func TestDashboardMissingResumeIs404(t *testing.T) {
	svc := &stubAnalysisService{
		dashboardErr: fmt.Errorf("%w: %s", services.ErrResumeNotFound, uuid.New()),
	}
	app := newAnalysisApp(svc)

	url := "/api/v1/analysis/dashboard/" + uuid.New().String()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardInternalFailureIs500(t *testing.T) {
	svc := &stubAnalysisService{dashboardErr: fmt.Errorf("database connection lost")}
	app := newAnalysisApp(svc)

	url := "/api/v1/analysis/dashboard/" + uuid.New().String()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestComparisonNeedsTwoResumes(t *testing.T) {
	app := newTestApp()

	url := "/api/v1/analysis/comparison?job_id=e7a67f9a-99a8-4e43-b34a-7f33113a42c3&resume_ids=e7a67f9a-99a8-4e43-b34a-7f33113a42c4"
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
