package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"clarivue/fitscore/internal/config"
	"clarivue/fitscore/internal/models"
)

// Client is a typed HTTP client for the Fitscore API. Every method takes a
// context and maps one endpoint. The client adds no retries, caching or
// implicit timeouts; callers own those policies.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is returned for any non-2xx response. The body is kept verbatim so
// the server's error detail is never lost.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response body does not decode into the
// expected shape.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func New(cfg config.ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// --- jobs ---

func (c *Client) UploadJobs(ctx context.Context, req *models.JobUploadRequest) (*models.JobUploadResponse, error) {
	var resp models.JobUploadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/jobs/upload", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ProcessJob(ctx context.Context, req *models.JobProcessRequest) (*models.ProcessedJobData, error) {
	var resp models.JobProcessResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/jobs/process-enhanced", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListJobs(ctx context.Context, resumeID string) ([]models.ProcessedJobData, error) {
	query := url.Values{"resume_id": {resumeID}}

	var resp models.JobListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/jobs/", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*models.ProcessedJobData, error) {
	var resp models.JobResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/jobs/"+jobID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, req *models.JobUpdateRequest) (*models.ProcessedJobData, error) {
	var resp models.JobResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/jobs/"+jobID, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/jobs/"+jobID, nil, nil, nil)
}

// JobSearchOptions narrows a job search; zero values mean "no filter".
type JobSearchOptions struct {
	Query          string
	Location       string
	EmploymentType string
	Limit          int
	Offset         int
}

func (c *Client) SearchJobs(ctx context.Context, opts JobSearchOptions) (*models.JobSearchResponse, error) {
	query := url.Values{}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	if opts.Location != "" {
		query.Set("location", opts.Location)
	}
	if opts.EmploymentType != "" {
		query.Set("employment_type", opts.EmploymentType)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var resp models.JobSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/jobs/search", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- resumes ---

// ProcessResume uploads a resume file as multipart form data.
func (c *Client) ProcessResume(ctx context.Context, filename string, content io.Reader) (*models.ProcessedResumeData, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read resume content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/resumes/process-enhanced", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp models.ResumeProcessResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetResume(ctx context.Context, resumeID string) (*models.ProcessedResumeData, error) {
	var resp models.ResumeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/resumes/"+resumeID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) AnalyzeMatch(ctx context.Context, resumeID, jobID string) (*models.MatchResult, error) {
	req := &models.AnalyzeMatchRequest{ResumeID: resumeID, JobID: jobID}

	var resp models.MatchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/resumes/analyze-match", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Improve(ctx context.Context, resumeID, jobID string) (*models.MatchResult, error) {
	req := &models.ImproveRequest{ResumeID: resumeID, JobID: jobID}

	var resp models.MatchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/resumes/improve", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetMatchHistory(ctx context.Context, resumeID string) ([]models.MatchResult, error) {
	var resp models.MatchHistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/resumes/"+resumeID+"/matches", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Matches, nil
}

// --- analysis ---

func (c *Client) GetDashboard(ctx context.Context, resumeID string) (*models.DashboardData, error) {
	var resp models.DashboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/analysis/dashboard/"+resumeID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// BulkAnalysis analyzes the resume against the given jobs. An empty jobIDs
// list asks the server to analyze every job owned by the resume.
func (c *Client) BulkAnalysis(ctx context.Context, resumeID string, jobIDs []string) (*models.BulkAnalysisResult, error) {
	query := url.Values{}
	if len(jobIDs) > 0 {
		query.Set("job_ids", strings.Join(jobIDs, ","))
	}

	var resp models.BulkAnalysisResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/analysis/bulk-analysis/"+resumeID, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Comparison(ctx context.Context, resumeIDs []string, jobID string) (*models.ComparisonResult, error) {
	query := url.Values{
		"resume_ids": {strings.Join(resumeIDs, ",")},
		"job_id":     {jobID},
	}

	var resp models.ComparisonResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/analysis/comparison", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/health", nil, nil, nil)
}

// --- transport ---

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, target interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, target)
}

func (c *Client) send(req *http.Request, target interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return &DecodeError{Raw: string(raw), Err: err}
	}

	return nil
}
