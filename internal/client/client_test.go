package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarivue/fitscore/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	c := New(config.ClientConfig{BaseURL: server.URL})
	return c, server
}

func TestGetJobSuccess(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/jobs/abc", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"request_id":"r1","data":{"job_id":"abc","job_title":"Backend Engineer","company":"Acme"}}`))
	})
	defer server.Close()

	job, err := c.GetJob(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", job.JobID)
	assert.Equal(t, "Backend Engineer", job.JobTitle)
	assert.Equal(t, "Acme", job.Company)
}

func TestNon2xxReturnsAPIError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Job not found"}`))
	})
	defer server.Close()

	_, err := c.GetJob(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	// Body is preserved verbatim
	assert.Equal(t, `{"error":"Job not found"}`, apiErr.Body)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestMalformedBodyReturnsDecodeError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})
	defer server.Close()

	_, err := c.GetJob(context.Background(), "abc")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, `<html>not json</html>`, decodeErr.Raw)
}

func TestAnalyzeMatchPostsPair(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/resumes/analyze-match", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"request_id":"r2","data":{"resume_id":"res-1","job_id":"job-1","overall_score":83.5,"confidence":0.8}}`))
	})
	defer server.Close()

	match, err := c.AnalyzeMatch(context.Background(), "res-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", match.ResumeID)
	assert.Equal(t, "job-1", match.JobID)
	assert.Equal(t, 83.5, match.OverallScore)
	assert.Equal(t, 0.8, match.Confidence)
}

func TestSearchJobsEncodesFilters(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "golang backend", q.Get("q"))
		assert.Equal(t, "Berlin", q.Get("location"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "", q.Get("offset"))

		w.Write([]byte(`{"request_id":"r3","data":[],"total":0,"limit":10,"offset":0,"matched_by":"semantic"}`))
	})
	defer server.Close()

	resp, err := c.SearchJobs(context.Background(), JobSearchOptions{
		Query:    "golang backend",
		Location: "Berlin",
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, "semantic", resp.Matched)
	assert.Empty(t, resp.Data)
}

func TestProcessResumeSendsMultipart(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/resumes/process-enhanced", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "resume.pdf", header.Filename)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"request_id":"r4","resume_id":"res-9","data":{"resume_id":"res-9"}}`))
	})
	defer server.Close()

	data, err := c.ProcessResume(context.Background(), "/tmp/resume.pdf", strings.NewReader("fake pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "res-9", data.ResumeID)
}

func TestContextCancellationAborts(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetJob(ctx, "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeleteJob(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"request_id":"r5","message":"Job deleted successfully"}`))
	})
	defer server.Close()

	assert.NoError(t, c.DeleteJob(context.Background(), "abc"))
}
