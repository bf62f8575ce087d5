package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// JobIndexService maintains the vector index of processed jobs that backs the
// semantic mode of the job search endpoint.
type JobIndexService interface {
	InitCollection() error
	UpsertJob(ctx context.Context, jobID string, jobTitle string, text string, embedding []float32) error
	SearchJobs(ctx context.Context, queryEmbedding []float32, limit int) ([]JobSearchHit, error)
	DeleteJob(ctx context.Context, jobID string) error
}

type JobSearchHit struct {
	JobID    string
	JobTitle string
	Score    float32
}

type jobIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewJobIndexService(urlStr, apiKey, collectionName string) (JobIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &jobIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements JobIndexService.
func (q *jobIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertJob implements JobIndexService. One point per job; re-processing a job
// replaces its previous point.
func (q *jobIndexService) UpsertJob(ctx context.Context, jobID string, jobTitle string, text string, embedding []float32) error {
	pointID := uuid.MustParse(jobID)

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"job_id":    jobID,
			"job_title": jobTitle,
			"text":      text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchJobs implements JobIndexService.
func (q *jobIndexService) SearchJobs(ctx context.Context, queryEmbedding []float32, limit int) ([]JobSearchHit, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []JobSearchHit
	for _, point := range searchResult {
		payload := point.Payload

		hit := JobSearchHit{
			Score: point.Score,
		}

		if jobID, ok := payload["job_id"]; ok {
			if val, ok := jobID.GetKind().(*qdrant.Value_StringValue); ok {
				hit.JobID = val.StringValue
			}
		}

		if title, ok := payload["job_title"]; ok {
			if val, ok := title.GetKind().(*qdrant.Value_StringValue); ok {
				hit.JobTitle = val.StringValue
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteJob implements JobIndexService.
func (q *jobIndexService) DeleteJob(ctx context.Context, jobID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete job point: %w", err)
	}

	return nil
}
