package main

import (
	"context"
	"log"

	"clarivue/fitscore/internal/config"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/services"
)

// Rebuilds the Qdrant job index from the database. Run after changing the
// embedding model or recovering the vector store.
func main() {
	log.Println("🚀 Starting job reindexing...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	jobIndex, err := services.NewJobIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := jobIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	jobService := services.NewJobService(
		jobRepo,
		geminiService,
		jobIndex,
		cfg.Worker.RetryMaxAttempts,
	)

	success, failed, err := jobService.ReindexAll(context.Background())
	if err != nil {
		log.Fatalf("❌ Reindexing failed: %v", err)
	}

	log.Println("\n📊 Reindexing Summary:")
	log.Printf("   ✅ Success: %d jobs", success)
	log.Printf("   ❌ Failed: %d jobs", failed)

	if failed > 0 {
		log.Println("\n⚠️  Some jobs failed to reindex. Check the logs above.")
	} else {
		log.Println("\n🎉 All jobs reindexed successfully!")
	}
}
