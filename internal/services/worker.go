package services

import (
	"context"
	"log"
	"sync"
	"time"

	"clarivue/fitscore/internal/repositories"
)

// Worker precomputes match analyses in the background so the dashboard finds
// them already persisted. It drains an in-process queue and additionally polls
// for resume x job pairs that have no analysis yet.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueuePair(pair repositories.MatchPair)
}

type worker struct {
	matchRepo    repositories.MatchRepository
	matchService MatchService
	jobQueue     chan repositories.MatchPair
	concurrency  int
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	matchRepo repositories.MatchRepository,
	matchService MatchService,
	concurrency int,
) Worker {
	return &worker{
		matchRepo:    matchRepo,
		matchService: matchService,
		jobQueue:     make(chan repositories.MatchPair, 100),
		concurrency:  concurrency,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processPairs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnanalyzedPairs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueuePair implements Worker.
func (w *worker) EnqueuePair(pair repositories.MatchPair) {
	select {
	case w.jobQueue <- pair:
		log.Printf("📥 Match %s/%s enqueued\n", pair.ResumeID, pair.JobID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue match %s/%s\n", pair.ResumeID, pair.JobID)
	}
}

func (w *worker) processPairs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("👷 Worker #%d started\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case pair := <-w.jobQueue:
			log.Printf("👷 Worker #%d analyzing match %s/%s\n", workerID, pair.ResumeID, pair.JobID)
			if _, err := w.matchService.AnalyzeMatch(ctx, pair.ResumeID, pair.JobID); err != nil {
				log.Printf("❌ Worker #%d failed match %s/%s: %v\n", workerID, pair.ResumeID, pair.JobID, err)
			} else {
				log.Printf("✅ Worker #%d completed match %s/%s\n", workerID, pair.ResumeID, pair.JobID)
			}
		}
	}
}

func (w *worker) pollUnanalyzedPairs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting unanalyzed pairs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Unanalyzed pairs poller stopped")
			return
		case <-ticker.C:
			pairs, err := w.matchRepo.FindUnanalyzedPairs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unanalyzed pairs: %v\n", err)
				continue
			}

			if len(pairs) > 0 {
				log.Printf("📋 Found %d unanalyzed pairs\n", len(pairs))
			}

			for _, pair := range pairs {
				w.EnqueuePair(pair)
			}
		}
	}
}
