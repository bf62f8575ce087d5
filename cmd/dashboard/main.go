package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"clarivue/fitscore/internal/client"
	"clarivue/fitscore/internal/config"
	"clarivue/fitscore/internal/dashboard"
	"clarivue/fitscore/internal/score"
)

const barWidth = 40

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: dashboard <resume-id>")
		os.Exit(1)
	}
	resumeID := os.Args[1]

	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api := client.New(cfg.Client)
	loader := dashboard.NewLoader(api, cfg.Dashboard.JobDisplayLimit)

	overview, err := loader.Load(ctx, resumeID)
	if err != nil {
		log.Fatalf("❌ Failed to load dashboard: %v", err)
	}

	render(overview)
}

func render(o *dashboard.Overview) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  FITSCORE DASHBOARD")
	fmt.Println(strings.Repeat("=", 60))

	if o.Resume != nil {
		fmt.Printf("\nResume: %s (%s)\n", o.Resume.PersonalData.Name, o.ResumeID)
		if o.Resume.AnalysisScores != nil {
			fmt.Printf("ATS Compatibility: %d/100\n", o.Resume.AnalysisScores.ATSCompatibility)
		}
	} else {
		fmt.Printf("\nResume: %s (details unavailable)\n", o.ResumeID)
	}

	if len(o.Jobs) == 0 {
		fmt.Println("\nNo jobs to display.")
		return
	}

	fmt.Printf("\nJob Matches (%d shown)\n", len(o.Jobs))
	fmt.Println(strings.Repeat("-", 60))
	for _, job := range o.Jobs {
		match, ok := o.Matches[job.JobID]
		if !ok {
			fmt.Printf("%-30s  analysis unavailable\n", truncate(job.JobTitle, 30))
			continue
		}

		fmt.Printf("%-30s %s %5.1f  %s (%s)",
			truncate(job.JobTitle, 30),
			bar(match.OverallScore),
			match.OverallScore,
			score.Label(match.OverallScore),
			score.ColorBand(match.OverallScore),
		)
		if n := match.PriorityIssueCount(); n > 0 {
			fmt.Printf("  [%d priority issues]", n)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Buckets: excellent=%d good=%d fair=%d poor=%d (total %d)\n",
		o.Summary.Excellent, o.Summary.Good, o.Summary.Fair, o.Summary.Poor, o.Summary.Total())
	if o.Summary.Total() > 0 {
		fmt.Printf("Average score: %.1f", o.AverageScore)
		if o.BestJobID != "" {
			fmt.Printf("  Best: %.1f (job %s)", o.BestScore, o.BestJobID)
		}
		fmt.Println()
	}
	if o.PriorityIssues > 0 {
		fmt.Printf("Priority issues across matches: %d\n", o.PriorityIssues)
	}

	if o.Bulk != nil && len(o.Bulk.Ranking) > 0 {
		fmt.Println("\nRanking across all jobs:")
		for _, entry := range o.Bulk.Ranking {
			fmt.Printf("  %5.1f  %s\n", entry.OverallScore, entry.JobID)
		}
	}

	if o.Server != nil && len(o.Server.ImprovementSummary.SkillRecommendations) > 0 {
		fmt.Println("\nRecommended skills:")
		for _, skill := range o.Server.ImprovementSummary.SkillRecommendations {
			fmt.Printf("  - %s\n", skill)
		}
	}
}

func bar(s float64) string {
	filled := int(score.ClampWidth(s) / 100 * barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
