package main

import (
	"context"
	"flag"
	"log"
	"time"

	"job-matcher/internal/app"
	"job-matcher/internal/config"
	"job-matcher/internal/pipeline"
)

func main() {
	jobLimit := flag.Int("job-limit", 100, "how many recent jobs to evaluate")
	workers := flag.Int("workers", 5, "concurrent jobs being evaluated")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stats, err := c.Dispatcher.Run(ctx, pipeline.RunParams{
		JobLimit: *jobLimit,
		Workers:  *workers,
	})
	if err != nil {
		log.Fatalf("alert run failed: %v", err)
	}

	log.Printf("alerts=done jobs=%d matched=%d emailed=%d skipped=%d errors=%d",
		stats.Jobs, stats.Matched, stats.Emailed, stats.Skipped, stats.Errors)
}
