package main

import (
	"context"
	"flag"
	"log"
	"time"

	"job-matcher/internal/app"
	"job-matcher/internal/config"
	"job-matcher/internal/database/seeder"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall run timeout")
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

	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, c.DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed=done seeders=%d", len(seeder.Defaults()))
}
