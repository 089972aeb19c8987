package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"job-matcher/internal/app"
	"job-matcher/internal/config"
	"job-matcher/internal/scraper"
)

func main() {
	source := flag.String("source", "remotive", "board to import: remotive, weworkremotely, indeed, all")
	pages := flag.Int("pages", 1, "result pages to fetch where the board paginates")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
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

	importers, err := selectImporters(*source)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	total := 0
	failed := 0
	for _, imp := range importers {
		n, err := scraper.Run(ctx, c.DB, c.Ingest, imp, *pages, c.Logger)
		if err != nil {
			failed++
			log.Printf("import=%s status=error err=%v", imp.Name(), err)
			continue
		}
		total += n
	}

	log.Printf("scraper=done sources=%d failed=%d upserted=%d", len(importers), failed, total)
	if failed == len(importers) {
		log.Fatalf("all imports failed")
	}
}

func selectImporters(source string) ([]scraper.Importer, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "remotive":
		return []scraper.Importer{scraper.NewRemotiveImporter()}, nil
	case "weworkremotely", "wwr":
		return []scraper.Importer{scraper.NewWWRImporter()}, nil
	case "indeed":
		return []scraper.Importer{scraper.NewIndeedImporter()}, nil
	case "all":
		return []scraper.Importer{
			scraper.NewRemotiveImporter(),
			scraper.NewWWRImporter(),
			scraper.NewIndeedImporter(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want remotive, weworkremotely, indeed, all)", source)
	}
}
