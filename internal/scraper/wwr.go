package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-matcher/internal/usecase"

	"github.com/gocolly/colly/v2"
)

const wwrSource = "weworkremotely"

// WWRImporter reads the We Work Remotely RSS feed. Feed items carry the
// company and role in a single title line plus an HTML description, so both
// get normalized before ingest.
type WWRImporter struct {
	feedURL     string
	allowedHost string
}

func NewWWRImporter() *WWRImporter {
	return &WWRImporter{
		feedURL:     "https://weworkremotely.com/remote-jobs.rss",
		allowedHost: "weworkremotely.com",
	}
}

func (s *WWRImporter) Name() string { return wwrSource }

func (s *WWRImporter) Fetch(ctx context.Context, pages int) ([]usecase.JobInput, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost, "www."+s.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*weworkremotely.com*", Parallelism: 1, Delay: 500 * time.Millisecond})

	out := make([]usecase.JobInput, 0, 64)
	var reqErr error

	c.OnXML("//rss/channel/item", func(e *colly.XMLElement) {
		fullTitle := strings.TrimSpace(e.ChildText("title"))
		if len(fullTitle) < 5 {
			return
		}
		company, title := splitCompanyTitle(fullTitle)
		out = append(out, usecase.JobInput{
			Title:       title,
			Company:     pickNonEmpty(company, "Unknown Company"),
			Location:    pickNonEmpty(stripTags(e.ChildText("region")), "Remote"),
			Description: stripTags(e.ChildText("description")),
			URL:         strings.TrimSpace(e.ChildText("link")),
			PostedAt:    parseTimeOrNil(e.ChildText("pubDate")),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(s.feedURL); err != nil {
		return nil, fmt.Errorf("wwr visit: %w", err)
	}
	c.Wait()
	if reqErr != nil {
		return nil, fmt.Errorf("wwr fetch: %w", reqErr)
	}

	return dedupByURL(out), nil
}

func dedupByURL(items []usecase.JobInput) []usecase.JobInput {
	seen := map[string]struct{}{}
	out := make([]usecase.JobInput, 0, len(items))
	for _, it := range items {
		key := it.URL
		if key == "" {
			key = strings.ToLower(it.Title + "|" + it.Company)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
