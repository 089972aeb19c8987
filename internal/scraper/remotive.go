package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"job-matcher/internal/usecase"
)

const remotiveSource = "remotive"

// RemotiveImporter pulls the Remotive remote-jobs API. One request returns
// full descriptions, so there is no per-item detail fetch.
type RemotiveImporter struct {
	client   *http.Client
	apiBase  string
	category string
	limit    int
}

func NewRemotiveImporter() *RemotiveImporter {
	return &RemotiveImporter{
		client:   &http.Client{Timeout: 25 * time.Second},
		apiBase:  "https://remotive.com",
		category: "software-dev",
		limit:    100,
	}
}

type remotiveJob struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company_name"`
	Location    string `json:"candidate_required_location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Salary      string `json:"salary"`
	PublishedAt string `json:"publication_date"`
}

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

func (s *RemotiveImporter) Name() string { return remotiveSource }

func (s *RemotiveImporter) Fetch(ctx context.Context, pages int) ([]usecase.JobInput, error) {
	limit := s.limit
	if pages > 1 {
		limit = s.limit * pages
	}
	url := fmt.Sprintf("%s/api/remote-jobs?category=%s&limit=%d", strings.TrimRight(s.apiBase, "/"), s.category, limit)

	body, err := httpGetWithRetry(ctx, s.client, url, 3)
	if err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}

	var resp remotiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("remotive decode: %w", err)
	}

	out := make([]usecase.JobInput, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		if strings.TrimSpace(j.Title) == "" {
			continue
		}
		out = append(out, usecase.JobInput{
			Title:       strings.TrimSpace(j.Title),
			Company:     pickNonEmpty(j.Company, "Unknown Company"),
			Location:    pickNonEmpty(j.Location, "Remote"),
			Description: stripTags(j.Description),
			URL:         strings.TrimSpace(j.URL),
			Salary:      strings.TrimSpace(j.Salary),
			PostedAt:    parseTimeOrNil(j.PublishedAt),
		})
	}
	return out, nil
}
