package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-matcher/internal/repository"

	"github.com/google/uuid"
)

type JobListParams struct {
	Limit   int
	Offset  int
	Keyword string
}

type JobListItem struct {
	JobID     uuid.UUID  `json:"job_id"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	Location  string     `json:"location"`
	Salary    string     `json:"salary,omitempty"`
	URL       string     `json:"url,omitempty"`
	TechStack []string   `json:"tech_stack"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error)
}

type JobList struct {
	jobs  repository.JobRepository
	cache Cache
}

func NewJobListUsecase(jobs repository.JobRepository, cache Cache) *JobList {
	return &JobList{jobs: jobs, cache: cache}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error) {
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	key := jobListCacheKey(params)
	if u.cache != nil {
		var cached []JobListItem
		if ok, _ := u.cache.GetJSON(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	rows, err := u.jobs.ListJobs(ctx, repository.JobListFilter{
		Limit:   params.Limit,
		Offset:  params.Offset,
		Keyword: params.Keyword,
	})
	if err != nil {
		return nil, ErrInternal
	}

	items := make([]JobListItem, 0, len(rows))
	for _, j := range rows {
		items = append(items, JobListItem{
			JobID:     j.ID,
			Title:     j.Title,
			Company:   j.Company,
			Location:  j.Location,
			Salary:    j.Salary,
			URL:       j.URL,
			TechStack: j.TechStack,
			PostedAt:  j.PostedAt,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, items, 0)
	}
	return items, nil
}

func jobListCacheKey(params JobListParams) string {
	kw := strings.ToLower(strings.TrimSpace(params.Keyword))
	if kw == "" {
		kw = "-"
	}
	return fmt.Sprintf("jobs:list:%d:%d:%s", params.Limit, params.Offset, kw)
}
