package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"job-matcher/internal/domain/taxonomy"
	"job-matcher/internal/pipeline"
	"job-matcher/internal/repository"
	"job-matcher/internal/ws"

	"github.com/google/uuid"
)

type JobInput struct {
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Salary      string
	PostedAt    *time.Time
}

type JobIngestUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (repository.Job, error)
	IngestBatch(ctx context.Context, source string, items []JobInput) (int, error)
}

// JobIngestService is the single entry point for new postings, whether they
// come from the admin endpoint or an importer. Every job passes through the
// extractor so its tech stack tags are persisted alongside it, then active
// alerts are evaluated against it.
type JobIngestService struct {
	jobs       repository.JobRepository
	tax        *taxonomy.Taxonomy
	dispatcher *pipeline.AlertDispatcher
	cache      Cache
	log        *log.Logger
}

func NewJobIngestService(jobs repository.JobRepository, tax *taxonomy.Taxonomy, dispatcher *pipeline.AlertDispatcher, cache Cache, logger *log.Logger) *JobIngestService {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &JobIngestService{jobs: jobs, tax: tax, dispatcher: dispatcher, cache: cache, log: logger}
}

func (s *JobIngestService) CreateJob(ctx context.Context, in JobInput) (repository.Job, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return repository.Job{}, ErrInvalidInput
	}

	// Manual posts have no board identity, so mint one to keep the
	// (source, external_id) uniqueness intact.
	job, err := s.jobs.Insert(ctx, repository.JobUpsert{
		Source:      "manual",
		ExternalID:  uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Description: in.Description,
		URL:         in.URL,
		Salary:      in.Salary,
		TechStack:   s.tax.Extract(in.Title + " " + in.Description),
		PostedAt:    in.PostedAt,
	})
	if err != nil {
		return repository.Job{}, ErrInternal
	}

	s.afterIngest(ctx, 1)

	if s.dispatcher != nil {
		stats, err := s.dispatcher.DispatchJob(ctx, job)
		if err != nil {
			s.log.Printf("ingest=create_job status=dispatch_error job_id=%s err=%v", job.ID, err)
		} else if stats.Matched > 0 {
			ws.NotifyAlertsProcessed(stats.Matched, stats.Emailed)
		}
	}

	ws.NotifyJobCreated(job.Title, job.Source)
	return job, nil
}

// IngestBatch upserts an importer batch, tagging each item with its extracted
// tech stack. Alert dispatch for imported jobs runs separately (cmd/alerts or
// the process endpoint) so a large import cannot flood inboxes mid-run.
func (s *JobIngestService) IngestBatch(ctx context.Context, source string, items []JobInput) (int, error) {
	if strings.TrimSpace(source) == "" {
		return 0, ErrInvalidInput
	}

	ups := make([]repository.JobUpsert, 0, len(items))
	for _, in := range items {
		if strings.TrimSpace(in.Title) == "" {
			continue
		}
		ups = append(ups, repository.JobUpsert{
			Source:      source,
			ExternalID:  externalID(source, in),
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			Description: in.Description,
			URL:         in.URL,
			Salary:      in.Salary,
			TechStack:   s.tax.Extract(in.Title + " " + in.Description),
			PostedAt:    in.PostedAt,
		})
	}
	if len(ups) == 0 {
		return 0, nil
	}

	n, err := s.jobs.UpsertJobs(ctx, ups)
	if err != nil {
		return n, err
	}

	s.afterIngest(ctx, n)
	ws.NotifyJobCreated("", source)
	s.log.Printf("ingest=batch source=%s items=%d upserted=%d", source, len(ups), n)
	return n, nil
}

func (s *JobIngestService) afterIngest(ctx context.Context, n int) {
	if n <= 0 || s.cache == nil {
		return
	}
	_ = s.cache.InvalidateJobCaches(ctx)
}

func externalID(source string, in JobInput) string {
	if in.URL != "" {
		return in.URL
	}
	return source + ":" + strings.ToLower(in.Title+"|"+in.Company)
}
