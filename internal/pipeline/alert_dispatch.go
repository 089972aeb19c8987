package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"job-matcher/internal/domain/alert"
	"job-matcher/internal/notify"
	"job-matcher/internal/repository"
)

// AlertDispatcher evaluates active alerts against jobs and sends one email
// per newly matched (alert, job) pair. The history table is the dedup guard:
// a pair already recorded there is never re-notified, so re-running the
// pipeline over the same jobs is a no-op.
type AlertDispatcher struct {
	alerts repository.AlertRepository
	jobs   repository.JobRepository
	sender notify.Sender
	log    *log.Logger
}

func NewAlertDispatcher(alerts repository.AlertRepository, jobs repository.JobRepository, sender notify.Sender, logger *log.Logger) *AlertDispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &AlertDispatcher{alerts: alerts, jobs: jobs, sender: sender, log: logger}
}

type DispatchStats struct {
	Jobs    int
	Matched int
	Emailed int
	Skipped int
	Errors  int
}

func (s *DispatchStats) add(o DispatchStats) {
	s.Jobs += o.Jobs
	s.Matched += o.Matched
	s.Emailed += o.Emailed
	s.Skipped += o.Skipped
	s.Errors += o.Errors
}

type RunParams struct {
	Workers  int
	JobLimit int
}

// Run evaluates every active alert against the most recent jobs, fanning out
// one task per job.
func (d *AlertDispatcher) Run(ctx context.Context, params RunParams) (DispatchStats, error) {
	var stats DispatchStats
	if d == nil || d.alerts == nil || d.jobs == nil {
		return stats, nil
	}

	workers := params.Workers
	if workers <= 0 {
		workers = 5
	}
	limit := params.JobLimit
	if limit <= 0 {
		limit = 100
	}

	alerts, err := d.alerts.ListActive(ctx)
	if err != nil {
		return stats, err
	}
	if len(alerts) == 0 {
		return stats, nil
	}

	batch, err := d.jobs.ListRecent(ctx, limit)
	if err != nil {
		return stats, err
	}

	pool := NewWorkerPool(workers, workers*2)
	results := pool.Run(ctx)

	var mu sync.Mutex
	for _, j := range batch {
		j := j
		accepted := pool.Submit(ctx, func(ctx context.Context) Result {
			s := d.dispatchJob(ctx, j, alerts)
			mu.Lock()
			stats.add(s)
			mu.Unlock()
			return Result{}
		})
		if !accepted {
			break
		}
	}
	pool.Close()

	for range results {
	}
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

// DispatchJob runs every active alert against a single job, typically right
// after ingestion creates it.
func (d *AlertDispatcher) DispatchJob(ctx context.Context, job repository.Job) (DispatchStats, error) {
	if d == nil || d.alerts == nil {
		return DispatchStats{}, nil
	}
	alerts, err := d.alerts.ListActive(ctx)
	if err != nil {
		return DispatchStats{}, err
	}
	return d.dispatchJob(ctx, job, alerts), nil
}

func (d *AlertDispatcher) dispatchJob(ctx context.Context, job repository.Job, alerts []repository.ActiveAlert) DispatchStats {
	start := time.Now()
	stats := DispatchStats{Jobs: 1}

	for _, a := range alerts {
		if ctx.Err() != nil {
			break
		}

		if strings.TrimSpace(a.UserEmail) == "" {
			stats.Skipped++
			continue
		}

		sent, err := d.alerts.HistoryExists(ctx, a.ID, job.ID)
		if err != nil {
			stats.Errors++
			d.log.Printf("pipeline=alert_dispatch status=error stage=history_check alert_id=%s job_id=%s err=%v", a.ID, job.ID, err)
			continue
		}
		if sent {
			stats.Skipped++
			continue
		}

		if !alert.Matches(a.Keywords, job.Title, job.Company, job.Description, job.Location) {
			continue
		}
		stats.Matched++

		msg := notify.BuildAlertEmail(a.UserName, a.UserEmail, a.Name, job)
		if err := d.sender.Send(ctx, msg); err != nil {
			stats.Errors++
			d.log.Printf("pipeline=alert_dispatch status=error stage=send alert_id=%s job_id=%s err=%v", a.ID, job.ID, err)
			continue
		}
		stats.Emailed++

		if err := d.alerts.RecordHistory(ctx, a.ID, job.ID); err != nil {
			stats.Errors++
			d.log.Printf("pipeline=alert_dispatch status=error stage=record_history alert_id=%s job_id=%s err=%v", a.ID, job.ID, err)
		}
	}

	d.log.Printf("pipeline=alert_dispatch status=ok job_id=%s matched=%d emailed=%d skipped=%d errors=%d duration=%s",
		job.ID, stats.Matched, stats.Emailed, stats.Skipped, stats.Errors, time.Since(start))
	return stats
}
