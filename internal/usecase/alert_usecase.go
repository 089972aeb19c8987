package usecase

import (
	"context"
	"errors"
	"strings"

	"job-matcher/internal/domain/alert"
	"job-matcher/internal/pipeline"
	"job-matcher/internal/repository"
	"job-matcher/internal/ws"

	"github.com/google/uuid"
)

type AlertCreateInput struct {
	Name     string
	Keywords string
	Active   bool
}

type AlertItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Keywords string    `json:"keywords"`
	Active   bool      `json:"active"`
}

type ProcessResult struct {
	Jobs    int `json:"jobs"`
	Matched int `json:"matched"`
	Emailed int `json:"emailed"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

type AlertUsecase interface {
	CreateAlert(ctx context.Context, userID uuid.UUID, in AlertCreateInput) (AlertItem, error)
	ListAlerts(ctx context.Context, userID uuid.UUID) ([]AlertItem, error)
	DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error
	ProcessAlerts(ctx context.Context, jobLimit, workers int) (ProcessResult, error)
}

type AlertService struct {
	alerts     repository.AlertRepository
	dispatcher *pipeline.AlertDispatcher
}

func NewAlertService(alerts repository.AlertRepository, dispatcher *pipeline.AlertDispatcher) *AlertService {
	return &AlertService{alerts: alerts, dispatcher: dispatcher}
}

func (s *AlertService) CreateAlert(ctx context.Context, userID uuid.UUID, in AlertCreateInput) (AlertItem, error) {
	if userID == uuid.Nil {
		return AlertItem{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return AlertItem{}, ErrInvalidInput
	}
	// An alert whose keywords parse to nothing would never fire; reject it
	// here rather than let it sit silent.
	if len(alert.ParseKeywords(in.Keywords)) == 0 {
		return AlertItem{}, ErrInvalidInput
	}

	a, err := s.alerts.Create(ctx, repository.AlertCreate{
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		Keywords: in.Keywords,
		Active:   in.Active,
	})
	if err != nil {
		return AlertItem{}, ErrInternal
	}
	return AlertItem{ID: a.ID, Name: a.Name, Keywords: a.Keywords, Active: a.Active}, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, userID uuid.UUID) ([]AlertItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	rows, err := s.alerts.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]AlertItem, 0, len(rows))
	for _, a := range rows {
		out = append(out, AlertItem{ID: a.ID, Name: a.Name, Keywords: a.Keywords, Active: a.Active})
	}
	return out, nil
}

func (s *AlertService) DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if alertID == uuid.Nil {
		return ErrAlertNotFound
	}
	if err := s.alerts.Delete(ctx, alertID, userID); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return ErrAlertNotFound
		}
		return ErrInternal
	}
	return nil
}

func (s *AlertService) ProcessAlerts(ctx context.Context, jobLimit, workers int) (ProcessResult, error) {
	if s.dispatcher == nil {
		return ProcessResult{}, ErrInternal
	}
	stats, err := s.dispatcher.Run(ctx, pipeline.RunParams{Workers: workers, JobLimit: jobLimit})
	if err != nil {
		return ProcessResult{}, ErrInternal
	}
	if stats.Matched > 0 {
		ws.NotifyAlertsProcessed(stats.Matched, stats.Emailed)
	}
	return ProcessResult{
		Jobs:    stats.Jobs,
		Matched: stats.Matched,
		Emailed: stats.Emailed,
		Skipped: stats.Skipped,
		Errors:  stats.Errors,
	}, nil
}
