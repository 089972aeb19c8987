package repository

import (
	"context"
	"errors"
	"time"

	"job-matcher/internal/database"

	"github.com/google/uuid"
)

var ErrAlertNotFound = errors.New("alert not found")

type Alert struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Keywords  string
	Active    bool
	CreatedAt time.Time
}

// ActiveAlert carries the owning user's contact fields so the dispatch
// pipeline can skip alerts without a reachable inbox.
type ActiveAlert struct {
	Alert
	UserName  string
	UserEmail string
}

type AlertCreate struct {
	UserID   uuid.UUID
	Name     string
	Keywords string
	Active   bool
}

type AlertRepository interface {
	Create(ctx context.Context, in AlertCreate) (Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error)
	Delete(ctx context.Context, alertID, userID uuid.UUID) error
	ListActive(ctx context.Context) ([]ActiveAlert, error)
	HistoryExists(ctx context.Context, alertID, jobID uuid.UUID) (bool, error)
	RecordHistory(ctx context.Context, alertID, jobID uuid.UUID) error
}

type PostgresAlertRepository struct {
	db database.DB
}

func NewPostgresAlertRepository(db database.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

func (r *PostgresAlertRepository) Create(ctx context.Context, in AlertCreate) (Alert, error) {
	id := uuid.New()
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_alerts (id, user_id, name, keywords, active, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		id, in.UserID, in.Name, in.Keywords, in.Active, now,
	)
	if err != nil {
		return Alert{}, err
	}
	return Alert{ID: id, UserID: in.UserID, Name: in.Name, Keywords: in.Keywords, Active: in.Active, CreatedAt: now}, nil
}

func (r *PostgresAlertRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, COALESCE(name,''), COALESCE(keywords,''), active, created_at
		 FROM job_alerts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Alert, 0)
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Keywords, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAlertRepository) Delete(ctx context.Context, alertID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM job_alerts WHERE id = $1 AND user_id = $2`, alertID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *PostgresAlertRepository) ListActive(ctx context.Context) ([]ActiveAlert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, COALESCE(a.name,''), COALESCE(a.keywords,''), a.active, a.created_at,
			COALESCE(u.name,''), COALESCE(u.email,'')
		 FROM job_alerts a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.active = TRUE
		 ORDER BY a.created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActiveAlert, 0)
	for rows.Next() {
		var a ActiveAlert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Keywords, &a.Active, &a.CreatedAt,
			&a.UserName, &a.UserEmail); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAlertRepository) HistoryExists(ctx context.Context, alertID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_alert_history WHERE alert_id = $1 AND job_id = $2)`,
		alertID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresAlertRepository) RecordHistory(ctx context.Context, alertID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_alert_history (alert_id, job_id, sent_at)
		 VALUES ($1,$2,NOW())
		 ON CONFLICT (alert_id, job_id) DO NOTHING`,
		alertID, jobID,
	)
	return err
}
