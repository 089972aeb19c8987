package repository

import (
	"context"
	"errors"
	"time"

	"job-matcher/internal/database"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")

type Resume struct {
	UserID    uuid.UUID
	Text      string
	TechStack []string
	UpdatedAt time.Time
}

type ResumeRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, text string, techStack []string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Upsert(ctx context.Context, userID uuid.UUID, text string, techStack []string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (user_id, text, tech_stack, updated_at)
		 VALUES ($1,$2,$3,NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
			text = EXCLUDED.text,
			tech_stack = EXCLUDED.tech_stack,
			updated_at = NOW()`,
		userID, text, techStack,
	)
	return err
}

func (r *PostgresResumeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, COALESCE(text,''), COALESCE(tech_stack,'{}'), updated_at
		 FROM resumes WHERE user_id = $1`,
		userID,
	)
	var res Resume
	if err := row.Scan(&res.UserID, &res.Text, &res.TechStack, &res.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Resume{}, ErrResumeNotFound
		}
		return Resume{}, err
	}
	return res, nil
}
