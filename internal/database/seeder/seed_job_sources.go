package seeder

import (
	"context"
	"fmt"

	"job-matcher/internal/database"
)

type JobSourcesSeeder struct{}

func (JobSourcesSeeder) Name() string { return "job_sources" }

func (JobSourcesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_sources", "id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range []string{"remotive", "weworkremotely", "indeed", "manual"} {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO job_sources (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
