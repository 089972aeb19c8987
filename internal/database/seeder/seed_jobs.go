package seeder

import (
	"context"
	"fmt"

	"job-matcher/internal/database"
	"job-matcher/internal/domain/taxonomy"
)

type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

// Run inserts a handful of demo postings so a fresh environment has
// something to list and match against. Tech stacks go through the extractor
// rather than being typed in, matching what ingest does.
func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "source", "external_id", "title", "company", "location",
		"description", "url", "salary", "tech_stack", "posted_at", "created_at"); err != nil {
		return err
	}

	tax := taxonomy.Default()

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		ExternalID  string
		Title       string
		Company     string
		Location    string
		Description string
		Salary      string
	}{
		{
			ExternalID:  "demo-1",
			Title:       "Senior Backend Engineer",
			Company:     "Acme Systems",
			Location:    "Remote",
			Description: "We build services in Go with PostgreSQL and Redis, deployed on Kubernetes and AWS. 5+ years of backend experience expected.",
			Salary:      "$140k - $170k",
		},
		{
			ExternalID:  "demo-2",
			Title:       "Frontend Developer",
			Company:     "Initech",
			Location:    "Remote (US)",
			Description: "React and TypeScript frontend for our analytics dashboard. Experience with Next.js and Tailwind is a plus. Mid level welcome.",
			Salary:      "$100k - $125k",
		},
		{
			ExternalID:  "demo-3",
			Title:       "Junior Full Stack Engineer",
			Company:     "Globex",
			Location:    "Berlin, Germany",
			Description: "JavaScript, Node.js and MongoDB across the stack. Great first role for an entry level engineer who wants to grow fast.",
			Salary:      "",
		},
	}

	for _, it := range items {
		stack := tax.Extract(it.Title + " " + it.Description)
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, source, external_id, title, company, location, description, salary, tech_stack, created_at)
			 VALUES (gen_random_uuid(), 'seed', $1, $2, $3, $4, $5, $6, $7, now())
			 ON CONFLICT (source, external_id) DO NOTHING`,
			it.ExternalID, it.Title, it.Company, it.Location, it.Description, it.Salary, stack,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
