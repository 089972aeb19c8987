package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"job-matcher/internal/database"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID          uuid.UUID
	Source      string
	ExternalID  string
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Salary      string
	TechStack   []string
	PostedAt    *time.Time
	CreatedAt   time.Time
}

type JobUpsert struct {
	Source      string
	ExternalID  string
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Salary      string
	TechStack   []string
	PostedAt    *time.Time
}

type JobListFilter struct {
	Limit   int
	Offset  int
	Keyword string
}

type JobRepository interface {
	ExistsByID(ctx context.Context, jobID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, jobID uuid.UUID) (Job, error)
	ListJobs(ctx context.Context, f JobListFilter) ([]Job, error)
	ListRecent(ctx context.Context, limit int) ([]Job, error)
	Insert(ctx context.Context, in JobUpsert) (Job, error)
	UpsertJobs(ctx context.Context, items []JobUpsert) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, COALESCE(source,''), COALESCE(external_id,''), COALESCE(title,''),
	COALESCE(company,''), COALESCE(location,''), COALESCE(description,''), COALESCE(url,''),
	COALESCE(salary,''), COALESCE(tech_stack, '{}'), posted_at, created_at`

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, jobID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	var j Job
	if err := row.Scan(
		&j.ID, &j.Source, &j.ExternalID, &j.Title,
		&j.Company, &j.Location, &j.Description, &j.URL,
		&j.Salary, &j.TechStack, &j.PostedAt, &j.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f JobListFilter) ([]Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	kw := strings.TrimSpace(f.Keyword)
	if kw != "" {
		query += ` WHERE (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')`
		args = append(args, kw)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) ListRecent(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *PostgresJobRepository) Insert(ctx context.Context, in JobUpsert) (Job, error) {
	id := uuid.New()
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, source, external_id, title, company, location, description, url, salary, tech_stack, posted_at, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		id, in.Source, in.ExternalID, in.Title, in.Company, in.Location,
		in.Description, in.URL, in.Salary, in.TechStack, in.PostedAt, now,
	)
	if err != nil {
		return Job{}, err
	}
	return r.FindByID(ctx, id)
}

// UpsertJobs inserts importer batches keyed by (source, external_id) so a
// re-run of the same feed never duplicates a posting. Returns the number of
// affected rows.
func (r *PostgresJobRepository) UpsertJobs(ctx context.Context, items []JobUpsert) (int, error) {
	upserted := 0
	for _, in := range items {
		if strings.TrimSpace(in.Title) == "" {
			continue
		}
		affected, err := r.db.Exec(ctx,
			`INSERT INTO jobs (id, source, external_id, title, company, location, description, url, salary, tech_stack, posted_at, created_at)
			 VALUES (gen_random_uuid(),$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
			 ON CONFLICT (source, external_id) DO UPDATE SET
				title = EXCLUDED.title,
				company = EXCLUDED.company,
				location = EXCLUDED.location,
				description = EXCLUDED.description,
				url = EXCLUDED.url,
				salary = EXCLUDED.salary,
				tech_stack = EXCLUDED.tech_stack,
				posted_at = EXCLUDED.posted_at`,
			in.Source, in.ExternalID, in.Title, in.Company, in.Location,
			in.Description, in.URL, in.Salary, in.TechStack, in.PostedAt,
		)
		if err != nil {
			return upserted, err
		}
		if affected > 0 {
			upserted++
		}
	}
	return upserted, nil
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.Source, &j.ExternalID, &j.Title,
			&j.Company, &j.Location, &j.Description, &j.URL,
			&j.Salary, &j.TechStack, &j.PostedAt, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
