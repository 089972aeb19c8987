package scraper

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"job-matcher/internal/database"
	"job-matcher/internal/repository"
	"job-matcher/internal/usecase"

	"github.com/google/uuid"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch")
	}
	for i := range dest {
		d, ok := dest[i].(*uuid.UUID)
		if !ok {
			return fmt.Errorf("unsupported scan type")
		}
		val, ok := r.vals[i].(uuid.UUID)
		if !ok {
			return fmt.Errorf("scan type mismatch uuid")
		}
		*d = val
	}
	return nil
}

type fakeDB struct {
	mu sync.Mutex

	sourcesByName map[string]uuid.UUID
	runs          map[uuid.UUID]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		sourcesByName: map[string]uuid.UUID{},
		runs:          map[uuid.UUID]string{},
	}
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close() error                   { return nil }
func (db *fakeDB) SQLDB() *sql.DB                 { return nil }

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	return nil, fmt.Errorf("not implemented")
}

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "insert into job_sources"):
		name := args[0].(string)
		if _, ok := db.sourcesByName[name]; !ok {
			db.sourcesByName[name] = uuid.New()
			return 1, nil
		}
		return 0, nil

	case strings.HasPrefix(q, "insert into scrape_runs"):
		db.runs[args[0].(uuid.UUID)] = "running"
		return 1, nil

	case strings.HasPrefix(q, "update scrape_runs"):
		db.runs[args[0].(uuid.UUID)] = args[2].(string)
		return 1, nil

	default:
		return 0, nil
	}
}

func (db *fakeDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	db.mu.Lock()
	defer db.mu.Unlock()

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), "select id from job_sources") {
		id, ok := db.sourcesByName[args[0].(string)]
		if !ok {
			return fakeRow{err: fmt.Errorf("no rows")}
		}
		return fakeRow{vals: []any{id}}
	}
	return fakeRow{err: fmt.Errorf("unsupported queryrow")}
}

func (db *fakeDB) runStatuses() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]string, 0, len(db.runs))
	for _, s := range db.runs {
		out = append(out, s)
	}
	return out
}

type fakeIngest struct {
	mu      sync.Mutex
	batches [][]usecase.JobInput
	err     error
}

func (f *fakeIngest) CreateJob(ctx context.Context, in usecase.JobInput) (repository.Job, error) {
	panic("not used")
}

func (f *fakeIngest) IngestBatch(ctx context.Context, source string, items []usecase.JobInput) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, items)
	return len(items), nil
}

func TestRemotiveImporter_FetchAndRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/remote-jobs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"job-count": 2,
			"jobs": [
				{
					"id": 1,
					"title": "Backend Engineer",
					"company_name": "Acme",
					"candidate_required_location": "Worldwide",
					"description": "<p>We use Go and PostgreSQL.</p>",
					"url": "https://remotive.com/jobs/1",
					"publication_date": "2025-06-01T00:00:00"
				},
				{
					"id": 2,
					"title": "",
					"company_name": "NoTitle Inc",
					"description": "skipped",
					"url": "https://remotive.com/jobs/2"
				}
			]
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	imp := NewRemotiveImporter()
	imp.apiBase = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := newFakeDB()
	ingest := &fakeIngest{}

	n, err := Run(ctx, db, ingest, imp, 1, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if n != 1 {
		t.Fatalf("upserted = %d, want 1", n)
	}
	if len(ingest.batches) != 1 || len(ingest.batches[0]) != 1 {
		t.Fatalf("unexpected batches: %+v", ingest.batches)
	}

	job := ingest.batches[0][0]
	if job.Title != "Backend Engineer" || job.Company != "Acme" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if strings.Contains(job.Description, "<p>") {
		t.Fatalf("description not stripped: %q", job.Description)
	}
	if job.PostedAt == nil {
		t.Fatalf("posted_at not parsed")
	}

	statuses := db.runStatuses()
	if len(statuses) != 1 || statuses[0] != "finished" {
		t.Fatalf("run statuses = %v, want [finished]", statuses)
	}
}

func TestRun_FetchErrorMarksRunFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	imp := NewRemotiveImporter()
	imp.apiBase = server.URL
	imp.client.Timeout = 2 * time.Second

	db := newFakeDB()
	ingest := &fakeIngest{}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := Run(ctx, db, ingest, imp, 1, nil); err == nil {
		t.Fatalf("expected error")
	}
	statuses := db.runStatuses()
	if len(statuses) != 1 || statuses[0] != "failed" {
		t.Fatalf("run statuses = %v, want [failed]", statuses)
	}
	if len(ingest.batches) != 0 {
		t.Fatalf("ingest should not be called on fetch error")
	}
}

func TestSplitCompanyTitle(t *testing.T) {
	cases := []struct {
		in           string
		company      string
		title        string
	}{
		{"Acme: Senior Go Engineer", "Acme", "Senior Go Engineer"},
		{"Senior Go Engineer at Acme", "Acme", "Senior Go Engineer"},
		{"Acme | Platform Engineer", "Acme", "Platform Engineer"},
		{"Backend Developer @ Initech", "Initech", "Backend Developer"},
		{"Just A Plain Title", "", "Just A Plain Title"},
	}
	for _, tc := range cases {
		company, title := splitCompanyTitle(tc.in)
		if company != tc.company || title != tc.title {
			t.Fatalf("splitCompanyTitle(%q) = (%q, %q), want (%q, %q)", tc.in, company, title, tc.company, tc.title)
		}
	}
}

func TestStripTags(t *testing.T) {
	in := "<div><p>We  use <b>Go</b> &amp; PostgreSQL.</p>\n<ul><li>Remote</li></ul></div>"
	got := stripTags(in)
	if strings.Contains(got, "<") || strings.Contains(got, "&amp;") {
		t.Fatalf("tags left behind: %q", got)
	}
	if !strings.Contains(got, "We use Go & PostgreSQL.") {
		t.Fatalf("unexpected text: %q", got)
	}
}
