package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"job-matcher/internal/database"
	"job-matcher/internal/usecase"

	"github.com/google/uuid"
)

// Importer fetches postings from one external board and returns them ready
// for batch ingest. Name doubles as the jobs.source value, so it must stay
// stable across runs for the upsert key to hold.
type Importer interface {
	Name() string
	Fetch(ctx context.Context, pages int) ([]usecase.JobInput, error)
}

// Run executes one import: record the run, fetch, hand the batch to ingest,
// close the run with its outcome. Run bookkeeping failures never abort the
// import itself.
func Run(ctx context.Context, db database.DB, ingest usecase.JobIngestUsecase, imp Importer, pages int, logger *log.Logger) (int, error) {
	if imp == nil || ingest == nil {
		return 0, fmt.Errorf("nil importer/ingest")
	}
	if logger == nil {
		logger = log.Default()
	}

	sourceID, _ := ensureJobSource(ctx, db, imp.Name())
	runID, _ := createScrapeRun(ctx, db, sourceID)

	items, err := imp.Fetch(ctx, pages)
	if err != nil {
		_ = finishScrapeRun(context.Background(), db, runID, "failed", err.Error())
		return 0, err
	}

	n, err := ingest.IngestBatch(ctx, imp.Name(), items)
	if err != nil {
		_ = finishScrapeRun(context.Background(), db, runID, "failed", err.Error())
		return n, err
	}

	_ = finishScrapeRun(context.Background(), db, runID, "finished", fmt.Sprintf("fetched=%d upserted=%d", len(items), n))
	logger.Printf("import=%s status=ok fetched=%d upserted=%d", imp.Name(), len(items), n)
	return n, nil
}

func ensureJobSource(ctx context.Context, db database.DB, name string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("empty source name")
	}

	_, _ = db.Exec(ctx,
		`INSERT INTO job_sources (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
		name,
	)

	row := db.QueryRow(ctx, `SELECT id FROM job_sources WHERE name = $1 LIMIT 1`, name)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func createScrapeRun(ctx context.Context, db database.DB, sourceID uuid.UUID) (uuid.UUID, error) {
	if db == nil || sourceID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("nil db/source")
	}
	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO scrape_runs (id, source_id, started_at, status) VALUES ($1,$2,$3,$4)`,
		id, sourceID, time.Now().UTC(), "running",
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func finishScrapeRun(ctx context.Context, db database.DB, runID uuid.UUID, status, detail string) error {
	if db == nil || runID == uuid.Nil {
		return nil
	}
	_, err := db.Exec(ctx,
		`UPDATE scrape_runs SET finished_at = $2, status = $3, detail = $4 WHERE id = $1`,
		runID, time.Now().UTC(), strings.TrimSpace(status), strings.TrimSpace(detail),
	)
	return err
}

func httpGetWithRetry(ctx context.Context, client *http.Client, url string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var body []byte
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "JobMatcherImporter/0.1")
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				return
			}
			b, err := readAllLimit(resp.Body, 10<<20)
			if err != nil {
				lastErr = err
				return
			}
			lastErr = nil
			body = b
		}()
		if lastErr == nil {
			return body, nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return nil, lastErr
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}

var (
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
	entities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ")
)

// stripTags reduces board HTML to plain text so the extractor sees prose,
// not markup.
func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = entities.Replace(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Board feeds cram company and role into one line in several formats, e.g.
// "Acme: Senior Go Engineer" or "Senior Go Engineer at Acme".
var titlePatterns = []struct {
	re      *regexp.Regexp
	swapped bool
}{
	{re: regexp.MustCompile(`^([^:]+):\s*(.+)$`)},
	{re: regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`), swapped: true},
	{re: regexp.MustCompile(`^([^|]+)\s*\|\s*(.+)$`)},
	{re: regexp.MustCompile(`^(.+?)\s*@\s*(.+)$`), swapped: true},
}

func splitCompanyTitle(full string) (company, title string) {
	full = strings.TrimSpace(spaceRe.ReplaceAllString(full, " "))
	for _, p := range titlePatterns {
		m := p.re.FindStringSubmatch(full)
		if m == nil {
			continue
		}
		if p.swapped {
			return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", full
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func parseTimeOrNil(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
