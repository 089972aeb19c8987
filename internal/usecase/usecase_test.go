package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"job-matcher/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	byID    map[uuid.UUID]repository.Job
	listed  []repository.Job
	listErr error

	inserted []repository.JobUpsert
	upserted []repository.JobUpsert

	listCalls int
}

func (m *mockJobRepo) ExistsByID(ctx context.Context, jobID uuid.UUID) (bool, error) {
	_, ok := m.byID[jobID]
	return ok, nil
}

func (m *mockJobRepo) FindByID(ctx context.Context, jobID uuid.UUID) (repository.Job, error) {
	j, ok := m.byID[jobID]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) ListJobs(ctx context.Context, f repository.JobListFilter) ([]repository.Job, error) {
	m.listCalls++
	return m.listed, m.listErr
}

func (m *mockJobRepo) ListRecent(ctx context.Context, limit int) ([]repository.Job, error) {
	return m.listed, nil
}

func (m *mockJobRepo) Insert(ctx context.Context, in repository.JobUpsert) (repository.Job, error) {
	m.inserted = append(m.inserted, in)
	return repository.Job{
		ID:          uuid.New(),
		Source:      in.Source,
		ExternalID:  in.ExternalID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Description: in.Description,
		TechStack:   in.TechStack,
	}, nil
}

func (m *mockJobRepo) UpsertJobs(ctx context.Context, items []repository.JobUpsert) (int, error) {
	m.upserted = append(m.upserted, items...)
	return len(items), nil
}

type mockResumeRepo struct {
	byUser map[uuid.UUID]repository.Resume
}

func (m *mockResumeRepo) Upsert(ctx context.Context, userID uuid.UUID, text string, techStack []string) error {
	if m.byUser == nil {
		m.byUser = map[uuid.UUID]repository.Resume{}
	}
	m.byUser[userID] = repository.Resume{UserID: userID, Text: text, TechStack: techStack}
	return nil
}

func (m *mockResumeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (repository.Resume, error) {
	r, ok := m.byUser[userID]
	if !ok {
		return repository.Resume{}, repository.ErrResumeNotFound
	}
	return r, nil
}

// fakeCache stores JSON blobs in memory and records pattern deletes.
type fakeCache struct {
	data            map[string][]byte
	deletedPatterns []string
	invalidations   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deletedPatterns = append(c.deletedPatterns, pattern)
	return nil
}

func (c *fakeCache) InvalidateJobCaches(ctx context.Context) error {
	c.invalidations++
	c.data = map[string][]byte{}
	return nil
}

func TestJobList_InvalidParams(t *testing.T) {
	uc := NewJobListUsecase(&mockJobRepo{}, nil)
	if _, err := uc.ListJobs(context.Background(), JobListParams{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobList_SecondCallServedFromCache(t *testing.T) {
	repo := &mockJobRepo{listed: []repository.Job{{
		ID:        uuid.New(),
		Title:     "Backend Engineer",
		Company:   "Acme",
		TechStack: []string{"Go", "PostgreSQL"},
	}}}
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache)

	params := JobListParams{Limit: 20}
	first, err := uc.ListJobs(context.Background(), params)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	second, err := uc.ListJobs(context.Background(), params)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("repo called %d times, want 1", repo.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Title != first[0].Title {
		t.Fatalf("cache returned different result: %+v vs %+v", first, second)
	}
}

func TestMatchService_ResumeMissing(t *testing.T) {
	jobID := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Title: "Go Developer"}}}
	svc := NewMatchService(jobs, &mockResumeRepo{}, nil, nil)

	if _, err := svc.CalculateMatch(context.Background(), uuid.New(), jobID); !errors.Is(err, ErrResumeMissing) {
		t.Fatalf("expected ErrResumeMissing, got %v", err)
	}
}

func TestMatchService_JobNotFound(t *testing.T) {
	userID := uuid.New()
	resumes := &mockResumeRepo{byUser: map[uuid.UUID]repository.Resume{
		userID: {UserID: userID, Text: "go developer"},
	}}
	svc := NewMatchService(&mockJobRepo{}, resumes, nil, nil)

	if _, err := svc.CalculateMatch(context.Background(), userID, uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMatchService_ScoresAndCaches(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()

	resumes := &mockResumeRepo{byUser: map[uuid.UUID]repository.Resume{
		userID: {
			UserID:    userID,
			Text:      "Senior backend engineer with 5+ years of Go and PostgreSQL.",
			TechStack: []string{"Go", "PostgreSQL"},
		},
	}}
	jobs := &mockJobRepo{byID: map[uuid.UUID]repository.Job{jobID: {
		ID:          jobID,
		Title:       "Senior Backend Engineer",
		Description: "Looking for a senior engineer. Go and PostgreSQL required, React nice to have.",
		TechStack:   []string{"Go", "PostgreSQL", "React"},
	}}}
	cache := newFakeCache()
	svc := NewMatchService(jobs, resumes, nil, cache)

	res, err := svc.CalculateMatch(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("match error: %v", err)
	}

	// 2 of 3 technologies overlap, "engineer" appears in the resume, both
	// sides read as senior.
	if res.TechStackScore != 33 {
		t.Fatalf("tech score = %d, want 33", res.TechStackScore)
	}
	if res.TitleRelevanceScore != 15 {
		t.Fatalf("title score = %d, want 15", res.TitleRelevanceScore)
	}
	if res.Score != res.TechStackScore+res.TitleRelevanceScore+20 {
		t.Fatalf("score = %d, components do not add up", res.Score)
	}
	if res.ExperienceLevelMatch != "senior" {
		t.Fatalf("experience level = %q, want senior", res.ExperienceLevelMatch)
	}
	if len(res.MissingTechnologies) != 1 || res.MissingTechnologies[0] != "React" {
		t.Fatalf("missing = %v, want [React]", res.MissingTechnologies)
	}

	again, err := svc.CalculateMatch(context.Background(), userID, jobID)
	if err != nil {
		t.Fatalf("match error: %v", err)
	}
	if again.Score != res.Score {
		t.Fatalf("cached score = %d, want %d", again.Score, res.Score)
	}
}

func TestResumeService_SaveExtractsStackAndInvalidatesMatches(t *testing.T) {
	userID := uuid.New()
	resumes := &mockResumeRepo{}
	cache := newFakeCache()
	svc := NewResumeService(resumes, nil, cache)

	profile, err := svc.SaveResume(context.Background(), userID, "I build services in Go with PostgreSQL and Docker.")
	if err != nil {
		t.Fatalf("save error: %v", err)
	}

	want := map[string]bool{"Go": true, "PostgreSQL": true, "Docker": true}
	if len(profile.TechStack) != len(want) {
		t.Fatalf("tech stack = %v", profile.TechStack)
	}
	for _, tech := range profile.TechStack {
		if !want[tech] {
			t.Fatalf("unexpected tech %q in %v", tech, profile.TechStack)
		}
	}

	if len(cache.deletedPatterns) != 1 {
		t.Fatalf("deleted patterns = %v, want one match:* pattern", cache.deletedPatterns)
	}
}

func TestJobIngestService_CreateJobExtractsAndInvalidates(t *testing.T) {
	jobs := &mockJobRepo{byID: map[uuid.UUID]repository.Job{}}
	cache := newFakeCache()
	svc := NewJobIngestService(jobs, nil, nil, cache, nil)

	job, err := svc.CreateJob(context.Background(), JobInput{
		Title:       "Platform Engineer",
		Company:     "Acme",
		Description: "Kubernetes, Docker and AWS all day.",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if job.Source != "manual" || job.ExternalID == "" {
		t.Fatalf("unexpected identity: source=%q external_id=%q", job.Source, job.ExternalID)
	}
	if len(job.TechStack) != 3 {
		t.Fatalf("tech stack = %v, want 3 entries", job.TechStack)
	}
	if cache.invalidations != 1 {
		t.Fatalf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestJobIngestService_RejectsBlankInput(t *testing.T) {
	svc := NewJobIngestService(&mockJobRepo{}, nil, nil, nil, nil)
	if _, err := svc.CreateJob(context.Background(), JobInput{Title: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.IngestBatch(context.Background(), " ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
