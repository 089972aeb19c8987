package usecase

import (
	"context"
	"errors"
	"strings"

	"job-matcher/internal/domain/taxonomy"
	"job-matcher/internal/repository"

	"github.com/google/uuid"
)

type ResumeProfile struct {
	Text      string   `json:"text"`
	TechStack []string `json:"tech_stack"`
}

type ResumeUsecase interface {
	SaveResume(ctx context.Context, userID uuid.UUID, text string) (ResumeProfile, error)
	GetResume(ctx context.Context, userID uuid.UUID) (ResumeProfile, error)
}

// ResumeService stores uploaded resume plain text and the tech stack the
// taxonomy extracts from it. Parsing PDF/DOCX into text happens upstream.
type ResumeService struct {
	resumes repository.ResumeRepository
	tax     *taxonomy.Taxonomy
	cache   Cache
}

func NewResumeService(resumes repository.ResumeRepository, tax *taxonomy.Taxonomy, cache Cache) *ResumeService {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &ResumeService{resumes: resumes, tax: tax, cache: cache}
}

func (s *ResumeService) SaveResume(ctx context.Context, userID uuid.UUID, text string) (ResumeProfile, error) {
	if userID == uuid.Nil {
		return ResumeProfile{}, ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return ResumeProfile{}, ErrInvalidInput
	}

	stack := s.tax.Extract(text)
	if err := s.resumes.Upsert(ctx, userID, text, stack); err != nil {
		return ResumeProfile{}, ErrInternal
	}
	if s.cache != nil {
		// stored match scores are stale once the resume changes
		_ = s.cache.DeleteByPattern(ctx, "match:"+userID.String()+":*")
	}
	return ResumeProfile{Text: text, TechStack: stack}, nil
}

func (s *ResumeService) GetResume(ctx context.Context, userID uuid.UUID) (ResumeProfile, error) {
	if userID == uuid.Nil {
		return ResumeProfile{}, ErrUnauthorized
	}
	res, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ResumeProfile{}, ErrResumeMissing
		}
		return ResumeProfile{}, ErrInternal
	}
	return ResumeProfile{Text: res.Text, TechStack: res.TechStack}, nil
}
