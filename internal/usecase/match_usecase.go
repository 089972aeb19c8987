package usecase

import (
	"context"
	"errors"
	"fmt"

	"job-matcher/internal/domain/matching"
	"job-matcher/internal/domain/taxonomy"
	"job-matcher/internal/repository"

	"github.com/google/uuid"
)

type MatchResult struct {
	Score                int      `json:"score"`
	TechStackScore       int      `json:"tech_stack_score"`
	TitleRelevanceScore  int      `json:"title_relevance_score"`
	ExperienceLevelMatch string   `json:"experience_level_match"`
	MatchingTechnologies []string `json:"matching_technologies"`
	MissingTechnologies  []string `json:"missing_technologies"`
}

type MatchUsecase interface {
	CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (MatchResult, error)
}

type MatchService struct {
	jobs    repository.JobRepository
	resumes repository.ResumeRepository
	tax     *taxonomy.Taxonomy
	cache   Cache
}

func NewMatchService(jobs repository.JobRepository, resumes repository.ResumeRepository, tax *taxonomy.Taxonomy, cache Cache) *MatchService {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &MatchService{jobs: jobs, resumes: resumes, tax: tax, cache: cache}
}

func (s *MatchService) CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (MatchResult, error) {
	if userID == uuid.Nil {
		return MatchResult{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return MatchResult{}, ErrJobNotFound
	}

	key := fmt.Sprintf("match:%s:%s", userID, jobID)
	if s.cache != nil {
		var cached MatchResult
		if ok, _ := s.cache.GetJSON(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	resume, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return MatchResult{}, ErrResumeMissing
		}
		return MatchResult{}, ErrInternal
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return MatchResult{}, ErrJobNotFound
		}
		return MatchResult{}, ErrInternal
	}

	res := matching.Calculate(s.tax,
		matching.Resume{Text: resume.Text, TechStack: resume.TechStack},
		matching.Job{Title: job.Title, Description: job.Description, TechStack: job.TechStack},
	)

	out := MatchResult{
		Score:                res.Score,
		TechStackScore:       res.TechStackScore,
		TitleRelevanceScore:  res.TitleRelevanceScore,
		ExperienceLevelMatch: res.ExperienceLevelMatch.String(),
		MatchingTechnologies: res.MatchingTechnologies,
		MissingTechnologies:  res.MissingTechnologies,
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}
