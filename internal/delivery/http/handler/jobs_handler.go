package handler

import (
	"strconv"
	"time"

	"job-matcher/internal/delivery/http/dto"
	"job-matcher/internal/delivery/http/middleware"
	"job-matcher/internal/pkg/response"
	"job-matcher/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	list   usecase.JobListUsecase
	ingest usecase.JobIngestUsecase
}

type createJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Salary      string `json:"salary"`
	PostedAt    string `json:"posted_at"`
}

func NewJobsHandler(list usecase.JobListUsecase, ingest usecase.JobIngestUsecase) *JobsHandler {
	return &JobsHandler{list: list, ingest: ingest}
}

func (h *JobsHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	if public != nil {
		public.Get("/jobs", h.HandleListJobs)
	}
	if protected != nil {
		protected.Post("/jobs", h.HandleCreateJob)
	}
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.list.ListJobs(c.Context(), usecase.JobListParams{
		Limit:   limit,
		Offset:  offset,
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var postedAt *time.Time
	if req.PostedAt != "" {
		t, err := time.Parse(time.RFC3339, req.PostedAt)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		u := t.UTC()
		postedAt = &u
	}

	job, err := h.ingest.CreateJob(c.Context(), usecase.JobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		URL:         req.URL,
		Salary:      req.Salary,
		PostedAt:    postedAt,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromJob(job))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
