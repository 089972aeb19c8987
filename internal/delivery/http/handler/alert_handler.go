package handler

import (
	"job-matcher/internal/delivery/http/middleware"
	"job-matcher/internal/pkg/response"
	"job-matcher/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AlertHandler struct {
	uc usecase.AlertUsecase
}

type createAlertRequest struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
	Active   *bool  `json:"active"`
}

type processAlertsRequest struct {
	JobLimit int `json:"job_limit"`
	Workers  int `json:"workers"`
}

func NewAlertHandler(uc usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func (h *AlertHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/alerts", h.HandleList)
	r.Post("/alerts", h.HandleCreate)
	r.Delete("/alerts/:alert_id", h.HandleDelete)
	r.Post("/alerts/process", h.HandleProcess)
}

func (h *AlertHandler) HandleCreate(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createAlertRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	item, err := h.uc.CreateAlert(c.Context(), userID, usecase.AlertCreateInput{
		Name:     req.Name,
		Keywords: req.Keywords,
		Active:   active,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, item)
}

func (h *AlertHandler) HandleList(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListAlerts(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *AlertHandler) HandleDelete(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	alertID, err := uuid.Parse(c.Params("alert_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid alert id", nil, err)
	}

	if err := h.uc.DeleteAlert(c.Context(), userID, alertID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AlertHandler) HandleProcess(c fiber.Ctx) error {
	if _, ok := userIDFromCtx(c); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req processAlertsRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	result, err := h.uc.ProcessAlerts(c.Context(), req.JobLimit, req.Workers)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}
