package handler

import (
	"errors"

	"job-matcher/internal/delivery/http/middleware"
	"job-matcher/internal/pkg/response"
	"job-matcher/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError turns usecase sentinels into transport errors so handlers
// never hand raw internals to the error middleware.
func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrAlertNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Alert not found", nil, err)
	case errors.Is(err, usecase.ErrResumeMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
