package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
	ErrJobNotFound   = errors.New("job not found")
	ErrAlertNotFound = errors.New("alert not found")
	ErrResumeMissing = errors.New("resume missing")
)
