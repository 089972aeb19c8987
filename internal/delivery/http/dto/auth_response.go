package dto

import (
	"job-matcher/internal/pkg/jwt"
	"job-matcher/internal/usecase/auth"
)

type AuthResponse struct {
	User   auth.Account `json:"user"`
	Tokens jwt.Pair     `json:"tokens"`
}
