package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"job-matcher/internal/pkg/jwt"
	"job-matcher/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Account is the sanitized view of a user returned to HTTP clients. The
// password hash never leaves this package.
type Account struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (Account, jwt.Pair, error)
	Login(ctx context.Context, in LoginInput) (Account, jwt.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
}

type Service struct {
	users  repository.UserRepository
	tokens jwt.Service
}

func NewService(users repository.UserRepository, tokens jwt.Service) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, jwt.Pair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return Account{}, jwt.Pair{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Account{}, jwt.Pair{}, ErrInternal
	}
	if exists {
		return Account{}, jwt.Pair{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, jwt.Pair{}, ErrInternal
	}

	u, err := s.users.Create(ctx, email, strings.TrimSpace(in.Name), string(hash))
	if err != nil {
		// A concurrent register may have won the unique index race.
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return Account{}, jwt.Pair{}, ErrEmailAlreadyRegistered
		}
		return Account{}, jwt.Pair{}, ErrInternal
	}

	pair, err := s.tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return Account{}, jwt.Pair{}, ErrInternal
	}
	return toAccount(u), pair, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Account, jwt.Pair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Account{}, jwt.Pair{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Account{}, jwt.Pair{}, ErrInvalidCredentials
		}
		return Account{}, jwt.Pair{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Account{}, jwt.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return Account{}, jwt.Pair{}, ErrInternal
	}
	return toAccount(u), pair, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return jwt.Pair{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jwt.Pair{}, ErrInvalidCredentials
		}
		return jwt.Pair{}, ErrInternal
	}

	pair, err := s.tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func toAccount(u repository.User) Account {
	return Account{ID: u.ID, Email: u.Email, Name: u.Name}
}
