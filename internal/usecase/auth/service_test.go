package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"job-matcher/internal/pkg/jwt"
	"job-matcher/internal/repository"
)

type mockUserRepo struct {
	byEmail map[string]repository.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]repository.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, email, name, passwordHash string) (repository.User, error) {
	u := repository.User{ID: uuid.New(), Email: email, Name: name, PasswordHash: passwordHash}
	m.byEmail[email] = u
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}

func newTestService() (*Service, *mockUserRepo) {
	users := newMockUserRepo()
	tokens := jwt.NewHMACService("a", "r", 15*time.Minute, time.Hour)
	return NewService(users, tokens), users
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	acct, pair, err := svc.Register(ctx, RegisterInput{
		Name:     "Dev",
		Email:    "  Dev@Example.COM ",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if acct.Email != "dev@example.com" {
		t.Fatalf("email not normalized: %q", acct.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty token pair")
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "dev@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	got, _, err := svc.Login(ctx, LoginInput{Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if got.ID != acct.ID {
		t.Fatalf("login returned different account")
	}
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "", Password: "hunter2hunter2"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if next.AccessToken == "" {
		t.Fatalf("empty refreshed access token")
	}

	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}
