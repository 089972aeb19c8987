package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	return s
}

func TestIssuePair_RoundTrip(t *testing.T) {
	s := newTestService()
	userID := uuid.New()

	pair, err := s.IssuePair(userID, "dev@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d", pair.ExpiresIn)
	}

	claims, err := s.ValidateAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.UserID != userID || claims.Email != "dev@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	rc, err := s.ValidateRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if rc.UserID != userID {
		t.Fatalf("refresh user = %s, want %s", rc.UserID, userID)
	}
}

func TestValidate_RejectsCrossTypeTokens(t *testing.T) {
	s := newTestService()
	pair, err := s.IssuePair(uuid.New(), "dev@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := s.ValidateAccess(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
	if _, err := s.ValidateRefresh(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	s := newTestService()
	pair, err := s.IssuePair(uuid.New(), "")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	late := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return late }

	if _, err := s.ValidateAccess(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
