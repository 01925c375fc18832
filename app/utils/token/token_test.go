package token

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewManager("test-secret", rdb)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)
	user := &models.User{ID: "user-1", Role: models.RoleAdmin}

	tokenString, err := m.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := m.ParseAccessToken(tokenString)
	if err != nil {
		t.Fatalf("failed to parse access token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %s", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected role %s, got %s", models.RoleAdmin, claims.Role)
	}
}

func TestParseAccessTokenRejectsBadTokens(t *testing.T) {
	m := newTestManager(t)
	other := newTestManager(t)
	other.secret = []byte("different-secret")

	user := &models.User{ID: "user-1", Role: models.RoleCustomer}
	forged, err := other.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := m.ParseAccessToken(forged); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		if _, err := m.ParseAccessToken("not.a.jwt"); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestRefreshTokenLifecycle(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, err := m.IssueRefreshToken(ctx, "user-7")
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected a 64-char hex token, got %d chars", len(token))
	}

	userID, err := m.ResolveRefreshToken(ctx, token)
	if err != nil {
		t.Fatalf("failed to resolve refresh token: %v", err)
	}
	if userID != "user-7" {
		t.Errorf("expected user-7, got %s", userID)
	}

	if err := m.RevokeRefreshToken(ctx, token); err != nil {
		t.Fatalf("failed to revoke refresh token: %v", err)
	}
	if _, err := m.ResolveRefreshToken(ctx, token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken after revoke, got %v", err)
	}
}

func TestRotateRefreshToken(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	old, err := m.IssueRefreshToken(ctx, "user-3")
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}

	userID, fresh, err := m.RotateRefreshToken(ctx, old)
	if err != nil {
		t.Fatalf("failed to rotate refresh token: %v", err)
	}
	if userID != "user-3" {
		t.Errorf("expected user-3, got %s", userID)
	}
	if fresh == old {
		t.Error("expected rotation to issue a different token")
	}

	if _, err := m.ResolveRefreshToken(ctx, old); err != ErrInvalidToken {
		t.Errorf("expected old token to be dead, got %v", err)
	}
	if got, err := m.ResolveRefreshToken(ctx, fresh); err != nil || got != "user-3" {
		t.Errorf("expected fresh token to resolve to user-3, got %s / %v", got, err)
	}

	if _, _, err := m.RotateRefreshToken(ctx, old); err != ErrInvalidToken {
		t.Errorf("expected rotating a revoked token to fail, got %v", err)
	}
}
