package services

import (
	"errors"
	"testing"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/utils/token"
)

func newTestAuth(t *testing.T) (*AuthService, testRepos) {
	t.Helper()

	db := newTestDB(t)
	repos := newTestRepos(db)
	tokens := token.NewManager("test-secret", newTestRedis(t))
	return NewAuthService(repos.users, tokens), repos
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuth(t)

	user, err := svc.Register(testCtx, "Vito", "vito@test.local", "9876543210", "opensesame1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != models.RoleCustomer {
		t.Errorf("expected customer role, got %s", user.Role)
	}
	if user.Password == "opensesame1" {
		t.Error("password stored in plaintext")
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(testCtx, "Vito Again", "vito@test.local", "", "differentpass")
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("login returns a token pair", func(t *testing.T) {
		loggedIn, access, refresh, err := svc.Login(testCtx, "vito@test.local", "opensesame1")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if loggedIn.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, loggedIn.ID)
		}
		if access == "" || refresh == "" {
			t.Error("expected non-empty token pair")
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, _, err := svc.Login(testCtx, "vito@test.local", "wrong")
		if !errors.Is(err, ErrInvalidLogin) {
			t.Fatalf("expected ErrInvalidLogin, got %v", err)
		}
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, _, _, err := svc.Login(testCtx, "nobody@test.local", "whatever")
		if !errors.Is(err, ErrInvalidLogin) {
			t.Fatalf("expected ErrInvalidLogin, got %v", err)
		}
	})
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newTestAuth(t)

	if _, err := svc.Register(testCtx, "Rotator", "rotate@test.local", "", "opensesame1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	_, _, refresh, err := svc.Login(testCtx, "rotate@test.local", "opensesame1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	access2, refresh2, err := svc.Refresh(testCtx, refresh)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if access2 == "" || refresh2 == "" {
		t.Fatal("expected fresh token pair")
	}
	if refresh2 == refresh {
		t.Error("expected rotated refresh token to differ")
	}

	t.Run("old refresh token is dead after rotation", func(t *testing.T) {
		if _, _, err := svc.Refresh(testCtx, refresh); err == nil {
			t.Error("expected error reusing rotated refresh token")
		}
	})

	t.Run("logout revokes the current refresh token", func(t *testing.T) {
		if err := svc.Logout(testCtx, refresh2); err != nil {
			t.Fatalf("Logout returned error: %v", err)
		}
		if _, _, err := svc.Refresh(testCtx, refresh2); err == nil {
			t.Error("expected error refreshing after logout")
		}
	})
}
