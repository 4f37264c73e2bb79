package service_test

import (
	"context"
	"errors"
	"testing"

	"meeting-scheduler-api/internal/service"
	"meeting-scheduler-api/internal/store/memstore"
)

func TestSignupNormalizesEmail(t *testing.T) {
	st := memstore.New()
	svc := newUserService(st)

	u, err := svc.Signup(context.Background(), service.SignupRequest{
		Name: "X", Email: "Mixed.Case@Example.COM", Password: "testpass123", Timezone: "UTC",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "mixed.case@example.com" {
		t.Errorf("email not lowercased: %s", u.Email)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	st := memstore.New()
	svc := newUserService(st)

	req := service.SignupRequest{Name: "X", Email: "dup@test.com", Password: "testpass123", Timezone: "UTC"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(context.Background(), req)
	if !errors.Is(err, service.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignupInvalidTimezone(t *testing.T) {
	tests := []string{"Not/AZone", ""}
	for _, tz := range tests {
		st := memstore.New()
		svc := newUserService(st)
		_, err := svc.Signup(context.Background(), service.SignupRequest{
			Name: "X", Email: "tz@test.com", Password: "testpass123", Timezone: tz,
		})
		if !errors.Is(err, service.ErrInvalidTimezone) {
			t.Errorf("timezone %q: expected ErrInvalidTimezone, got %v", tz, err)
		}
	}
}

func TestLogin(t *testing.T) {
	st := memstore.New()
	svc := newUserService(st)

	if _, err := svc.Signup(context.Background(), service.SignupRequest{
		Name: "X", Email: "login@test.com", Password: "testpass123", Timezone: "UTC",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// case-insensitive email match
	if _, err := svc.Login(context.Background(), "LOGIN@test.com", "testpass123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Login(context.Background(), "login@test.com", "wrongpass"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@test.com", "testpass123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	st := memstore.New()
	svc := newUserService(st)
	u := createUser(t, st, "UTC")

	_, refresh, err := svc.IssueTokens(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	access, next, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" || next == "" {
		t.Fatal("empty tokens after refresh")
	}

	// the old token is revoked by rotation
	if _, _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("reused refresh token: expected ErrInvalidCredentials, got %v", err)
	}

	// the new one still works
	if _, _, err := svc.Refresh(context.Background(), next); err != nil {
		t.Errorf("rotated token: %v", err)
	}
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	st := memstore.New()
	svc := newUserService(st)
	u := createUser(t, st, "UTC")

	_, refresh1, err := svc.IssueTokens(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, refresh2, err := svc.IssueTokens(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Logout(context.Background(), u.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	for _, tok := range []string{refresh1, refresh2} {
		if _, _, err := svc.Refresh(context.Background(), tok); !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("refresh after logout: expected ErrInvalidCredentials, got %v", err)
		}
	}
}
