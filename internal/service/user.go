package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"meeting-scheduler-api/internal/auth"
	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

type UserService struct {
	store      store.Store
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewUserService(st store.Store, secret string, accessTTL, refreshTTL time.Duration) *UserService {
	return &UserService{store: st, secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Timezone string
}

func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil || req.Timezone == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, req.Timezone)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Timezone:     req.Timezone,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w with id %s", ErrUserNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

// IssueTokens returns a fresh access token plus a rotating refresh token.
func (s *UserService) IssueTokens(ctx context.Context, userID string) (access, refresh string, err error) {
	access, err = auth.MakeToken(userID, s.secret, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}
	if _, err := s.store.CreateRefreshToken(ctx, userID, hash, time.Now().Add(s.refreshTTL)); err != nil {
		return "", "", err
	}
	return access, raw, nil
}

// Logout revokes every refresh token the user holds. Access tokens stay
// valid until they expire; only the refresh chain is cut.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.store.RevokeAllRefreshTokens(ctx, userID)
}

// Refresh rotates the presented refresh token and issues a new access token.
// A revoked or expired token is indistinguishable from a bad one.
func (s *UserService) Refresh(ctx context.Context, rawRefresh string) (access, refresh string, err error) {
	rt, err := s.store.RefreshTokenByHash(ctx, auth.HashRefreshToken(rawRefresh))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return "", "", ErrInvalidCredentials
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}
	newID := uuid.New().String()
	if err := s.store.RotateRefreshToken(ctx, rt.ID, newID, rt.UserID, newHash, time.Now().Add(s.refreshTTL)); err != nil {
		return "", "", err
	}

	access, err = auth.MakeToken(rt.UserID, s.secret, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	return access, newRaw, nil
}
