// Package store defines the storage contracts the scheduling core runs on.
// Any backend satisfying Store works; the repo ships a pgx implementation
// for production and an in-memory one for tests.
package store

import (
	"context"
	"errors"
	"time"

	"meeting-scheduler-api/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	// ErrOverlap is the storage-level backstop: a write race that slips past
	// the application-level overlap check surfaces as this error, never as
	// silently overlapping rows.
	ErrOverlap = errors.New("overlapping time slot")
)

// SlotFilter narrows SlotsForUser. Bounds are absolute instants; the
// service layer converts calendar dates in the user's zone before calling.
type SlotFilter struct {
	From   *time.Time
	To     *time.Time
	Status *model.SlotStatus
}

type RefreshToken struct {
	ID         string
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *string
	CreatedAt  time.Time
}

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByID(ctx context.Context, id string) (*model.User, error)
	// UserByEmail matches case-insensitively; emails are stored lowercase.
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

type SlotStore interface {
	CreateSlot(ctx context.Context, s *model.TimeSlot) error
	SlotByID(ctx context.Context, id string) (*model.TimeSlot, error)
	// SlotByIDForUpdate locks the row for the rest of the transaction so
	// check-then-transition sequences serialize per slot.
	SlotByIDForUpdate(ctx context.Context, id string) (*model.TimeSlot, error)
	UpdateSlot(ctx context.Context, s *model.TimeSlot) error
	DeleteSlot(ctx context.Context, id string) error
	// SlotsForUser returns the user's slots ordered by start time ascending.
	SlotsForUser(ctx context.Context, userID string, f SlotFilter) ([]model.TimeSlot, error)
	HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)
}

type MeetingStore interface {
	CreateMeeting(ctx context.Context, m *model.Meeting) error
	AddParticipant(ctx context.Context, p *model.MeetingParticipant) error
	ParticipantsByMeeting(ctx context.Context, meetingID string) ([]model.MeetingParticipant, error)
}

type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

type Store interface {
	UserStore
	SlotStore
	MeetingStore
	RefreshTokenStore

	// WithTx runs fn as one transactional unit: every store call made through
	// the argument either fully commits or leaves no observable state.
	WithTx(ctx context.Context, fn func(Store) error) error
}
