// Package memstore is an in-memory store.Store used by tests and local
// runs without Postgres. A single mutex serializes all access, so the
// check-then-write sequences the contracts require are trivially atomic.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"meeting-scheduler-api/internal/interval"
	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

type state struct {
	users        map[string]*model.User
	slots        map[string]*model.TimeSlot
	meetings     map[string]*model.Meeting
	participants map[string][]model.MeetingParticipant // keyed by meeting, insertion order
	tokens       map[string]*store.RefreshToken
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{
		users:        make(map[string]*model.User),
		slots:        make(map[string]*model.TimeSlot),
		meetings:     make(map[string]*model.Meeting),
		participants: make(map[string][]model.MeetingParticipant),
		tokens:       make(map[string]*store.RefreshToken),
	}}
}

// WithTx snapshots the state and restores it when fn fails, so a failed
// unit of work leaves nothing behind.
func (m *Store) WithTx(ctx context.Context, fn func(store.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fn(txStore{m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// txStore exposes the unlocked state inside WithTx; the outer mutex is
// already held.
type txStore struct{ *state }

func (t txStore) WithTx(ctx context.Context, fn func(store.Store) error) error {
	return fn(t)
}

func (s *state) clone() *state {
	c := &state{
		users:        make(map[string]*model.User, len(s.users)),
		slots:        make(map[string]*model.TimeSlot, len(s.slots)),
		meetings:     make(map[string]*model.Meeting, len(s.meetings)),
		participants: make(map[string][]model.MeetingParticipant, len(s.participants)),
		tokens:       make(map[string]*store.RefreshToken, len(s.tokens)),
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range s.slots {
		ts := *v
		c.slots[k] = &ts
	}
	for k, v := range s.meetings {
		mt := *v
		c.meetings[k] = &mt
	}
	for k, v := range s.participants {
		c.participants[k] = append([]model.MeetingParticipant(nil), v...)
	}
	for k, v := range s.tokens {
		rt := *v
		c.tokens[k] = &rt
	}
	return c
}

// locked wrappers

func (m *Store) CreateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateUser(ctx, u)
}

func (m *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UserByID(ctx, id)
}

func (m *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UserByEmail(ctx, email)
}

func (m *Store) CreateSlot(ctx context.Context, ts *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateSlot(ctx, ts)
}

func (m *Store) SlotByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.SlotByID(ctx, id)
}

func (m *Store) SlotByIDForUpdate(ctx context.Context, id string) (*model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.SlotByIDForUpdate(ctx, id)
}

func (m *Store) UpdateSlot(ctx context.Context, ts *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpdateSlot(ctx, ts)
}

func (m *Store) DeleteSlot(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.DeleteSlot(ctx, id)
}

func (m *Store) SlotsForUser(ctx context.Context, userID string, f store.SlotFilter) ([]model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.SlotsForUser(ctx, userID, f)
}

func (m *Store) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.HasOverlap(ctx, userID, start, end, excludeID)
}

func (m *Store) CreateMeeting(ctx context.Context, mt *model.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateMeeting(ctx, mt)
}

func (m *Store) AddParticipant(ctx context.Context, p *model.MeetingParticipant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.AddParticipant(ctx, p)
}

func (m *Store) ParticipantsByMeeting(ctx context.Context, meetingID string) ([]model.MeetingParticipant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ParticipantsByMeeting(ctx, meetingID)
}

func (m *Store) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateRefreshToken(ctx, userID, tokenHash, expiresAt)
}

func (m *Store) RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.RefreshTokenByHash(ctx, tokenHash)
}

func (m *Store) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.RotateRefreshToken(ctx, oldID, newID, userID, newHash, newExpiry)
}

func (m *Store) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.RevokeAllRefreshTokens(ctx, userID)
}

// state implementations

func (s *state) CreateUser(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	cp := *u
	now := time.Now().UTC()
	cp.CreatedAt, cp.UpdatedAt = now, now
	s.users[cp.ID] = &cp
	*u = cp
	return nil
}

func (s *state) UserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *state) UserByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *state) CreateSlot(_ context.Context, ts *model.TimeSlot) error {
	if overlaps, _ := s.HasOverlap(nil, ts.UserID, ts.StartTime, ts.EndTime, ""); overlaps {
		return store.ErrOverlap
	}
	cp := *ts
	now := time.Now().UTC()
	cp.CreatedAt, cp.UpdatedAt = now, now
	s.slots[cp.ID] = &cp
	*ts = cp
	return nil
}

func (s *state) SlotByID(_ context.Context, id string) (*model.TimeSlot, error) {
	ts, ok := s.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *ts
	return &cp, nil
}

func (s *state) SlotByIDForUpdate(ctx context.Context, id string) (*model.TimeSlot, error) {
	// the store mutex already serializes writers
	return s.SlotByID(ctx, id)
}

func (s *state) UpdateSlot(_ context.Context, ts *model.TimeSlot) error {
	existing, ok := s.slots[ts.ID]
	if !ok {
		return store.ErrNotFound
	}
	if overlaps, _ := s.HasOverlap(nil, ts.UserID, ts.StartTime, ts.EndTime, ts.ID); overlaps {
		return store.ErrOverlap
	}
	cp := *ts
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	s.slots[cp.ID] = &cp
	*ts = cp
	return nil
}

func (s *state) DeleteSlot(_ context.Context, id string) error {
	if _, ok := s.slots[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.slots, id)
	return nil
}

func (s *state) SlotsForUser(_ context.Context, userID string, f store.SlotFilter) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, ts := range s.slots {
		if ts.UserID != userID {
			continue
		}
		if f.From != nil && f.To != nil {
			if ts.StartTime.Before(*f.From) || !ts.StartTime.Before(*f.To) {
				continue
			}
		}
		if f.Status != nil && ts.Status != *f.Status {
			continue
		}
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *state) HasOverlap(_ context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	var spans []interval.Span
	for _, ts := range s.slots {
		if ts.UserID == userID {
			spans = append(spans, interval.Span{ID: ts.ID, Start: ts.StartTime, End: ts.EndTime})
		}
	}
	return interval.AnyOverlap(spans, interval.Span{Start: start, End: end}, excludeID), nil
}

func (s *state) CreateMeeting(_ context.Context, m *model.Meeting) error {
	for _, existing := range s.meetings {
		if existing.TimeSlotID == m.TimeSlotID {
			return store.ErrDuplicate
		}
	}
	cp := *m
	now := time.Now().UTC()
	cp.CreatedAt, cp.UpdatedAt = now, now
	s.meetings[cp.ID] = &cp
	*m = cp
	return nil
}

func (s *state) AddParticipant(_ context.Context, p *model.MeetingParticipant) error {
	if _, ok := s.meetings[p.MeetingID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = time.Now().UTC()
	s.participants[cp.MeetingID] = append(s.participants[cp.MeetingID], cp)
	*p = cp
	return nil
}

func (s *state) ParticipantsByMeeting(_ context.Context, meetingID string) ([]model.MeetingParticipant, error) {
	return append([]model.MeetingParticipant(nil), s.participants[meetingID]...), nil
}

func (s *state) CreateRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	id := newID()
	s.tokens[id] = &store.RefreshToken{
		ID: id, UserID: userID, TokenHash: tokenHash,
		ExpiresAt: expiresAt, CreatedAt: time.Now().UTC(),
	}
	return id, nil
}

func (s *state) RefreshTokenByHash(_ context.Context, tokenHash string) (*store.RefreshToken, error) {
	for _, rt := range s.tokens {
		if rt.TokenHash == tokenHash {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *state) RotateRefreshToken(_ context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	old, ok := s.tokens[oldID]
	if !ok {
		return store.ErrNotFound
	}
	old.Revoked = true
	old.ReplacedBy = &newID
	s.tokens[newID] = &store.RefreshToken{
		ID: newID, UserID: userID, TokenHash: newHash,
		ExpiresAt: newExpiry, CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *state) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	for _, rt := range s.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func newID() string { return uuid.New().String() }
