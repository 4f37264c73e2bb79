// Package cache fronts the calendar projector with an explicit
// read-through page cache. It is a performance layer only: wiring the
// projector directly, without this decorator, stays correct.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"meeting-scheduler-api/internal/service"
)

// Projector is the surface this cache decorates.
type Projector interface {
	Project(ctx context.Context, userID string, q service.CalendarQuery) (*service.CalendarPage, error)
}

type Calendar struct {
	next Projector
	lru  *expirable.LRU[string, *service.CalendarPage]

	mu   sync.Mutex
	gens map[string]uint64 // per-user generation, bumped on invalidation
}

func NewCalendar(next Projector, size int, ttl time.Duration) *Calendar {
	return &Calendar{
		next: next,
		lru:  expirable.NewLRU[string, *service.CalendarPage](size, nil, ttl),
		gens: make(map[string]uint64),
	}
}

func (c *Calendar) Project(ctx context.Context, userID string, q service.CalendarQuery) (*service.CalendarPage, error) {
	key := c.key(userID, q)
	if page, ok := c.lru.Get(key); ok {
		return page, nil
	}
	page, err := c.next.Project(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, page)
	return page, nil
}

// InvalidateUser drops every cached page for the user by bumping their
// generation; stale entries age out of the LRU on their own.
func (c *Calendar) InvalidateUser(userID string) {
	c.mu.Lock()
	c.gens[userID]++
	c.mu.Unlock()
}

func (c *Calendar) generation(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID]
}

// key is a deterministic digest of the user, their generation and every
// query parameter that shapes the page.
func (c *Calendar) key(userID string, q service.CalendarQuery) string {
	var start, end, status string
	if q.StartDate != nil {
		start = q.StartDate.Format("2006-01-02")
	}
	if q.EndDate != nil {
		end = q.EndDate.Format("2006-01-02")
	}
	if q.Status != nil {
		status = string(*q.Status)
	}
	raw := fmt.Sprintf("%s|%d|%s|%s|%s|%d|%d", userID, c.generation(userID), start, end, status, q.Page, q.Size)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
