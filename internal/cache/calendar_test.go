package cache

import (
	"context"
	"testing"
	"time"

	"meeting-scheduler-api/internal/service"
)

// countingProjector serves a fixed page and counts delegated calls.
type countingProjector struct {
	calls int
	page  *service.CalendarPage
}

func (p *countingProjector) Project(ctx context.Context, userID string, q service.CalendarQuery) (*service.CalendarPage, error) {
	p.calls++
	return p.page, nil
}

func TestCalendarCacheHit(t *testing.T) {
	inner := &countingProjector{page: &service.CalendarPage{}}
	c := NewCalendar(inner, 16, time.Minute)

	q := service.CalendarQuery{Page: 0, Size: 10}
	for i := 0; i < 3; i++ {
		if _, err := c.Project(context.Background(), "u1", q); err != nil {
			t.Fatalf("project: %v", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 delegated call, got %d", inner.calls)
	}
}

func TestCalendarCacheKeyedByQuery(t *testing.T) {
	inner := &countingProjector{page: &service.CalendarPage{}}
	c := NewCalendar(inner, 16, time.Minute)

	c.Project(context.Background(), "u1", service.CalendarQuery{Page: 0, Size: 10})
	c.Project(context.Background(), "u1", service.CalendarQuery{Page: 1, Size: 10})
	c.Project(context.Background(), "u2", service.CalendarQuery{Page: 0, Size: 10})

	if inner.calls != 3 {
		t.Errorf("expected 3 delegated calls for distinct keys, got %d", inner.calls)
	}
}

func TestCalendarCacheInvalidation(t *testing.T) {
	inner := &countingProjector{page: &service.CalendarPage{}}
	c := NewCalendar(inner, 16, time.Minute)

	q := service.CalendarQuery{Page: 0, Size: 10}
	c.Project(context.Background(), "u1", q)
	c.Project(context.Background(), "u2", q)

	c.InvalidateUser("u1")

	c.Project(context.Background(), "u1", q) // miss after invalidation
	c.Project(context.Background(), "u2", q) // still cached

	if inner.calls != 3 {
		t.Errorf("expected 3 delegated calls, got %d", inner.calls)
	}
}
