package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

const defaultPageSize = 10

// CalendarService projects a user's flat slot list into a per-timezone,
// date-grouped, paginated calendar view.
type CalendarService struct {
	store store.Store
}

func NewCalendarService(st store.Store) *CalendarService {
	return &CalendarService{store: st}
}

// CalendarQuery carries inclusive calendar-date bounds. Only the
// year/month/day of StartDate and EndDate matter; they are anchored to
// the user's timezone during projection.
type CalendarQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *model.SlotStatus
	Page      int
	Size      int
}

type SlotSummary struct {
	ID        string           `json:"id"`
	StartTime string           `json:"startTime"` // local HH:mm:ss
	EndTime   string           `json:"endTime"`
	Status    model.SlotStatus `json:"status"`
}

type DateSlots struct {
	Date  string        `json:"date"` // local calendar date, YYYY-MM-DD
	Slots []SlotSummary `json:"slots"`
}

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PageInfo struct {
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	HasNext       bool `json:"hasNext"`
	HasPrevious   bool `json:"hasPrevious"`
}

type CalendarPage struct {
	User      UserInfo    `json:"user"`
	TimeSlots []DateSlots `json:"timeSlots"`
	PageInfo  PageInfo    `json:"pageInfo"`
}

// Project groups the user's slots by the local calendar date of their
// start instant and paginates over date groups, never over rows: a page
// boundary must not split one date's slots across two pages.
func (s *CalendarService) Project(ctx context.Context, userID string, q CalendarQuery) (*CalendarPage, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w with id %s", ErrUserNotFound, userID)
		}
		return nil, err
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", user.Timezone, err)
	}

	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = defaultPageSize
	}

	filter := store.SlotFilter{Status: q.Status}
	if q.StartDate != nil && q.EndDate != nil {
		from := startOfDay(*q.StartDate, loc)
		// end date is inclusive of the whole day
		to := startOfDay(q.EndDate.AddDate(0, 0, 1), loc)
		filter.From, filter.To = &from, &to
	}

	slots, err := s.store.SlotsForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	// slots arrive ordered by start, so each group keeps that order
	grouped := make(map[string][]SlotSummary)
	for _, slot := range slots {
		localStart := slot.StartTime.In(loc)
		key := localStart.Format("2006-01-02")
		grouped[key] = append(grouped[key], SlotSummary{
			ID:        slot.ID,
			StartTime: localStart.Format("15:04:05"),
			EndTime:   slot.EndTime.In(loc).Format("15:04:05"),
			Status:    slot.Status,
		})
	}

	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	total := len(dates)
	totalPages := (total + q.Size - 1) / q.Size
	start := q.Page * q.Size
	end := min(start+q.Size, total)

	page := []DateSlots{}
	if start < total {
		for _, d := range dates[start:end] {
			page = append(page, DateSlots{Date: d, Slots: grouped[d]})
		}
	}

	return &CalendarPage{
		User:      UserInfo{Name: user.Name, Email: user.Email},
		TimeSlots: page,
		PageInfo: PageInfo{
			Page:          q.Page,
			Size:          q.Size,
			TotalPages:    totalPages,
			TotalElements: total,
			HasNext:       q.Page < totalPages-1,
			HasPrevious:   q.Page > 0,
		},
	}, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
