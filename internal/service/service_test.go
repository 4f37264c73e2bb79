package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/service"
	"meeting-scheduler-api/internal/store/memstore"
)

const testSecret = "test-secret"

func newUserService(st *memstore.Store) *service.UserService {
	return service.NewUserService(st, testSecret, 15*time.Minute, 24*time.Hour)
}

func createUser(t *testing.T, st *memstore.Store, timezone string) *model.User {
	t.Helper()
	svc := newUserService(st)
	u, err := svc.Signup(context.Background(), service.SignupRequest{
		Name:     "Test User",
		Email:    fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8]),
		Password: "testpass123",
		Timezone: timezone,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return u
}

func createSlot(t *testing.T, st *memstore.Store, userID string, start, end time.Time, status model.SlotStatus) *model.TimeSlot {
	t.Helper()
	slot := &model.TimeSlot{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	if err := st.CreateSlot(context.Background(), slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	return slot
}

func instant(day, hour, min int) time.Time {
	return time.Date(2026, 2, day, hour, min, 0, 0, time.UTC)
}
