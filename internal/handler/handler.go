package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-scheduler-api/internal/middleware"
	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/service"
)

// Projector is whatever serves calendar pages: the projector itself or
// the cache decorator in front of it.
type Projector interface {
	Project(ctx context.Context, userID string, q service.CalendarQuery) (*service.CalendarPage, error)
}

type Handler struct {
	users    *service.UserService
	admin    *service.AdminService
	booking  *service.BookingService
	calendar Projector
}

func New(users *service.UserService, admin *service.AdminService, booking *service.BookingService, calendar Projector) *Handler {
	return &Handler{users: users, admin: admin, booking: booking, calendar: calendar}
}

// Routes registers the full API surface.
func (h *Handler) Routes(r *gin.Engine, secret string, rl *middleware.RateLimiter) {
	api := r.Group("/api")

	limited := middleware.RateLimit(rl)
	api.POST("/users", limited, h.CreateUser)
	api.POST("/auth/login", limited, h.Login)
	api.POST("/auth/refresh", limited, h.Refresh)
	api.POST("/auth/logout", middleware.Auth(secret), h.Logout)

	api.GET("/time-slots/user/:userId", h.GetUserTimeSlots)
	api.POST("/time-slots/:timeSlotId/meetings", h.CreateMeeting)

	admin := api.Group("/admin/time-slots", middleware.Auth(secret))
	admin.POST("", h.CreateTimeSlots)
	admin.GET("/:timeSlotId", h.GetTimeSlot)
	admin.PUT("/:timeSlotId", h.UpdateTimeSlot)
	admin.DELETE("/:timeSlotId", h.DeleteTimeSlot)
}

type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// fail translates service errors into responses. Expected conditions keep
// their message; anything else becomes an opaque 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrSlotNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidRange), errors.Is(err, service.ErrInvalidTimezone), errors.Is(err, service.ErrSlotBooked):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrOverlap), errors.Is(err, service.ErrNotAvailable):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrDuplicateEmail):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	default:
		log.Printf("internal: %v", err)
	}

	c.JSON(status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Error:     http.StatusText(http.StatusBadRequest),
		Message:   msg,
	})
}

type timeSlotResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	StartTime time.Time        `json:"startTime"`
	EndTime   time.Time        `json:"endTime"`
	Status    model.SlotStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func toSlotResponse(ts *model.TimeSlot) timeSlotResponse {
	return timeSlotResponse{
		ID:        ts.ID,
		UserID:    ts.UserID,
		StartTime: ts.StartTime,
		EndTime:   ts.EndTime,
		Status:    ts.Status,
		CreatedAt: ts.CreatedAt,
		UpdatedAt: ts.UpdatedAt,
	}
}
