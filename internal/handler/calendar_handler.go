package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/service"
)

// GET /api/time-slots/user/:userId
// Query: startDate, endDate (YYYY-MM-DD, both or neither), status, page, size.
func (h *Handler) GetUserTimeSlots(c *gin.Context) {
	userID := c.Param("userId")

	q := service.CalendarQuery{Page: 0, Size: 10}

	if v := c.Query("startDate"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(c, "startDate must be YYYY-MM-DD")
			return
		}
		q.StartDate = &d
	}
	if v := c.Query("endDate"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(c, "endDate must be YYYY-MM-DD")
			return
		}
		q.EndDate = &d
	}
	if (q.StartDate == nil) != (q.EndDate == nil) {
		badRequest(c, "startDate and endDate must be provided together")
		return
	}
	if v := c.Query("status"); v != "" {
		status, err := model.ParseSlotStatus(v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		q.Status = &status
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "page must be a non-negative integer")
			return
		}
		q.Page = n
	}
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, "size must be a positive integer")
			return
		}
		q.Size = n
	}

	page, err := h.calendar.Project(c.Request.Context(), userID, q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createMeetingRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Participants []struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	} `json:"participants" binding:"required,min=1,dive"`
}

// POST /api/time-slots/:timeSlotId/meetings
func (h *Handler) CreateMeeting(c *gin.Context) {
	var req createMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	booking := service.BookingRequest{Title: req.Title, Description: req.Description}
	for _, p := range req.Participants {
		booking.Participants = append(booking.Participants, service.ParticipantInput{Name: p.Name, Email: p.Email})
	}

	result, err := h.booking.Book(c.Request.Context(), c.Param("timeSlotId"), booking)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
