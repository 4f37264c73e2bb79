package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-scheduler-api/internal/middleware"
	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/service"
)

type slotData struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Status    string    `json:"status"`
}

type createTimeSlotsRequest struct {
	Slots []slotData `json:"slots" binding:"required,min=1,dive"`
}

type bulkCreateResponse struct {
	TimeSlots []timeSlotResponse `json:"timeSlots"`
	Count     int                `json:"count"`
}

// POST /api/admin/time-slots
func (h *Handler) CreateTimeSlots(c *gin.Context) {
	var req createTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	inputs := make([]service.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		in := service.SlotInput{Start: s.StartTime, End: s.EndTime}
		if s.Status != "" {
			status, err := model.ParseSlotStatus(s.Status)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			in.Status = &status
		}
		inputs = append(inputs, in)
	}

	created, err := h.admin.CreateSlots(c.Request.Context(), middleware.UserID(c), inputs)
	if err != nil {
		fail(c, err)
		return
	}

	resp := bulkCreateResponse{Count: len(created)}
	for i := range created {
		resp.TimeSlots = append(resp.TimeSlots, toSlotResponse(&created[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/admin/time-slots/:timeSlotId
func (h *Handler) GetTimeSlot(c *gin.Context) {
	slot, err := h.admin.GetSlot(c.Request.Context(), middleware.UserID(c), c.Param("timeSlotId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

type updateTimeSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Status    string    `json:"status"`
}

// PUT /api/admin/time-slots/:timeSlotId
func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	var req updateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var status *model.SlotStatus
	if req.Status != "" {
		st, err := model.ParseSlotStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		status = &st
	}

	slot, err := h.admin.UpdateSlot(c.Request.Context(), middleware.UserID(c), c.Param("timeSlotId"), req.StartTime, req.EndTime, status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

// DELETE /api/admin/time-slots/:timeSlotId
func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	if err := h.admin.DeleteSlot(c.Request.Context(), middleware.UserID(c), c.Param("timeSlotId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
