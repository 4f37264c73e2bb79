package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

// BookingService converts an AVAILABLE slot into a BOOKED one by
// attaching a meeting. The whole transition is one transactional unit:
// no meeting without a booked slot, no booked slot without a meeting.
type BookingService struct {
	store  store.Store
	events EventPublisher
	cache  CacheInvalidator
}

func NewBookingService(st store.Store, ev EventPublisher, inv CacheInvalidator) *BookingService {
	if ev == nil {
		ev = noopEvents{}
	}
	if inv == nil {
		inv = noopCache{}
	}
	return &BookingService{store: st, events: ev, cache: inv}
}

type ParticipantInput struct {
	Name  string
	Email string
}

type BookingRequest struct {
	Title        string
	Description  string
	Participants []ParticipantInput
}

type ParticipantInfo struct {
	ID     string                  `json:"participantId"`
	Name   string                  `json:"name"`
	Email  string                  `json:"email"`
	Type   model.ParticipantType   `json:"type"`
	Status model.ParticipantStatus `json:"status"`
}

type MeetingResult struct {
	MeetingID      string            `json:"meetingId"`
	TimeSlotID     string            `json:"timeSlotId"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	OrganizerID    string            `json:"organizerId"`
	OrganizerEmail string            `json:"organizerEmail"`
	StartTime      time.Time         `json:"startTime"`
	EndTime        time.Time         `json:"endTime"`
	Participants   []ParticipantInfo `json:"participants"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Book locks the slot row, requires AVAILABLE, creates the meeting with
// its participants and transitions the slot to BOOKED, all in one
// transaction. BUSY and BOOKED slots are terminal for booking.
func (s *BookingService) Book(ctx context.Context, slotID string, req BookingRequest) (*MeetingResult, error) {
	var result *MeetingResult
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		slot, err := tx.SlotByIDForUpdate(ctx, slotID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w with id %s", ErrSlotNotFound, slotID)
			}
			return err
		}
		if slot.Status != model.SlotAvailable {
			return fmt.Errorf("%w: slot %s is %s", ErrNotAvailable, slot.ID, slot.Status)
		}

		organizer, err := tx.UserByID(ctx, slot.UserID)
		if err != nil {
			return err
		}

		meeting := model.Meeting{
			ID:          uuid.New().String(),
			TimeSlotID:  slot.ID,
			OrganizerID: organizer.ID,
			Title:       req.Title,
			Description: req.Description,
		}
		if err := tx.CreateMeeting(ctx, &meeting); err != nil {
			return err
		}

		// resolution order matches request order
		participants := make([]ParticipantInfo, 0, len(req.Participants))
		for _, in := range req.Participants {
			p, info, err := resolveParticipant(ctx, tx, meeting.ID, in)
			if err != nil {
				return err
			}
			if err := tx.AddParticipant(ctx, p); err != nil {
				return err
			}
			info.ID = p.ID
			participants = append(participants, info)
		}

		slot.Status = model.SlotBooked
		if err := tx.UpdateSlot(ctx, slot); err != nil {
			return err
		}

		result = &MeetingResult{
			MeetingID:      meeting.ID,
			TimeSlotID:     slot.ID,
			Title:          meeting.Title,
			Description:    meeting.Description,
			OrganizerID:    organizer.ID,
			OrganizerEmail: organizer.Email,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Participants:   participants,
			CreatedAt:      meeting.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(result.OrganizerID)
	_ = s.events.Publish(ctx, "meeting.created", map[string]any{
		"meeting_id":   result.MeetingID,
		"slot_id":      result.TimeSlotID,
		"organizer_id": result.OrganizerID,
		"start":        result.StartTime.Unix(),
		"end":          result.EndTime.Unix(),
		"participants": len(result.Participants),
	})
	return result, nil
}

// resolveParticipant decides INTERNAL vs EXTERNAL by looking the email up
// in the user directory, case-insensitively. Everyone starts INVITED.
func resolveParticipant(ctx context.Context, tx store.Store, meetingID string, in ParticipantInput) (*model.MeetingParticipant, ParticipantInfo, error) {
	email := strings.ToLower(in.Email)

	known, err := tx.UserByEmail(ctx, email)
	switch {
	case err == nil:
		p := &model.MeetingParticipant{
			ID:        uuid.New().String(),
			MeetingID: meetingID,
			Type:      model.ParticipantInternal,
			Status:    model.ParticipantInvited,
			UserID:    known.ID,
		}
		return p, ParticipantInfo{
			Name: known.Name, Email: known.Email,
			Type: model.ParticipantInternal, Status: model.ParticipantInvited,
		}, nil
	case errors.Is(err, store.ErrNotFound):
		p := &model.MeetingParticipant{
			ID:            uuid.New().String(),
			MeetingID:     meetingID,
			Type:          model.ParticipantExternal,
			Status:        model.ParticipantInvited,
			ExternalName:  in.Name,
			ExternalEmail: email,
		}
		return p, ParticipantInfo{
			Name: in.Name, Email: email,
			Type: model.ParticipantExternal, Status: model.ParticipantInvited,
		}, nil
	default:
		return nil, ParticipantInfo{}, err
	}
}
