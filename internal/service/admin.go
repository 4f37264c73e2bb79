package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

// AdminService mutates a user's slot set. Every operation takes the
// authenticated actor id explicitly; a slot owned by someone else behaves
// as if it did not exist.
type AdminService struct {
	store  store.Store
	events EventPublisher
	cache  CacheInvalidator
}

func NewAdminService(st store.Store, ev EventPublisher, inv CacheInvalidator) *AdminService {
	if ev == nil {
		ev = noopEvents{}
	}
	if inv == nil {
		inv = noopCache{}
	}
	return &AdminService{store: st, events: ev, cache: inv}
}

type SlotInput struct {
	Start  time.Time
	End    time.Time
	Status *model.SlotStatus // defaults to AVAILABLE
}

// CreateSlots validates and persists a batch in request order as one
// transaction: a failure on any slot persists nothing. Each slot is
// checked against the user's existing slots and against earlier slots
// already accepted in the same batch.
func (s *AdminService) CreateSlots(ctx context.Context, actorID string, inputs []SlotInput) ([]model.TimeSlot, error) {
	user, err := s.store.UserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w with id %s", ErrUserNotFound, actorID)
		}
		return nil, err
	}

	var created []model.TimeSlot
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		for _, in := range inputs {
			if !in.End.After(in.Start) {
				return invalidRangeErr(in.Start)
			}
			dup, err := tx.HasOverlap(ctx, user.ID, in.Start, in.End, "")
			if err != nil {
				return err
			}
			if dup {
				return overlapErr(user.Email, in.Start, in.End)
			}

			status := model.SlotAvailable
			if in.Status != nil {
				status = *in.Status
			}
			slot := model.TimeSlot{
				ID:        uuid.New().String(),
				UserID:    user.ID,
				StartTime: in.Start,
				EndTime:   in.End,
				Status:    status,
			}
			if err := tx.CreateSlot(ctx, &slot); err != nil {
				if errors.Is(err, store.ErrOverlap) {
					// exclusion constraint caught a concurrent writer
					return overlapErr(user.Email, in.Start, in.End)
				}
				return err
			}
			created = append(created, slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(user.ID)
	for _, slot := range created {
		_ = s.events.Publish(ctx, "slot.created", slotEvent(&slot))
	}
	return created, nil
}

func (s *AdminService) GetSlot(ctx context.Context, actorID, slotID string) (*model.TimeSlot, error) {
	return s.ownedSlot(ctx, s.store, actorID, slotID)
}

func (s *AdminService) UpdateSlot(ctx context.Context, actorID, slotID string, start, end time.Time, status *model.SlotStatus) (*model.TimeSlot, error) {
	user, err := s.store.UserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w with id %s", ErrUserNotFound, actorID)
		}
		return nil, err
	}

	var updated *model.TimeSlot
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		slot, err := s.ownedSlot(ctx, tx, actorID, slotID)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return invalidRangeErr(start)
		}
		dup, err := tx.HasOverlap(ctx, user.ID, start, end, slot.ID)
		if err != nil {
			return err
		}
		if dup {
			return overlapErr(user.Email, start, end)
		}

		slot.StartTime = start
		slot.EndTime = end
		if status != nil {
			slot.Status = *status
		}
		if err := tx.UpdateSlot(ctx, slot); err != nil {
			if errors.Is(err, store.ErrOverlap) {
				return overlapErr(user.Email, start, end)
			}
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(user.ID)
	_ = s.events.Publish(ctx, "slot.updated", slotEvent(updated))
	return updated, nil
}

// DeleteSlot removes a slot unless it is BOOKED; a booked slot must go
// through a cancellation flow, which this core does not have.
func (s *AdminService) DeleteSlot(ctx context.Context, actorID, slotID string) error {
	var deleted *model.TimeSlot
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		slot, err := s.ownedSlot(ctx, tx, actorID, slotID)
		if err != nil {
			return err
		}
		if slot.Status == model.SlotBooked {
			return fmt.Errorf("%w: %s", ErrSlotBooked, slot.ID)
		}
		if err := tx.DeleteSlot(ctx, slot.ID); err != nil {
			return err
		}
		deleted = slot
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateUser(deleted.UserID)
	_ = s.events.Publish(ctx, "slot.deleted", slotEvent(deleted))
	return nil
}

// ownedSlot loads a slot and hides its existence from non-owners.
func (s *AdminService) ownedSlot(ctx context.Context, st store.Store, actorID, slotID string) (*model.TimeSlot, error) {
	slot, err := st.SlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w with id %s", ErrSlotNotFound, slotID)
		}
		return nil, err
	}
	if slot.UserID != actorID {
		return nil, fmt.Errorf("%w with id %s", ErrSlotNotFound, slotID)
	}
	return slot, nil
}

func slotEvent(slot *model.TimeSlot) map[string]any {
	return map[string]any{
		"slot_id": slot.ID,
		"user_id": slot.UserID,
		"start":   slot.StartTime.Unix(),
		"end":     slot.EndTime.Unix(),
		"status":  slot.Status,
	}
}
