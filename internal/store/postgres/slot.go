package postgres

import (
	"context"
	"strconv"
	"time"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

func (s *Store) CreateSlot(ctx context.Context, ts *model.TimeSlot) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO time_slots (id, user_id, start_time, end_time, status)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		ts.ID, ts.UserID, ts.StartTime, ts.EndTime, ts.Status,
	).Scan(&ts.CreatedAt, &ts.UpdatedAt)
	return mapErr(err)
}

const slotColumns = `id, user_id, start_time, end_time, status, created_at, updated_at`

func (s *Store) SlotByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	return s.slotByID(ctx, id, "")
}

func (s *Store) SlotByIDForUpdate(ctx context.Context, id string) (*model.TimeSlot, error) {
	return s.slotByID(ctx, id, " FOR UPDATE")
}

func (s *Store) slotByID(ctx context.Context, id, suffix string) (*model.TimeSlot, error) {
	ts := &model.TimeSlot{}
	err := s.q.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM time_slots WHERE id = $1`+suffix, id,
	).Scan(&ts.ID, &ts.UserID, &ts.StartTime, &ts.EndTime, &ts.Status, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return ts, nil
}

func (s *Store) UpdateSlot(ctx context.Context, ts *model.TimeSlot) error {
	err := s.q.QueryRow(ctx,
		`UPDATE time_slots
		 SET start_time=$1, end_time=$2, status=$3, updated_at=NOW()
		 WHERE id=$4
		 RETURNING created_at, updated_at`,
		ts.StartTime, ts.EndTime, ts.Status, ts.ID,
	).Scan(&ts.CreatedAt, &ts.UpdatedAt)
	return mapErr(err)
}

func (s *Store) DeleteSlot(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SlotsForUser(ctx context.Context, userID string, f store.SlotFilter) ([]model.TimeSlot, error) {
	q := `SELECT ` + slotColumns + ` FROM time_slots WHERE user_id = $1`
	args := []any{userID}

	if f.From != nil && f.To != nil {
		q += ` AND start_time >= $2 AND start_time < $3`
		args = append(args, *f.From, *f.To)
	}
	if f.Status != nil {
		q += ` AND status = $` + strconv.Itoa(len(args)+1)
		args = append(args, *f.Status)
	}
	q += ` ORDER BY start_time`

	rows, err := s.q.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []model.TimeSlot
	for rows.Next() {
		var ts model.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.UserID, &ts.StartTime, &ts.EndTime, &ts.Status, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (s *Store) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM time_slots
		WHERE user_id = $1
		  AND start_time < $3
		  AND end_time > $2`

	args := []any{userID, start, end}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.q.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, mapErr(err)
}
