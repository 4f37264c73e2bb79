package postgres

import (
	"context"
	"database/sql"

	"meeting-scheduler-api/internal/model"
)

func (s *Store) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO meetings (id, time_slot_id, organizer_id, title, description)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		m.ID, m.TimeSlotID, m.OrganizerID, m.Title, m.Description,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapErr(err)
}

func (s *Store) AddParticipant(ctx context.Context, p *model.MeetingParticipant) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO meeting_participants
		   (id, meeting_id, participant_type, status, user_id, external_name, external_email)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		p.ID, p.MeetingID, p.Type, p.Status,
		nullable(p.UserID), nullable(p.ExternalName), nullable(p.ExternalEmail),
	).Scan(&p.CreatedAt)
	return mapErr(err)
}

func (s *Store) ParticipantsByMeeting(ctx context.Context, meetingID string) ([]model.MeetingParticipant, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, meeting_id, participant_type, status, user_id, external_name, external_email, created_at
		 FROM meeting_participants WHERE meeting_id = $1 ORDER BY created_at`, meetingID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []model.MeetingParticipant
	for rows.Next() {
		var p model.MeetingParticipant
		var userID, extName, extEmail sql.NullString
		if err := rows.Scan(&p.ID, &p.MeetingID, &p.Type, &p.Status, &userID, &extName, &extEmail, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.UserID = userID.String
		p.ExternalName = extName.String
		p.ExternalEmail = extEmail.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
