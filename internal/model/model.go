package model

import (
	"fmt"
	"time"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBusy      SlotStatus = "BUSY"
	SlotBooked    SlotStatus = "BOOKED"
)

// ParseSlotStatus rejects anything outside the closed set.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case SlotAvailable, SlotBusy, SlotBooked:
		return SlotStatus(s), nil
	}
	return "", fmt.Errorf("unknown slot status %q", s)
}

type ParticipantType string

const (
	ParticipantInternal ParticipantType = "INTERNAL"
	ParticipantExternal ParticipantType = "EXTERNAL"
)

type ParticipantStatus string

const (
	ParticipantInvited  ParticipantStatus = "INVITED"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantDeclined ParticipantStatus = "DECLINED"
)

type User struct {
	ID           string
	Name         string
	Email        string // stored lowercase
	PasswordHash string
	Timezone     string // IANA zone name, validated at signup
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TimeSlot struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Status    SlotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meeting struct {
	ID          string
	TimeSlotID  string
	OrganizerID string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MeetingParticipant holds either a user reference (INTERNAL) or the
// external name+email pair (EXTERNAL), never both.
type MeetingParticipant struct {
	ID            string
	MeetingID     string
	Type          ParticipantType
	Status        ParticipantStatus
	UserID        string
	ExternalName  string
	ExternalEmail string
	CreatedAt     time.Time
}
