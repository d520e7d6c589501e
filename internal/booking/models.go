package booking

import (
	"time"

	"github.com/SNMDESERT/peak-finder/internal/achievement"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/progression"
)

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// UserTrip is a booking. It moves booked → completed or booked →
// cancelled and never leaves either terminal state.
type UserTrip struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	TripID           string        `json:"tripId"`
	Status           Status        `json:"status"`
	BookingDate      *time.Time    `json:"bookingDate"`
	GroupSize        int           `json:"groupSize"`
	ParticipantNames string        `json:"participantNames"`
	SpecialRequests  string        `json:"specialRequests"`
	ContactPhone     string        `json:"contactPhone"`
	CompletedAt      *time.Time    `json:"completedAt"`
	CreatedAt        time.Time     `json:"createdAt"`
	Trip             *catalog.Trip `json:"trip,omitempty"`
}

type BookRequest struct {
	TripID           string     `json:"tripId" validate:"required"`
	BookingDate      *time.Time `json:"bookingDate"`
	GroupSize        int        `json:"groupSize" validate:"omitempty,min=1,max=50"`
	ParticipantNames string     `json:"participantNames" validate:"max=1000"`
	SpecialRequests  string     `json:"specialRequests" validate:"max=2000"`
	ContactPhone     string     `json:"contactPhone" validate:"max=32"`
}

// Progress describes what a completion changed for the user.
type Progress struct {
	Reward       progression.Reward        `json:"reward"`
	Before       progression.Counters      `json:"before"`
	After        progression.Counters      `json:"after"`
	LeveledUp    bool                      `json:"leveledUp"`
	Achievements []achievement.Achievement `json:"achievements"`
}

// Completion is the completed booking together with its effect.
type Completion struct {
	UserTrip
	Progress Progress `json:"progress"`
}
