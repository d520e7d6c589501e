package invitation

import (
	"time"

	"github.com/SNMDESERT/peak-finder/internal/catalog"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	// StatusExpired is never stored. A pending invitation reads as
	// expired once its expiry has passed.
	StatusExpired Status = "expired"
)

type Invitation struct {
	ID           string               `json:"id"`
	TripID       string               `json:"tripId"`
	InviterID    string               `json:"inviterId"`
	InviteCode   string               `json:"inviteCode"`
	InviteeEmail string               `json:"inviteeEmail,omitempty"`
	Status       Status               `json:"status"`
	ExpiresAt    time.Time            `json:"expiresAt"`
	AcceptedBy   string               `json:"acceptedBy,omitempty"`
	AcceptedAt   *time.Time           `json:"acceptedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	Trip         *catalog.TripSummary `json:"trip,omitempty"`
	Inviter      *Inviter             `json:"inviter,omitempty"`
}

// Inviter is the public part of the inviting user.
type Inviter struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Expired reports whether the invitation is still pending past its
// expiry at now.
func (i Invitation) Expired(now time.Time) bool {
	return i.Status == StatusPending && now.After(i.ExpiresAt)
}

// withDerivedStatus returns i with Status reading expired when it is.
func (i Invitation) withDerivedStatus(now time.Time) Invitation {
	if i.Expired(now) {
		i.Status = StatusExpired
	}
	return i
}

type CreateRequest struct {
	TripID       string `json:"tripId" validate:"required"`
	InviteeEmail string `json:"inviteeEmail" validate:"omitempty,email,max=255"`
}
