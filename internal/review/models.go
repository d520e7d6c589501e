package review

import (
	"time"

	"github.com/SNMDESERT/peak-finder/internal/catalog"
)

type Review struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	TripID       string               `json:"tripId,omitempty"`
	Rating       int                  `json:"rating"`
	Title        string               `json:"title"`
	Content      string               `json:"content"`
	ActivityType string               `json:"activityType"`
	Helpful      int                  `json:"helpful"`
	CreatedAt    time.Time            `json:"createdAt"`
	Author       *Author              `json:"user,omitempty"`
	Trip         *catalog.TripSummary `json:"trip,omitempty"`
}

type Author struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type CreateRequest struct {
	TripID       string `json:"tripId"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Title        string `json:"title" validate:"max=200"`
	Content      string `json:"content" validate:"max=5000"`
	ActivityType string `json:"activityType" validate:"max=50"`
}
