package photo

import "time"

type Photo struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	UserID    string    `json:"userId"`
	ReviewID  string    `json:"reviewId,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	Uploader  *Uploader `json:"user,omitempty"`
}

type Uploader struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type CreateRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url,max=2048"`
	Caption  string `json:"caption" validate:"max=500"`
	ReviewID string `json:"reviewId"`
}
