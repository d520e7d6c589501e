// Package photo keeps the per-trip photo gallery. Images are stored
// elsewhere; rows hold their URL.
package photo

import (
	"context"
	"strings"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripLookup interface {
	Trip(ctx context.Context, id string) (catalog.Trip, error)
}

type Service struct {
	db    db.Querier
	trips TripLookup
	log   *zap.Logger
}

func NewService(q db.Querier, trips TripLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: q, trips: trips, log: log}
}

// List returns the trip's photos, newest first, with their uploader.
func (s *Service) List(ctx context.Context, tripID string) ([]Photo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.trip_id, p.user_id, COALESCE(p.review_id,''), p.image_url, p.caption, p.created_at,
			u.first_name, u.last_name, u.profile_image_url
		FROM trip_photos p
		JOIN users u ON u.id = p.user_id
		WHERE p.trip_id=$1
		ORDER BY p.created_at DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		var p Photo
		var u Uploader
		if err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.ReviewID, &p.ImageURL, &p.Caption, &p.CreatedAt,
			&u.FirstName, &u.LastName, &u.ProfileImageURL); err != nil {
			return nil, err
		}
		u.ID = p.UserID
		p.Uploader = &u
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// Create adds a photo to tripID. A referenced review must exist.
func (s *Service) Create(ctx context.Context, userID, tripID string, req CreateRequest) (Photo, error) {
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.Caption = sanitize.Text(req.Caption)
	req.ReviewID = strings.TrimSpace(req.ReviewID)
	if err := apperr.ValidateStruct(req); err != nil {
		return Photo{}, err
	}
	if _, err := s.trips.Trip(ctx, tripID); err != nil {
		return Photo{}, err
	}
	if req.ReviewID != "" {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE id=$1)`, req.ReviewID).Scan(&exists); err != nil {
			return Photo{}, err
		}
		if !exists {
			return Photo{}, apperr.Validation("invalid data", map[string]string{"reviewId": "review does not exist"})
		}
	}

	p := Photo{
		ID:       uuid.NewString(),
		TripID:   tripID,
		UserID:   userID,
		ReviewID: req.ReviewID,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_photos (id, trip_id, user_id, review_id, image_url, caption)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, p.ID, p.TripID, p.UserID, nullable(p.ReviewID), p.ImageURL, p.Caption)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// Delete removes a photo owned by userID. Photos of other users read as
// missing.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trip_photos WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("photo not found")
	}
	s.log.Info("photo deleted", zap.String("photo_id", id), zap.String("user_id", userID))
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
