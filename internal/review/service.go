// Package review stores trip reviews and their helpful votes.
package review

import (
	"context"
	"errors"
	"strings"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLimit caps the public review feed.
const DefaultLimit = 50

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

// List returns the newest reviews with their author and, when the review
// is tied to a trip, the trip summary.
func (s *Service) List(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.user_id, COALESCE(r.trip_id,''), r.rating, r.title, r.content, r.activity_type, r.helpful, r.created_at,
			u.first_name, u.last_name, u.profile_image_url,
			COALESCE(t.title,''), COALESCE(t.location,''), COALESCE(t.image_url,'')
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN trips t ON t.id = r.trip_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		var a Author
		var t catalog.TripSummary
		if err := rows.Scan(&r.ID, &r.UserID, &r.TripID, &r.Rating, &r.Title, &r.Content, &r.ActivityType, &r.Helpful, &r.CreatedAt,
			&a.FirstName, &a.LastName, &a.ProfileImageURL,
			&t.Title, &t.Location, &t.ImageURL); err != nil {
			return nil, err
		}
		a.ID = r.UserID
		r.Author = &a
		if r.TripID != "" {
			t.ID = r.TripID
			r.Trip = &t
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Review, error) {
	req.TripID = strings.TrimSpace(req.TripID)
	req.Title = sanitize.Text(req.Title)
	req.Content = sanitize.Text(req.Content)
	req.ActivityType = sanitize.Text(req.ActivityType)
	if err := apperr.ValidateStruct(req); err != nil {
		return Review{}, err
	}

	r := Review{
		ID:           uuid.NewString(),
		UserID:       userID,
		TripID:       req.TripID,
		Rating:       req.Rating,
		Title:        req.Title,
		Content:      req.Content,
		ActivityType: req.ActivityType,
	}
	if r.TripID != "" {
		trip, err := s.trips.Trip(ctx, r.TripID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return Review{}, apperr.Validation("invalid data", map[string]string{"tripId": "trip does not exist"})
			}
			return Review{}, err
		}
		r.Trip = &catalog.TripSummary{ID: trip.ID, Title: trip.Title, Location: trip.Location, ImageURL: trip.ImageURL}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO reviews (id, user_id, trip_id, rating, title, content, activity_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING helpful, created_at
	`, r.ID, r.UserID, nullable(r.TripID), r.Rating, r.Title, r.Content, r.ActivityType)
	if err := row.Scan(&r.Helpful, &r.CreatedAt); err != nil {
		return Review{}, err
	}
	s.log.Info("review created", zap.String("review_id", r.ID), zap.String("user_id", userID), zap.Int("rating", r.Rating))
	return r, nil
}

// MarkHelpful increments the helpful counter and returns the new value.
func (s *Service) MarkHelpful(ctx context.Context, id string) (int, error) {
	var helpful int
	err := s.db.QueryRow(ctx, `UPDATE reviews SET helpful = helpful + 1 WHERE id=$1 RETURNING helpful`, id).Scan(&helpful)
	if db.IsNoRows(err) {
		return 0, apperr.NotFound("review not found")
	}
	return helpful, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
