// Package invitation implements shareable trip invitations: a random
// code valid for seven days that another user can accept once.
package invitation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CodeBytes random bytes give a 16 character hex code.
	CodeBytes = 8
	// TTL is how long an invitation can be accepted.
	TTL = 7 * 24 * time.Hour

	maxCodeAttempts = 5
)

const invitationColumns = `i.id, i.trip_id, i.inviter_id, i.invite_code, COALESCE(i.invitee_email,''), i.status, i.expires_at, COALESCE(i.accepted_by,''), i.accepted_at, i.created_at`

var randRead = rand.Read

// GenerateCode returns a new opaque invite code.
func GenerateCode() (string, error) {
	b := make([]byte, CodeBytes)
	if _, err := randRead(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type TripLookup interface {
	Trip(ctx context.Context, id string) (catalog.Trip, error)
}

type Service struct {
	db      db.Querier
	trips   TripLookup
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewService(q db.Querier, trips TripLookup, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: q, trips: trips, metrics: m, log: log, now: time.Now}
}

// Create issues a pending invitation to tripID expiring TTL from now. A
// code collision is retried with a fresh code.
func (s *Service) Create(ctx context.Context, inviterID string, req CreateRequest) (Invitation, error) {
	req.TripID = strings.TrimSpace(req.TripID)
	req.InviteeEmail = strings.ToLower(strings.TrimSpace(req.InviteeEmail))
	if err := apperr.ValidateStruct(req); err != nil {
		return Invitation{}, err
	}
	trip, err := s.trips.Trip(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Invitation{}, apperr.Validation("invalid data", map[string]string{"tripId": "trip does not exist"})
		}
		return Invitation{}, err
	}

	now := s.now().UTC()
	inv := Invitation{
		ID:           uuid.NewString(),
		TripID:       trip.ID,
		InviterID:    inviterID,
		InviteeEmail: req.InviteeEmail,
		Status:       StatusPending,
		ExpiresAt:    now.Add(TTL),
		Trip:         &catalog.TripSummary{ID: trip.ID, Title: trip.Title, Location: trip.Location, ImageURL: trip.ImageURL},
	}

	for attempt := 1; ; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return Invitation{}, err
		}
		inv.InviteCode = code

		row := s.db.QueryRow(ctx, `
			INSERT INTO trip_invitations (id, trip_id, inviter_id, invite_code, invitee_email, status, expires_at, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING created_at
		`, inv.ID, inv.TripID, inv.InviterID, inv.InviteCode, nullable(inv.InviteeEmail), string(inv.Status), inv.ExpiresAt, now)
		err = row.Scan(&inv.CreatedAt)
		if err == nil {
			break
		}
		if !db.IsUniqueViolation(err) || attempt >= maxCodeAttempts {
			return Invitation{}, err
		}
		s.log.Warn("invite code collision, regenerating", zap.Int("attempt", attempt))
	}

	s.metrics.Invitation(metrics.InvitationCreated)
	return inv, nil
}

// Fetch returns the invitation with its trip and inviter. An invitation
// past its expiry is returned together with an Expired error.
func (s *Service) Fetch(ctx context.Context, code string) (Invitation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+invitationColumns+`,
			t.id, t.title, t.location, t.image_url,
			u.id, u.first_name, u.last_name, u.profile_image_url
		FROM trip_invitations i
		JOIN trips t ON t.id = i.trip_id
		JOIN users u ON u.id = i.inviter_id
		WHERE i.invite_code=$1
	`, code)

	var inv Invitation
	var trip catalog.TripSummary
	var inviter Inviter
	dest := append(invitationDest(&inv), &trip.ID, &trip.Title, &trip.Location, &trip.ImageURL,
		&inviter.ID, &inviter.FirstName, &inviter.LastName, &inviter.ProfileImageURL)
	if err := row.Scan(dest...); err != nil {
		if db.IsNoRows(err) {
			return Invitation{}, apperr.NotFound("invitation not found")
		}
		return Invitation{}, err
	}
	inv.Trip = &trip
	inv.Inviter = &inviter

	if inv.Expired(s.now()) {
		return inv.withDerivedStatus(s.now()), apperr.Expired("invitation has expired")
	}
	return inv, nil
}

// Accept moves a pending, unexpired invitation to accepted and records
// who accepted it. The conditional update makes the first of several
// concurrent accepts win; the others see AlreadyAccepted.
func (s *Service) Accept(ctx context.Context, code, accepterID string) (Invitation, error) {
	now := s.now().UTC()
	row := s.db.QueryRow(ctx, `
		UPDATE trip_invitations i
		SET status='accepted', accepted_by=$2, accepted_at=$3
		WHERE i.invite_code=$1 AND i.status='pending' AND i.expires_at > $3
		RETURNING `+invitationColumns, code, accepterID, now)

	var inv Invitation
	err := row.Scan(invitationDest(&inv)...)
	if err == nil {
		s.metrics.Invitation(metrics.InvitationAccepted)
		s.log.Info("invitation accepted", zap.String("invitation_id", inv.ID), zap.String("user_id", accepterID))
		return inv, nil
	}
	if !db.IsNoRows(err) {
		return Invitation{}, err
	}
	return Invitation{}, s.acceptError(ctx, code, now)
}

func (s *Service) acceptError(ctx context.Context, code string, now time.Time) error {
	var status Status
	var expiresAt time.Time
	err := s.db.QueryRow(ctx, `SELECT status, expires_at FROM trip_invitations WHERE invite_code=$1`, code).Scan(&status, &expiresAt)
	if db.IsNoRows(err) {
		return apperr.NotFound("invitation not found")
	}
	if err != nil {
		return err
	}
	if status == StatusAccepted {
		s.metrics.Invitation(metrics.InvitationRejected)
		return apperr.AlreadyAccepted("invitation has already been accepted")
	}
	if !now.Before(expiresAt) {
		s.metrics.Invitation(metrics.InvitationExpired)
		return apperr.Expired("invitation has expired")
	}
	// pending and unexpired, yet the update matched nothing
	return fmt.Errorf("invitation %s in unexpected state %q", code, status)
}

// ListByInviter returns the invitations userID created, newest first,
// with expiry applied to their status.
func (s *Service) ListByInviter(ctx context.Context, userID string) ([]Invitation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+invitationColumns+`
		FROM trip_invitations i
		WHERE i.inviter_id=$1
		ORDER BY i.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := s.now()
	list := []Invitation{}
	for rows.Next() {
		var inv Invitation
		if err := rows.Scan(invitationDest(&inv)...); err != nil {
			return nil, err
		}
		list = append(list, inv.withDerivedStatus(now))
	}
	return list, rows.Err()
}

func invitationDest(i *Invitation) []any {
	return []any{&i.ID, &i.TripID, &i.InviterID, &i.InviteCode, &i.InviteeEmail, &i.Status, &i.ExpiresAt, &i.AcceptedBy, &i.AcceptedAt, &i.CreatedAt}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
