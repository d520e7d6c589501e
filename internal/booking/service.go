package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/SNMDESERT/peak-finder/internal/achievement"
	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/ledger"
	"github.com/SNMDESERT/peak-finder/internal/metrics"
	"github.com/SNMDESERT/peak-finder/internal/progression"
	"github.com/SNMDESERT/peak-finder/internal/sanitize"
	"github.com/SNMDESERT/peak-finder/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userTripColumns = `id, user_id, trip_id, status, booking_date, group_size, participant_names, special_requests, contact_phone, completed_at, created_at`

// Granter awards achievements inside the completion transaction and
// announces them once it commits.
type Granter interface {
	Grant(ctx context.Context, q db.Querier, userID string, stats progression.Stats) ([]achievement.Achievement, error)
	Announce(userID, source string, granted []achievement.Achievement)
}

type TripLookup interface {
	Trip(ctx context.Context, id string) (catalog.Trip, error)
}

type Options struct {
	// GrantOnComplete evaluates achievements in the completion
	// transaction. When false, grants wait for a re-evaluation.
	GrantOnComplete bool
}

type Service struct {
	db           db.Pool
	trips        TripLookup
	achievements Granter
	events       stream.Publisher
	metrics      *metrics.Metrics
	log          *zap.Logger
	opts         Options
}

func NewService(pool db.Pool, trips TripLookup, achievements Granter, events stream.Publisher, m *metrics.Metrics, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:           pool,
		trips:        trips,
		achievements: achievements,
		events:       events,
		metrics:      m,
		log:          log,
		opts:         opts,
	}
}

func (s *Service) Book(ctx context.Context, userID string, req BookRequest) (UserTrip, error) {
	req.TripID = strings.TrimSpace(req.TripID)
	if err := apperr.ValidateStruct(req); err != nil {
		return UserTrip{}, err
	}
	if req.GroupSize == 0 {
		req.GroupSize = 1
	}

	trip, err := s.trips.Trip(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return UserTrip{}, apperr.Validation("invalid data", map[string]string{"tripId": "trip does not exist"})
		}
		return UserTrip{}, err
	}
	if trip.MaxGroupSize != nil && req.GroupSize > *trip.MaxGroupSize {
		return UserTrip{}, apperr.Validation("invalid data", map[string]string{"groupSize": "exceeds the trip's maximum group size"})
	}

	ut := UserTrip{
		ID:               uuid.NewString(),
		UserID:           userID,
		TripID:           trip.ID,
		Status:           StatusBooked,
		BookingDate:      req.BookingDate,
		GroupSize:        req.GroupSize,
		ParticipantNames: sanitize.Text(req.ParticipantNames),
		SpecialRequests:  sanitize.Text(req.SpecialRequests),
		ContactPhone:     sanitize.Text(req.ContactPhone),
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO user_trips (id, user_id, trip_id, status, booking_date, group_size, participant_names, special_requests, contact_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, ut.ID, ut.UserID, ut.TripID, string(ut.Status), ut.BookingDate, ut.GroupSize, ut.ParticipantNames, ut.SpecialRequests, ut.ContactPhone)
	if err := row.Scan(&ut.CreatedAt); err != nil {
		return UserTrip{}, err
	}
	ut.Trip = &trip
	return ut, nil
}

// UserTrips lists the user's bookings newest first, each with its trip.
func (s *Service) UserTrips(ctx context.Context, userID string) ([]UserTrip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ut.id, ut.user_id, ut.trip_id, ut.status, ut.booking_date, ut.group_size, ut.participant_names,
			ut.special_requests, ut.contact_phone, ut.completed_at, ut.created_at, `+catalog.TripColumns("t")+`
		FROM user_trips ut
		JOIN trips t ON t.id = ut.trip_id
		WHERE ut.user_id=$1
		ORDER BY ut.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []UserTrip{}
	for rows.Next() {
		var ut UserTrip
		var trip catalog.Trip
		dest := append(userTripDest(&ut), catalog.TripDest(&trip)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ut.Trip = &trip
		list = append(list, ut)
	}
	return list, rows.Err()
}

// Complete marks a booked trip completed and credits the user, all in one
// transaction: the status flip only succeeds from booked, the ledger holds
// one entry per booking and grants are unique per achievement. Two
// concurrent completions of the same booking therefore credit it once.
func (s *Service) Complete(ctx context.Context, userID, id string) (Completion, error) {
	var out Completion
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE user_trips SET status='completed', completed_at=now()
			WHERE id=$1 AND user_id=$2 AND status='booked'
			RETURNING `+userTripColumns, id, userID)
		ut, err := scanUserTrip(row)
		if db.IsNoRows(err) {
			return s.transitionError(ctx, tx, userID, id, StatusCompleted)
		}
		if err != nil {
			return err
		}

		trip, err := catalog.TripByID(ctx, tx, ut.TripID)
		if err != nil {
			return err
		}
		ut.Trip = &trip

		entries, err := ledger.Entries(ctx, tx, userID)
		if err != nil {
			return err
		}
		before := progression.Fold(entries)
		reward := trip.Reward()

		entry, appended, err := ledger.Append(ctx, tx, progression.LedgerEntry{
			UserID:     userID,
			UserTripID: ut.ID,
			TripID:     trip.ID,
			RegionID:   trip.RegionID,
			Points:     reward.Points,
			Elevation:  reward.Elevation,
		})
		if err != nil {
			return err
		}
		after := before
		if appended {
			after = before.Apply(entry)
		}

		var granted []achievement.Achievement
		if s.opts.GrantOnComplete && s.achievements != nil {
			granted, err = s.achievements.Grant(ctx, tx, userID, after)
			if err != nil {
				return err
			}
		}
		if granted == nil {
			granted = []achievement.Achievement{}
		}

		out = Completion{
			UserTrip: ut,
			Progress: Progress{
				Reward:       reward,
				Before:       before.Counters,
				After:        after.Counters,
				LeveledUp:    after.ClimbingLevel > before.ClimbingLevel,
				Achievements: granted,
			},
		}
		return nil
	})
	if err != nil {
		return Completion{}, err
	}

	s.announce(userID, out)
	return out, nil
}

// Cancel moves a booked trip to cancelled.
func (s *Service) Cancel(ctx context.Context, userID, id string) (UserTrip, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE user_trips SET status='cancelled'
		WHERE id=$1 AND user_id=$2 AND status='booked'
		RETURNING `+userTripColumns, id, userID)
	ut, err := scanUserTrip(row)
	if db.IsNoRows(err) {
		return UserTrip{}, s.transitionError(ctx, s.db, userID, id, StatusCancelled)
	}
	if err != nil {
		return UserTrip{}, err
	}
	return ut, nil
}

// Stats folds the user's ledger.
func (s *Service) Stats(ctx context.Context, userID string) (progression.Stats, error) {
	return ledger.Stats(ctx, s.db, userID)
}

// transitionError explains why moving booking id to target matched no
// row.
func (s *Service) transitionError(ctx context.Context, q db.Querier, userID, id string, target Status) error {
	var current Status
	err := q.QueryRow(ctx, `SELECT status FROM user_trips WHERE id=$1 AND user_id=$2`, id, userID).Scan(&current)
	if db.IsNoRows(err) {
		return apperr.NotFound("booking not found")
	}
	if err != nil {
		return err
	}
	if current == target {
		return apperr.Conflict("booking is already " + string(current))
	}
	return apperr.Conflict("a " + string(current) + " booking cannot be " + string(target))
}

func (s *Service) announce(userID string, c Completion) {
	s.metrics.TripCompleted()
	s.log.Info("trip completed",
		zap.String("user_id", userID),
		zap.String("user_trip_id", c.ID),
		zap.Int("points", c.Progress.Reward.Points),
		zap.Int("level", c.Progress.After.ClimbingLevel))

	if s.events != nil {
		s.events.Publish(userID, stream.Event{Type: stream.EventTripCompleted, Data: c})
		if c.Progress.LeveledUp {
			s.events.Publish(userID, stream.Event{Type: stream.EventLevelUp, Data: c.Progress.After})
		}
	}
	if s.achievements != nil {
		s.achievements.Announce(userID, achievement.SourceCompletion, c.Progress.Achievements)
	}
}

func userTripDest(ut *UserTrip) []any {
	return []any{&ut.ID, &ut.UserID, &ut.TripID, &ut.Status, &ut.BookingDate, &ut.GroupSize, &ut.ParticipantNames,
		&ut.SpecialRequests, &ut.ContactPhone, &ut.CompletedAt, &ut.CreatedAt}
}

func scanUserTrip(row pgx.Row) (UserTrip, error) {
	var ut UserTrip
	err := row.Scan(userTripDest(&ut)...)
	return ut, err
}
