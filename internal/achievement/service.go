package achievement

import (
	"context"
	"errors"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/ledger"
	"github.com/SNMDESERT/peak-finder/internal/metrics"
	"github.com/SNMDESERT/peak-finder/internal/progression"
	"github.com/SNMDESERT/peak-finder/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Grant sources, used as the metrics label.
const (
	SourceCompletion = "completion"
	SourceReevaluate = "reevaluate"
)

const achievementColumns = `id, name, description, COALESCE(region_id,''), symbol, required_level, required_trips, points_required, image_url, tier, created_at`

type Service struct {
	db      db.Pool
	log     *zap.Logger
	metrics *metrics.Metrics
	events  stream.Publisher
}

func NewService(pool db.Pool, log *zap.Logger, m *metrics.Metrics, events stream.Publisher) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: pool, log: log, metrics: m, events: events}
}

func (s *Service) List(ctx context.Context) ([]Achievement, error) {
	return listAchievements(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, id string) (Achievement, error) {
	row := s.db.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE id=$1`, id)
	a, err := scanAchievement(row)
	if err != nil {
		if db.IsNoRows(err) {
			return Achievement{}, apperr.NotFound("achievement not found")
		}
		return Achievement{}, err
	}
	return a, nil
}

// UserAchievements lists what userID has earned, newest first, with the
// definitions attached.
func (s *Service) UserAchievements(ctx context.Context, userID string) ([]UserAchievement, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ua.id, ua.user_id, ua.achievement_id, ua.earned_at,
			a.id, a.name, a.description, COALESCE(a.region_id,''), a.symbol, a.required_level, a.required_trips, a.points_required, a.image_url, a.tier, a.created_at
		FROM user_achievements ua
		JOIN achievements a ON a.id = ua.achievement_id
		WHERE ua.user_id=$1
		ORDER BY ua.earned_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []UserAchievement{}
	for rows.Next() {
		var ua UserAchievement
		var a Achievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.EarnedAt,
			&a.ID, &a.Name, &a.Description, &a.RegionID, &a.Symbol, &a.RequiredLevel, &a.RequiredTrips, &a.PointsRequired, &a.ImageURL, &a.Tier, &a.CreatedAt); err != nil {
			return nil, err
		}
		ua.Achievement = &a
		list = append(list, ua)
	}
	return list, rows.Err()
}

// Grant evaluates stats against every definition and records the newly
// qualified achievements through q, which is normally the caller's
// transaction. A row that already exists is skipped, so concurrent or
// repeated grants never duplicate.
func (s *Service) Grant(ctx context.Context, q db.Querier, userID string, stats progression.Stats) ([]Achievement, error) {
	defs, err := listAchievements(ctx, q)
	if err != nil {
		return nil, err
	}
	earned, err := earnedSet(ctx, q, userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Achievement, len(defs))
	for _, a := range defs {
		byID[a.ID] = a
	}

	var granted []Achievement
	for _, id := range Evaluate(stats, earned, defs) {
		tag, err := q.Exec(ctx, `
			INSERT INTO user_achievements (id, user_id, achievement_id)
			VALUES ($1,$2,$3)
			ON CONFLICT (user_id, achievement_id) DO NOTHING
		`, uuid.NewString(), userID, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 1 {
			granted = append(granted, byID[id])
		}
	}
	return granted, nil
}

// Announce records grants made by source and pushes them to the user's
// stream. Call it after the granting transaction committed.
func (s *Service) Announce(userID, source string, granted []Achievement) {
	if len(granted) == 0 {
		return
	}
	s.metrics.AchievementsGranted(source, len(granted))
	for _, a := range granted {
		s.log.Info("achievement granted",
			zap.String("user_id", userID),
			zap.String("achievement_id", a.ID),
			zap.String("tier", string(a.Tier)),
			zap.String("source", source))
		if s.events != nil {
			s.events.Publish(userID, stream.Event{Type: stream.EventAchievementEarned, Data: a})
		}
	}
}

// Reevaluate folds the user's ledger and grants whatever they now qualify
// for.
func (s *Service) Reevaluate(ctx context.Context, userID string) ([]Achievement, error) {
	var granted []Achievement
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		stats, err := ledger.Stats(ctx, tx, userID)
		if err != nil {
			return err
		}
		granted, err = s.Grant(ctx, tx, userID, stats)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Announce(userID, SourceReevaluate, granted)
	return granted, nil
}

// ReevaluateAll runs Reevaluate for every user with ledger entries. It
// keeps going past failures and returns them joined.
func (s *Service) ReevaluateAll(ctx context.Context) (int, error) {
	users, err := ledger.Users(ctx, s.db)
	if err != nil {
		return 0, err
	}

	total := 0
	var errs []error
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		granted, err := s.Reevaluate(ctx, userID)
		if err != nil {
			s.log.Error("reevaluate achievements", zap.String("user_id", userID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		total += len(granted)
	}
	return total, errors.Join(errs...)
}

// Standings reports every achievement with the user's earned state and
// real progress towards it.
func (s *Service) Standings(ctx context.Context, userID string) ([]Standing, error) {
	defs, err := listAchievements(ctx, s.db)
	if err != nil {
		return nil, err
	}
	earned, err := s.UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := ledger.Stats(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]UserAchievement, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua
	}

	standings := make([]Standing, 0, len(defs))
	for _, a := range defs {
		st := Standing{Achievement: a, Progress: Progress(stats, a)}
		if ua, ok := earnedAt[a.ID]; ok {
			at := ua.EarnedAt
			st.Earned = true
			st.EarnedAt = &at
			st.Progress = 100
		}
		standings = append(standings, st)
	}
	return standings, nil
}

func listAchievements(ctx context.Context, q db.Querier) ([]Achievement, error) {
	rows, err := q.Query(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements
		ORDER BY CASE tier WHEN 'bronze' THEN 0 WHEN 'silver' THEN 1 WHEN 'gold' THEN 2 WHEN 'platinum' THEN 3 ELSE 4 END, required_level, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Achievement{}
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func earnedSet(ctx context.Context, q db.Querier, userID string) (map[string]bool, error) {
	rows, err := q.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		earned[id] = true
	}
	return earned, rows.Err()
}

func scanAchievement(row pgx.Row) (Achievement, error) {
	var a Achievement
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.RegionID, &a.Symbol, &a.RequiredLevel, &a.RequiredTrips, &a.PointsRequired, &a.ImageURL, &a.Tier, &a.CreatedAt)
	return a, err
}
