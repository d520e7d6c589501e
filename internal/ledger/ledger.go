// Package ledger persists the append-only record of point earning events.
// Every read of a user's counters folds this table; nothing else stores
// points, elevation, trip counts or levels.
package ledger

import (
	"context"

	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/progression"

	"github.com/google/uuid"
)

// Append records e. It returns false when the booking was already
// credited, which makes repeated completions harmless.
func Append(ctx context.Context, q db.Querier, e progression.LedgerEntry) (progression.LedgerEntry, bool, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := q.QueryRow(ctx, `
		INSERT INTO progress_ledger (id, user_id, user_trip_id, trip_id, region_id, points, elevation)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_trip_id) DO NOTHING
		RETURNING occurred_at
	`, e.ID, e.UserID, e.UserTripID, e.TripID, nullable(e.RegionID), e.Points, e.Elevation)
	if err := row.Scan(&e.OccurredAt); err != nil {
		if db.IsNoRows(err) {
			return e, false, nil
		}
		return progression.LedgerEntry{}, false, err
	}
	return e, true, nil
}

func Entries(ctx context.Context, q db.Querier, userID string) ([]progression.LedgerEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT id, user_id, user_trip_id, trip_id, COALESCE(region_id,''), points, elevation, occurred_at
		FROM progress_ledger WHERE user_id=$1
		ORDER BY occurred_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []progression.LedgerEntry
	for rows.Next() {
		var e progression.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserTripID, &e.TripID, &e.RegionID, &e.Points, &e.Elevation, &e.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats folds the user's ledger into counters.
func Stats(ctx context.Context, q db.Querier, userID string) (progression.Stats, error) {
	entries, err := Entries(ctx, q, userID)
	if err != nil {
		return progression.Stats{}, err
	}
	return progression.Fold(entries), nil
}

// Users lists every user with at least one ledger entry.
func Users(ctx context.Context, q db.Querier) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT DISTINCT user_id FROM progress_ledger ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
