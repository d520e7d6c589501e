package catalog

import (
	"context"

	"github.com/SNMDESERT/peak-finder/internal/db"

	"github.com/jackc/pgx/v5"
)

// SeedAchievement is an achievement definition as written by Seed.
type SeedAchievement struct {
	ID             string
	Name           string
	Description    string
	RegionID       string
	Symbol         string
	RequiredLevel  int
	RequiredTrips  int
	PointsRequired int
	Tier           string
}

// SeedCounts reports how many rows Seed upserted.
type SeedCounts struct {
	Regions      int
	Trips        int
	Achievements int
}

// Seed upserts the built-in catalog in one transaction. Rows are matched
// on id, so running it again refreshes content without touching bookings
// or earned achievements that reference them.
func Seed(ctx context.Context, pool db.Pool) (SeedCounts, error) {
	var counts SeedCounts
	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		for _, r := range seedRegions {
			if _, err := tx.Exec(ctx, `
				INSERT INTO regions (id, name, symbol, symbol_name, description, image_url)
				VALUES ($1,$2,$3,$4,$5,$6)
				ON CONFLICT (id) DO UPDATE SET
					name=EXCLUDED.name, symbol=EXCLUDED.symbol, symbol_name=EXCLUDED.symbol_name,
					description=EXCLUDED.description, image_url=EXCLUDED.image_url
			`, r.ID, r.Name, r.Symbol, r.SymbolName, r.Description, r.ImageURL); err != nil {
				return err
			}
			counts.Regions++
		}

		for _, t := range seedTrips {
			if _, err := tx.Exec(ctx, `
				INSERT INTO trips (id, title, description, region_id, location, difficulty, activity_type,
					elevation, distance, duration, max_group_size, price, image_url, featured, points_reward)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
				ON CONFLICT (id) DO UPDATE SET
					title=EXCLUDED.title, description=EXCLUDED.description, region_id=EXCLUDED.region_id,
					location=EXCLUDED.location, difficulty=EXCLUDED.difficulty, activity_type=EXCLUDED.activity_type,
					elevation=EXCLUDED.elevation, distance=EXCLUDED.distance, duration=EXCLUDED.duration,
					max_group_size=EXCLUDED.max_group_size, price=EXCLUDED.price, image_url=EXCLUDED.image_url,
					featured=EXCLUDED.featured, points_reward=EXCLUDED.points_reward
			`, t.ID, t.Title, t.Description, nullable(t.RegionID), t.Location, t.Difficulty, t.ActivityType,
				t.Elevation, t.Distance, t.Duration, t.MaxGroupSize, t.Price, t.ImageURL, t.Featured, t.PointsReward); err != nil {
				return err
			}
			counts.Trips++
		}

		for _, a := range seedAchievements {
			if _, err := tx.Exec(ctx, `
				INSERT INTO achievements (id, name, description, region_id, symbol, required_level, required_trips, points_required, tier)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
				ON CONFLICT (id) DO UPDATE SET
					name=EXCLUDED.name, description=EXCLUDED.description, region_id=EXCLUDED.region_id,
					symbol=EXCLUDED.symbol, required_level=EXCLUDED.required_level, required_trips=EXCLUDED.required_trips,
					points_required=EXCLUDED.points_required, tier=EXCLUDED.tier
			`, a.ID, a.Name, a.Description, nullable(a.RegionID), a.Symbol, a.RequiredLevel, a.RequiredTrips, a.PointsRequired, a.Tier); err != nil {
				return err
			}
			counts.Achievements++
		}
		return nil
	})
	if err != nil {
		return SeedCounts{}, err
	}
	return counts, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
