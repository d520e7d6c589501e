package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cachePrefix = "catalog:"

var tripColumnFormats = []string{
	"%sid", "%stitle", "%sdescription", "COALESCE(%sregion_id,'')", "%slocation", "%sdifficulty", "%sactivity_type",
	"%selevation", "%sdistance::float8", "%sduration", "%smax_group_size", "%sprice::float8", "%simage_url",
	"%sfeatured", "%spoints_reward", "%screated_at",
}

var tripColumns = TripColumns("")

// TripColumns is the select list ScanTrip expects, qualified with alias
// when one is given.
func TripColumns(alias string) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	cols := make([]string, len(tripColumnFormats))
	for i, f := range tripColumnFormats {
		cols[i] = fmt.Sprintf(f, prefix)
	}
	return strings.Join(cols, ", ")
}

// TripDest returns scan destinations matching TripColumns, for callers
// that select a trip alongside other columns.
func TripDest(t *Trip) []any {
	return []any{&t.ID, &t.Title, &t.Description, &t.RegionID, &t.Location, &t.Difficulty, &t.ActivityType,
		&t.Elevation, &t.Distance, &t.Duration, &t.MaxGroupSize, &t.Price, &t.ImageURL, &t.Featured, &t.PointsReward, &t.CreatedAt}
}

// Service reads the region and trip catalog. The catalog only changes when
// seeded, so reads go through a Redis cache when one is configured.
type Service struct {
	db    db.Querier
	cache *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewService(q db.Querier, cache *redis.Client, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: q, cache: cache, ttl: ttl, log: log}
}

func (s *Service) Regions(ctx context.Context) ([]Region, error) {
	return cached(ctx, s, "regions", func() ([]Region, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, name, symbol, symbol_name, description, image_url, created_at
			FROM regions ORDER BY name
		`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		regions := []Region{}
		for rows.Next() {
			r, err := scanRegion(rows)
			if err != nil {
				return nil, err
			}
			regions = append(regions, r)
		}
		return regions, rows.Err()
	})
}

func (s *Service) Region(ctx context.Context, id string) (Region, error) {
	return cached(ctx, s, "region:"+id, func() (Region, error) {
		row := s.db.QueryRow(ctx, `
			SELECT id, name, symbol, symbol_name, description, image_url, created_at
			FROM regions WHERE id=$1
		`, id)
		r, err := scanRegion(row)
		if db.IsNoRows(err) {
			return Region{}, apperr.NotFound("region not found")
		}
		return r, err
	})
}

// Trips lists the catalog newest first. featured restricts it to the
// trips promoted on the landing page; regionID, when set, to one region.
func (s *Service) Trips(ctx context.Context, featured bool, regionID string) ([]Trip, error) {
	key := "trips:all"
	if featured {
		key = "trips:featured"
	}
	if regionID != "" {
		key += ":region:" + regionID
	}
	return cached(ctx, s, key, func() ([]Trip, error) {
		rows, err := s.db.Query(ctx, `
			SELECT `+tripColumns+`
			FROM trips
			WHERE ($1 = false OR featured) AND ($2 = '' OR region_id = $2)
			ORDER BY created_at DESC, id
		`, featured, regionID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		trips := []Trip{}
		for rows.Next() {
			t, err := scanTrip(rows)
			if err != nil {
				return nil, err
			}
			trips = append(trips, t)
		}
		return trips, rows.Err()
	})
}

func (s *Service) Trip(ctx context.Context, id string) (Trip, error) {
	return cached(ctx, s, "trip:"+id, func() (Trip, error) {
		return TripByID(ctx, s.db, id)
	})
}

// TripByID reads a trip through q, bypassing the cache. Booking uses it
// inside its own transaction.
func TripByID(ctx context.Context, q db.Querier, id string) (Trip, error) {
	row := q.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=$1`, id)
	t, err := scanTrip(row)
	if db.IsNoRows(err) {
		return Trip{}, apperr.NotFound("trip not found")
	}
	return t, err
}

// Invalidate drops every cached catalog entry.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	iter := s.cache.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.cache.Del(ctx, keys...).Err()
}

// cached serves key from Redis or fills it from load. Redis failures are
// logged and fall through to load; not-found results are never cached.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	if s.cache == nil || s.ttl <= 0 {
		return load()
	}

	key = cachePrefix + key
	raw, err := s.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func scanRegion(row pgx.Row) (Region, error) {
	var r Region
	err := row.Scan(&r.ID, &r.Name, &r.Symbol, &r.SymbolName, &r.Description, &r.ImageURL, &r.CreatedAt)
	return r, err
}

func scanTrip(row pgx.Row) (Trip, error) {
	var t Trip
	err := row.Scan(TripDest(&t)...)
	return t, err
}
