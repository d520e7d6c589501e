// Package progression computes a user's climbing counters from completed
// trips. Counters are never stored; they are folded from the points ledger.
package progression

import "time"

const (
	// PointsPerLevel is the number of points between two climbing levels.
	PointsPerLevel = 500
	// DefaultPointsReward applies to trips seeded without a reward.
	DefaultPointsReward = 100
)

type Counters struct {
	TotalPoints    int `json:"totalPoints"`
	TotalElevation int `json:"totalElevation"`
	TripsCompleted int `json:"tripsCompleted"`
	ClimbingLevel  int `json:"climbingLevel"`
}

// Reward is what a single trip completion credits.
type Reward struct {
	Points    int `json:"points"`
	Elevation int `json:"elevation"`
}

// Initial returns the counters of a user with no completed trips.
func Initial() Counters {
	return Counters{ClimbingLevel: 1}
}

// LevelFor returns floor(points/500)+1.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

func ApplyTripCompletion(c Counters, r Reward) Counters {
	points := c.TotalPoints + r.Points
	return Counters{
		TotalPoints:    points,
		TotalElevation: c.TotalElevation + r.Elevation,
		TripsCompleted: c.TripsCompleted + 1,
		ClimbingLevel:  LevelFor(points),
	}
}

// RewardFor builds the reward of a trip. A missing or zero points reward
// falls back to DefaultPointsReward and a missing elevation counts as 0.
func RewardFor(pointsReward, elevation *int) Reward {
	r := Reward{Points: DefaultPointsReward}
	if pointsReward != nil && *pointsReward > 0 {
		r.Points = *pointsReward
	}
	if elevation != nil && *elevation > 0 {
		r.Elevation = *elevation
	}
	return r
}

// LedgerEntry is one append-only record of a completed booking.
type LedgerEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserTripID string    `json:"userTripId"`
	TripID     string    `json:"tripId"`
	RegionID   string    `json:"regionId,omitempty"`
	Points     int       `json:"points"`
	Elevation  int       `json:"elevation"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e LedgerEntry) Reward() Reward {
	return Reward{Points: e.Points, Elevation: e.Elevation}
}

// Stats are the counters plus completed trips per region, which region
// scoped achievements are judged on.
type Stats struct {
	Counters
	RegionTrips map[string]int `json:"regionTrips"`
}

func NewStats() Stats {
	return Stats{Counters: Initial(), RegionTrips: map[string]int{}}
}

// Apply returns s with e folded in. s is not modified.
func (s Stats) Apply(e LedgerEntry) Stats {
	next := Stats{
		Counters:    ApplyTripCompletion(s.Counters, e.Reward()),
		RegionTrips: make(map[string]int, len(s.RegionTrips)+1),
	}
	for k, v := range s.RegionTrips {
		next.RegionTrips[k] = v
	}
	if e.RegionID != "" {
		next.RegionTrips[e.RegionID]++
	}
	return next
}

// Fold replays the ledger from the initial counters.
func Fold(entries []LedgerEntry) Stats {
	s := NewStats()
	for _, e := range entries {
		s = s.Apply(e)
	}
	return s
}
