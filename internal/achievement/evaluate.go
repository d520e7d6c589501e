package achievement

import (
	"math"
	"sort"

	"github.com/SNMDESERT/peak-finder/internal/progression"
)

// Qualifies reports whether stats meet every threshold of a. For region
// scoped achievements only trips completed in that region count.
func Qualifies(stats progression.Stats, a Achievement) bool {
	return stats.ClimbingLevel >= a.RequiredLevel &&
		tripsFor(stats, a) >= a.RequiredTrips &&
		stats.TotalPoints >= a.PointsRequired
}

// Evaluate returns the IDs of achievements in defs that are not in earned
// and that stats qualify for, lowest tier first. It never returns an
// earned ID, so evaluating again after granting yields nothing new.
func Evaluate(stats progression.Stats, earned map[string]bool, defs []Achievement) []string {
	ordered := make([]Achievement, len(defs))
	copy(ordered, defs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier.Rank() < ordered[j].Tier.Rank()
	})

	var ids []string
	seen := map[string]bool{}
	for _, a := range ordered {
		if earned[a.ID] || seen[a.ID] {
			continue
		}
		if Qualifies(stats, a) {
			seen[a.ID] = true
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Progress is how close stats are to a as a percentage in [0, 100]: the
// smallest of current/required over level, trips and points.
func Progress(stats progression.Stats, a Achievement) int {
	if Qualifies(stats, a) {
		return 100
	}
	r := math.Min(ratio(stats.ClimbingLevel, a.RequiredLevel), ratio(tripsFor(stats, a), a.RequiredTrips))
	r = math.Min(r, ratio(stats.TotalPoints, a.PointsRequired))
	pct := int(math.Floor(r * 100))
	// only a qualified user sits at 100
	if pct >= 100 {
		pct = 99
	}
	return pct
}

func tripsFor(stats progression.Stats, a Achievement) int {
	if a.RegionID != "" {
		return stats.RegionTrips[a.RegionID]
	}
	return stats.TripsCompleted
}

func ratio(current, required int) float64 {
	if required <= 0 {
		return 1
	}
	if current <= 0 {
		return 0
	}
	return math.Min(float64(current)/float64(required), 1)
}
