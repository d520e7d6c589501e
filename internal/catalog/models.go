package catalog

import (
	"time"

	"github.com/SNMDESERT/peak-finder/internal/progression"
)

type Region struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	SymbolName  string    `json:"symbolName"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Trip struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	RegionID     string    `json:"regionId,omitempty"`
	Location     string    `json:"location"`
	Difficulty   string    `json:"difficulty"`
	ActivityType string    `json:"activityType"`
	Elevation    *int      `json:"elevation"`
	Distance     *float64  `json:"distance"`
	Duration     string    `json:"duration"`
	MaxGroupSize *int      `json:"maxGroupSize"`
	Price        *float64  `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	Featured     bool      `json:"featured"`
	PointsReward int       `json:"pointsReward"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Reward is what completing the trip credits.
func (t Trip) Reward() progression.Reward {
	points := t.PointsReward
	return progression.RewardFor(&points, t.Elevation)
}

// TripSummary is the slice of a trip embedded in other resources.
type TripSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	ImageURL string `json:"imageUrl"`
}
