package achievement

import (
	"time"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Rank orders tiers bronze < silver < gold < platinum. Unknown tiers rank
// after platinum.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 0
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierPlatinum:
		return 3
	default:
		return 4
	}
}

type Achievement struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	RegionID       string    `json:"regionId,omitempty"`
	Symbol         string    `json:"symbol"`
	RequiredLevel  int       `json:"requiredLevel"`
	RequiredTrips  int       `json:"requiredTrips"`
	PointsRequired int       `json:"pointsRequired"`
	ImageURL       string    `json:"imageUrl"`
	Tier           Tier      `json:"tier"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserAchievement struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	AchievementID string       `json:"achievementId"`
	EarnedAt      time.Time    `json:"earnedAt"`
	Achievement   *Achievement `json:"achievement,omitempty"`
}

// Standing is one achievement as seen by one user.
type Standing struct {
	Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
	Progress int        `json:"progress"`
}
