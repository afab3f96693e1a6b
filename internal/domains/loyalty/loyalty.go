// Package loyalty derives a customer's tier and benefits from accumulated points.
// Tiers are never stored; they are recomputed from points on every read.
package loyalty

import "math"

type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Benefits of a tier.
type Benefits struct {
	Tier            Tier    `json:"tier"`
	MinPoints       int64   `json:"min_points"`
	DiscountPercent float64 `json:"discount_percent"`
	Multiplier      float64 `json:"multiplier"`
}

// tiers is ordered by descending threshold.
var tiers = []Benefits{
	{Tier: TierPlatinum, MinPoints: 10000, DiscountPercent: 20, Multiplier: 3},
	{Tier: TierGold, MinPoints: 5000, DiscountPercent: 10, Multiplier: 2},
	{Tier: TierSilver, MinPoints: 1000, DiscountPercent: 5, Multiplier: 1.5},
	{Tier: TierBronze, MinPoints: 0, DiscountPercent: 0, Multiplier: 1},
}

func BenefitsOf(points int64) Benefits {
	for _, benefits := range tiers {
		if points >= benefits.MinPoints {
			return benefits
		}
	}

	return tiers[len(tiers)-1]
}

func TierOf(points int64) Tier {
	return BenefitsOf(points).Tier
}

func Discount(tier Tier) float64 {
	for _, benefits := range tiers {
		if benefits.Tier == tier {
			return benefits.DiscountPercent
		}
	}

	return 0
}

func Multiplier(tier Tier) float64 {
	for _, benefits := range tiers {
		if benefits.Tier == tier {
			return benefits.Multiplier
		}
	}

	return 1
}

// PointsToNextTier returns the gap to the next threshold, or 0 at the top tier.
func PointsToNextTier(points int64) int64 {
	current := BenefitsOf(points)

	for idx := len(tiers) - 1; idx >= 0; idx-- {
		if tiers[idx].MinPoints > current.MinPoints {
			return tiers[idx].MinPoints - max(points, 0)
		}
	}

	return 0
}

// Accrue returns the points earned for a booking amount at the customer's current balance.
// amountPerPoint is the currency amount worth one base point.
func Accrue(points int64, amount, amountPerPoint float64) int64 {
	if amount <= 0 || amountPerPoint <= 0 {
		return 0
	}

	return int64(math.Floor(amount / amountPerPoint * Multiplier(TierOf(points))))
}

// Summary is the loyalty view of a point balance.
type Summary struct {
	Points           int64   `json:"points"`
	Tier             Tier    `json:"tier"`
	DiscountPercent  float64 `json:"discount_percent"`
	Multiplier       float64 `json:"multiplier"`
	PointsToNextTier int64   `json:"points_to_next_tier"`
}

func Summarize(points int64) Summary {
	benefits := BenefitsOf(points)

	return Summary{
		Points:           points,
		Tier:             benefits.Tier,
		DiscountPercent:  benefits.DiscountPercent,
		Multiplier:       benefits.Multiplier,
		PointsToNextTier: PointsToNextTier(points),
	}
}
