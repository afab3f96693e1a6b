package loyalty_test

import (
	"hotelier/internal/domains/loyalty"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	tests := []struct {
		points int64
		want   loyalty.Tier
	}{
		{points: 0, want: loyalty.TierBronze},
		{points: 999, want: loyalty.TierBronze},
		{points: 1000, want: loyalty.TierSilver},
		{points: 4999, want: loyalty.TierSilver},
		{points: 5000, want: loyalty.TierGold},
		{points: 9999, want: loyalty.TierGold},
		{points: 10000, want: loyalty.TierPlatinum},
		{points: 250000, want: loyalty.TierPlatinum},
		{points: -5, want: loyalty.TierBronze},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, loyalty.TierOf(tt.points), "points=%d", tt.points)
	}
}

func TestTierBenefits(t *testing.T) {
	tests := []struct {
		tier       loyalty.Tier
		discount   float64
		multiplier float64
	}{
		{tier: loyalty.TierBronze, discount: 0, multiplier: 1},
		{tier: loyalty.TierSilver, discount: 5, multiplier: 1.5},
		{tier: loyalty.TierGold, discount: 10, multiplier: 2},
		{tier: loyalty.TierPlatinum, discount: 20, multiplier: 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.InDelta(t, tt.discount, loyalty.Discount(tt.tier), 0)
			assert.InDelta(t, tt.multiplier, loyalty.Multiplier(tt.tier), 0)
		})
	}

	assert.Zero(t, loyalty.Discount("DIAMOND"))
	assert.InDelta(t, 1, loyalty.Multiplier("DIAMOND"), 0)
}

func TestPointsToNextTier(t *testing.T) {
	tests := []struct {
		points int64
		want   int64
	}{
		{points: 0, want: 1000},
		{points: 999, want: 1},
		{points: 1000, want: 4000},
		{points: 4200, want: 800},
		{points: 5000, want: 5000},
		{points: 9999, want: 1},
		{points: 10000, want: 0},
		{points: 50000, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, loyalty.PointsToNextTier(tt.points), "points=%d", tt.points)
	}
}

func TestAccrue(t *testing.T) {
	tests := []struct {
		name           string
		points         int64
		amount         float64
		amountPerPoint float64
		want           int64
	}{
		{name: "bronze one to one", points: 0, amount: 450, amountPerPoint: 1, want: 450},
		{name: "silver multiplier floors", points: 1000, amount: 333, amountPerPoint: 1, want: 499},
		{name: "gold with coarser rate", points: 5000, amount: 1000, amountPerPoint: 10, want: 200},
		{name: "platinum", points: 10000, amount: 100, amountPerPoint: 1, want: 300},
		{name: "zero amount", points: 0, amount: 0, amountPerPoint: 1, want: 0},
		{name: "bad rate", points: 0, amount: 100, amountPerPoint: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loyalty.Accrue(tt.points, tt.amount, tt.amountPerPoint))
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, loyalty.Summary{
		Points:           5200,
		Tier:             loyalty.TierGold,
		DiscountPercent:  10,
		Multiplier:       2,
		PointsToNextTier: 4800,
	}, loyalty.Summarize(5200))
}
