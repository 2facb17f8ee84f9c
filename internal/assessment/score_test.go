package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/catalog"
)

func allRatings(cat *catalog.Catalog, value int) RatingMap {
	ratings := make(RatingMap, len(cat.Dimensions))
	for _, d := range cat.Dimensions {
		ratings[d.Key] = value
	}
	return ratings
}

// ==========================
// RatingMap Tests
// ==========================

func TestNewRatingMap(t *testing.T) {
	cat := catalog.Default()
	ratings := NewRatingMap(cat)

	assert.Len(t, ratings, 6)
	for _, d := range cat.Dimensions {
		assert.Equal(t, DefaultRating, ratings[d.Key])
	}
}

func TestRatingMapValidate(t *testing.T) {
	cat := catalog.Default()

	t.Run("complete in-range map is valid", func(t *testing.T) {
		assert.NoError(t, allRatings(cat, 1).Validate(cat))
		assert.NoError(t, allRatings(cat, 5).Validate(cat))
	})

	t.Run("missing dimension rejected", func(t *testing.T) {
		ratings := allRatings(cat, 3)
		delete(ratings, "vendor")
		err := ratings.Validate(cat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vendor")
	})

	t.Run("out of range rejected", func(t *testing.T) {
		ratings := allRatings(cat, 3)
		ratings["audit"] = 0
		assert.Error(t, ratings.Validate(cat))

		ratings["audit"] = 6
		assert.Error(t, ratings.Validate(cat))
	})

	t.Run("unknown dimension rejected", func(t *testing.T) {
		ratings := allRatings(cat, 3)
		ratings["finance"] = 3
		err := ratings.Validate(cat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "finance")
	})
}

// ==========================
// Aggregate and Tier Tests
// ==========================

func TestAggregateIsMean(t *testing.T) {
	cat := catalog.Default()

	assert.InDelta(t, 1.0, Aggregate(allRatings(cat, 1), cat), 1e-9)
	assert.InDelta(t, 5.0, Aggregate(allRatings(cat, 5), cat), 1e-9)

	ratings := allRatings(cat, 3)
	ratings["incident"] = 1
	ratings["process"] = 5
	// (1+3+3+3+3+5)/6
	assert.InDelta(t, 3.0, Aggregate(ratings, cat), 1e-9)
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{5.0, TierStable},
		{4.0, TierStable}, // boundary inclusive
		{3.999, TierAtRisk},
		{2.5, TierAtRisk}, // boundary inclusive
		{2.499, TierCritical},
		{1.0, TierCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %v", tt.score)
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 3.7, RoundScore(22.0/6.0))
	assert.Equal(t, 2.5, RoundScore(2.5))
	assert.Equal(t, 3.3, RoundScore(3.333333))
}

// ==========================
// Gap Extraction Tests
// ==========================

func TestGaps(t *testing.T) {
	cat := catalog.Default()

	t.Run("all fives yields no gaps", func(t *testing.T) {
		assert.Empty(t, Gaps(allRatings(cat, 5), cat))
	})

	t.Run("fours never gap", func(t *testing.T) {
		assert.Empty(t, Gaps(allRatings(cat, 4), cat))
	})

	t.Run("critical before mid, declaration order within each", func(t *testing.T) {
		ratings := RatingMap{
			"incident": 3, "change": 2, "vendor": 5,
			"audit": 1, "kpi": 3, "process": 4,
		}
		gaps := Gaps(ratings, cat)
		require.Len(t, gaps, 4)
		assert.Equal(t, Gap{Dimension: "change", Rating: 2, Class: GapCritical}, gaps[0])
		assert.Equal(t, Gap{Dimension: "audit", Rating: 1, Class: GapCritical}, gaps[1])
		assert.Equal(t, Gap{Dimension: "incident", Rating: 3, Class: GapMid}, gaps[2])
		assert.Equal(t, Gap{Dimension: "kpi", Rating: 3, Class: GapMid}, gaps[3])
	})

	t.Run("all ones yields six critical gaps in declaration order", func(t *testing.T) {
		gaps := Gaps(allRatings(cat, 1), cat)
		require.Len(t, gaps, 6)
		for i, key := range cat.DimensionKeys() {
			assert.Equal(t, key, gaps[i].Dimension)
			assert.Equal(t, GapCritical, gaps[i].Class)
		}
	})
}

// ==========================
// Compute Tests
// ==========================

func TestCompute(t *testing.T) {
	cat := catalog.Default()

	t.Run("post-close turnaround scenario", func(t *testing.T) {
		ratings := RatingMap{
			"incident": 1, "change": 1, "vendor": 5,
			"audit": 5, "kpi": 5, "process": 5,
		}
		result, err := Compute(ratings, cat)
		require.NoError(t, err)

		assert.InDelta(t, 22.0/6.0, result.Score, 1e-9)
		assert.Equal(t, 3.7, result.DisplayScore)
		assert.Equal(t, TierAtRisk, result.Tier)
		require.Len(t, result.Gaps, 2)
		assert.Equal(t, "incident", result.Gaps[0].Dimension)
		assert.Equal(t, "change", result.Gaps[1].Dimension)
	})

	t.Run("invalid ratings rejected", func(t *testing.T) {
		ratings := allRatings(cat, 3)
		ratings["kpi"] = 9
		_, err := Compute(ratings, cat)
		assert.Error(t, err)
	})
}
