package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/catalog"
)

// ==========================
// Recommendation Plan Tests
// ==========================

func TestRecommend(t *testing.T) {
	cat := catalog.Default()

	t.Run("all fives yields empty plan", func(t *testing.T) {
		plan, skipped, err := Recommend(allRatings(cat, 5), catalog.ContextPreClose, cat)
		require.NoError(t, err)
		assert.Empty(t, plan)
		assert.Empty(t, skipped)
	})

	t.Run("all ones truncates to four critical items", func(t *testing.T) {
		plan, skipped, err := Recommend(allRatings(cat, 1), catalog.ContextMidHold, cat)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, plan, MaxRecommendations)
		// first four dimensions in declaration order, all critical
		keys := cat.DimensionKeys()
		for i, item := range plan {
			assert.Equal(t, keys[i], item.Dimension)
			assert.Equal(t, GapCritical, item.GapClass)
			assert.Equal(t, catalog.ContextMidHold, item.Context)
		}
	})

	t.Run("two critical gaps yield exactly two items", func(t *testing.T) {
		ratings := RatingMap{
			"incident": 1, "change": 1, "vendor": 5,
			"audit": 5, "kpi": 5, "process": 5,
		}
		plan, skipped, err := Recommend(ratings, catalog.ContextPostClose, cat)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, plan, 2)
		assert.Equal(t, "incident", plan[0].Dimension)
		assert.Equal(t, "change", plan[1].Dimension)
		assert.Equal(t, cat.Recommendations["incident"].Action, plan[0].Action)
		assert.Equal(t, cat.Recommendations["incident"].WindowDays, plan[0].WindowDays)
	})

	t.Run("critical items precede mid items under the cap", func(t *testing.T) {
		ratings := RatingMap{
			"incident": 3, "change": 3, "vendor": 3,
			"audit": 3, "kpi": 2, "process": 2,
		}
		plan, _, err := Recommend(ratings, catalog.ContextPreClose, cat)
		require.NoError(t, err)
		require.Len(t, plan, MaxRecommendations)
		assert.Equal(t, "kpi", plan[0].Dimension)
		assert.Equal(t, "process", plan[1].Dimension)
		assert.Equal(t, GapCritical, plan[0].GapClass)
		assert.Equal(t, GapCritical, plan[1].GapClass)
		assert.Equal(t, "incident", plan[2].Dimension)
		assert.Equal(t, "change", plan[3].Dimension)
		assert.Equal(t, GapMid, plan[2].GapClass)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		ratings := RatingMap{
			"incident": 2, "change": 3, "vendor": 1,
			"audit": 3, "kpi": 4, "process": 2,
		}
		first, _, err := Recommend(ratings, catalog.ContextMidHold, cat)
		require.NoError(t, err)
		second, _, err := Recommend(ratings, catalog.ContextMidHold, cat)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("invalid context rejected", func(t *testing.T) {
		_, _, err := Recommend(allRatings(cat, 1), "someday", cat)
		assert.Error(t, err)
	})

	t.Run("missing table entry omits the item, keeps the rest", func(t *testing.T) {
		broken := catalog.Default()
		delete(broken.Recommendations, "change")

		plan, skipped, err := Recommend(allRatings(broken, 1), catalog.ContextPreClose, broken)
		require.NoError(t, err)
		assert.Equal(t, []string{"change"}, skipped)
		require.Len(t, plan, MaxRecommendations)
		assert.Equal(t, "incident", plan[0].Dimension)
		assert.Equal(t, "vendor", plan[1].Dimension)
		assert.Equal(t, "audit", plan[2].Dimension)
		assert.Equal(t, "kpi", plan[3].Dimension)
	})
}
