// Package assessment implements the readiness scoring rules: per-dimension
// ratings, aggregate computation, risk tiers, gap extraction, and the
// recommendation plan derived from them.
package assessment

import (
	"fmt"
	"math"

	"assessment-workers/internal/catalog"
)

// Rating bounds for a single dimension.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Tier is the risk classification derived from the aggregate score.
type Tier string

const (
	TierStable   Tier = "stable"
	TierAtRisk   Tier = "at-risk"
	TierCritical Tier = "critical"
)

// Gap classification by rating value.
const (
	GapCritical = "critical" // rating <= 2
	GapMid      = "mid"      // rating == 3
)

// Gap is one dimension flagged as deficient, ordered by class then by
// dimension declaration order.
type Gap struct {
	Dimension string `json:"dimension"`
	Rating    int    `json:"rating"`
	Class     string `json:"class"`
}

// RatingMap holds one rating per dimension key.
type RatingMap map[string]int

// NewRatingMap returns a map with every dimension of cat preset to the
// neutral default rating.
func NewRatingMap(cat *catalog.Catalog) RatingMap {
	ratings := make(RatingMap, len(cat.Dimensions))
	for _, d := range cat.Dimensions {
		ratings[d.Key] = DefaultRating
	}
	return ratings
}

// Validate checks that ratings covers exactly the dimensions of cat and every
// value is within bounds.
func (r RatingMap) Validate(cat *catalog.Catalog) error {
	for _, d := range cat.Dimensions {
		v, ok := r[d.Key]
		if !ok {
			return fmt.Errorf("missing rating for dimension %q", d.Key)
		}
		if v < MinRating || v > MaxRating {
			return fmt.Errorf("rating %d for dimension %q out of range [%d,%d]", v, d.Key, MinRating, MaxRating)
		}
	}
	for key := range r {
		if !cat.HasDimension(key) {
			return fmt.Errorf("unknown dimension %q", key)
		}
	}
	return nil
}

// Aggregate returns the unrounded arithmetic mean of the ratings over the
// dimensions of cat. Tier classification always uses this value; rounding is
// for display only.
func Aggregate(ratings RatingMap, cat *catalog.Catalog) float64 {
	if len(cat.Dimensions) == 0 {
		return 0
	}
	sum := 0
	for _, d := range cat.Dimensions {
		sum += ratings[d.Key]
	}
	return float64(sum) / float64(len(cat.Dimensions))
}

// RoundScore rounds an aggregate to one decimal for presentation.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// TierFor maps an unrounded aggregate onto a risk tier. Boundaries are
// inclusive on the higher tier: exactly 4.0 is stable, exactly 2.5 is
// at-risk.
func TierFor(score float64) Tier {
	switch {
	case score >= 4.0:
		return TierStable
	case score >= 2.5:
		return TierAtRisk
	default:
		return TierCritical
	}
}

// Gaps extracts the deficient dimensions from ratings: critical gaps
// (rating <= 2) first, then mid gaps (rating == 3), each group in the
// dimension declaration order of cat. Ratings of 4 and 5 never produce gaps.
func Gaps(ratings RatingMap, cat *catalog.Catalog) []Gap {
	var gaps []Gap
	for _, d := range cat.Dimensions {
		if ratings[d.Key] <= 2 {
			gaps = append(gaps, Gap{Dimension: d.Key, Rating: ratings[d.Key], Class: GapCritical})
		}
	}
	for _, d := range cat.Dimensions {
		if ratings[d.Key] == 3 {
			gaps = append(gaps, Gap{Dimension: d.Key, Rating: ratings[d.Key], Class: GapMid})
		}
	}
	return gaps
}

// Result is the full outcome of scoring one rating set.
type Result struct {
	Score        float64 `json:"score"` // unrounded aggregate
	DisplayScore float64 `json:"displayScore"`
	Tier         Tier    `json:"tier"`
	Gaps         []Gap   `json:"gaps"`
}

// Compute validates ratings against cat and derives the aggregate, tier, and
// ordered gap list in one pass.
func Compute(ratings RatingMap, cat *catalog.Catalog) (*Result, error) {
	if err := ratings.Validate(cat); err != nil {
		return nil, err
	}
	score := Aggregate(ratings, cat)
	return &Result{
		Score:        score,
		DisplayScore: RoundScore(score),
		Tier:         TierFor(score),
		Gaps:         Gaps(ratings, cat),
	}, nil
}
