package assessment

import (
	"fmt"

	"assessment-workers/internal/catalog"
)

// MaxRecommendations caps the plan length regardless of how many gaps exist.
const MaxRecommendations = 4

// PlanItem is one recommended intervention, bound to the gap that produced it.
type PlanItem struct {
	Dimension  string `json:"dimension"`
	Rating     int    `json:"rating"`
	GapClass   string `json:"gapClass"`
	WindowDays string `json:"windowDays"`
	Action     string `json:"action"`
	Context    string `json:"context"`
}

// Recommend builds the intervention plan for a rating set: critical gaps
// before mid gaps, dimension declaration order within each group, capped at
// MaxRecommendations. The declared context tag is stamped onto every item so
// downstream rendering can phrase the window relative to the deal stage.
//
// A gap whose dimension has no entry in the recommendation table fails
// closed: the item is omitted and its dimension key reported in skipped, so
// callers can flag the catalog integrity gap without losing the rest of the
// plan. The cap applies to emitted items, not to gaps considered.
func Recommend(ratings RatingMap, contextTag string, cat *catalog.Catalog) (plan []PlanItem, skipped []string, err error) {
	if !catalog.IsValidContext(contextTag) {
		return nil, nil, fmt.Errorf("invalid context tag %q", contextTag)
	}

	plan = make([]PlanItem, 0, MaxRecommendations)
	for _, g := range Gaps(ratings, cat) {
		if len(plan) == MaxRecommendations {
			break
		}
		rec, ok := cat.Recommendations[g.Dimension]
		if !ok {
			skipped = append(skipped, g.Dimension)
			continue
		}
		plan = append(plan, PlanItem{
			Dimension:  g.Dimension,
			Rating:     g.Rating,
			GapClass:   g.Class,
			WindowDays: rec.WindowDays,
			Action:     rec.Action,
			Context:    contextTag,
		})
	}
	return plan, skipped, nil
}
