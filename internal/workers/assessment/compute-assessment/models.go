// internal/workers/assessment/compute-assessment/models.go
package computeassessment

import "assessment-workers/internal/assessment"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	SessionID string           `json:"sessionId"`
	State     string           `json:"state"`
	Context   string           `json:"context"`
	Score     float64          `json:"score"` // rounded to one decimal for display
	Tier      string           `json:"tier"`
	Gaps      []assessment.Gap `json:"gaps"`
}
