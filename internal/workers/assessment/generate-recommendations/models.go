// internal/workers/assessment/generate-recommendations/models.go
package generaterecommendations

import "assessment-workers/internal/assessment"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	SessionID       string                `json:"sessionId"`
	Context         string                `json:"context"`
	Recommendations []assessment.PlanItem `json:"recommendations"`
	Count           int                   `json:"count"`
}
