// Package models holds shared persistence models.
package models

import "time"

// LeadRecord is one captured lead as stored in Postgres. ScorerRating,
// ScorerScore and ScorerContext are empty when the visitor submitted without
// completing an assessment.
type LeadRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ScorerRating  string    `json:"scorerRating,omitempty"`
	ScorerScore   string    `json:"scorerScore,omitempty"`
	ScorerContext string    `json:"scorerContext,omitempty"`
	ArtifactURL   string    `json:"artifactUrl,omitempty"`
	IntakeSent    bool      `json:"intakeSent"`
	CreatedAt     time.Time `json:"createdAt"`
}
