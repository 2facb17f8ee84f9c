// internal/workers/lead/create-lead-record/models.go
package createleadrecord

type Input struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ScorerRating  string `json:"scorerRating,omitempty"`
	ScorerScore   string `json:"scorerScore,omitempty"`
	ScorerContext string `json:"scorerContext,omitempty"`
	ArtifactURL   string `json:"artifactUrl,omitempty"`
	IntakeSent    bool   `json:"sent"`
}

type Output struct {
	LeadID    string `json:"leadId"`
	CreatedAt string `json:"leadCreatedAt"`
}
