// internal/workers/communication/email-send/models.go
package emailsend

type Input struct {
	To            string `json:"to"`
	Name          string `json:"name,omitempty"`
	ArtifactURL   string `json:"artifactUrl"`
	ScorerRating  string `json:"scorerRating,omitempty"`
	ScorerScore   string `json:"scorerScore,omitempty"`
	ScorerContext string `json:"scorerContext,omitempty"`
}

type Output struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Provider  string `json:"provider"`
	SentAt    string `json:"sentAt"` // ISO 8601
}
