// internal/workers/lead/compose-mailto/models.go
package composemailto

type Input struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ScorerRating  string `json:"scorerRating,omitempty"`
	ScorerScore   string `json:"scorerScore,omitempty"`
	ScorerContext string `json:"scorerContext,omitempty"`
}

type Output struct {
	MailtoURL string `json:"mailtoUrl"`
}
