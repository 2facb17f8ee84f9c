// internal/workers/lead/capture-lead/models.go
package capturelead

type Input struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ScorerRating  string `json:"scorerRating,omitempty"`
	ScorerScore   string `json:"scorerScore,omitempty"`
	ScorerContext string `json:"scorerContext,omitempty"`
}

// Output reports the capture outcome. OK means the submission was accepted
// and the artifact delivered; Sent tracks the intake endpoint separately so
// a rejected intake call still counts as a successful capture for the user.
type Output struct {
	OK          bool   `json:"ok"`
	Sent        bool   `json:"sent"`
	ArtifactURL string `json:"artifactUrl,omitempty"`
	FallbackTo  string `json:"fallbackTo,omitempty"`
	Error       string `json:"error,omitempty"`
}
