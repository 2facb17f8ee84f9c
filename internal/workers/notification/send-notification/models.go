// internal/workers/notification/send-notification/models.go
package sendnotification

type Input struct {
	LeadID        string `json:"leadId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ScorerRating  string `json:"scorerRating,omitempty"`
	ScorerScore   string `json:"scorerScore,omitempty"`
	ScorerContext string `json:"scorerContext,omitempty"`
	IntakeSent    bool   `json:"intakeSent"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent" or "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)
