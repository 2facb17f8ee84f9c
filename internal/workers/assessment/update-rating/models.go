// internal/workers/assessment/update-rating/models.go
package updaterating

type Input struct {
	SessionID string `json:"sessionId"`
	Dimension string `json:"dimension"`
	Rating    int    `json:"rating"`
}

type Output struct {
	SessionID string         `json:"sessionId"`
	State     string         `json:"state"`
	Ratings   map[string]int `json:"ratings"`
}
