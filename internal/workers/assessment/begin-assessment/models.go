// internal/workers/assessment/begin-assessment/models.go
package beginassessment

import "assessment-workers/internal/catalog"

type Input struct {
	Context string `json:"context"`
}

type Output struct {
	SessionID  string              `json:"sessionId"`
	State      string              `json:"state"`
	Context    string              `json:"context"`
	Dimensions []catalog.Dimension `json:"dimensions"`
	Ratings    map[string]int      `json:"ratings"`
}
