// internal/workers/catalog/filter-levers/models.go
package filterlevers

import "assessment-workers/internal/catalog"

type Input struct {
	Text     string `json:"text,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Timing   string `json:"timing,omitempty"`
	Severity string `json:"severity,omitempty"`
}

type Output struct {
	Levers []catalog.Lever `json:"levers"`
	Count  int             `json:"count"`
}
