// internal/workers/catalog/search-levers/models.go
package searchlevers

import "assessment-workers/internal/catalog"

type Input struct {
	Text     string `json:"text,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Timing   string `json:"timing,omitempty"`
	Severity string `json:"severity,omitempty"`
	Size     int    `json:"size,omitempty"`
}

type Output struct {
	Levers    []catalog.Lever `json:"levers"`
	TotalHits int             `json:"totalHits"`
	Took      int             `json:"took"`
	Fallback  bool            `json:"fallback,omitempty"`
}

// searchResponse mirrors the subset of the Elasticsearch response we consume.
type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source catalog.Lever `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
