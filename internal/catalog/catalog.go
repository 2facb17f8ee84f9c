// Package catalog holds the immutable content catalog: the lever table, the
// scoring dimension table, and the per-dimension recommendation table. The
// catalog is supplied at build or load time and is never mutated at runtime.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Domain is one of six fixed operational domain codes. The set of domain
// codes is the same set used as scoring dimension keys.
type Domain string

const (
	DomainIncident Domain = "incident"
	DomainChange   Domain = "change"
	DomainVendor   Domain = "vendor"
	DomainAudit    Domain = "audit"
	DomainKPI      Domain = "kpi"
	DomainProcess  Domain = "process"
)

// Severity classifies how damaging a lever is when left unaddressed.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
)

// Timing classifies when a lever typically surfaces in a hold period.
type Timing string

const (
	TimingPreClose Timing = "Pre-Close Red Flag"
	TimingFirst100 Timing = "First 100 Days"
	TimingOngoing  Timing = "Ongoing Hold"
)

// Lever is one catalogued organizational deficiency. Records are created at
// load time and immutable for the life of the process.
type Lever struct {
	ID          int      `json:"id"`
	Domain      Domain   `json:"domain"`
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	Timing      Timing   `json:"timing"`
	Definition  string   `json:"definition"`
	Symptoms    string   `json:"symptoms"`
	Impact      string   `json:"impact"`
	TargetState string   `json:"targetState"`
}

// Dimension is one of six fixed axes of organizational maturity, scored 1-5.
// The declaration order of the dimension table is the deterministic tie-break
// used when ordering gaps of equal class.
type Dimension struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	LowAnchor  string `json:"lowAnchor"`
	MidAnchor  string `json:"midAnchor"`
	HighAnchor string `json:"highAnchor"`
}

// Recommendation is the fixed intervention mapped to one dimension.
type Recommendation struct {
	WindowDays string `json:"windowDays"`
	Action     string `json:"action"`
}

// Catalog bundles the three content tables.
type Catalog struct {
	Levers          []Lever                   `json:"levers"`
	Dimensions      []Dimension               `json:"dimensions"`
	Recommendations map[string]Recommendation `json:"recommendations"`
}

// Context tags a visitor can declare before scoring.
const (
	ContextPreClose  = "pre"
	ContextPostClose = "post"
	ContextMidHold   = "hold"
)

var contextTags = map[string]bool{
	ContextPreClose:  true,
	ContextPostClose: true,
	ContextMidHold:   true,
}

// IsValidContext reports whether tag is one of the fixed situation tags.
func IsValidContext(tag string) bool {
	return contextTags[tag]
}

// domainOrder is the canonical declaration order of the six fixed keys.
var domainOrder = []Domain{
	DomainIncident,
	DomainChange,
	DomainVendor,
	DomainAudit,
	DomainKPI,
	DomainProcess,
}

var domains = map[Domain]bool{
	DomainIncident: true,
	DomainChange:   true,
	DomainVendor:   true,
	DomainAudit:    true,
	DomainKPI:      true,
	DomainProcess:  true,
}

var severities = map[Severity]bool{
	SeverityCritical: true,
	SeverityHigh:     true,
	SeverityMedium:   true,
}

var timings = map[Timing]bool{
	TimingPreClose: true,
	TimingFirst100: true,
	TimingOngoing:  true,
}

// DimensionKeys returns the dimension keys in declaration order.
func (c *Catalog) DimensionKeys() []string {
	keys := make([]string, 0, len(c.Dimensions))
	for _, d := range c.Dimensions {
		keys = append(keys, d.Key)
	}
	return keys
}

// HasDimension reports whether key is a declared dimension key.
func (c *Catalog) HasDimension(key string) bool {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return true
		}
	}
	return false
}

// Report lists the integrity violations found while sanitizing a catalog.
// Lever and dimension violations are repaired by omission; missing
// dimensions and recommendation-table gaps cannot be repaired and are
// reported so operators can fix the source file.
type Report struct {
	DroppedLevers          []int
	DroppedDimensions      []string
	MissingDimensions      []string
	MissingRecommendations []string
}

// Clean reports whether the catalog passed the integrity check untouched.
func (r *Report) Clean() bool {
	return len(r.DroppedLevers) == 0 &&
		len(r.DroppedDimensions) == 0 &&
		len(r.MissingDimensions) == 0 &&
		len(r.MissingRecommendations) == 0
}

// Sanitize fails closed over partial content updates: levers with duplicate
// IDs or invalid enum fields are dropped, as are dimensions with duplicate
// or unknown keys, rather than breaking the read path. Dimension keys absent
// from the fixed set and dimensions without a recommendation entry are
// reported but cannot be repaired here.
func (c *Catalog) Sanitize() Report {
	var report Report

	seenLevers := make(map[int]bool, len(c.Levers))
	keptLevers := c.Levers[:0]
	for _, lv := range c.Levers {
		if seenLevers[lv.ID] || !domains[lv.Domain] || !severities[lv.Severity] || !timings[lv.Timing] {
			report.DroppedLevers = append(report.DroppedLevers, lv.ID)
			continue
		}
		seenLevers[lv.ID] = true
		keptLevers = append(keptLevers, lv)
	}
	c.Levers = keptLevers

	seenDims := make(map[string]bool, len(c.Dimensions))
	keptDims := c.Dimensions[:0]
	for _, d := range c.Dimensions {
		if seenDims[d.Key] || !domains[Domain(d.Key)] {
			report.DroppedDimensions = append(report.DroppedDimensions, d.Key)
			continue
		}
		seenDims[d.Key] = true
		keptDims = append(keptDims, d)
	}
	c.Dimensions = keptDims

	for _, key := range domainOrder {
		if !seenDims[string(key)] {
			report.MissingDimensions = append(report.MissingDimensions, string(key))
		}
	}
	for _, d := range c.Dimensions {
		if _, ok := c.Recommendations[d.Key]; !ok {
			report.MissingRecommendations = append(report.MissingRecommendations, d.Key)
		}
	}

	return report
}

// Load reads a catalog override from a JSON file. Callers should Sanitize
// the result before use.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &cat, nil
}
