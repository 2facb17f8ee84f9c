package catalog

import "strings"

// FilterAll is the sentinel that bypasses an enum predicate.
const FilterAll = "All"

// Query holds the four conjunctive filter predicates. Empty or "All" values
// bypass their predicate.
type Query struct {
	Text     string
	Domain   string
	Timing   string
	Severity string
}

// Filter returns the order-preserving subset of levers satisfying every
// non-bypassed predicate. Text matching is case-insensitive substring
// matching against the lever name and definition. The operation is pure; an
// empty result is a valid outcome.
func Filter(levers []Lever, q Query) []Lever {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	result := make([]Lever, 0, len(levers))
	for _, lv := range levers {
		if text != "" &&
			!strings.Contains(strings.ToLower(lv.Name), text) &&
			!strings.Contains(strings.ToLower(lv.Definition), text) {
			continue
		}
		if !matchesEnum(q.Domain, string(lv.Domain)) {
			continue
		}
		if !matchesEnum(q.Timing, string(lv.Timing)) {
			continue
		}
		if !matchesEnum(q.Severity, string(lv.Severity)) {
			continue
		}
		result = append(result, lv)
	}
	return result
}

func matchesEnum(predicate, value string) bool {
	if predicate == "" || predicate == FilterAll {
		return true
	}
	return predicate == value
}
