// Package sessions holds per-visitor assessment state: the declared context
// tag, the working rating map, the scoring state machine, and session-scoped
// UI flags. State lives in Redis keyed by session ID with a sliding TTL.
package sessions

import (
	"fmt"
	"time"

	"assessment-workers/internal/assessment"
	"assessment-workers/internal/catalog"
)

// State is the scoring lifecycle of one session.
type State string

const (
	StateUnscored State = "unscored" // no context chosen; sessions never persist here
	StateScoring  State = "scoring"  // context chosen, result not revealed
	StateScored   State = "scored"   // result computed and revealed
)

// Session is one visitor's assessment in progress.
type Session struct {
	ID      string               `json:"id"`
	State   State                `json:"state"`
	Context string               `json:"context"`
	Ratings assessment.RatingMap `json:"ratings"`

	// PromoDismissed records that the visitor closed the sticky promotional
	// bar. It survives re-scoring and resets only when the session expires.
	PromoDismissed bool `json:"promoDismissed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a session already in scoring: choosing the context tag is the
// transition out of unscored, with no other precondition. Every rating is
// preset to the neutral default, so a visitor who reveals without touching a
// slider gets a defined result instead of a partial map.
func New(id, contextTag string, cat *catalog.Catalog) (*Session, error) {
	if !catalog.IsValidContext(contextTag) {
		return nil, fmt.Errorf("invalid context tag %q", contextTag)
	}
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		State:     StateScoring,
		Context:   contextTag,
		Ratings:   assessment.NewRatingMap(cat),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetRating applies one rating, last writer wins. Re-rating after reveal
// drops the session back to scoring so the stale result cannot be shown.
func (s *Session) SetRating(dimension string, rating int, cat *catalog.Catalog) error {
	if !cat.HasDimension(dimension) {
		return fmt.Errorf("unknown dimension %q", dimension)
	}
	if rating < assessment.MinRating || rating > assessment.MaxRating {
		return fmt.Errorf("rating %d out of range [%d,%d]", rating, assessment.MinRating, assessment.MaxRating)
	}
	s.Ratings[dimension] = rating
	s.State = StateScoring
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Reveal computes the assessment result and marks the session scored.
func (s *Session) Reveal(cat *catalog.Catalog) (*assessment.Result, error) {
	result, err := assessment.Compute(s.Ratings, cat)
	if err != nil {
		return nil, err
	}
	s.State = StateScored
	s.UpdatedAt = time.Now().UTC()
	return result, nil
}

// DismissPromo marks the promotional bar closed for the rest of the session.
func (s *Session) DismissPromo() {
	s.PromoDismissed = true
	s.UpdatedAt = time.Now().UTC()
}
