package model

import "fmt"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// PlaceQuery describes the physical place the caller wants resolved.
// Name is required; address and coordinate sharpen scoring when present.
type PlaceQuery struct {
	Name       string      `json:"name"`
	Address    string      `json:"address,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// CandidateEntry is one knowledge-base record considered as a possible match.
type CandidateEntry struct {
	Source       string      `json:"source"`                  // e.g. "wikipedia"
	Language     string      `json:"language"`                // edition code, e.g. "en"
	Title        string      `json:"title"`                   // canonical entry title
	Summary      string      `json:"summary"`                 // lead extract
	Coordinate   *Coordinate `json:"coordinate,omitempty"`    // entry coordinate, if any
	ThumbnailRef string      `json:"thumbnail_ref,omitempty"` // thumbnail URL, if any
}

// NoMatchReason distinguishes why resolution produced no match.
type NoMatchReason string

const (
	// ReasonNoOverlap: no candidate shared a meaningful token with the query.
	ReasonNoOverlap NoMatchReason = "no_overlap"
	// ReasonLowConfidence: overlap found but no candidate cleared the threshold.
	ReasonLowConfidence NoMatchReason = "low_confidence"
	// ReasonValidationFailed: a medium-confidence candidate failed the address gate.
	ReasonValidationFailed NoMatchReason = "validation_failed"
)

// MatchResult is the outcome of a resolution: either a matched candidate
// with its score breakdown, or an explicit no-match with a reason.
type MatchResult struct {
	Matched   bool            `json:"matched"`
	Candidate *CandidateEntry `json:"candidate,omitempty"`
	Score     *ScoreBreakdown `json:"score,omitempty"`
	Reason    NoMatchReason   `json:"reason,omitempty"`
}

// Match builds a positive result.
func Match(candidate CandidateEntry, score ScoreBreakdown) MatchResult {
	return MatchResult{Matched: true, Candidate: &candidate, Score: &score}
}

// NoMatch builds a negative result with the given reason.
func NoMatch(reason NoMatchReason) MatchResult {
	return MatchResult{Matched: false, Reason: reason}
}
