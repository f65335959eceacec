// Package score computes the three-dimensional match score between a place
// query and a knowledge-base candidate. All functions are pure and
// deterministic: the same (query, candidate) pair always yields the same
// breakdown.
package score

import (
	"strings"

	"github.com/ppiankov/gazetteer/internal/model"
)

// Nominal dimension weights before dynamic adjustment.
const (
	baseSemanticWeight   = 0.5
	baseGeographicWeight = 0.4
	baseTypeWeight       = 0.1
)

// Confidence threshold levels.
const (
	baseThreshold  = 0.7
	exactThreshold = 0.85
	shortThreshold = 0.6

	shortQueryRunes = 10
	longQueryRunes  = 30
)

// HighConfidenceCutoff is the semantic-only level above which a candidate is
// accepted immediately, short-circuiting the remaining language tasks.
const HighConfidenceCutoff = 0.8

// Scorer scores candidates against queries. It holds no state; a single
// instance is safe for concurrent use.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the full breakdown for one candidate.
func (s *Scorer) Score(query model.PlaceQuery, candidate model.CandidateEntry) model.ScoreBreakdown {
	queryCat := Classify(query.Name)
	candCat := Classify(candidate.Title)

	semantic := semanticScore(query.Name, candidate.Title)
	geographic := geographicScore(query, candidate, queryCat)
	typ := typeScore(queryCat, candCat)

	weights := dynamicWeights(query, query.Coordinate != nil && candidate.Coordinate != nil)
	total := clamp01(weights.Semantic*semantic + weights.Geographic*geographic + weights.Type*typ)

	return model.ScoreBreakdown{
		Semantic:            semantic,
		Geographic:          geographic,
		Type:                typ,
		Weights:             weights,
		Total:               total,
		ConfidenceThreshold: ConfidenceThreshold(query),
	}
}

// SemanticOnly exposes the semantic dimension for the early-termination
// check, which fires before geography is worth computing.
func (s *Scorer) SemanticOnly(query model.PlaceQuery, candidate model.CandidateEntry) float64 {
	return semanticScore(query.Name, candidate.Title)
}

// dynamicWeights adjusts the nominal (0.5, 0.4, 0.1) split from query cues.
// Proximity cues favor geography, type cues favor the taxonomy, and long
// descriptive names favor the semantic dimension. When either side cannot
// contribute a coordinate the geographic weight folds into semantic.
func dynamicWeights(query model.PlaceQuery, hasGeo bool) model.Weights {
	text := strings.ToLower(query.Name + " " + query.Address)

	w := model.Weights{
		Semantic:   baseSemanticWeight,
		Geographic: baseGeographicWeight,
		Type:       baseTypeWeight,
	}
	switch {
	case containsAny(text, proximityCues):
		w = model.Weights{Semantic: 0.3, Geographic: 0.6, Type: 0.1}
	case containsAny(text, typeCues):
		w = model.Weights{Semantic: 0.4, Geographic: 0.3, Type: 0.3}
	case len([]rune(query.Name)) > longQueryRunes:
		w = model.Weights{Semantic: 0.6, Geographic: 0.3, Type: 0.1}
	}

	if !hasGeo {
		w.Semantic += w.Geographic
		w.Geographic = 0
	}
	return w
}

// ConfidenceThreshold derives the acceptance bar from the query text: a
// request phrased as exact raises it, a short ambiguous name lowers it.
func ConfidenceThreshold(query model.PlaceQuery) float64 {
	text := strings.ToLower(query.Name + " " + query.Address)
	if containsAny(text, exactCues) {
		return exactThreshold
	}
	if len([]rune(query.Name)) < shortQueryRunes {
		return shortThreshold
	}
	return baseThreshold
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
