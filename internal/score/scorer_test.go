package score

import (
	"math"
	"testing"

	"github.com/ppiankov/gazetteer/internal/model"
)

func coord(lat, lon float64) *model.Coordinate {
	return &model.Coordinate{Lat: lat, Lon: lon}
}

func TestScorer_TotalIsWeightedSum(t *testing.T) {
	scorer := NewScorer()

	queries := []model.PlaceQuery{
		{Name: "Golden Gate Bridge", Coordinate: coord(37.8199, -122.4783)},
		{Name: "Tokyo Tower"},
		{Name: "museum near the river", Address: "Berlin"},
		{Name: "浅草寺", Coordinate: coord(35.7148, 139.7967)},
	}
	candidates := []model.CandidateEntry{
		{Title: "Golden Gate Bridge", Coordinate: coord(37.8199, -122.4783)},
		{Title: "Tokyo Skytree", Coordinate: coord(35.7101, 139.8107)},
		{Title: "Pergamon Museum"},
		{Title: "Sensō-ji Temple", Coordinate: coord(35.7148, 139.7967)},
	}

	for _, q := range queries {
		for _, c := range candidates {
			b := scorer.Score(q, c)

			if b.Total < 0 || b.Total > 1 {
				t.Errorf("score(%q, %q): total %f out of [0,1]", q.Name, c.Title, b.Total)
			}
			want := b.Weights.Semantic*b.Semantic + b.Weights.Geographic*b.Geographic + b.Weights.Type*b.Type
			if math.Abs(b.Total-want) > 1e-9 {
				t.Errorf("score(%q, %q): total %f != weighted sum %f", q.Name, c.Title, b.Total, want)
			}
			wsum := b.Weights.Semantic + b.Weights.Geographic + b.Weights.Type
			if math.Abs(wsum-1.0) > 1e-9 {
				t.Errorf("score(%q, %q): weights sum to %f", q.Name, c.Title, wsum)
			}
		}
	}
}

func TestScorer_ExactMatchScoresNearOne(t *testing.T) {
	scorer := NewScorer()

	query := model.PlaceQuery{Name: "Golden Gate Bridge", Coordinate: coord(37.8199, -122.4783)}
	candidate := model.CandidateEntry{Title: "Golden Gate Bridge", Coordinate: coord(37.8199, -122.4783)}

	b := scorer.Score(query, candidate)
	if b.Total < 0.95 {
		t.Errorf("exact name + exact coordinate: total %f, want >= 0.95", b.Total)
	}
	if !b.AboveThreshold() {
		t.Errorf("exact match must clear threshold %f, got total %f", b.ConfidenceThreshold, b.Total)
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer()

	query := model.PlaceQuery{Name: "British Museum", Address: "London", Coordinate: coord(51.5194, -0.1270)}
	candidate := model.CandidateEntry{Title: "British Museum", Coordinate: coord(51.5194, -0.1269)}

	first := scorer.Score(query, candidate)
	second := scorer.Score(query, candidate)
	if first != second {
		t.Errorf("scoring is not idempotent: %+v vs %+v", first, second)
	}
}

func TestScorer_GeoWeightRedistributedWithoutCoordinate(t *testing.T) {
	scorer := NewScorer()

	query := model.PlaceQuery{Name: "Pergamon Museum"}
	candidate := model.CandidateEntry{Title: "Pergamon Museum"}

	b := scorer.Score(query, candidate)
	if b.Weights.Geographic != 0 {
		t.Errorf("geographic weight should be 0 without coordinates, got %f", b.Weights.Geographic)
	}
	if b.Weights.Semantic != 0.9 {
		t.Errorf("semantic weight should absorb geographic weight: got %f, want 0.9", b.Weights.Semantic)
	}
	if b.Geographic != 0 {
		t.Errorf("geographic score should be 0 without coordinates, got %f", b.Geographic)
	}
}

func TestScorer_DynamicWeights(t *testing.T) {
	scorer := NewScorer()
	candidate := model.CandidateEntry{Title: "Central Station", Coordinate: coord(52.52, 13.40)}

	tests := []struct {
		name  string
		query model.PlaceQuery
		want  model.Weights
	}{
		{
			name:  "proximity cue favors geography",
			query: model.PlaceQuery{Name: "station nearby", Coordinate: coord(52.52, 13.41)},
			want:  model.Weights{Semantic: 0.3, Geographic: 0.6, Type: 0.1},
		},
		{
			name:  "type cue favors taxonomy",
			query: model.PlaceQuery{Name: "some kind of station", Coordinate: coord(52.52, 13.41)},
			want:  model.Weights{Semantic: 0.4, Geographic: 0.3, Type: 0.3},
		},
		{
			name:  "long query favors semantics",
			query: model.PlaceQuery{Name: "Central Railway Station of the Capital City", Coordinate: coord(52.52, 13.41)},
			want:  model.Weights{Semantic: 0.6, Geographic: 0.3, Type: 0.1},
		},
		{
			name:  "default weights",
			query: model.PlaceQuery{Name: "Central Station", Coordinate: coord(52.52, 13.41)},
			want:  model.Weights{Semantic: 0.5, Geographic: 0.4, Type: 0.1},
		},
	}

	for _, tt := range tests {
		b := scorer.Score(tt.query, candidate)
		if b.Weights != tt.want {
			t.Errorf("%s: weights %+v, want %+v", tt.name, b.Weights, tt.want)
		}
	}
}

func TestConfidenceThreshold(t *testing.T) {
	tests := []struct {
		query model.PlaceQuery
		want  float64
	}{
		{model.PlaceQuery{Name: "Golden Gate Bridge"}, 0.7},
		{model.PlaceQuery{Name: "the exact Golden Gate Bridge"}, 0.85},
		{model.PlaceQuery{Name: "Louvre"}, 0.6},
		{model.PlaceQuery{Name: "Louvre", Address: "the specific one in Paris"}, 0.85},
	}
	for _, tt := range tests {
		if got := ConfidenceThreshold(tt.query); got != tt.want {
			t.Errorf("ConfidenceThreshold(%q): got %f, want %f", tt.query.Name, got, tt.want)
		}
	}
}

func TestScorer_SemanticOnlyMatchesBreakdown(t *testing.T) {
	scorer := NewScorer()

	query := model.PlaceQuery{Name: "Sagrada Familia"}
	candidate := model.CandidateEntry{Title: "Sagrada Família"}

	b := scorer.Score(query, candidate)
	if got := scorer.SemanticOnly(query, candidate); got != b.Semantic {
		t.Errorf("SemanticOnly %f != breakdown semantic %f", got, b.Semantic)
	}
}

func TestScorer_UnrelatedCandidateStaysBelowGate(t *testing.T) {
	// Shares no tokens and no substrings, and sits far away: must both fail
	// the overlap gate and score low.
	query := model.PlaceQuery{Name: "Golden Gate Bridge", Coordinate: coord(37.8199, -122.4783)}
	candidate := model.CandidateEntry{Title: "木村屋", Coordinate: coord(35.68, 139.76)}

	if HasSubstantialOverlap(query.Name, candidate.Title) {
		t.Fatal("unrelated names must fail the overlap gate")
	}

	b := NewScorer().Score(query, candidate)
	if b.AboveThreshold() {
		t.Errorf("unrelated distant candidate cleared threshold: %+v", b)
	}
}
