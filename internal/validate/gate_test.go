package validate

import (
	"testing"

	"github.com/ppiankov/gazetteer/internal/model"
)

func TestGate_SharedCityTokenPasses(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{
		Title:   "Hotel Europa",
		Summary: "A historic hotel on the Rue de Rivoli in Paris.",
	}
	query := model.PlaceQuery{Name: "Hotel Europa", Address: "15 Rue de Rivoli, Paris"}

	if !g.Validate(candidate, query) {
		t.Errorf("shared street and city should validate, score=%f", g.Score(candidate, query))
	}
}

func TestGate_DisjointAddressFails(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{
		Title:   "St Mary's Church",
		Summary: "A parish church in Dublin, Ireland.",
	}
	query := model.PlaceQuery{Name: "St Mary's Church", Address: "Harrow, London"}

	if g.Validate(candidate, query) {
		t.Error("disjoint address and summary must not validate")
	}
	if got := g.Score(candidate, query); got != 0 {
		t.Errorf("zero intersection should score 0, got %f", got)
	}
}

func TestGate_EmptyAddressFailsClosed(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{Title: "x", Summary: "Anything at all here."}

	if g.Validate(candidate, model.PlaceQuery{Name: "x"}) {
		t.Error("empty address must fail closed")
	}
	if g.Validate(model.CandidateEntry{Title: "x"}, model.PlaceQuery{Name: "x", Address: "Paris"}) {
		t.Error("empty summary must fail closed")
	}
}

func TestGate_NumericTokensCount(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{
		Title:   "Studio 54",
		Summary: "A nightclub at 254 West 54th Street.",
	}
	query := model.PlaceQuery{Name: "Studio 54", Address: "254 W 54th St"}

	// "254" is a shared numeric token; numerics carry the important bonus.
	if !g.Validate(candidate, query) {
		t.Errorf("shared street number should validate, score=%f", g.Score(candidate, query))
	}
}

func TestGate_ScoreCappedAtOne(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{
		Title:   "x",
		Summary: "Elmwood Avenue Portland Oregon district",
	}
	query := model.PlaceQuery{Name: "x", Address: "Elmwood Avenue Portland Oregon district"}

	if got := g.Score(candidate, query); got != 1.0 {
		t.Errorf("many shared important tokens must cap at 1.0, got %f", got)
	}
}

func TestGate_CJKAddressSuffixSplitting(t *testing.T) {
	g := NewGate()
	candidate := model.CandidateEntry{
		Title:   "築地市場",
		Summary: "東京都 中央区 にある 市場",
	}
	query := model.PlaceQuery{Name: "築地市場", Address: "東京都 中央区 築地"}

	if !g.Validate(candidate, query) {
		t.Errorf("shared CJK district should validate, score=%f", g.Score(candidate, query))
	}
}

func TestIsImportantToken(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"254", true},      // numeric
		{"avenue", true},   // address noun
		{"portland", true}, // >= 4 runes
		{"ave", false},
		{"of", false},
	}
	for _, tt := range tests {
		if got := isImportantToken(tt.tok); got != tt.want {
			t.Errorf("isImportantToken(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}
