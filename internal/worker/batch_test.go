package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/gazetteer/internal/model"
)

func TestParseQueryLine(t *testing.T) {
	tests := []struct {
		line    string
		want    model.PlaceQuery
		wantErr bool
	}{
		{
			line: "Golden Gate Bridge",
			want: model.PlaceQuery{Name: "Golden Gate Bridge"},
		},
		{
			line: "Rose Garden Cafe | 12 Elmwood Avenue, Portland",
			want: model.PlaceQuery{Name: "Rose Garden Cafe", Address: "12 Elmwood Avenue, Portland"},
		},
		{
			line: "浅草寺 | 東京都台東区 | 35.7148, 139.7967",
			want: model.PlaceQuery{
				Name:       "浅草寺",
				Address:    "東京都台東区",
				Coordinate: &model.Coordinate{Lat: 35.7148, Lon: 139.7967},
			},
		},
		{
			// Empty middle field: coordinate without address.
			line: "Hyde Park || 51.5073, -0.1657",
			want: model.PlaceQuery{Name: "Hyde Park", Coordinate: &model.Coordinate{Lat: 51.5073, Lon: -0.1657}},
		},
		{line: " | address only", wantErr: true},
		{line: "x | a | 1,2 | extra", wantErr: true},
		{line: "x | a | not-a-coordinate", wantErr: true},
		{line: "x | a | 91.0, 10.0", wantErr: true},
		{line: "x | a | 10.0, 181.0", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseQueryLine(tt.line)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQueryLine(%q): expected error", tt.line)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQueryLine(%q): %v", tt.line, err)
			continue
		}
		if got.Name != tt.want.Name || got.Address != tt.want.Address {
			t.Errorf("ParseQueryLine(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
		switch {
		case got.Coordinate == nil && tt.want.Coordinate != nil:
			t.Errorf("ParseQueryLine(%q): missing coordinate", tt.line)
		case got.Coordinate != nil && tt.want.Coordinate == nil:
			t.Errorf("ParseQueryLine(%q): unexpected coordinate %v", tt.line, got.Coordinate)
		case got.Coordinate != nil && *got.Coordinate != *tt.want.Coordinate:
			t.Errorf("ParseQueryLine(%q): coordinate %v, want %v", tt.line, got.Coordinate, tt.want.Coordinate)
		}
	}
}

func TestReadQueriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.txt")
	content := `# places to resolve
Golden Gate Bridge

Rose Garden Cafe | 12 Elmwood Avenue, Portland
Golden Gate Bridge
浅草寺 | | 35.7148, 139.7967
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	queries, err := ReadQueriesFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(queries) != 3 {
		t.Fatalf("comments, blanks and duplicates must be dropped: got %d queries", len(queries))
	}
	if queries[0].Name != "Golden Gate Bridge" || queries[2].Name != "浅草寺" {
		t.Errorf("order not preserved: %+v", queries)
	}
}

func TestReadQueriesFromFile_ErrorCarriesLineNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.txt")
	content := "Golden Gate Bridge\nbad | place | 99,99,99\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadQueriesFromFile(path)
	if err == nil {
		t.Fatal("malformed coordinate must fail the read")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestReadQueriesFromFile_Missing(t *testing.T) {
	if _, err := ReadQueriesFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing file must error")
	}
}

// countingResolver matches names present in its table and errors on names
// starting with "fail".
type countingResolver struct {
	mu      sync.Mutex
	matches map[string]bool
	calls   int
}

func (r *countingResolver) Resolve(ctx context.Context, query model.PlaceQuery) (model.MatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if strings.HasPrefix(query.Name, "fail") {
		return model.MatchResult{}, errors.New("boom")
	}
	if r.matches[query.Name] {
		return model.Match(model.CandidateEntry{Title: query.Name}, model.ScoreBreakdown{Total: 0.9}), nil
	}
	return model.NoMatch(model.ReasonNoOverlap), nil
}

func TestProcessQueries(t *testing.T) {
	resolver := &countingResolver{matches: map[string]bool{"A": true, "C": true}}
	b := NewBatchProcessor(resolver, 3)

	queries := []model.PlaceQuery{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "fail-D"},
	}
	results := b.ProcessQueries(context.Background(), queries)
	if len(results) != len(queries) {
		t.Fatalf("got %d results for %d queries", len(results), len(queries))
	}

	matched, failed := 0, 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			continue
		}
		if r.Match.Matched {
			matched++
		}
	}
	if matched != 2 || failed != 1 {
		t.Errorf("matched=%d failed=%d, want 2 and 1", matched, failed)
	}
	if resolver.calls != len(queries) {
		t.Errorf("every query must be resolved once, got %d calls", resolver.calls)
	}
}

func TestProcessQueries_Empty(t *testing.T) {
	b := NewBatchProcessor(&countingResolver{}, 2)
	if results := b.ProcessQueries(context.Background(), nil); len(results) != 0 {
		t.Errorf("no queries, no results: got %d", len(results))
	}
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.txt")
	if err := os.WriteFile(path, []byte("A\nB\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &countingResolver{matches: map[string]bool{"A": true}}
	b := NewBatchProcessor(resolver, 2)
	results, err := b.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("process file: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
