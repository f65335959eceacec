package score

import (
	"math"
	"testing"

	"github.com/ppiankov/gazetteer/internal/model"
)

func TestHaversineKm(t *testing.T) {
	sf := model.Coordinate{Lat: 37.7749, Lon: -122.4194}
	la := model.Coordinate{Lat: 34.0522, Lon: -118.2437}

	d := HaversineKm(sf, la)
	if math.Abs(d-559) > 10 {
		t.Errorf("SF-LA distance: got %.1f km, want ~559 km", d)
	}

	if d := HaversineKm(sf, sf); d != 0 {
		t.Errorf("zero distance expected for identical points, got %f", d)
	}
}

func TestGeographicScore_Bands(t *testing.T) {
	base := model.Coordinate{Lat: 48.8584, Lon: 2.2945}
	query := model.PlaceQuery{Name: "x", Coordinate: &base}

	// Shift longitude by known distances along the 48.86° parallel
	// (1 degree of longitude there is about 73.2 km).
	kmPerLonDegree := 111.32 * math.Cos(base.Lat*math.Pi/180)
	at := func(km float64) model.CandidateEntry {
		return model.CandidateEntry{
			Title:      "x",
			Coordinate: &model.Coordinate{Lat: base.Lat, Lon: base.Lon + km/kmPerLonDegree},
		}
	}

	tests := []struct {
		km   float64
		want float64
	}{
		{0.05, 1.0},
		{0.3, 0.95},
		{0.8, 0.85},
		{1.5, 0.7},
		{3.0, 0.5},
		{8.0, 0.3},
		{50.0, 0.0}, // 0.2 - 50/100 < 0 clamps to 0
	}
	for _, tt := range tests {
		got := geographicScore(query, at(tt.km), CategoryUnknown)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("distance %.2f km: got %f, want %f", tt.km, got, tt.want)
		}
	}
}

func TestGeographicScore_MissingCoordinates(t *testing.T) {
	query := model.PlaceQuery{Name: "x", Coordinate: &model.Coordinate{Lat: 1, Lon: 1}}
	if got := geographicScore(query, model.CandidateEntry{Title: "x"}, CategoryUnknown); got != 0 {
		t.Errorf("candidate without coordinate: got %f, want 0", got)
	}
	if got := geographicScore(model.PlaceQuery{Name: "x"}, model.CandidateEntry{Title: "x", Coordinate: &model.Coordinate{Lat: 1, Lon: 1}}, CategoryUnknown); got != 0 {
		t.Errorf("query without coordinate: got %f, want 0", got)
	}
}

func TestGeographicScore_CategoryBonus(t *testing.T) {
	c := model.Coordinate{Lat: 40.0, Lon: 116.0}
	near := model.Coordinate{Lat: 40.0, Lon: 116.02} // ~1.7 km
	query := model.PlaceQuery{Name: "x", Coordinate: &c}
	candidate := model.CandidateEntry{Title: "x", Coordinate: &near}

	plain := geographicScore(query, candidate, CategoryUnknown)
	transit := geographicScore(query, candidate, CategoryTransportation)
	if math.Abs(transit-(plain+0.05)) > 1e-9 {
		t.Errorf("transit bonus: got %f, want %f", transit, plain+0.05)
	}

	// Bonus never pushes past 1.0.
	exact := geographicScore(query, model.CandidateEntry{Title: "x", Coordinate: &c}, CategoryTransportation)
	if exact != 1.0 {
		t.Errorf("bonus must clamp at 1.0, got %f", exact)
	}
}
