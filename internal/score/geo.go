package score

import (
	"math"

	"github.com/ppiankov/gazetteer/internal/model"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// geographicScore maps distance to a banded similarity, with a small
// category-dependent tolerance bonus. Returns 0 when either side has no
// coordinate; the scorer redistributes the weight in that case.
func geographicScore(query model.PlaceQuery, candidate model.CandidateEntry, cat Category) float64 {
	if query.Coordinate == nil || candidate.Coordinate == nil {
		return 0
	}

	d := HaversineKm(*query.Coordinate, *candidate.Coordinate)

	var s float64
	switch {
	case d < 0.1:
		s = 1.0
	case d < 0.5:
		s = 0.95
	case d < 1.0:
		s = 0.85
	case d < 2.0:
		s = 0.7
	case d < 5.0:
		s = 0.5
	case d < 10.0:
		s = 0.3
	default:
		s = math.Max(0, 0.2-d/100)
	}

	if bonus, ok := categoryDistanceBonus[cat]; ok {
		s += bonus
	}
	return clamp01(s)
}
