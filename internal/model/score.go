package model

import "time"

// Weights are the per-dimension multipliers applied when combining
// sub-scores. They always sum to 1.0.
type Weights struct {
	Semantic   float64 `json:"semantic"`
	Geographic float64 `json:"geographic"`
	Type       float64 `json:"type"`
}

// ScoreBreakdown is the transparent result of scoring one candidate
// against one query. Total is the weighted sum of the three dimensions,
// clamped to [0,1].
type ScoreBreakdown struct {
	Semantic            float64 `json:"semantic"`
	Geographic          float64 `json:"geographic"`
	Type                float64 `json:"type"`
	Weights             Weights `json:"weights"`
	Total               float64 `json:"total"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// AboveThreshold reports whether the candidate cleared its threshold.
func (s ScoreBreakdown) AboveThreshold() bool {
	return s.Total > s.ConfidenceThreshold
}

// CacheRecord is one accepted resolution stored by the result cache.
type CacheRecord struct {
	Key        string         `json:"key"`
	Entry      CandidateEntry `json:"entry"`
	Score      ScoreBreakdown `json:"score"`
	InsertedAt time.Time      `json:"inserted_at"`
}
