package score

import "strings"

// Classify maps a place name to a taxonomy category by keyword membership.
// The first category (in fixed order) with a matching keyword wins; names
// matching nothing classify as CategoryUnknown.
func Classify(name string) Category {
	n := Normalize(name)
	if n == "" {
		return CategoryUnknown
	}
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if keywordMatches(n, kw) {
				return cat
			}
		}
	}
	return CategoryUnknown
}

// keywordMatches requires token-boundary matches for Latin keywords and
// plain containment for CJK terms, which carry no word boundaries.
func keywordMatches(normalized, keyword string) bool {
	if isASCII(keyword) {
		for _, tok := range strings.Fields(normalized) {
			if tok == keyword {
				return true
			}
		}
		// Multi-word keywords ("city hall") need substring matching.
		if strings.Contains(keyword, " ") && strings.Contains(normalized, keyword) {
			return true
		}
		return false
	}
	return strings.Contains(normalized, keyword)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// typeScore compares two categories: exact match 1.0, adjacent 0.6, else 0.
// Two unclassified names count as an exact match; the low nominal weight of
// the type dimension keeps that from dominating.
func typeScore(a, b Category) float64 {
	if a == b {
		return 1.0
	}
	if a == CategoryUnknown || b == CategoryUnknown {
		return 0
	}
	for _, rel := range relatedCategories[a] {
		if rel == b {
			return 0.6
		}
	}
	return 0
}
