// Package validate implements the secondary acceptance check for
// medium-confidence candidates: geographic/address keyword overlap between
// the caller's address and the candidate's summary. Name similarity alone
// cannot distinguish two same-named places in different cities; this gate is
// the disambiguator when coordinates are unavailable.
package validate

import (
	"strings"
	"unicode"

	"github.com/ppiankov/gazetteer/internal/model"
	"github.com/ppiankov/gazetteer/internal/score"
)

const passScore = 0.5

// importantBonus is credited once per shared location-type token; a single
// solid shared place word (a city name, a street number) carries the gate.
const importantBonus = 0.5

// addressNouns are address/region-type words across the supported languages.
var addressNouns = map[string]struct{}{
	// English
	"street": {}, "road": {}, "avenue": {}, "boulevard": {}, "lane": {},
	"district": {}, "city": {}, "town": {}, "village": {}, "county": {},
	"province": {}, "region": {}, "state": {}, "prefecture": {},
	// French / Spanish / German / Italian
	"rue": {}, "ville": {}, "calle": {}, "ciudad": {}, "strasse": {},
	"stadt": {}, "via": {}, "piazza": {},
	// CJK and Korean (normalized forms)
	"路": {}, "街": {}, "市": {}, "区": {}, "區": {}, "県": {}, "省": {},
	"町": {}, "村": {}, "통": {}, "시": {}, "구": {}, "동": {},
}

// stopwords are dropped from both keyword sets before comparison.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "at": {}, "on": {},
	"and": {}, "or": {}, "is": {}, "was": {}, "are": {}, "to": {}, "from": {},
	"near": {}, "by": {}, "with": {}, "for": {}, "its": {}, "it": {},
	"de": {}, "la": {}, "le": {}, "el": {}, "der": {}, "die": {}, "das": {},
	"und": {}, "et": {}, "y": {},
}

// Gate checks address-keyword overlap between query and candidate.
type Gate struct{}

// NewGate creates a gate.
func NewGate() *Gate {
	return &Gate{}
}

// Validate reports whether the candidate's summary shares enough location
// keywords with the query's address. An empty address cannot validate
// anything: the gate fails closed.
func (g *Gate) Validate(candidate model.CandidateEntry, query model.PlaceQuery) bool {
	return g.Score(candidate, query) > passScore
}

// Score computes the combined overlap score: Jaccard similarity of the two
// keyword sets plus a bonus per shared important location token, capped at 1.
func (g *Gate) Score(candidate model.CandidateEntry, query model.PlaceQuery) float64 {
	queryKeys := locationKeywords(query.Address)
	candKeys := locationKeywords(candidate.Summary)
	if len(queryKeys) == 0 || len(candKeys) == 0 {
		return 0
	}

	inter := 0
	union := len(candKeys)
	bonus := 0.0
	for k := range queryKeys {
		if _, ok := candKeys[k]; ok {
			inter++
			if isImportantToken(k) {
				bonus += importantBonus
			}
		} else {
			union++
		}
	}

	combined := float64(inter)/float64(union) + bonus
	if combined > 1 {
		combined = 1
	}
	return combined
}

// locationKeywords extracts the comparison set: numeric tokens, address-type
// nouns, and generic tokens with stopwords removed. CJK address suffixes are
// split off so "中央区" contributes both the name and the unit.
func locationKeywords(text string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, tok := range score.Tokens(text) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if len([]rune(tok)) < 2 && !isNumeric(tok) {
			// Single CJK address units still matter.
			if _, noun := addressNouns[tok]; !noun {
				continue
			}
		}
		keys[tok] = struct{}{}
		for noun := range addressNouns {
			if len(noun) > 0 && !isASCII(noun) && strings.Contains(tok, noun) && tok != noun {
				keys[noun] = struct{}{}
				keys[strings.TrimSuffix(tok, noun)] = struct{}{}
			}
		}
	}
	delete(keys, "")
	return keys
}

// isImportantToken marks tokens that identify a location on their own:
// street numbers, address-type nouns, and longer proper-name-like tokens.
func isImportantToken(tok string) bool {
	if isNumeric(tok) {
		return true
	}
	if _, ok := addressNouns[tok]; ok {
		return true
	}
	return len([]rune(tok)) >= 4
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
