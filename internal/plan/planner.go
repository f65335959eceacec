// Package plan selects which knowledge-base language editions to query for a
// given place name. Planning is deterministic and pure: the dominant script
// of the name (or a Latin keyword hint) picks a fixed priority ordering.
package plan

import (
	"strings"
	"unicode"
)

// ScriptFamily is the detected writing-system family of a place name.
type ScriptFamily string

const (
	FamilyHan      ScriptFamily = "han"
	FamilyJapanese ScriptFamily = "japanese"
	FamilyHangul   ScriptFamily = "hangul"
	FamilyArabic   ScriptFamily = "arabic"
	FamilyLatin    ScriptFamily = "latin"
	FamilyUnknown  ScriptFamily = "unknown"
)

// familyOrderings fixes the edition priority per family. Orderings are
// bounded at maxLanguages; the fan-out cap keeps worst-case latency and
// external call volume bounded.
var familyOrderings = map[ScriptFamily][]string{
	FamilyHan:      {"zh", "en", "ja"},
	FamilyJapanese: {"ja", "en", "zh"},
	FamilyHangul:   {"ko", "en", "ja"},
	FamilyArabic:   {"ar", "en", "fr"},
	FamilyLatin:    {"en", "fr", "de", "es"},
	FamilyUnknown:  {"en", "zh", "fr"},
}

// latinHints maps Latin-script keywords to an edition worth promoting ahead
// of the default Latin ordering.
var latinHints = map[string]string{
	"cathedrale": "fr",
	"cathédrale": "fr",
	"eglise":     "fr",
	"église":     "fr",
	"musee":      "fr",
	"musée":      "fr",
	"palais":     "fr",
	"schloss":    "de",
	"kirche":     "de",
	"dom":        "de",
	"iglesia":    "es",
	"catedral":   "es",
	"museo":      "es",
	"duomo":      "it",
	"basilica":   "it",
}

// Planner produces bounded, ordered language plans.
type Planner struct {
	maxLanguages int
}

// NewPlanner creates a planner. maxLanguages values below 1 fall back to 4.
func NewPlanner(maxLanguages int) *Planner {
	if maxLanguages < 1 {
		maxLanguages = 4
	}
	return &Planner{maxLanguages: maxLanguages}
}

// Plan returns an ordered list of at most maxLanguages edition codes for the
// name. There is no failure mode: unrecognized input gets the default
// ordering.
func (p *Planner) Plan(name string) []string {
	family := DetectFamily(name)

	ordering := familyOrderings[family]
	if family == FamilyLatin {
		if hint := latinHint(name); hint != "" {
			ordering = prepend(hint, ordering)
		}
	}

	out := dedupe(ordering)
	if len(out) > p.maxLanguages {
		out = out[:p.maxLanguages]
	}
	return out
}

// DetectFamily finds the dominant script family of the name by rune count.
// Kana presence marks Japanese even when Han characters dominate, since
// mixed kanji/kana text is Japanese, not Chinese.
func DetectFamily(name string) ScriptFamily {
	var han, kana, hangul, arabic, latin int
	for _, r := range name {
		switch {
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	if kana > 0 {
		return FamilyJapanese
	}

	best, bestCount := FamilyUnknown, 0
	for _, fc := range []struct {
		family ScriptFamily
		count  int
	}{
		{FamilyHan, han},
		{FamilyHangul, hangul},
		{FamilyArabic, arabic},
		{FamilyLatin, latin},
	} {
		if fc.count > bestCount {
			best, bestCount = fc.family, fc.count
		}
	}
	return best
}

func latinHint(name string) string {
	lower := strings.ToLower(name)
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ".,;:'\"()")
		if lang, ok := latinHints[tok]; ok {
			return lang
		}
	}
	return ""
}

func prepend(lang string, ordering []string) []string {
	out := []string{lang}
	return append(out, ordering...)
}

func dedupe(langs []string) []string {
	seen := make(map[string]struct{}, len(langs))
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
