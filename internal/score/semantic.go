package score

import (
	"strings"
	"unicode"
)

// Normalize lowercases the string and strips every rune outside
// alphanumerics and the CJK/Hangul/Arabic ranges, collapsing runs of
// stripped runes into single spaces.
func Normalize(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if keepRune(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return false
}

// Tokens splits a normalized string on whitespace.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// HasSubstantialOverlap is the word-overlap gate: at least one shared token
// of length >=2, or one pair of >=3-rune tokens where one contains the
// other. Candidates failing this gate are discarded regardless of their
// numeric score.
func HasSubstantialOverlap(a, b string) bool {
	ta, tb := Tokens(a), Tokens(b)
	for _, x := range ta {
		for _, y := range tb {
			if x == y && runeLen(x) >= 2 {
				return true
			}
			if runeLen(x) >= 3 && runeLen(y) >= 3 &&
				(strings.Contains(x, y) || strings.Contains(y, x)) {
				return true
			}
		}
	}
	return false
}

// semanticScore computes the name-similarity dimension in [0,1].
func semanticScore(query, candidate string) float64 {
	na, nb := Normalize(query), Normalize(candidate)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	// Containment short-circuit: one string inside the other.
	shorter, longer := na, nb
	if runeLen(shorter) > runeLen(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		ratio := float64(runeLen(shorter)) / float64(runeLen(longer))
		if ratio >= 0.7 {
			return 0.9
		}
		if ratio >= 0.5 {
			return 0.7
		}
	}

	ta, tb := strings.Fields(na), strings.Fields(nb)

	tj := tokenJaccard(ta, tb)
	if sharesTokenCore(ta, tb, 2) {
		tj = clamp01(tj * 1.5)
	}

	sj := tokenJaccard(expandSynonyms(ta), expandSynonyms(tb))

	lev := 1 - normalizedLevenshtein(na, nb)
	ng := ngramJaccard(na, nb, 3)
	char := (lev + ng) / 2

	s := 0.40*tj + 0.25*sj + 0.35*char

	if crossScriptBonus(na, nb) {
		s += 0.05
	}

	// Any direct token intersection floors the score.
	if intersectionSize(ta, tb) > 0 {
		if s < 0.6 {
			s = 0.6
		}
	}

	return clamp01(s)
}

func runeLen(s string) int { return len([]rune(s)) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func intersectionSize(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	n := 0
	seen := make(map[string]struct{})
	for _, t := range b {
		if _, ok := set[t]; ok {
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				n++
			}
		}
	}
	return n
}

func tokenJaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		set[t] = struct{}{}
	}
	inter := intersectionSize(a, b)
	if len(set) == 0 {
		return 0
	}
	return float64(inter) / float64(len(set))
}

// sharesTokenCore reports whether any token pair shares a common substring
// of at least minLen runes.
func sharesTokenCore(a, b []string, minLen int) bool {
	for _, x := range a {
		for _, y := range b {
			if commonSubstring(x, y, minLen) {
				return true
			}
		}
	}
	return false
}

func commonSubstring(x, y string, minLen int) bool {
	rx := []rune(x)
	if len(rx) < minLen {
		return false
	}
	for i := 0; i+minLen <= len(rx); i++ {
		if strings.Contains(y, string(rx[i:i+minLen])) {
			return true
		}
	}
	return false
}

// expandSynonyms widens a token list with every synonym-group member the
// tokens belong to.
func expandSynonyms(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{})
	add := func(t string) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, t := range tokens {
		add(t)
		for _, group := range synonymTable {
			for _, member := range group {
				if member == t {
					for _, m := range group {
						add(m)
					}
					break
				}
			}
		}
	}
	return out
}

// normalizedLevenshtein returns edit distance divided by the longer length.
func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return float64(prev[len(rb)]) / float64(longest)
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// ngramJaccard computes Jaccard similarity over rune n-grams.
func ngramJaccard(a, b string, n int) float64 {
	ga, gb := ngrams(a, n), ngrams(b, n)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}
	inter := 0
	union := len(gb)
	for g := range ga {
		if _, ok := gb[g]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func ngrams(s string, n int) map[string]struct{} {
	rs := []rune(s)
	out := make(map[string]struct{})
	for i := 0; i+n <= len(rs); i++ {
		out[string(rs[i:i+n])] = struct{}{}
	}
	return out
}

// crossScriptBonus reports whether a known CJK place term in one string is
// echoed by the same term or its Latin family in the other.
func crossScriptBonus(a, b string) bool {
	pairLinked := func(x, y string) bool {
		for term, family := range crossScriptSynonyms {
			if !strings.Contains(x, term) {
				continue
			}
			if strings.Contains(y, term) {
				return true
			}
			for _, f := range family {
				if strings.Contains(y, f) {
					return true
				}
			}
		}
		return false
	}
	return pairLinked(a, b) || pairLinked(b, a)
}
