package fetch

import "strings"

// suffixNouns are generic trailing type words that often differ between the
// caller's name and the knowledge-base title ("X Museum" vs "X").
var suffixNouns = []string{
	"museum", "gallery", "station", "temple", "shrine", "church", "cathedral",
	"park", "garden", "bridge", "tower", "castle", "palace", "market",
	"square", "hall", "center", "centre", "library", "stadium",
}

// abbreviations expand common clipped forms before searching.
var abbreviations = map[string]string{
	"st":  "saint",
	"st.": "saint",
	"mt":  "mount",
	"mt.": "mount",
	"ft":  "fort",
	"ft.": "fort",
	"ave": "avenue",
	"rd":  "road",
	"sq":  "square",
}

// Variants returns the ordered query strings to try for a place name: the
// name itself, then progressively looser rewrites. The list is deduplicated
// and never empty for a non-empty name.
func Variants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	out := []string{name}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		for _, existing := range out {
			if strings.EqualFold(existing, v) {
				return
			}
		}
		out = append(out, v)
	}

	add(expandAbbreviations(name))
	add(stripSuffixNoun(name))
	add(stripSuffixNoun(expandAbbreviations(name)))
	if !strings.HasPrefix(strings.ToLower(name), "the ") {
		add("The " + name)
	}

	return out
}

// stripSuffixNoun removes one trailing generic type word, if present.
func stripSuffixNoun(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	last := strings.ToLower(fields[len(fields)-1])
	for _, noun := range suffixNouns {
		if last == noun {
			return strings.Join(fields[:len(fields)-1], " ")
		}
	}
	return ""
}

func expandAbbreviations(name string) string {
	fields := strings.Fields(name)
	changed := false
	for i, f := range fields {
		if full, ok := abbreviations[strings.ToLower(f)]; ok {
			fields[i] = matchCase(f, full)
			changed = true
		}
	}
	if !changed {
		return ""
	}
	return strings.Join(fields, " ")
}

// matchCase upper-cases the expansion's first letter when the original
// token was capitalized.
func matchCase(original, expansion string) string {
	if original == "" || expansion == "" {
		return expansion
	}
	if original[0] >= 'A' && original[0] <= 'Z' {
		return strings.ToUpper(expansion[:1]) + expansion[1:]
	}
	return expansion
}
