package wiki

import (
	"strings"

	"github.com/ppiankov/gazetteer/internal/model"
	"golang.org/x/net/html"
)

// summaryResponse is the REST summary payload, decoded into named fields at
// the API boundary.
type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

// searchResponse is the Action API search payload.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// SearchHit is one full-text search result with its snippet already
// stripped of markup.
type SearchHit struct {
	Title   string
	Snippet string
}

const sourceName = "wikipedia"

// CandidateFromSummary normalizes a direct-lookup response into a candidate.
func CandidateFromSummary(lang string, resp summaryResponse) model.CandidateEntry {
	entry := model.CandidateEntry{
		Source:   sourceName,
		Language: lang,
		Title:    resp.Title,
		Summary:  resp.Extract,
	}
	if entry.Summary == "" {
		entry.Summary = resp.Description
	}
	if resp.Coordinates != nil {
		entry.Coordinate = &model.Coordinate{Lat: resp.Coordinates.Lat, Lon: resp.Coordinates.Lon}
	}
	if resp.Thumbnail != nil {
		entry.ThumbnailRef = resp.Thumbnail.Source
	}
	return entry
}

// CandidateFromSearchHit normalizes a bare search hit into a candidate. Used
// when the follow-up direct lookup for the hit title yields nothing; such
// candidates carry no coordinate or thumbnail.
func CandidateFromSearchHit(lang string, hit SearchHit) model.CandidateEntry {
	return model.CandidateEntry{
		Source:   sourceName,
		Language: lang,
		Title:    hit.Title,
		Summary:  hit.Snippet,
	}
}

// StripMarkup flattens an HTML fragment (search snippets arrive with
// highlight spans) into plain text.
func StripMarkup(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return strings.TrimSpace(fragment)
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
