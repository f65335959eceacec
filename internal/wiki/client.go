// Package wiki talks to the multilingual knowledge base: direct title
// lookups through the REST summary endpoint and full-text lookups through
// the search API, one host per language edition.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/gazetteer/internal/model"
)

// Client queries one knowledge-base edition per call.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBytes    int64
	baseURL     string // pattern; %s is replaced with the language code
	searchLimit int
	robots      *RobotsChecker // nil when robots checking is disabled
}

// NewClient creates a client from configuration.
func NewClient(cfg model.HTTPConfig, searchLimit int) *Client {
	if searchLimit <= 0 {
		searchLimit = 5
	}

	var robots *RobotsChecker
	if cfg.CheckRobots {
		robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   cfg.UserAgent,
		maxBytes:    cfg.MaxBodyBytes,
		baseURL:     cfg.BaseURL,
		searchLimit: searchLimit,
		robots:      robots,
	}
}

func (c *Client) editionBase(lang string) string {
	if strings.Contains(c.baseURL, "%s") {
		return fmt.Sprintf(c.baseURL, lang)
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + lang
}

// Summary performs a direct title lookup. A 404 means no entry exists and is
// not an error; other non-200 statuses are returned as errors so the caller
// can recover locally.
func (c *Client) Summary(ctx context.Context, lang, title string) (*model.CandidateEntry, error) {
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s",
		c.editionBase(lang), url.PathEscape(strings.ReplaceAll(title, " ", "_")))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("summary %s/%s: unexpected status %d", lang, title, status)
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	if resp.Title == "" {
		return nil, nil
	}

	entry := CandidateFromSummary(lang, resp)
	return &entry, nil
}

// Search performs a full-text search and returns the matching hits in rank
// order. An empty result set is not an error.
func (c *Client) Search(ctx context.Context, lang, query string) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", c.searchLimit))
	params.Set("format", "json")

	u := fmt.Sprintf("%s/w/api.php?%s", c.editionBase(lang), params.Encode())

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search %s %q: unexpected status %d", lang, query, status)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	hits := make([]SearchHit, 0, len(resp.Query.Search))
	for _, h := range resp.Query.Search {
		if h.Title == "" {
			continue
		}
		hits = append(hits, SearchHit{Title: h.Title, Snippet: StripMarkup(h.Snippet)})
	}
	return hits, nil
}

// get issues a GET honoring robots.txt and the body size cap.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if c.robots != nil && !c.robots.IsAllowed(ctx, rawURL) {
		return nil, 0, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
