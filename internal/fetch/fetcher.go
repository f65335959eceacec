// Package fetch runs the per-language knowledge-base queries for one
// resolution: parallel timeout-bounded tasks, completion-order scoring, and
// early termination once a high-confidence candidate appears.
package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/gazetteer/internal/model"
	"github.com/ppiankov/gazetteer/internal/score"
	"github.com/ppiankov/gazetteer/internal/validate"
	"github.com/ppiankov/gazetteer/internal/wiki"
)

// Source abstracts the knowledge-base client so the fetcher can be tested
// against fakes.
type Source interface {
	// Summary does a direct title lookup; (nil, nil) means no entry.
	Summary(ctx context.Context, lang, title string) (*model.CandidateEntry, error)
	// Search does a full-text lookup returning ranked hits.
	Search(ctx context.Context, lang, query string) ([]wiki.SearchHit, error)
}

// Fetcher executes a language plan against a source.
type Fetcher struct {
	source      Source
	scorer      *score.Scorer
	gate        *validate.Gate
	taskTimeout time.Duration
	verbose     bool
}

// NewFetcher creates a fetcher. taskTimeout bounds each language task
// independently of the caller's overall deadline.
func NewFetcher(source Source, scorer *score.Scorer, gate *validate.Gate, taskTimeout time.Duration, verbose bool) *Fetcher {
	if taskTimeout <= 0 {
		taskTimeout = 8 * time.Second
	}
	return &Fetcher{
		source:      source,
		scorer:      scorer,
		gate:        gate,
		taskTimeout: taskTimeout,
		verbose:     verbose,
	}
}

type taskResult struct {
	lang      string
	candidate *model.CandidateEntry
}

type scoredCandidate struct {
	candidate model.CandidateEntry
	breakdown model.ScoreBreakdown
}

// Fetch resolves the query against the planned languages and returns either
// the accepted match or an explicit no-match. Individual task failures are
// recovered locally; only exhaustion of all languages yields NoMatch.
func (f *Fetcher) Fetch(ctx context.Context, query model.PlaceQuery, languages []string) model.MatchResult {
	if len(languages) == 0 {
		return model.NoMatch(model.ReasonNoOverlap)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan taskResult, len(languages))
	for _, lang := range languages {
		go func(lang string) {
			taskCtx, taskCancel := context.WithTimeout(ctx, f.taskTimeout)
			defer taskCancel()

			candidate := f.lookupLanguage(taskCtx, lang, query)
			select {
			case results <- taskResult{lang: lang, candidate: candidate}:
			case <-ctx.Done():
			}
		}(lang)
	}

	var best *scoredCandidate
	sawOverlap := false

	for received := 0; received < len(languages); received++ {
		var r taskResult
		select {
		case <-ctx.Done():
			// Overall deadline hit; decide from what has arrived.
			return f.selectResult(query, best, sawOverlap)
		case r = <-results:
		}

		if r.candidate == nil {
			continue
		}
		cand := *r.candidate

		if !score.HasSubstantialOverlap(query.Name, cand.Title) {
			f.warnf("discarding %s/%s: no substantial word overlap", r.lang, cand.Title)
			continue
		}
		sawOverlap = true

		// Early termination: a high-confidence semantic hit wins
		// immediately and cancels the remaining tasks.
		if f.scorer.SemanticOnly(query, cand) > score.HighConfidenceCutoff {
			if !f.needsValidation(query, cand) || f.gate.Validate(cand, query) {
				cancel()
				return model.Match(cand, f.scorer.Score(query, cand))
			}
			// A semantically perfect hit that fails the address gate is
			// still tracked as best; it fails closed at selection time.
		}

		breakdown := f.scorer.Score(query, cand)
		if better(breakdown, best) {
			best = &scoredCandidate{candidate: cand, breakdown: breakdown}
		}
	}

	return f.selectResult(query, best, sawOverlap)
}

// better implements the tie-break: highest total, then higher geographic
// sub-score, then the first candidate encountered.
func better(b model.ScoreBreakdown, current *scoredCandidate) bool {
	if current == nil {
		return true
	}
	if b.Total != current.breakdown.Total {
		return b.Total > current.breakdown.Total
	}
	return b.Geographic > current.breakdown.Geographic
}

// needsValidation reports whether acceptance must pass the address gate even
// at high confidence: when the caller supplied an address but geography
// could not contribute, name similarity alone cannot distinguish same-named
// places in different cities.
func (f *Fetcher) needsValidation(query model.PlaceQuery, cand model.CandidateEntry) bool {
	return query.Address != "" && (query.Coordinate == nil || cand.Coordinate == nil)
}

// selectResult applies the acceptance ladder to the best surviving
// candidate. Below-threshold candidates are never surfaced.
func (f *Fetcher) selectResult(query model.PlaceQuery, best *scoredCandidate, sawOverlap bool) model.MatchResult {
	if best == nil {
		if sawOverlap {
			return model.NoMatch(model.ReasonLowConfidence)
		}
		return model.NoMatch(model.ReasonNoOverlap)
	}

	total := best.breakdown.Total
	if total <= best.breakdown.ConfidenceThreshold {
		return model.NoMatch(model.ReasonLowConfidence)
	}

	if total > score.HighConfidenceCutoff && !f.needsValidation(query, best.candidate) {
		return model.Match(best.candidate, best.breakdown)
	}

	if f.gate.Validate(best.candidate, query) {
		return model.Match(best.candidate, best.breakdown)
	}
	return model.NoMatch(model.ReasonValidationFailed)
}

// lookupLanguage runs one language task: direct title lookup first, then
// query variants through full-text search, feeding hit titles back into the
// direct lookup. Errors are recovered as "no candidate from this language".
func (f *Fetcher) lookupLanguage(ctx context.Context, lang string, query model.PlaceQuery) *model.CandidateEntry {
	if cand, err := f.source.Summary(ctx, lang, query.Name); err != nil {
		f.warnf("%s: direct lookup failed: %v", lang, err)
	} else if cand != nil {
		return cand
	}

	for _, variant := range Variants(query.Name) {
		if ctx.Err() != nil {
			return nil
		}

		hits, err := f.source.Search(ctx, lang, variant)
		if err != nil {
			f.warnf("%s: search %q failed: %v", lang, variant, err)
			continue
		}
		if len(hits) == 0 {
			continue
		}

		// First variant with hits wins; resolve its titles to full entries.
		for _, hit := range hits {
			if cand, err := f.source.Summary(ctx, lang, hit.Title); err != nil {
				f.warnf("%s: summary for hit %q failed: %v", lang, hit.Title, err)
			} else if cand != nil {
				return cand
			}
		}

		// No hit title resolved to a summary; fall back to the raw hit.
		cand := wiki.CandidateFromSearchHit(lang, hits[0])
		return &cand
	}

	return nil
}

func (f *Fetcher) warnf(format string, args ...interface{}) {
	if f.verbose {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
