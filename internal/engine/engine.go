// Package engine wires planner, fetcher, scorer, validation gate and result
// cache into the public resolution surface. One Engine instance owns all
// shared mutable state (cache, cooldown gate), so separate instances are
// fully isolated.
package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/ppiankov/gazetteer/internal/cache"
	"github.com/ppiankov/gazetteer/internal/fetch"
	"github.com/ppiankov/gazetteer/internal/model"
	"github.com/ppiankov/gazetteer/internal/plan"
	"github.com/ppiankov/gazetteer/internal/score"
	"github.com/ppiankov/gazetteer/internal/validate"
	"github.com/ppiankov/gazetteer/internal/wiki"
	"golang.org/x/time/rate"
)

// ErrEmptyName rejects queries without a name before any fetch is attempted.
var ErrEmptyName = errors.New("place name must not be empty")

// ErrCoolingDown signals that a fetch batch was refused because the
// process-wide cooldown gate is closed and fail-fast mode is configured.
var ErrCoolingDown = errors.New("search in progress: cooling down")

// Engine resolves place queries against the knowledge base.
type Engine struct {
	cfg     *model.Config
	planner *plan.Planner
	scorer  *score.Scorer
	gate    *validate.Gate
	fetcher *fetch.Fetcher
	store   *cache.Store // nil when caching is disabled

	// cooldown gates how often a new external fetch batch may start.
	// Resolutions served from cache never touch it.
	cooldown *rate.Limiter
}

// New builds an engine with the real knowledge-base client.
func New(cfg *model.Config, verbose bool) *Engine {
	source := wiki.NewClient(cfg.HTTP, cfg.Resolver.SearchLimit)
	return NewWithSource(cfg, source, verbose)
}

// NewWithSource builds an engine over any fetch source; tests inject fakes.
func NewWithSource(cfg *model.Config, source fetch.Source, verbose bool) *Engine {
	scorer := score.NewScorer()
	gate := validate.NewGate()

	var store *cache.Store
	if cfg.Cache.Enabled {
		store = cache.NewStore(cfg.Cache)
	}

	limit := rate.Inf
	if cfg.Resolver.Cooldown > 0 {
		limit = rate.Every(cfg.Resolver.Cooldown)
	}

	return &Engine{
		cfg:      cfg,
		planner:  plan.NewPlanner(cfg.Resolver.MaxLanguages),
		scorer:   scorer,
		gate:     gate,
		fetcher:  fetch.NewFetcher(source, scorer, gate, cfg.Resolver.TaskTimeout, verbose),
		store:    store,
		cooldown: rate.NewLimiter(limit, 1),
	}
}

// Resolve maps a place query to its best knowledge-base match or an
// explicit no-match. Cached hits are revalidated against the current query
// before being served; records that no longer clear the confidence
// threshold are evicted and refetched rather than trusted.
func (e *Engine) Resolve(ctx context.Context, query model.PlaceQuery) (model.MatchResult, error) {
	if strings.TrimSpace(query.Name) == "" {
		return model.MatchResult{}, ErrEmptyName
	}

	if e.cfg.Resolver.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Resolver.OverallTimeout)
		defer cancel()
	}

	key := cache.Key(query)

	if e.store != nil {
		if record, found := e.store.Get(key); found {
			rescored := e.scorer.Score(query, record.Entry)
			if e.cachedAcceptable(query, record.Entry, rescored) {
				return model.Match(record.Entry, rescored), nil
			}
			// The stored entry no longer matches what the caller is
			// asking for; drop it and fetch fresh.
			e.store.Invalidate(key)
		}
	}

	if err := e.acquireCooldown(ctx); err != nil {
		return model.MatchResult{}, err
	}

	languages := e.planner.Plan(query.Name)
	result := e.fetcher.Fetch(ctx, query, languages)

	if result.Matched && e.store != nil {
		_ = e.store.Put(key, *result.Candidate, *result.Score)
	}
	return result, nil
}

// cachedAcceptable applies the same acceptance ladder to a cached record
// that a fresh fetch would: threshold first, then the address gate whenever
// the fetch path would consult it. The coordinate-less cache key is the name
// alone, so a record validated against one city's address must not be served
// verbatim to a query naming a different city.
func (e *Engine) cachedAcceptable(query model.PlaceQuery, entry model.CandidateEntry, rescored model.ScoreBreakdown) bool {
	if !rescored.AboveThreshold() {
		return false
	}
	needsGate := query.Address != "" && (query.Coordinate == nil || entry.Coordinate == nil)
	highConfidence := rescored.Total > score.HighConfidenceCutoff ||
		rescored.Semantic > score.HighConfidenceCutoff
	if highConfidence && !needsGate {
		return true
	}
	return e.gate.Validate(entry, query)
}

// acquireCooldown admits one fetch batch per cooldown interval. The default
// mode waits (bounded by ctx); fail-fast mode returns ErrCoolingDown.
func (e *Engine) acquireCooldown(ctx context.Context) error {
	if e.cfg.Resolver.RejectWhenCooling {
		if !e.cooldown.Allow() {
			return ErrCoolingDown
		}
		return nil
	}
	if err := e.cooldown.Wait(ctx); err != nil {
		return err
	}
	return nil
}

// Invalidate evicts the cached record for a query, if any. Exposed for
// callers that know a cached match has gone stale.
func (e *Engine) Invalidate(query model.PlaceQuery) {
	if e.store != nil {
		e.store.Invalidate(cache.Key(query))
	}
}

// ClearCache drops every cached resolution.
func (e *Engine) ClearCache() {
	if e.store != nil {
		e.store.Clear()
	}
}
