package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ppiankov/gazetteer/internal/model"
)

// Resolver is the engine surface batch processing needs.
type Resolver interface {
	Resolve(ctx context.Context, query model.PlaceQuery) (model.MatchResult, error)
}

// ResolveJob resolves one place query.
type ResolveJob struct {
	Query    model.PlaceQuery
	Resolver Resolver
}

// Execute runs the resolution.
func (j *ResolveJob) Execute(ctx context.Context) Result {
	result, err := j.Resolver.Resolve(ctx, j.Query)
	return &ResolveResult{Query: j.Query, Match: result, Error: err}
}

// ResolveResult is the outcome for one place in a batch.
type ResolveResult struct {
	Query model.PlaceQuery
	Match model.MatchResult
	Error error
}

// GetError returns the resolution error, if any.
func (r *ResolveResult) GetError() error {
	return r.Error
}

// BatchProcessor resolves many places concurrently. Concurrency here is
// across places; the engine's cooldown gate still serializes fetch batches.
type BatchProcessor struct {
	resolver    Resolver
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(resolver Resolver, concurrency int) *BatchProcessor {
	return &BatchProcessor{resolver: resolver, concurrency: concurrency}
}

// ProcessQueries resolves the given queries through the pool.
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []model.PlaceQuery) []*ResolveResult {
	if len(queries) == 0 {
		return []*ResolveResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, q := range queries {
		pool.Submit(&ResolveJob{Query: q, Resolver: b.resolver})
	}

	results := pool.Wait()
	out := make([]*ResolveResult, len(results))
	for i, r := range results {
		out[i] = r.(*ResolveResult)
	}
	return out
}

// ProcessFile reads place queries from a file and resolves them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ResolveResult, error) {
	queries, err := ReadQueriesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places: %w", err)
	}
	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile parses one place per line:
//
//	name [| address [| lat,lon]]
//
// Empty lines and #-comments are skipped; duplicate names are dropped.
func ReadQueriesFromFile(path string) ([]model.PlaceQuery, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []model.PlaceQuery
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		query, err := ParseQueryLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if seen[query.Name] {
			continue
		}
		seen[query.Name] = true
		queries = append(queries, query)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return queries, nil
}

// ParseQueryLine parses a single batch-file line.
func ParseQueryLine(line string) (model.PlaceQuery, error) {
	parts := strings.Split(line, "|")
	query := model.PlaceQuery{Name: strings.TrimSpace(parts[0])}
	if query.Name == "" {
		return model.PlaceQuery{}, fmt.Errorf("missing place name")
	}

	if len(parts) > 1 {
		query.Address = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		coord, err := ParseCoordinate(strings.TrimSpace(parts[2]))
		if err != nil {
			return model.PlaceQuery{}, err
		}
		query.Coordinate = coord
	}
	if len(parts) > 3 {
		return model.PlaceQuery{}, fmt.Errorf("too many fields")
	}
	return query, nil
}

// ParseCoordinate parses a "lat,lon" pair, checking the WGS84 ranges. An
// empty string yields a nil coordinate.
func ParseCoordinate(s string) (*model.Coordinate, error) {
	if s == "" {
		return nil, nil
	}
	latLon := strings.Split(s, ",")
	if len(latLon) != 2 {
		return nil, fmt.Errorf("coordinate %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latLon[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("latitude %q: %w", latLon[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(latLon[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("longitude %q: %w", latLon[1], err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinate %q out of range", s)
	}
	return &model.Coordinate{Lat: lat, Lon: lon}, nil
}
