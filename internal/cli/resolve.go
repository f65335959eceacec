package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gazetteer/internal/engine"
	"github.com/ppiankov/gazetteer/internal/explain"
	"github.com/ppiankov/gazetteer/internal/model"
	"github.com/ppiankov/gazetteer/internal/worker"
)

var (
	address     string
	coordinate  string
	overallWait time.Duration
	taskTimeout time.Duration
	noCache     bool
	rejectCool  bool
	asJSON      bool
	withExplain bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a place to its best knowledge-base match",
	Long: `Resolve queries up to four language editions in parallel and prints the
best-matching entry with its score breakdown, or an explicit no-match.

Example:
  gazetteer resolve "Golden Gate Bridge" --at 37.8199,-122.4783
  gazetteer resolve "浅草寺" --json
  gazetteer resolve "St Mary's Church" --address "Paris"`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&address, "address", "", "address hint for validation")
	resolveCmd.Flags().StringVar(&coordinate, "at", "", "coordinate hint as lat,lon")
	resolveCmd.Flags().DurationVar(&overallWait, "timeout", 10*time.Second, "overall resolution deadline")
	resolveCmd.Flags().DurationVar(&taskTimeout, "task-timeout", 8*time.Second, "per-language task timeout")
	resolveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	resolveCmd.Flags().BoolVar(&rejectCool, "reject-cooling", false, "fail fast instead of waiting on the cooldown gate")
	resolveCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	resolveCmd.Flags().BoolVar(&withExplain, "explain", false, "explain the match using the configured LLM")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.Resolver.OverallTimeout = overallWait
	cfg.Resolver.TaskTimeout = taskTimeout
	cfg.Resolver.RejectWhenCooling = rejectCool
	if noCache {
		cfg.Cache.Enabled = false
	}

	query, err := buildQuery(args[0], address, coordinate)
	if err != nil {
		return err
	}

	eng := engine.New(cfg, verbose)
	result, err := eng.Resolve(context.Background(), query)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printResult(query, result)
	}

	if withExplain && result.Matched {
		explainMatch(cfg, query, result)
	}
	return nil
}

// buildQuery assembles the place query from the positional name and the
// flag values. The coordinate flag is parsed directly so names and addresses
// may contain any character, including the batch-file field separator.
func buildQuery(name, address, at string) (model.PlaceQuery, error) {
	query := model.PlaceQuery{Name: name, Address: address}
	if at != "" {
		coord, err := worker.ParseCoordinate(at)
		if err != nil {
			return model.PlaceQuery{}, err
		}
		query.Coordinate = coord
	}
	return query, nil
}

func printResult(query model.PlaceQuery, result model.MatchResult) {
	if !result.Matched {
		fmt.Printf("✗ No match for %q (%s)\n", query.Name, result.Reason)
		return
	}

	c := result.Candidate
	s := result.Score
	fmt.Printf("✓ %s  [%s/%s]\n", c.Title, c.Source, c.Language)
	if c.Coordinate != nil {
		fmt.Printf("  at %s\n", c.Coordinate)
	}
	if c.Summary != "" {
		fmt.Printf("  %s\n", truncate(c.Summary, 200))
	}
	fmt.Printf("  score %.3f (semantic %.2f · geographic %.2f · type %.2f, threshold %.2f)\n",
		s.Total, s.Semantic, s.Geographic, s.Type, s.ConfidenceThreshold)
}

func explainMatch(cfg *model.Config, query model.PlaceQuery, result model.MatchResult) {
	explainer, err := explain.New(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: explain unavailable: %v\n", err)
		return
	}
	if explainer == nil {
		fmt.Fprintln(os.Stderr, "Warning: no LLM provider configured (set llm.provider)")
		return
	}

	text, err := explainer.Explain(context.Background(), query, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: explanation failed: %v\n", err)
		return
	}
	fmt.Printf("\n%s\n", text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
