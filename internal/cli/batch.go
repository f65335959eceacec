package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gazetteer/internal/engine"
	"github.com/ppiankov/gazetteer/internal/worker"
)

var batchConcurrency int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Resolve many places from a file",
	Long: `Batch reads one place per line and resolves them concurrently.

Line format (address and coordinate optional):
  name | address | lat,lon

Empty lines and lines starting with # are skipped.

Example:
  gazetteer batch places.txt --concurrency 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "concurrent resolutions")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng := engine.New(cfg, verbose)

	processor := worker.NewBatchProcessor(eng, batchConcurrency)
	results, err := processor.ProcessFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	matched, missed, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Error != nil:
			failed++
			fmt.Printf("! %-30s error: %v\n", r.Query.Name, r.Error)
		case r.Match.Matched:
			matched++
			fmt.Printf("✓ %-30s → %s [%s] (%.3f)\n",
				r.Query.Name, r.Match.Candidate.Title,
				r.Match.Candidate.Language, r.Match.Score.Total)
		default:
			missed++
			fmt.Printf("✗ %-30s no match (%s)\n", r.Query.Name, r.Match.Reason)
		}
	}

	fmt.Printf("\n%d matched, %d no-match, %d failed (%d total)\n",
		matched, missed, failed, len(results))
	return nil
}
