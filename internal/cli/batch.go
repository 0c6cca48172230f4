package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolokh/lazaret/internal/engine"
	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/scorer"
	"github.com/avolokh/lazaret/internal/worker"
)

var (
	concurrency  int
	outFile      string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score multiple claims from a file in parallel",
	Long: `Batch scores multiple claims concurrently:
- Read claims from the input file (one JSON object or plain-text claim per line)
- Score claims in parallel with a configurable worker count
- Each analysis still fans out its four signal extractors internally
- Write one analysis JSON object per line to the output file

Example:
  lazaret batch claims.jsonl
  lazaret batch claims.jsonl --concurrency 16 --out analyses.jsonl
  lazaret batch claims.jsonl --scorer --scorer-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (0 = config default)")
	batchCmd.Flags().StringVar(&outFile, "out", "analyses.jsonl", "output JSONL path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Scorer flags are shared with analyze.
	batchCmd.Flags().BoolVar(&scorerEnabled, "scorer", false, "enable the LLM attribute scorer")
	batchCmd.Flags().StringVar(&scorerProvider, "scorer-provider", "openai", "scorer provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&scorerModel, "scorer-model", "", "scorer model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyScorerFlags(cfg); err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.BatchWorkers = concurrency
	}

	logger := newLogger(cfg.Logging)

	provider, err := scorer.Build(cfg.Scorer)
	if err != nil {
		return fmt.Errorf("build scorer: %w", err)
	}

	qstore, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	eng := engine.New(cfg, provider,
		engine.WithLogger(logger),
		engine.WithQuarantineStore(qstore),
	)

	processor := worker.NewBatchProcessor(eng, cfg.Concurrency.BatchWorkers)

	fmt.Fprintf(os.Stderr, "⚙️  Scoring claims from %s with %d workers...\n", file, cfg.Concurrency.BatchWorkers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	enc := json.NewEncoder(out)

	successCount := 0
	failureCount := 0
	quarantined := 0

	for _, result := range results {
		if result.Analysis == nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", truncate(result.Claim.Text, 60), result.Error)
			continue
		}
		if result.Error != nil {
			// Analysis completed but quarantine persistence failed.
			fmt.Fprintf(os.Stderr, "warning: %q: %v\n", truncate(result.Claim.Text, 60), result.Error)
		}

		successCount++
		if result.Analysis.Routing.Outcome == model.RouteQuarantine {
			quarantined++
		}

		if err := enc.Encode(result.Analysis); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:        %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  Scored:       %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Quarantined:  %d\n", quarantined)
	fmt.Fprintf(os.Stderr, "  Failures:     %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", outFile)

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
