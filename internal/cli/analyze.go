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
	"github.com/avolokh/lazaret/internal/store"
)

var (
	claimText      string
	claimURLs      []string
	claimImages    []string
	claimLang      string
	claimSource    string
	outJSON        string
	timeout        time.Duration
	evidenceFile   string
	scorerEnabled  bool
	scorerProvider string
	scorerModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a single claim and print its risk analysis",
	Long: `Analyze scores one claim for manipulation risk:
- Extract emotional, incentive, deception and synthetic-media signals concurrently
- Aggregate them into a weighted risk score with alert rules
- Estimate confidence from evidence, precedents and claim quality
- Route to an automatic verdict or quarantine for human review

Example:
  lazaret analyze --text "URGENT: earn money fast, click here now!"
  lazaret analyze --text "New battery chemistry announced" --url https://example.com
  lazaret analyze --text "..." --scorer --scorer-provider openai --scorer-model gpt-4o-mini
  lazaret analyze --text "..." --evidence fixtures/evidence.json --json report.json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Claim flags
	analyzeCmd.Flags().StringVar(&claimText, "text", "", "claim text (required)")
	analyzeCmd.Flags().StringArrayVar(&claimURLs, "url", nil, "URL attached to the claim (repeatable, max 5)")
	analyzeCmd.Flags().StringArrayVar(&claimImages, "image", nil, "image reference attached to the claim (repeatable, max 3)")
	analyzeCmd.Flags().StringVar(&claimLang, "lang", "", "claim language code (default: en)")
	analyzeCmd.Flags().StringVar(&claimSource, "source", "", "source type (social_post, forwarded_message, ...)")
	_ = analyzeCmd.MarkFlagRequired("text")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write analysis JSON to a file instead of stdout")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall analysis timeout")

	// Evidence fixture flags
	analyzeCmd.Flags().StringVar(&evidenceFile, "evidence", "", "JSON file with evidence, precedents and hints for this claim")

	// Scorer flags
	analyzeCmd.Flags().BoolVar(&scorerEnabled, "scorer", false, "enable the LLM attribute scorer")
	analyzeCmd.Flags().StringVar(&scorerProvider, "scorer-provider", "openai", "scorer provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&scorerModel, "scorer-model", "", "scorer model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyScorerFlags(cfg); err != nil {
		return err
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

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithQuarantineStore(qstore),
	}
	if evidenceFile != "" {
		fixtureOpts, err := loadEvidenceFixture(evidenceFile)
		if err != nil {
			return err
		}
		opts = append(opts, fixtureOpts...)
	}

	eng := engine.New(cfg, provider, opts...)

	claim := model.Claim{
		Text:       claimText,
		URLs:       claimURLs,
		Images:     claimImages,
		Language:   claimLang,
		SourceType: claimSource,
	}

	analysis, err := eng.Analyze(ctx, claim)
	if err != nil {
		if analysis == nil {
			return fmt.Errorf("analyze failed: %w", err)
		}
		// Analysis completed but quarantine persistence failed.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if verbose {
		for _, sig := range analysis.Signals {
			fmt.Fprintf(os.Stderr, "signal %s: score=%.2f confidence=%.2f\n", sig.Name, sig.Score, sig.Confidence)
		}
		fmt.Fprintf(os.Stderr, "overall=%.2f risk=%s confidence=%.2f routing=%s\n",
			analysis.OverallManipulationScore, analysis.RiskLevel, analysis.ConfidenceScore, analysis.Routing.Outcome)
	}

	return writeAnalysis(analysis, outJSON)
}

// applyScorerFlags merges the scorer CLI flags into the config and picks
// up API keys from the environment the provider expects.
func applyScorerFlags(cfg *model.Config) error {
	if !scorerEnabled {
		return nil
	}

	cfg.Scorer.Provider = scorerProvider
	if scorerModel != "" {
		cfg.Scorer.Model = scorerModel
	}

	switch scorerProvider {
	case "openai":
		if cfg.Scorer.APIKey == "" {
			cfg.Scorer.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Scorer.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.Scorer.APIKey == "" {
			cfg.Scorer.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.Scorer.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Scorer.BaseURL = baseURL
		}
	}

	return nil
}

// openStore opens the configured quarantine backend. The returned close
// function is a no-op for the memory backend.
func openStore(cfg model.StoreConfig) (store.QuarantineStore, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

// evidenceFixture is the on-disk shape of an evidence file.
type evidenceFixture struct {
	Evidence   []model.EvidenceItem `json:"evidence"`
	Precedents []model.Precedent    `json:"precedents"`
	Clarity    *float64             `json:"clarity"`
	Recency    *float64             `json:"recency"`
}

func loadEvidenceFixture(path string) ([]engine.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evidence file: %w", err)
	}

	var fixture evidenceFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse evidence file: %w", err)
	}

	static := &engine.StaticEvidence{Items: fixture.Evidence, Clarity: 0.5, Recency: 0.5}
	if fixture.Clarity != nil {
		static.Clarity = *fixture.Clarity
	}
	if fixture.Recency != nil {
		static.Recency = *fixture.Recency
	}

	opts := []engine.Option{
		engine.WithEvidenceSupplier(static),
		engine.WithPrecedentLookup(&engine.StaticPrecedents{Precedents: fixture.Precedents}),
	}
	if fixture.Clarity != nil || fixture.Recency != nil {
		opts = append(opts, engine.WithHintSupplier(static))
	}
	return opts, nil
}

func writeAnalysis(analysis *model.ManipulationAnalysis, path string) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
