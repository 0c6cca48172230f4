package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolokh/lazaret/internal/feedback"
	"github.com/avolokh/lazaret/internal/model"
)

var (
	listLimit       int
	verdictValue    string
	verdictConf     int
	verdictReason   string
	verdictExpert   string
	reviewTimeout   time.Duration
	showAnalysisRaw bool
)

// reviewCmd represents the review command group
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect and resolve quarantined claims",
	Long: `Review manages the quarantine queue:
- list shows claims waiting for a human verdict, oldest first
- resolve records a reviewer verdict; only the first verdict wins

Requires a persistent store backend (store.backend: sqlite) so the
queue survives between invocations.`,
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List claims pending review",
	RunE:  runReviewList,
}

var reviewResolveCmd = &cobra.Command{
	Use:   "resolve <item-id>",
	Short: "Resolve a quarantined claim with a reviewer verdict",
	Long: `Resolve records a human verdict on a quarantined claim.

The first verdict accepted for an item is final: later submissions are
rejected. Each accepted verdict also emits a reconciliation record that
pairs the automated scores with the human judgment.

Example:
  lazaret review resolve 2f1c... --verdict misleading --confidence 4
  lazaret review resolve 2f1c... --verdict legit --confidence 5 --expertise medical`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewResolve,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewResolveCmd)

	reviewCmd.PersistentFlags().DurationVar(&reviewTimeout, "timeout", 15*time.Second, "store operation timeout")

	reviewListCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum items to list (0 = no limit)")
	reviewListCmd.Flags().BoolVar(&showAnalysisRaw, "full", false, "print full analysis JSON per item")

	reviewResolveCmd.Flags().StringVar(&verdictValue, "verdict", "", "verdict: legit, misleading or needs_more_info")
	reviewResolveCmd.Flags().IntVar(&verdictConf, "confidence", 3, "reviewer confidence, 1-5")
	reviewResolveCmd.Flags().StringVar(&verdictReason, "reasoning", "", "free-form reasoning")
	reviewResolveCmd.Flags().StringVar(&verdictExpert, "expertise", "", "reviewer expertise tag")
	_ = reviewResolveCmd.MarkFlagRequired("verdict")
}

func runReviewList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	qstore, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	items, err := qstore.ListPending(ctx, listLimit)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No claims pending review.")
		return nil
	}

	for _, item := range items {
		if showAnalysisRaw {
			data, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal item: %w", err)
			}
			fmt.Println(string(data))
			continue
		}

		fmt.Printf("%s  claim=%s  score=%.2f  confidence=%.2f  triggers=%v  created=%s\n",
			item.ID,
			item.ClaimID,
			item.Analysis.OverallManipulationScore,
			item.Analysis.ConfidenceScore,
			item.Analysis.Routing.Triggers,
			item.CreatedAt.Format(time.RFC3339),
		)
	}

	return nil
}

func runReviewResolve(cmd *cobra.Command, args []string) error {
	itemID := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)

	qstore, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	reconciler := feedback.NewReconciler(qstore, logger)

	verdict := model.UserVerdict{
		Verdict:    model.Verdict(verdictValue),
		Confidence: verdictConf,
		Reasoning:  verdictReason,
		Expertise:  verdictExpert,
	}

	rec, err := reconciler.SubmitVerdict(ctx, itemID, verdict)
	if err != nil {
		return fmt.Errorf("submit verdict: %w", err)
	}

	fmt.Printf("✓ Resolved %s as %s\n", itemID, rec.Verdict)
	if verbose {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err == nil {
			fmt.Fprintln(os.Stderr, string(data))
		}
	}

	return nil
}
