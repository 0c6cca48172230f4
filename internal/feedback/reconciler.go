package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/store"
)

// Reconciler accepts human verdicts for quarantined items. Acceptance is
// first-writer-wins: the store's compare-and-set resolves the item exactly
// once, and every later submission is rejected with ErrAlreadyResolved,
// never silently overwritten. Accepted verdicts emit a reconciliation
// record pairing the automated scores with the human judgment; the actual
// weight recalibration happens offline, not here.
type Reconciler struct {
	store  store.QuarantineStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(s store.QuarantineStore, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{store: s, logger: logger, now: time.Now}
}

// SubmitVerdict applies a human verdict to a pending quarantine item.
// Returns the emitted reconciliation record on acceptance. Error paths:
// invalid verdict input, model.ErrQuarantineNotFound,
// model.ErrAlreadyResolved.
func (r *Reconciler) SubmitVerdict(ctx context.Context, itemID string, verdict model.UserVerdict) (*model.ReconciliationRecord, error) {
	if err := verdict.Validate(); err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}
	if verdict.SubmittedAt.IsZero() {
		verdict.SubmittedAt = r.now().UTC()
	}

	item, err := r.store.Resolve(ctx, itemID, verdict)
	if err != nil {
		return nil, err
	}

	rec := model.ReconciliationRecord{
		ItemID:             item.ID,
		ClaimID:            item.ClaimID,
		ConfidenceScore:    item.Analysis.ConfidenceScore,
		ManipulationScore:  item.Analysis.OverallManipulationScore,
		Verdict:            verdict.Verdict,
		ReviewerConfidence: verdict.Confidence,
		ReviewerExpertise:  verdict.Expertise,
		ResolvedAt:         *item.ResolvedAt,
	}
	if err := r.store.SaveReconciliation(ctx, rec); err != nil {
		// The verdict is already accepted; losing the calibration record
		// must not roll that back.
		r.logger.Warn("reconciliation record not persisted", "item", item.ID, "error", err)
	}

	r.logger.Info("quarantine item resolved",
		"item", item.ID,
		"claim", item.ClaimID,
		"verdict", verdict.Verdict,
		"reviewer_confidence", verdict.Confidence,
	)
	return &rec, nil
}
