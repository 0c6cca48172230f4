package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolokh/lazaret/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "lazaret.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item := model.QuarantineItem{
		ID:      "q1",
		ClaimID: "c1",
		Analysis: model.ManipulationAnalysis{
			ClaimID:                  "c1",
			OverallManipulationScore: 0.61,
			ConfidenceScore:          0.4,
			RiskLevel:                model.RiskMedium,
			Routing: model.RoutingDecision{
				Outcome:  model.RouteQuarantine,
				Triggers: []string{"low_confidence"},
			},
			AnalyzedAt: time.Now().UTC().Truncate(time.Second),
		},
		Status:    model.StatusPendingReview,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Create(ctx, item))

	got, err := s.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ClaimID)
	assert.Equal(t, model.StatusPendingReview, got.Status)
	assert.InDelta(t, 0.61, got.Analysis.OverallManipulationScore, 1e-9)
	assert.Equal(t, []string{"low_confidence"}, got.Analysis.Routing.Triggers)
	assert.Nil(t, got.ResolvedAt)
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrQuarantineNotFound)
}

func TestSQLiteStore_ListPending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, id := range []string{"b", "a", "c"} {
		item := model.QuarantineItem{
			ID:        id,
			ClaimID:   "claim-" + id,
			Status:    model.StatusPendingReview,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.Create(ctx, item))
	}

	items, err := s.ListPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID, "oldest first")

	limited, err := s.ListPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b", limited[0].ID)
}

func TestSQLiteStore_ResolveCompareAndSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item := model.QuarantineItem{
		ID:        "q1",
		ClaimID:   "c1",
		Status:    model.StatusPendingReview,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Create(ctx, item))

	resolved, err := s.Resolve(ctx, "q1", model.UserVerdict{Verdict: model.VerdictLegit, Confidence: 5})
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, resolved.Status)
	assert.Equal(t, model.VerdictLegit, resolved.FinalVerdict)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = s.Resolve(ctx, "q1", model.UserVerdict{Verdict: model.VerdictMisleading, Confidence: 2})
	assert.ErrorIs(t, err, model.ErrAlreadyResolved)

	_, err = s.Resolve(ctx, "nope", model.UserVerdict{Verdict: model.VerdictLegit, Confidence: 3})
	assert.ErrorIs(t, err, model.ErrQuarantineNotFound)
}

func TestSQLiteStore_SaveReconciliation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := model.ReconciliationRecord{
		ItemID:             "q1",
		ClaimID:            "c1",
		ConfidenceScore:    0.4,
		ManipulationScore:  0.8,
		Verdict:            model.VerdictMisleading,
		ReviewerConfidence: 5,
		ReviewerExpertise:  "finance",
		ResolvedAt:         time.Now().UTC(),
	}
	assert.NoError(t, s.SaveReconciliation(ctx, rec))
}
