package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/store"
)

func quarantined(t *testing.T, s store.QuarantineStore, id string) {
	t.Helper()
	item := model.QuarantineItem{
		ID:      id,
		ClaimID: "claim-" + id,
		Analysis: model.ManipulationAnalysis{
			ClaimID:                  "claim-" + id,
			OverallManipulationScore: 0.72,
			ConfidenceScore:          0.41,
		},
		Status:    model.StatusPendingReview,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Create(context.Background(), item))
}

func TestReconciler_SubmitVerdict(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewReconciler(s, nil)
	quarantined(t, s, "q1")

	verdict := model.UserVerdict{
		Verdict:    model.VerdictMisleading,
		Confidence: 4,
		Reasoning:  "known scam template",
		Expertise:  "finance",
	}
	rec, err := r.SubmitVerdict(context.Background(), "q1", verdict)
	require.NoError(t, err)

	assert.Equal(t, "q1", rec.ItemID)
	assert.Equal(t, "claim-q1", rec.ClaimID)
	assert.Equal(t, model.VerdictMisleading, rec.Verdict)
	assert.Equal(t, 4, rec.ReviewerConfidence)
	assert.Equal(t, "finance", rec.ReviewerExpertise)
	assert.InDelta(t, 0.41, rec.ConfidenceScore, 1e-9)
	assert.InDelta(t, 0.72, rec.ManipulationScore, 1e-9)
	assert.False(t, rec.ResolvedAt.IsZero())

	// The record reaches the store too.
	records := s.Reconciliations()
	require.Len(t, records, 1)
	assert.Equal(t, *rec, records[0])
}

func TestReconciler_FirstVerdictWins(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewReconciler(s, nil)
	quarantined(t, s, "q1")

	first := model.UserVerdict{Verdict: model.VerdictLegit, Confidence: 5}
	_, err := r.SubmitVerdict(context.Background(), "q1", first)
	require.NoError(t, err)

	second := model.UserVerdict{Verdict: model.VerdictMisleading, Confidence: 5}
	_, err = r.SubmitVerdict(context.Background(), "q1", second)
	assert.ErrorIs(t, err, model.ErrAlreadyResolved)

	item, err := s.Get(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictLegit, item.FinalVerdict, "first verdict must not be overwritten")
}

func TestReconciler_UnknownItem(t *testing.T) {
	r := NewReconciler(store.NewMemoryStore(), nil)

	_, err := r.SubmitVerdict(context.Background(), "missing", model.UserVerdict{
		Verdict:    model.VerdictLegit,
		Confidence: 3,
	})
	assert.ErrorIs(t, err, model.ErrQuarantineNotFound)
}

func TestReconciler_InvalidVerdict(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewReconciler(s, nil)
	quarantined(t, s, "q1")

	tests := []struct {
		name    string
		verdict model.UserVerdict
	}{
		{"unknown verdict value", model.UserVerdict{Verdict: "maybe", Confidence: 3}},
		{"confidence too low", model.UserVerdict{Verdict: model.VerdictLegit, Confidence: 0}},
		{"confidence too high", model.UserVerdict{Verdict: model.VerdictLegit, Confidence: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.SubmitVerdict(context.Background(), "q1", tt.verdict)
			assert.Error(t, err)
		})
	}

	// Item untouched by the rejected submissions.
	item, err := s.Get(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, item.Status)
}
