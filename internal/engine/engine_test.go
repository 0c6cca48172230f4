package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/scorer"
	"github.com/avolokh/lazaret/internal/store"
)

// stubProvider returns canned attribute values
type stubProvider struct {
	values map[scorer.Attribute]float64
	err    error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Score(_ context.Context, _ string, attrs []scorer.Attribute) (*scorer.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	values := make(map[scorer.Attribute]float64, len(attrs))
	for _, a := range attrs {
		values[a] = s.values[a]
	}
	return &scorer.Result{Values: values}, nil
}

func (s *stubProvider) IsAvailable(_ context.Context) bool { return s.err == nil }

// failingStore rejects every write
type failingStore struct{ store.QuarantineStore }

func (f *failingStore) Create(_ context.Context, _ model.QuarantineItem) error {
	return errors.New("disk full")
}

func TestEngine_ScamClaimQuarantined(t *testing.T) {
	provider := &stubProvider{values: map[scorer.Attribute]float64{
		scorer.AttrUrgency:     0.9,
		scorer.AttrAIGenerated: 0.3,
	}}
	qstore := store.NewMemoryStore()
	eng := New(nil, provider, WithQuarantineStore(qstore))

	claim := model.Claim{Text: "URGENT: earn ₹50,000 daily, click here now!"}
	analysis, err := eng.Analyze(context.Background(), claim)
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.NotEmpty(t, analysis.ClaimID, "engine must assign a claim ID")
	require.Len(t, analysis.Signals, 4)

	emotional := analysis.Signal(model.SignalEmotional)
	assert.InDelta(t, 0.9, emotional.Score, 1e-9, "worst scorer tactic dominates")
	assert.InDelta(t, 0.8, emotional.Confidence, 1e-9, "lexical trigger raises confidence")

	incentive := analysis.Signal(model.SignalIncentive)
	assert.InDelta(t, 0.8, incentive.Score, 1e-9, "monetary promise is a hard signal")

	want := 0.30*0.9 + 0.25*0.8 + 0.25*0.3 + 0.20*0.3
	assert.InDelta(t, want, analysis.OverallManipulationScore, 1e-9)
	assert.Equal(t, model.RiskMedium, analysis.RiskLevel)

	// No evidence, no precedent: confidence collapses and routing quarantines.
	assert.Less(t, analysis.ConfidenceScore, 0.65)
	assert.Equal(t, model.RouteQuarantine, analysis.Routing.Outcome)
	assert.Contains(t, analysis.Routing.Triggers, "low_confidence")
	assert.Contains(t, analysis.Routing.Triggers, "novel_low_confidence")

	pending, err := qstore.ListPending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, analysis.ClaimID, pending[0].ClaimID)
	assert.Equal(t, model.StatusPendingReview, pending[0].Status)
}

func TestEngine_TotalScorerFailureIsDeterministic(t *testing.T) {
	eng := New(nil, nil)

	claim := model.Claim{Text: "The committee will publish its findings next week."}
	analysis, err := eng.Analyze(context.Background(), claim)
	require.NoError(t, err, "scorer loss must never fail the analysis")

	emotional := analysis.Signal(model.SignalEmotional)
	assert.True(t, emotional.Degraded())
	assert.InDelta(t, 0.5, emotional.Score, 1e-9)
	assert.InDelta(t, 0.2, emotional.Confidence, 1e-9)

	synthetic := analysis.Signal(model.SignalSynthetic)
	assert.True(t, synthetic.Degraded())
	assert.InDelta(t, 0.2, synthetic.Score, 1e-9)

	// 0.30*0.5 + 0.25*0.1 + 0.25*0 + 0.20*0.2
	assert.InDelta(t, 0.215, analysis.OverallManipulationScore, 1e-9)
}

func TestEngine_InvalidClaimRejected(t *testing.T) {
	eng := New(nil, nil)

	tests := []struct {
		name  string
		claim model.Claim
	}{
		{"too short", model.Claim{Text: "short"}},
		{"too many urls", model.Claim{
			Text: "a perfectly reasonable claim text",
			URLs: []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Analyze(context.Background(), tt.claim)
			assert.ErrorIs(t, err, model.ErrInvalidClaim)
		})
	}
}

func TestEngine_WellSupportedClaimAutoVerdict(t *testing.T) {
	evidence := &StaticEvidence{
		Items: []model.EvidenceItem{
			{Stance: model.StanceSupporting, Source: "who.int", Relevance: 1.0},
			{Stance: model.StanceSupporting, Source: "reuters.com", Relevance: 1.0},
			{Stance: model.StanceSupporting, Source: "nature.com", Relevance: 1.0},
		},
		Clarity: 0.9,
		Recency: 0.9,
	}
	precedents := &StaticPrecedents{Precedents: []model.Precedent{
		{ClaimID: "p1", Verdict: model.VerdictLegit, Similarity: 0.92},
		{ClaimID: "p2", Verdict: model.VerdictLegit, Similarity: 0.88},
	}}
	qstore := store.NewMemoryStore()

	eng := New(nil, nil,
		WithEvidenceSupplier(evidence),
		WithPrecedentLookup(precedents),
		WithHintSupplier(evidence),
		WithQuarantineStore(qstore),
	)

	claim := model.Claim{Text: "The health ministry published new vaccination guidance."}
	analysis, err := eng.Analyze(context.Background(), claim)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, analysis.ConfidenceScore, 0.65)
	assert.False(t, analysis.Confidence.Novel)
	assert.Equal(t, model.RouteAutoVerdict, analysis.Routing.Outcome)
	assert.Empty(t, analysis.Routing.Triggers)

	pending, err := qstore.ListPending(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, pending, "auto-verdict claims are not quarantined")
}

func TestEngine_PreservesClaimID(t *testing.T) {
	eng := New(nil, nil)

	analysis, err := eng.Analyze(context.Background(), model.Claim{
		ID:   "claim-42",
		Text: "a perfectly reasonable claim text",
	})
	require.NoError(t, err)
	assert.Equal(t, "claim-42", analysis.ClaimID)
}

func TestEngine_StoreFailureReturnsAnalysis(t *testing.T) {
	eng := New(nil, nil, WithQuarantineStore(&failingStore{}))

	// A bare claim with no evidence always quarantines on low confidence.
	analysis, err := eng.Analyze(context.Background(), model.Claim{
		Text: "an unverifiable claim about a distant event",
	})
	require.Error(t, err)
	require.NotNil(t, analysis, "analysis must survive a persistence failure")
	assert.Equal(t, model.RouteQuarantine, analysis.Routing.Outcome)
}
