package risk

import (
	"math"
	"testing"

	"github.com/avolokh/lazaret/internal/model"
)

func defaultCalculator() *ConfidenceCalculator {
	cfg := model.DefaultConfig()
	return NewConfidenceCalculator(cfg.Confidence, NewCredibilityClassifier(cfg.Credibility))
}

func TestConfidence_NoEvidenceNoPrecedent(t *testing.T) {
	c := defaultCalculator()

	score, breakdown := c.Calculate(nil, nil, 0.5, 0.5)

	if breakdown.EvidenceCoherence != 0.1 {
		t.Errorf("expected no-evidence coherence 0.1, got %.2f", breakdown.EvidenceCoherence)
	}
	if breakdown.SourceReliability != 0.1 {
		t.Errorf("expected no-evidence reliability 0.1, got %.2f", breakdown.SourceReliability)
	}
	if breakdown.ClaimPrecedence != 0.3 {
		t.Errorf("expected novelty score 0.3, got %.2f", breakdown.ClaimPrecedence)
	}
	if !breakdown.Novel {
		t.Error("expected claim to be marked novel")
	}
	if breakdown.ConflictRatio != 0 {
		t.Errorf("expected zero conflict ratio, got %.2f", breakdown.ConflictRatio)
	}

	want := 0.35*0.1 + 0.25*0.1 + 0.20*0.3 + 0.12*0.5 + 0.08*0.5
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("expected score %.4f, got %.4f", want, score)
	}
}

func TestConfidence_CoherentEvidence(t *testing.T) {
	c := defaultCalculator()

	evidence := []model.EvidenceItem{
		{Stance: model.StanceSupporting, Source: "reuters.com", Relevance: 1.0},
		{Stance: model.StanceSupporting, Source: "bbc.com", Relevance: 1.0},
		{Stance: model.StanceSupporting, Source: "apnews.com", Relevance: 1.0},
	}

	_, breakdown := c.Calculate(evidence, nil, 0.5, 0.5)

	if breakdown.EvidenceCoherence != 1.0 {
		t.Errorf("expected unanimous evidence coherence 1.0, got %.2f", breakdown.EvidenceCoherence)
	}
	// All established sources at full relevance: 0.8 each.
	if math.Abs(breakdown.SourceReliability-0.8) > 1e-9 {
		t.Errorf("expected reliability 0.8, got %.2f", breakdown.SourceReliability)
	}
	if breakdown.ConflictRatio != 0 {
		t.Errorf("expected no conflict, got %.2f", breakdown.ConflictRatio)
	}
}

func TestConfidence_MixedEvidencePenalized(t *testing.T) {
	c := defaultCalculator()

	evidence := []model.EvidenceItem{
		{Stance: model.StanceSupporting, Source: "example.com", Relevance: 1.0},
		{Stance: model.StanceRefuting, Source: "example.org", Relevance: 1.0},
	}

	_, breakdown := c.Calculate(evidence, nil, 0.5, 0.5)

	// Dominant ratio 0.5 is below the 0.7 threshold, halved to 0.25.
	if math.Abs(breakdown.EvidenceCoherence-0.25) > 1e-9 {
		t.Errorf("expected penalized coherence 0.25, got %.2f", breakdown.EvidenceCoherence)
	}
	if math.Abs(breakdown.ConflictRatio-0.5) > 1e-9 {
		t.Errorf("expected conflict ratio 0.5, got %.2f", breakdown.ConflictRatio)
	}
}

func TestConfidence_ContextualEvidenceNotConflict(t *testing.T) {
	c := defaultCalculator()

	evidence := []model.EvidenceItem{
		{Stance: model.StanceContextual, Source: "example.com", Relevance: 0.5},
		{Stance: model.StanceNeutral, Source: "example.org", Relevance: 0.5},
	}

	_, breakdown := c.Calculate(evidence, nil, 0.5, 0.5)

	if breakdown.ConflictRatio != 0 {
		t.Errorf("expected contextual/neutral evidence to carry no conflict, got %.2f", breakdown.ConflictRatio)
	}
}

func TestConfidence_PrecedentConsistency(t *testing.T) {
	c := defaultCalculator()

	consistent := []model.Precedent{
		{ClaimID: "a", Verdict: model.VerdictMisleading, Similarity: 0.9},
		{ClaimID: "b", Verdict: model.VerdictMisleading, Similarity: 0.8},
	}
	_, breakdown := c.Calculate(nil, consistent, 0.5, 0.5)

	// Fully consistent verdicts: 0.5 + 0.45, capped at 0.95.
	if math.Abs(breakdown.ClaimPrecedence-0.95) > 1e-9 {
		t.Errorf("expected capped precedence 0.95, got %.2f", breakdown.ClaimPrecedence)
	}
	if breakdown.Novel {
		t.Error("expected precedented claim not to be novel")
	}

	split := []model.Precedent{
		{ClaimID: "a", Verdict: model.VerdictMisleading, Similarity: 0.9},
		{ClaimID: "b", Verdict: model.VerdictLegit, Similarity: 0.8},
	}
	_, breakdown = c.Calculate(nil, split, 0.5, 0.5)

	want := 0.5 + 0.45*0.5
	if math.Abs(breakdown.ClaimPrecedence-want) > 1e-9 {
		t.Errorf("expected split precedence %.3f, got %.3f", want, breakdown.ClaimPrecedence)
	}
}

func TestConfidence_HintsClamped(t *testing.T) {
	c := defaultCalculator()

	_, breakdown := c.Calculate(nil, nil, 1.7, -0.3)

	if breakdown.LinguisticClarity != 1.0 {
		t.Errorf("expected clarity clamped to 1.0, got %.2f", breakdown.LinguisticClarity)
	}
	if breakdown.TemporalRelevance != 0.0 {
		t.Errorf("expected recency clamped to 0.0, got %.2f", breakdown.TemporalRelevance)
	}
}
