package extract

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/scorer"
)

func TestSyntheticExtractor_Disclosure(t *testing.T) {
	cfg := model.DefaultConfig()
	provider := &stubScorer{values: map[scorer.Attribute]float64{
		scorer.AttrAIGenerated: 0.1,
	}}
	e := NewSyntheticExtractor(cfg.Synthetic, provider)

	result := e.Extract(context.Background(), model.Claim{
		Text: "This video was generated by AI for illustration purposes",
	})

	// One disclosure at 0.3 beats the scorer probability of 0.1.
	if math.Abs(result.Score-cfg.Synthetic.PerDisclosureScore) > 1e-9 {
		t.Errorf("expected disclosure score %.2f, got %.2f", cfg.Synthetic.PerDisclosureScore, result.Score)
	}
	if result.Confidence != cfg.Synthetic.DisclosureConfidence {
		t.Errorf("expected disclosure confidence %.2f, got %.2f", cfg.Synthetic.DisclosureConfidence, result.Confidence)
	}
}

func TestSyntheticExtractor_ScorerProbability(t *testing.T) {
	cfg := model.DefaultConfig()
	provider := &stubScorer{values: map[scorer.Attribute]float64{
		scorer.AttrAIGenerated: 0.85,
	}}
	e := NewSyntheticExtractor(cfg.Synthetic, provider)

	result := e.Extract(context.Background(), model.Claim{Text: "A perfectly ordinary statement about traffic"})

	if result.Score != 0.85 {
		t.Errorf("expected scorer probability 0.85, got %.2f", result.Score)
	}
	if result.Confidence != cfg.Synthetic.BaseConfidence {
		t.Errorf("expected base confidence without disclosure, got %.2f", result.Confidence)
	}
	if result.Error != "" {
		t.Errorf("unexpected error: %s", result.Error)
	}
}

func TestSyntheticExtractor_ScorerFailureFallback(t *testing.T) {
	cfg := model.DefaultConfig()
	provider := &stubScorer{err: errors.New("connection refused")}
	e := NewSyntheticExtractor(cfg.Synthetic, provider)

	result := e.Extract(context.Background(), model.Claim{Text: "Another ordinary statement"})

	if result.Score != cfg.Synthetic.FallbackProbability {
		t.Errorf("expected fallback probability %.2f, got %.2f", cfg.Synthetic.FallbackProbability, result.Score)
	}
	if result.Error == "" {
		t.Error("expected scorer failure to be recorded")
	}
}

func TestSyntheticExtractor_NilProvider(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewSyntheticExtractor(cfg.Synthetic, nil)

	result := e.Extract(context.Background(), model.Claim{Text: "No scorer configured here"})

	if result.Score != cfg.Synthetic.FallbackProbability {
		t.Errorf("expected fallback probability %.2f, got %.2f", cfg.Synthetic.FallbackProbability, result.Score)
	}
	if !strings.Contains(result.Error, "scorer unavailable") {
		t.Errorf("expected scorer unavailable error, got %q", result.Error)
	}
}

func TestSyntheticExtractor_ImagesMarkedPending(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewSyntheticExtractor(cfg.Synthetic, nil)

	result := e.Extract(context.Background(), model.Claim{
		Text:   "Look at this photo of the event",
		Images: []string{"img-001", "img-002"},
	})

	pending := 0
	for _, ev := range result.Evidence {
		if strings.HasPrefix(ev, "image_pending_analysis:") {
			pending++
		}
	}
	if pending != 2 {
		t.Errorf("expected 2 pending-image markers, got %d (%v)", pending, result.Evidence)
	}
}
