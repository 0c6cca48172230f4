package extract

import (
	"context"
	"fmt"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/scorer"
)

// SyntheticExtractor estimates the likelihood that the content is
// AI-generated. Two independent checks: explicit disclosure phrases in the
// text, and an opaque scorer probability. Image references are passed
// through as needing a dedicated image model; no image analysis happens
// here.
type SyntheticExtractor struct {
	cfg    model.SyntheticConfig
	scorer scorer.Provider // nil means heuristic-only fallback
}

// NewSyntheticExtractor creates the extractor.
func NewSyntheticExtractor(cfg model.SyntheticConfig, provider scorer.Provider) *SyntheticExtractor {
	return &SyntheticExtractor{cfg: cfg, scorer: provider}
}

// Name returns the signal name.
func (e *SyntheticExtractor) Name() model.SignalName {
	return model.SignalSynthetic
}

// Extract scores the claim text and marks image references.
func (e *SyntheticExtractor) Extract(ctx context.Context, claim model.Claim) model.SignalResult {
	result := model.SignalResult{Name: model.SignalSynthetic}

	disclosures := matchPhrases(claim.Text, e.cfg.DisclosurePhrases)
	for _, hit := range disclosures {
		result.Evidence = append(result.Evidence, "disclosure:"+hit)
	}
	for _, img := range claim.Images {
		result.Evidence = append(result.Evidence, "image_pending_analysis:"+img)
	}

	probability := e.cfg.FallbackProbability
	if e.scorer != nil {
		res, err := e.scorer.Score(ctx, claim.Text, []scorer.Attribute{scorer.AttrAIGenerated})
		if err != nil {
			result.Error = err.Error()
		} else {
			probability = res.Values[scorer.AttrAIGenerated]
		}
	} else {
		result.Error = fmt.Sprintf("%v: no provider configured", model.ErrScorerUnavailable)
	}

	result.Score = clamp01(max(probability, e.cfg.PerDisclosureScore*float64(len(disclosures))))

	if len(disclosures) > 0 {
		result.Confidence = e.cfg.DisclosureConfidence
	} else {
		result.Confidence = e.cfg.BaseConfidence
	}
	return result
}
