package extract

import (
	"context"
	"fmt"

	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/scorer"
)

// EmotionalExtractor detects emotional-manipulation tactics. It combines
// two independent signals: a per-language lexical trigger list and an
// opaque scorer rating of five tactics (urgency, fear, exclusivity,
// miracle-benefit, authority-pressure). The score is the worst tactic, not
// an average -- one strong tactic is sufficient signal. Lexical
// corroboration raises trust in the score, not the score itself.
type EmotionalExtractor struct {
	cfg    model.EmotionalConfig
	scorer scorer.Provider // nil disables the scorer path
}

// NewEmotionalExtractor creates the extractor. A nil provider means every
// invocation takes the scorer-failure path.
func NewEmotionalExtractor(cfg model.EmotionalConfig, provider scorer.Provider) *EmotionalExtractor {
	return &EmotionalExtractor{cfg: cfg, scorer: provider}
}

// Name returns the signal name.
func (e *EmotionalExtractor) Name() model.SignalName {
	return model.SignalEmotional
}

// Extract scores the claim text.
func (e *EmotionalExtractor) Extract(ctx context.Context, claim model.Claim) model.SignalResult {
	result := model.SignalResult{Name: model.SignalEmotional}

	triggers := e.cfg.Triggers[claim.Lang()]
	if triggers == nil {
		triggers = e.cfg.Triggers["en"]
	}
	lexicalHits := matchPhrases(claim.Text, triggers)
	for _, hit := range lexicalHits {
		result.Evidence = append(result.Evidence, "trigger:"+hit)
	}

	values, err := e.scoreTactics(ctx, claim.Text)
	if err != nil {
		result.Score = e.cfg.NeutralScore
		result.Confidence = e.cfg.FailureConfidence
		result.Error = err.Error()
		return result
	}

	top, topAttr := 0.0, scorer.Attribute("")
	for attr, v := range values {
		if v >= top {
			top, topAttr = v, attr
		}
	}
	result.Score = clamp01(top)
	result.Evidence = append(result.Evidence, fmt.Sprintf("tactic:%s=%.2f", topAttr, top))

	if len(lexicalHits) > 0 {
		result.Confidence = e.cfg.LexicalConfidence
	} else {
		result.Confidence = e.cfg.BaseConfidence
	}
	return result
}

func (e *EmotionalExtractor) scoreTactics(ctx context.Context, text string) (map[scorer.Attribute]float64, error) {
	if e.scorer == nil {
		return nil, fmt.Errorf("%w: no provider configured", model.ErrScorerUnavailable)
	}
	res, err := e.scorer.Score(ctx, text, scorer.ManipulationTactics)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}
