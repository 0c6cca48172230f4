package extract

import (
	"context"
	"strings"

	"github.com/avolokh/lazaret/internal/model"
)

// Extractor produces one manipulation sub-score for a claim. Extract never
// returns an error: a failed sub-signal is encoded in the result itself
// (neutral score, lowered confidence, Error field) so that a single failing
// extractor can never abort the analysis.
type Extractor interface {
	Name() model.SignalName
	Extract(ctx context.Context, claim model.Claim) model.SignalResult
}

// matchPhrases returns the phrases found in text (case-insensitive
// substring match).
func matchPhrases(text string, phrases []string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			hits = append(hits, p)
		}
	}
	return hits
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
