package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avolokh/lazaret/internal/model"
)

// Attribute identifies one quality the opaque scorer rates on [0,1].
type Attribute string

const (
	AttrUrgency           Attribute = "urgency"
	AttrFear              Attribute = "fear"
	AttrExclusivity       Attribute = "exclusivity"
	AttrMiracleBenefit    Attribute = "miracle_benefit"
	AttrAuthorityPressure Attribute = "authority_pressure"
	AttrAIGenerated       Attribute = "ai_generated"
)

// ManipulationTactics are the five tactics the emotional extractor asks
// the scorer to rate; the worst-case tactic dominates the signal.
var ManipulationTactics = []Attribute{
	AttrUrgency, AttrFear, AttrExclusivity, AttrMiracleBenefit, AttrAuthorityPressure,
}

// Result is the output of one scoring call.
type Result struct {
	// Values maps each requested attribute to a probability in [0,1].
	Values map[Attribute]float64

	// Raw is the unparsed provider output, kept for explainability.
	Raw string
}

// Provider is the typed capability interface over the opaque scorer. A
// provider must fail fast: callers treat any error as data (degraded
// signal), never as control flow, so a hung call would block aggregation.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Score rates the given text on each requested attribute.
	// A failed or timed-out call returns an error wrapping
	// model.ErrScorerUnavailable; it never returns a partial Result.
	Score(ctx context.Context, text string, attrs []Attribute) (*Result, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// BuildPrompt constructs the scoring prompt. The scorer is told to answer
// with a bare JSON object so parsing stays deterministic.
func BuildPrompt(text string, attrs []Attribute) string {
	var b strings.Builder
	b.WriteString("Rate the following content on each attribute with a probability between 0.0 and 1.0.\n")
	b.WriteString("Respond with ONLY a JSON object mapping attribute name to score, no prose.\n\nAttributes:\n")
	for _, a := range attrs {
		b.WriteString("- ")
		b.WriteString(string(a))
		b.WriteString("\n")
	}
	b.WriteString("\nContent:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"\n")
	return b.String()
}

// ParseScores extracts the attribute scores from a provider completion. It
// tolerates prose around the JSON object but requires every requested
// attribute to be present; values are clamped to [0,1].
func ParseScores(raw string, attrs []Attribute) (map[Attribute]float64, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in scorer output")
	}

	var parsed map[string]float64
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("decode scorer output: %w", err)
	}

	lowered := make(map[string]float64, len(parsed))
	for k, v := range parsed {
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}

	values := make(map[Attribute]float64, len(attrs))
	for _, a := range attrs {
		v, ok := lowered[string(a)]
		if !ok {
			return nil, fmt.Errorf("scorer output missing attribute %q", a)
		}
		values[a] = clamp01(v)
	}
	return values, nil
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

func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrScorerUnavailable, provider, err)
}
