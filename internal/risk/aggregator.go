package risk

import (
	"github.com/avolokh/lazaret/internal/model"
)

// Alert rule names recorded on the analysis when they fire.
const (
	RuleEmotionalSynthetic = "emotional_synthetic"
	RuleIncentiveDeception = "incentive_deception"
	RuleBroadSignal        = "broad_signal"
)

// Aggregator combines the four signal results into the overall
// manipulation score, the co-occurrence alert and the risk level. It is a
// pure function over settled extractor results and runs only after all
// four have settled.
type Aggregator struct {
	weights model.WeightConfig
	alert   model.AlertConfig
	risk    model.RiskConfig
}

// NewAggregator creates an aggregator with the given constants.
func NewAggregator(weights model.WeightConfig, alert model.AlertConfig, risk model.RiskConfig) *Aggregator {
	return &Aggregator{weights: weights, alert: alert, risk: risk}
}

// Aggregate computes the weighted overall score, the alert and the risk
// level from the four signal results.
func (a *Aggregator) Aggregate(signals []model.SignalResult) (float64, model.Alert, model.RiskLevel) {
	byName := make(map[model.SignalName]model.SignalResult, len(signals))
	for _, s := range signals {
		byName[s.Name] = s
	}
	emotional := byName[model.SignalEmotional]
	incentive := byName[model.SignalIncentive]
	deception := byName[model.SignalDeception]
	synthetic := byName[model.SignalSynthetic]

	overall := clamp01(a.weights.Emotional*emotional.Score +
		a.weights.Incentive*incentive.Score +
		a.weights.Deception*deception.Score +
		a.weights.Synthetic*synthetic.Score)

	alert := a.checkAlert(emotional.Score, incentive.Score, deception.Score, synthetic.Score)

	meanConfidence := (emotional.Confidence + incentive.Confidence +
		deception.Confidence + synthetic.Confidence) / 4.0

	return overall, alert, a.riskLevel(overall, meanConfidence)
}

// checkAlert evaluates the co-occurrence rules. Any single rule firing
// raises the alert; all firing rule names are recorded.
func (a *Aggregator) checkAlert(emotional, incentive, deception, synthetic float64) model.Alert {
	var rules []string

	if emotional > a.alert.EmotionalMin && synthetic > a.alert.SyntheticMin {
		rules = append(rules, RuleEmotionalSynthetic)
	}
	if incentive > a.alert.IncentiveMin && deception > a.alert.DeceptionMin {
		rules = append(rules, RuleIncentiveDeception)
	}

	// Breadth rule: many moderate indicators are as concerning as one
	// strong one.
	moderate := 0
	for _, s := range []float64{emotional, incentive, deception, synthetic} {
		if s > a.alert.BreadthMin {
			moderate++
		}
	}
	if moderate >= a.alert.BreadthCount {
		rules = append(rules, RuleBroadSignal)
	}

	return model.Alert{Triggered: len(rules) > 0, Rules: rules}
}

// riskLevel maps the overall score to a category. High severity requires
// both magnitude and confidence so noisy low-confidence signals never earn
// a high label.
func (a *Aggregator) riskLevel(overall, meanConfidence float64) model.RiskLevel {
	switch {
	case overall >= a.risk.HighScore && meanConfidence >= a.risk.HighConfidence:
		return model.RiskHigh
	case overall >= a.risk.MediumScore && meanConfidence >= a.risk.MediumConfidence:
		return model.RiskMedium
	case overall >= a.risk.LowScore:
		return model.RiskLow
	default:
		return model.RiskMinimal
	}
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
