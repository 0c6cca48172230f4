package route

import (
	"github.com/avolokh/lazaret/internal/model"
)

// Trigger names recorded on the routing decision when they fire.
const (
	TriggerLowConfidence       = "low_confidence"
	TriggerConflictingEvidence = "conflicting_evidence"
	TriggerHighManipulation    = "high_manipulation"
	TriggerNovelLowConfidence  = "novel_low_confidence"
)

// Router decides between an automated verdict and quarantine. It is a pure
// function evaluated once per claim: no retry state, no hidden state, and a
// failed upstream signal participates as its neutral value rather than
// blocking the decision.
type Router struct {
	cfg model.RouterConfig
}

// NewRouter creates a router with the given thresholds.
func NewRouter(cfg model.RouterConfig) *Router {
	return &Router{cfg: cfg}
}

// Decide evaluates the quarantine triggers. Every firing trigger name is
// recorded, not just the outcome, to support explainability and later
// calibration.
func (r *Router) Decide(confidence, manipulation float64, breakdown model.ConfidenceBreakdown) model.RoutingDecision {
	var triggers []string

	if confidence < r.cfg.MinConfidence {
		triggers = append(triggers, TriggerLowConfidence)
	}
	if breakdown.ConflictRatio > r.cfg.MaxConflictRatio {
		triggers = append(triggers, TriggerConflictingEvidence)
	}
	if manipulation > r.cfg.MaxManipulation {
		triggers = append(triggers, TriggerHighManipulation)
	}
	if breakdown.Novel && confidence < r.cfg.NovelMinConfidence {
		triggers = append(triggers, TriggerNovelLowConfidence)
	}

	if len(triggers) > 0 {
		return model.RoutingDecision{Outcome: model.RouteQuarantine, Triggers: triggers}
	}
	return model.RoutingDecision{Outcome: model.RouteAutoVerdict}
}
