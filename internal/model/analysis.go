package model

import "time"

// RiskLevel categorizes the aggregate manipulation score. The ladder
// requires both magnitude and confidence so that noisy low-confidence
// signals never earn a high-severity label.
type RiskLevel string

const (
	RiskMinimal RiskLevel = "minimal"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// RoutingOutcome is one of the two terminal states reached per claim.
type RoutingOutcome string

const (
	RouteAutoVerdict RoutingOutcome = "auto_verdict"
	RouteQuarantine  RoutingOutcome = "quarantine"
)

// Alert is the high-manipulation co-occurrence flag together with the
// names of the rules that fired.
type Alert struct {
	Triggered bool     `json:"triggered"`
	Rules     []string `json:"rules,omitempty"`
}

// RoutingDecision records the routing outcome and every trigger that fired,
// not just the boolean, so decisions stay explainable and calibratable.
type RoutingDecision struct {
	Outcome  RoutingOutcome `json:"outcome"`
	Triggers []string       `json:"triggers,omitempty"`
}

// ConfidenceBreakdown exposes the weighted components behind the
// confidence score, plus the auxiliary evidence metadata the router needs.
type ConfidenceBreakdown struct {
	EvidenceCoherence float64 `json:"evidence_coherence"`
	SourceReliability float64 `json:"source_reliability"`
	ClaimPrecedence   float64 `json:"claim_precedence"`
	LinguisticClarity float64 `json:"linguistic_clarity"`
	TemporalRelevance float64 `json:"temporal_relevance"`

	ConflictRatio float64 `json:"conflict_ratio"` // refuting / (supporting+refuting)
	Novel         bool    `json:"novel"`          // no semantically similar precedent
}

// ManipulationAnalysis is the aggregate result for a claim. Immutable after
// creation; a re-analysis creates a new instance, never mutates history.
type ManipulationAnalysis struct {
	ClaimID string `json:"claim_id"`

	OverallManipulationScore float64   `json:"overall_manipulation_score"` // [0,1]
	ConfidenceScore          float64   `json:"confidence_score"`           // [0,1]
	RiskLevel                RiskLevel `json:"risk_level"`
	HighManipulationAlert    Alert     `json:"high_manipulation_alert"`

	Signals    []SignalResult      `json:"signals"` // one per extractor, aggregation order
	Confidence ConfidenceBreakdown `json:"confidence_breakdown"`
	Routing    RoutingDecision     `json:"routing"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Signal returns the result for the named extractor, or a zero result if
// absent (which does not happen for analyses produced by the engine).
func (a ManipulationAnalysis) Signal(name SignalName) SignalResult {
	for _, s := range a.Signals {
		if s.Name == name {
			return s
		}
	}
	return SignalResult{Name: name}
}
