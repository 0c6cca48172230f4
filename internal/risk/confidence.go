package risk

import (
	"github.com/avolokh/lazaret/internal/model"
)

// ConfidenceCalculator combines claim-level metadata into a single
// confidence score: evidence coherence, source reliability, claim
// precedence, plus two externally supplied scalars (linguistic clarity and
// temporal relevance) that the engine only weights, never computes.
type ConfidenceCalculator struct {
	cfg        model.ConfidenceConfig
	classifier *CredibilityClassifier
}

// NewConfidenceCalculator creates the calculator.
func NewConfidenceCalculator(cfg model.ConfidenceConfig, classifier *CredibilityClassifier) *ConfidenceCalculator {
	return &ConfidenceCalculator{cfg: cfg, classifier: classifier}
}

// Calculate returns the weighted confidence score and its component
// breakdown, including the auxiliary metadata (conflict ratio, novelty)
// the quarantine router consumes.
func (c *ConfidenceCalculator) Calculate(
	evidence []model.EvidenceItem,
	precedents []model.Precedent,
	clarity, recency float64,
) (float64, model.ConfidenceBreakdown) {
	breakdown := model.ConfidenceBreakdown{
		EvidenceCoherence: c.coherence(evidence),
		SourceReliability: c.reliability(evidence),
		ClaimPrecedence:   c.precedence(precedents),
		LinguisticClarity: clamp01(clarity),
		TemporalRelevance: clamp01(recency),
		ConflictRatio:     conflictRatio(evidence),
		Novel:             len(precedents) == 0,
	}

	score := c.cfg.CoherenceWeight*breakdown.EvidenceCoherence +
		c.cfg.ReliabilityWeight*breakdown.SourceReliability +
		c.cfg.PrecedenceWeight*breakdown.ClaimPrecedence +
		c.cfg.ClarityWeight*breakdown.LinguisticClarity +
		c.cfg.RecencyWeight*breakdown.TemporalRelevance

	return clamp01(score), breakdown
}

// coherence is the share of the dominant stance among evidence snippets,
// penalized when below the mixed-evidence threshold. Mixed evidence is
// penalized, not just scored by majority.
func (c *ConfidenceCalculator) coherence(evidence []model.EvidenceItem) float64 {
	if len(evidence) == 0 {
		return c.cfg.NoEvidenceScore
	}

	counts := map[model.EvidenceStance]int{}
	for _, e := range evidence {
		counts[e.Stance]++
	}
	dominant := 0
	for _, n := range counts {
		if n > dominant {
			dominant = n
		}
	}

	ratio := float64(dominant) / float64(len(evidence))
	if ratio < c.cfg.MixedEvidenceThreshold {
		ratio *= c.cfg.MixedEvidencePenalty
	}
	return clamp01(ratio)
}

// reliability is the mean of tier weight x relevance across evidence
// sources.
func (c *ConfidenceCalculator) reliability(evidence []model.EvidenceItem) float64 {
	if len(evidence) == 0 {
		return c.cfg.NoEvidenceScore
	}

	sum := 0.0
	for _, e := range evidence {
		sum += c.classifier.Weight(e.Source) * clamp01(e.Relevance)
	}
	return clamp01(sum / float64(len(evidence)))
}

// precedence scales with the consistency of prior verdicts on similar
// claims. A novel claim gets a moderate default rather than zero: never
// having seen a claim is weak evidence about it, not strong evidence
// against it.
func (c *ConfidenceCalculator) precedence(precedents []model.Precedent) float64 {
	if len(precedents) == 0 {
		return c.cfg.NoveltyScore
	}

	counts := map[model.Verdict]int{}
	for _, p := range precedents {
		counts[p.Verdict]++
	}
	dominant := 0
	for _, n := range counts {
		if n > dominant {
			dominant = n
		}
	}

	consistency := float64(dominant) / float64(len(precedents))
	score := c.cfg.PrecedenceBase + c.cfg.PrecedenceSpan*consistency
	if score > c.cfg.PrecedenceCap {
		score = c.cfg.PrecedenceCap
	}
	return clamp01(score)
}

// conflictRatio is refuting over stanced (supporting + refuting) evidence;
// contextual and neutral snippets do not count as conflict.
func conflictRatio(evidence []model.EvidenceItem) float64 {
	supporting, refuting := 0, 0
	for _, e := range evidence {
		switch e.Stance {
		case model.StanceSupporting:
			supporting++
		case model.StanceRefuting:
			refuting++
		}
	}
	if supporting+refuting == 0 {
		return 0
	}
	return float64(refuting) / float64(supporting+refuting)
}
