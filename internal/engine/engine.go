package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolokh/lazaret/internal/extract"
	"github.com/avolokh/lazaret/internal/model"
	"github.com/avolokh/lazaret/internal/risk"
	"github.com/avolokh/lazaret/internal/route"
	"github.com/avolokh/lazaret/internal/scorer"
	"github.com/avolokh/lazaret/internal/store"
)

// EvidenceSupplier provides externally gathered evidence snippets for a
// claim. The engine weights evidence; retrieval is not its concern.
type EvidenceSupplier interface {
	Evidence(ctx context.Context, claim model.Claim) ([]model.EvidenceItem, error)
}

// PrecedentLookup finds semantically similar prior claims with their
// verdicts.
type PrecedentLookup interface {
	SimilarClaims(ctx context.Context, text string, threshold float64) ([]model.Precedent, error)
}

// HintSupplier provides the externally computed scalars the confidence
// calculator only weights: linguistic clarity and temporal relevance.
type HintSupplier interface {
	Hints(ctx context.Context, claim model.Claim) (clarity, recency float64, err error)
}

// Engine runs the full analysis for one claim: concurrent signal
// extraction, aggregation, confidence calculation and routing. Analyze
// never fails for extractor-level errors; a failed sub-signal participates
// as its documented neutral value.
type Engine struct {
	cfg        *model.Config
	extractors []extract.Extractor
	aggregator *risk.Aggregator
	confidence *risk.ConfidenceCalculator
	router     *route.Router

	evidence   EvidenceSupplier
	precedents PrecedentLookup
	hints      HintSupplier
	quarantine store.QuarantineStore

	logger *slog.Logger
	now    func() time.Time
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithEvidenceSupplier injects the external evidence supplier.
func WithEvidenceSupplier(s EvidenceSupplier) Option {
	return func(e *Engine) { e.evidence = s }
}

// WithPrecedentLookup injects the external precedent lookup.
func WithPrecedentLookup(p PrecedentLookup) Option {
	return func(e *Engine) { e.precedents = p }
}

// WithHintSupplier injects the clarity/recency supplier.
func WithHintSupplier(h HintSupplier) Option {
	return func(e *Engine) { e.hints = h }
}

// WithQuarantineStore makes the engine persist quarantine items when
// routing decides on human review.
func WithQuarantineStore(s store.QuarantineStore) Option {
	return func(e *Engine) { e.quarantine = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an engine from configuration and an optional scorer provider
// (nil disables scorer-backed extraction paths; they degrade to their
// neutral defaults).
func New(cfg *model.Config, provider scorer.Provider, opts ...Option) *Engine {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	classifier := risk.NewCredibilityClassifier(cfg.Credibility)

	e := &Engine{
		cfg: cfg,
		extractors: []extract.Extractor{
			extract.NewEmotionalExtractor(cfg.Emotional, provider),
			extract.NewIncentiveExtractor(cfg.Incentive, cfg.URL),
			extract.NewDeceptionExtractor(cfg.Deception, cfg.URL),
			extract.NewSyntheticExtractor(cfg.Synthetic, provider),
		},
		aggregator: risk.NewAggregator(cfg.Weights, cfg.Alert, cfg.Risk),
		confidence: risk.NewConfidenceCalculator(cfg.Confidence, classifier),
		router:     route.NewRouter(cfg.Router),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze evaluates one claim and returns its complete analysis. The only
// hard failures are structurally invalid claims and (when a store is
// configured) failure to persist a quarantine item; in the latter case the
// analysis is returned alongside the error.
func (e *Engine) Analyze(ctx context.Context, claim model.Claim) (*model.ManipulationAnalysis, error) {
	if err := claim.Validate(); err != nil {
		return nil, err
	}
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}

	signals := e.extractAll(ctx, claim)

	overall, alert, level := e.aggregator.Aggregate(signals)

	evidence, precedents := e.gather(ctx, claim)
	clarity, recency := e.gatherHints(ctx, claim)
	confidence, breakdown := e.confidence.Calculate(evidence, precedents, clarity, recency)

	decision := e.router.Decide(confidence, overall, breakdown)

	analysis := &model.ManipulationAnalysis{
		ClaimID:                  claim.ID,
		OverallManipulationScore: overall,
		ConfidenceScore:          confidence,
		RiskLevel:                level,
		HighManipulationAlert:    alert,
		Signals:                  signals,
		Confidence:               breakdown,
		Routing:                  decision,
		AnalyzedAt:               e.now().UTC(),
	}

	e.logger.Info("claim analyzed",
		"claim", claim.ID,
		"score", overall,
		"confidence", confidence,
		"risk", level,
		"routing", decision.Outcome,
	)

	if decision.Outcome == model.RouteQuarantine && e.quarantine != nil {
		item := model.QuarantineItem{
			ID:        uuid.NewString(),
			ClaimID:   claim.ID,
			Analysis:  *analysis,
			Status:    model.StatusPendingReview,
			CreatedAt: e.now().UTC(),
		}
		if err := e.quarantine.Create(ctx, item); err != nil {
			return analysis, fmt.Errorf("persist quarantine item: %w", err)
		}
		e.logger.Info("claim quarantined", "claim", claim.ID, "item", item.ID, "triggers", decision.Triggers)
	}

	return analysis, nil
}

// extractAll fans the four extractors out concurrently and waits for all of
// them to settle. Each writes into its own slot; there is no shared mutable
// state between invocations. Total latency is bounded by the slowest
// extractor, not their sum.
func (e *Engine) extractAll(ctx context.Context, claim model.Claim) []model.SignalResult {
	results := make([]model.SignalResult, len(e.extractors))
	var wg sync.WaitGroup

	for i, ex := range e.extractors {
		wg.Add(1)
		go func(idx int, ex extract.Extractor) {
			defer wg.Done()
			results[idx] = ex.Extract(ctx, claim)
		}(i, ex)
	}
	wg.Wait()

	for _, r := range results {
		if r.Degraded() {
			e.logger.Warn("signal degraded to neutral value",
				"claim", claim.ID, "signal", r.Name, "error", r.Error)
		}
	}
	return results
}

// gather collects evidence and precedents, tolerating absent or failing
// suppliers: no evidence and no precedent are legitimate degraded states,
// not errors.
func (e *Engine) gather(ctx context.Context, claim model.Claim) ([]model.EvidenceItem, []model.Precedent) {
	var evidence []model.EvidenceItem
	if e.evidence != nil {
		items, err := e.evidence.Evidence(ctx, claim)
		if err != nil {
			e.logger.Warn("evidence supplier failed", "claim", claim.ID, "error", err)
		} else {
			evidence = items
		}
	}

	var precedents []model.Precedent
	if e.precedents != nil {
		similar, err := e.precedents.SimilarClaims(ctx, claim.Text, 0.8)
		if err != nil {
			e.logger.Warn("precedent lookup failed", "claim", claim.ID, "error", err)
		} else {
			precedents = similar
		}
	}

	return evidence, precedents
}

func (e *Engine) gatherHints(ctx context.Context, claim model.Claim) (clarity, recency float64) {
	clarity = e.cfg.Confidence.DefaultClarity
	recency = e.cfg.Confidence.DefaultRecency
	if e.hints == nil {
		return clarity, recency
	}
	c, r, err := e.hints.Hints(ctx, claim)
	if err != nil {
		e.logger.Warn("hint supplier failed", "claim", claim.ID, "error", err)
		return clarity, recency
	}
	return c, r
}
