package engine

import (
	"context"

	"github.com/avolokh/lazaret/internal/model"
)

// StaticEvidence is a fixture-backed evidence supplier: it returns the same
// snippets and hint scalars for every claim. Used by the CLI for offline
// runs and by tests.
type StaticEvidence struct {
	Items   []model.EvidenceItem `json:"items"`
	Clarity float64              `json:"clarity"`
	Recency float64              `json:"recency"`
}

// Evidence returns the fixed snippet list.
func (s *StaticEvidence) Evidence(_ context.Context, _ model.Claim) ([]model.EvidenceItem, error) {
	return s.Items, nil
}

// Hints returns the fixed clarity/recency scalars.
func (s *StaticEvidence) Hints(_ context.Context, _ model.Claim) (float64, float64, error) {
	return s.Clarity, s.Recency, nil
}

// StaticPrecedents is a fixture-backed precedent lookup.
type StaticPrecedents struct {
	Precedents []model.Precedent `json:"precedents"`
}

// SimilarClaims returns the fixed precedent list.
func (s *StaticPrecedents) SimilarClaims(_ context.Context, _ string, _ float64) ([]model.Precedent, error) {
	return s.Precedents, nil
}
