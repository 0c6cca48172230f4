package model

import (
	"fmt"
	"time"
)

// QuarantineStatus is the lifecycle state of a quarantined claim.
type QuarantineStatus string

const (
	StatusPendingReview QuarantineStatus = "pending_review"
	StatusResolved      QuarantineStatus = "resolved"
)

// Verdict is the final judgment on a quarantined claim.
type Verdict string

const (
	VerdictLegit         Verdict = "legit"
	VerdictMisleading    Verdict = "misleading"
	VerdictNeedsMoreInfo Verdict = "needs_more_info"
)

// Valid reports whether v is one of the accepted verdict values.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictLegit, VerdictMisleading, VerdictNeedsMoreInfo:
		return true
	}
	return false
}

// QuarantineItem is created when routing decides a claim needs human
// review. It is mutated exactly once, by the feedback reconciler when the
// first verdict arrives, and never deleted: resolved items are retained as
// training signal.
type QuarantineItem struct {
	ID       string               `json:"id"`
	ClaimID  string               `json:"claim_id"`
	Analysis ManipulationAnalysis `json:"analysis"`

	Status       QuarantineStatus `json:"status"`
	FinalVerdict Verdict          `json:"final_verdict,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// UserVerdict is a human judgment on a quarantine item. Immutable; only the
// first accepted verdict resolves the item.
type UserVerdict struct {
	Verdict     Verdict   `json:"verdict"`
	Confidence  int       `json:"confidence"`            // self-reported, 1-5
	Reasoning   string    `json:"reasoning,omitempty"`
	Expertise   string    `json:"expertise,omitempty"`   // reviewer-expertise tag
	SubmittedAt time.Time `json:"submitted_at"`
}

// Validate checks verdict value and confidence range.
func (v UserVerdict) Validate() error {
	if !v.Verdict.Valid() {
		return fmt.Errorf("unknown verdict %q (want legit, misleading or needs_more_info)", v.Verdict)
	}
	if v.Confidence < 1 || v.Confidence > 5 {
		return fmt.Errorf("reviewer confidence %d outside [1,5]", v.Confidence)
	}
	return nil
}

// ReconciliationRecord pairs the automated scores with the human verdict
// that resolved the item. Consumed offline to recalibrate extractor
// weights; this engine only emits it.
type ReconciliationRecord struct {
	ItemID  string `json:"item_id"`
	ClaimID string `json:"claim_id"`

	ConfidenceScore   float64 `json:"confidence_score"`
	ManipulationScore float64 `json:"manipulation_score"`

	Verdict            Verdict `json:"verdict"`
	ReviewerConfidence int     `json:"reviewer_confidence"`
	ReviewerExpertise  string  `json:"reviewer_expertise,omitempty"`

	ResolvedAt time.Time `json:"resolved_at"`
}
