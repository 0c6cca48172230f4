package model

import "errors"

// Sentinel errors for the engine's failure taxonomy. Extractor-level
// failures never surface from Analyze; they degrade to neutral values and
// are recorded on the SignalResult instead.
var (
	// ErrInvalidClaim marks structurally invalid input (length bounds,
	// list caps). The only hard failure of the analysis contract.
	ErrInvalidClaim = errors.New("invalid claim")

	// ErrScorerUnavailable is returned by scorer providers when a call
	// fails or times out. Extractors convert it into a degraded result.
	ErrScorerUnavailable = errors.New("scorer unavailable")

	// ErrAlreadyResolved is returned when a verdict arrives for a
	// quarantine item that has already been resolved. The first accepted
	// verdict wins; later submissions are rejected, never overwritten.
	ErrAlreadyResolved = errors.New("quarantine item already resolved")

	// ErrQuarantineNotFound is returned for verdicts against unknown items.
	ErrQuarantineNotFound = errors.New("quarantine item not found")
)
