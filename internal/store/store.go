package store

import (
	"context"

	"github.com/avolokh/lazaret/internal/model"
)

// QuarantineStore persists quarantine items and their resolution. The
// engine owns none of the persistence policy; implementations are injected.
//
// Resolve must be an atomic compare-and-set on the item status
// (pending_review -> resolved): when submissions race, exactly one wins and
// the rest observe model.ErrAlreadyResolved. A read-then-write pair is not
// an acceptable implementation.
type QuarantineStore interface {
	// Create stores a new pending item.
	Create(ctx context.Context, item model.QuarantineItem) error

	// Get returns an item by ID, or model.ErrQuarantineNotFound.
	Get(ctx context.Context, id string) (*model.QuarantineItem, error)

	// ListPending returns up to limit items awaiting review (0 = no limit).
	ListPending(ctx context.Context, limit int) ([]model.QuarantineItem, error)

	// Resolve atomically transitions a pending item to resolved with the
	// given verdict and returns the updated item. Returns
	// model.ErrAlreadyResolved if the item was resolved first, or
	// model.ErrQuarantineNotFound for an unknown ID.
	Resolve(ctx context.Context, id string, verdict model.UserVerdict) (*model.QuarantineItem, error)

	// SaveReconciliation records the pairing of automated scores with the
	// human verdict, retained as offline-calibration training signal.
	SaveReconciliation(ctx context.Context, rec model.ReconciliationRecord) error
}
