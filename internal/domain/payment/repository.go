package payment

import (
	"context"
)

// Repository defines the interface for lead payment persistence.
//
// MarkSucceeded and MarkFailed are the monotonic status transitions: they
// move a row out of PENDING exactly once and report whether this call was
// the one that did it. Re-applying a terminal status is a no-op, never an
// error, so duplicate webhook deliveries converge.
type Repository interface {
	// Create inserts the payment row. It fails with ErrAlreadyExists when a
	// row with the same gateway payment-intent id is already present; that
	// signals a duplicate reconciliation race and must never be silently
	// overwritten.
	Create(ctx context.Context, payment *LeadPayment) error
	Get(ctx context.Context, id string) (*LeadPayment, error)
	GetByIntentID(ctx context.Context, intentID string) (*LeadPayment, error)
	// MarkSucceeded transitions PENDING -> SUCCEEDED. Returns true when this
	// call performed the transition, false when the row was already terminal.
	// Fails with ErrNotFound when no row exists for the intent.
	MarkSucceeded(ctx context.Context, intentID string) (bool, error)
	// MarkFailed transitions PENDING -> FAILED, recording the error message.
	// Same transition semantics as MarkSucceeded.
	MarkFailed(ctx context.Context, intentID string, errorMessage string) (bool, error)
	ListByLead(ctx context.Context, leadID string) ([]*LeadPayment, error)
}
