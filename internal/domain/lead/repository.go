package lead

import (
	"context"
)

// Repository defines the interface for lead persistence.
//
// IncrementPaymentCount and Deactivate must each be implementable as a
// single atomic statement against the store: the payment paths race on the
// same lead row and correctness must not depend on application-level locks.
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	// IncrementPaymentCount atomically increments payment_count and flips
	// is_payment_active off when the new count reaches max_payments. Callers
	// must only invoke it after a first-time access grant.
	IncrementPaymentCount(ctx context.Context, id string) (*CounterResult, error)
	// Deactivate turns off is_payment_active without touching the counter
	Deactivate(ctx context.Context, id string) error
	// List returns all published leads, newest first
	List(ctx context.Context) ([]*Lead, error)
	// ListByIDs returns the leads matching the given ids
	ListByIDs(ctx context.Context, ids []string) ([]*Lead, error)
}
