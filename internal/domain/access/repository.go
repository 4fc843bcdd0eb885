package access

import (
	"context"
)

// Repository defines the interface for access grant persistence
type Repository interface {
	// Has reports whether an access row exists for the (lead, painter) pair
	Has(ctx context.Context, leadID string, painterID string) (bool, error)
	// GrantOnce inserts the access row unless one already exists for the
	// (lead, painter) pair, in which case it succeeds without writing.
	// Returns true when this call newly created the row; callers use that to
	// decide whether to increment the lead's payment counter.
	GrantOnce(ctx context.Context, grant *LeadAccess) (bool, error)
	// ListByPainter returns all grants held by a painter
	ListByPainter(ctx context.Context, painterID string) ([]*LeadAccess, error)
}
