package repository

import (
	"context"

	"github.com/brushlead/brushlead/internal/domain/access"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
)

type accessRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAccessRepository(db *postgres.DB, logger *logger.Logger) access.Repository {
	return &accessRepository{db: db, logger: logger}
}

func (r *accessRepository) Has(ctx context.Context, leadID string, painterID string) (bool, error) {
	var exists bool
	err := r.db.GetQuerier(ctx).GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM lead_accesses WHERE lead_id = $1 AND painter_id = $2
		)`, leadID, painterID)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check lead access").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

// GrantOnce relies on the unique (lead_id, painter_id) index: concurrent
// grants for the same pair all succeed but exactly one inserts a row, and
// only that caller sees created=true.
func (r *accessRepository) GrantOnce(ctx context.Context, grant *access.LeadAccess) (bool, error) {
	query := `
		INSERT INTO lead_accesses (id, lead_id, painter_id, payment_id, granted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lead_id, painter_id) DO NOTHING`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		grant.ID, grant.LeadID, grant.PainterID, grant.PaymentID, grant.GrantedAt)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to grant lead access").
			Mark(ierr.ErrDatabase)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to grant lead access").
			Mark(ierr.ErrDatabase)
	}

	created := n > 0
	if created {
		r.logger.Infow("granted lead access",
			"lead_id", grant.LeadID,
			"painter_id", grant.PainterID,
			"payment_id", grant.PaymentID,
		)
	}
	return created, nil
}

func (r *accessRepository) ListByPainter(ctx context.Context, painterID string) ([]*access.LeadAccess, error) {
	var grants []*access.LeadAccess
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &grants,
		`SELECT * FROM lead_accesses WHERE painter_id = $1 ORDER BY granted_at DESC`, painterID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list lead accesses").
			Mark(ierr.ErrDatabase)
	}
	return grants, nil
}
