package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brushlead/brushlead/internal/domain/painter"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

type painterRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPainterRepository(db *postgres.DB, logger *logger.Logger) painter.Repository {
	return &painterRepository{db: db, logger: logger}
}

func (r *painterRepository) Create(ctx context.Context, p *painter.Painter) error {
	query := `
		INSERT INTO painters (
			id, name, email, phone, gateway_customer_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	r.logger.Debugw("creating painter", "painter_id", p.ID)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.GatewayCustomerID,
		p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A painter with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create painter").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *painterRepository) Get(ctx context.Context, id string) (*painter.Painter, error) {
	var p painter.Painter
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		`SELECT * FROM painters WHERE id = $1 AND status != $2`, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("painter not found").
				WithHintf("Painter with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get painter").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *painterRepository) SetGatewayCustomerID(ctx context.Context, id string, gatewayCustomerID string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE painters SET gateway_customer_id = $1, updated_at = $2 WHERE id = $3`,
		gatewayCustomerID, time.Now().UTC(), id,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update painter").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ierr.NewError("painter not found").
			WithHintf("Painter with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
