package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/cockroachdb/errors"
)

type paymentMethodRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentMethodRepository(db *postgres.DB, logger *logger.Logger) paymentmethod.Repository {
	return &paymentMethodRepository{db: db, logger: logger}
}

func (r *paymentMethodRepository) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	query := `
		INSERT INTO painter_payment_methods (
			id, painter_id, gateway_customer_id, gateway_payment_method_id,
			brand, last4, is_default, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	r.logger.Debugw("creating payment method",
		"payment_method_id", pm.ID,
		"painter_id", pm.PainterID,
	)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		pm.ID, pm.PainterID, pm.GatewayCustomerID, pm.GatewayPaymentMethodID,
		pm.Brand, pm.Last4, pm.IsDefault, pm.Status, pm.CreatedAt, pm.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("This payment method is already saved").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to save payment method").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentMethodRepository) Get(ctx context.Context, id string) (*paymentmethod.PaymentMethod, error) {
	var pm paymentmethod.PaymentMethod
	err := r.db.GetQuerier(ctx).GetContext(ctx, &pm,
		`SELECT * FROM painter_payment_methods WHERE id = $1 AND status = $2`,
		id, types.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment method not found").
				WithHintf("Payment method with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment method").
			Mark(ierr.ErrDatabase)
	}
	return &pm, nil
}

func (r *paymentMethodRepository) GetByGatewayID(ctx context.Context, painterID string, gatewayPaymentMethodID string) (*paymentmethod.PaymentMethod, error) {
	var pm paymentmethod.PaymentMethod
	err := r.db.GetQuerier(ctx).GetContext(ctx, &pm,
		`SELECT * FROM painter_payment_methods
		WHERE painter_id = $1 AND gateway_payment_method_id = $2 AND status = $3`,
		painterID, gatewayPaymentMethodID, types.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment method not found").
				WithHint("No saved payment method matches the gateway payment method id").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment method").
			Mark(ierr.ErrDatabase)
	}
	return &pm, nil
}

func (r *paymentMethodRepository) GetDefault(ctx context.Context, painterID string) (*paymentmethod.PaymentMethod, error) {
	var pm paymentmethod.PaymentMethod
	err := r.db.GetQuerier(ctx).GetContext(ctx, &pm,
		`SELECT * FROM painter_payment_methods
		WHERE painter_id = $1 AND is_default = true AND status = $2`,
		painterID, types.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("no default payment method").
				WithHint("The painter has no default payment method saved").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get default payment method").
			Mark(ierr.ErrDatabase)
	}
	return &pm, nil
}

func (r *paymentMethodRepository) List(ctx context.Context, painterID string) ([]*paymentmethod.PaymentMethod, error) {
	var methods []*paymentmethod.PaymentMethod
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &methods,
		`SELECT * FROM painter_payment_methods
		WHERE painter_id = $1 AND status = $2
		ORDER BY is_default DESC, created_at DESC`,
		painterID, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payment methods").
			Mark(ierr.ErrDatabase)
	}
	return methods, nil
}

// SetDefault makes one statement of the flag swap so two concurrent calls
// cannot leave a painter with two defaults
func (r *paymentMethodRepository) SetDefault(ctx context.Context, painterID string, id string) error {
	query := `
		UPDATE painter_payment_methods SET
			is_default = (id = $1),
			updated_at = $2
		WHERE painter_id = $3 AND status = $4`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		id, time.Now().UTC(), painterID, types.StatusPublished)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to set default payment method").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *paymentMethodRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE painter_payment_methods SET
			status = $1, is_default = false, updated_at = $2
		WHERE id = $3 AND status = $4`,
		types.StatusDeleted, time.Now().UTC(), id, types.StatusPublished)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to remove payment method").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
