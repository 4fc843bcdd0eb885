package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brushlead/brushlead/internal/domain/payment"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/cockroachdb/errors"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.LeadPayment) error {
	query := `
		INSERT INTO lead_payments (
			id, lead_id, painter_id, payment_method_id, gateway_payment_intent_id,
			gateway_customer_id, amount, currency, payment_status, payment_number,
			receipt_number, error_message, succeeded_at, failed_at,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	r.logger.Debugw("creating lead payment",
		"payment_id", p.ID,
		"lead_id", p.LeadID,
		"painter_id", p.PainterID,
		"payment_intent_id", p.GatewayPaymentIntentID,
	)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		p.ID, p.LeadID, p.PainterID, p.PaymentMethodID, p.GatewayPaymentIntentID,
		p.GatewayCustomerID, p.Amount, p.Currency, p.PaymentStatus, p.PaymentNumber,
		p.ReceiptNumber, p.ErrorMessage, p.SucceededAt, p.FailedAt,
		p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A payment already exists for this payment intent").
				WithReportableDetails(map[string]any{
					"payment_intent_id": p.GatewayPaymentIntentID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.LeadPayment, error) {
	var p payment.LeadPayment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		`SELECT * FROM lead_payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) GetByIntentID(ctx context.Context, intentID string) (*payment.LeadPayment, error) {
	var p payment.LeadPayment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		`SELECT * FROM lead_payments WHERE gateway_payment_intent_id = $1`, intentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment not found for payment intent").
				WithHintf("No payment recorded for payment intent %s", intentID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

// MarkSucceeded flips the row from PENDING to SUCCEEDED in one statement.
// The status guard in the WHERE clause makes replays and the sync-vs-webhook
// race converge: only one caller observes a rows-affected count of 1.
func (r *paymentRepository) MarkSucceeded(ctx context.Context, intentID string) (bool, error) {
	return r.markTerminal(ctx, intentID, types.PaymentStatusSucceeded, nil)
}

// MarkFailed flips the row from PENDING to FAILED, recording the reason
func (r *paymentRepository) MarkFailed(ctx context.Context, intentID string, errorMessage string) (bool, error) {
	return r.markTerminal(ctx, intentID, types.PaymentStatusFailed, &errorMessage)
}

func (r *paymentRepository) markTerminal(ctx context.Context, intentID string, status types.PaymentStatus, errorMessage *string) (bool, error) {
	now := time.Now().UTC()

	var query string
	var args []interface{}
	switch status {
	case types.PaymentStatusSucceeded:
		query = `
			UPDATE lead_payments SET
				payment_status = $1, succeeded_at = $2, updated_at = $2
			WHERE gateway_payment_intent_id = $3 AND payment_status = $4`
		args = []interface{}{status, now, intentID, types.PaymentStatusPending}
	case types.PaymentStatusFailed:
		query = `
			UPDATE lead_payments SET
				payment_status = $1, error_message = $2, failed_at = $3, updated_at = $3
			WHERE gateway_payment_intent_id = $4 AND payment_status = $5`
		args = []interface{}{status, errorMessage, now, intentID, types.PaymentStatusPending}
	default:
		return false, ierr.NewError("invalid terminal payment status").
			WithHintf("Cannot transition a payment to %s", status).
			Mark(ierr.ErrInvalidOperation)
	}

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update payment status").
			Mark(ierr.ErrDatabase)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update payment status").
			Mark(ierr.ErrDatabase)
	}
	if n > 0 {
		r.logger.Infow("payment status transitioned",
			"payment_intent_id", intentID,
			"payment_status", status,
		)
		return true, nil
	}

	// No row transitioned: either the payment is already terminal or the
	// intent is unknown. Distinguish so unknown intents fail loudly.
	if _, err := r.GetByIntentID(ctx, intentID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *paymentRepository) ListByLead(ctx context.Context, leadID string) ([]*payment.LeadPayment, error) {
	var payments []*payment.LeadPayment
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &payments,
		`SELECT * FROM lead_payments WHERE lead_id = $1 ORDER BY created_at DESC`, leadID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}
