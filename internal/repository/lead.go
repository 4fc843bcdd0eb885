package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brushlead/brushlead/internal/domain/lead"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

type leadRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLeadRepository(db *postgres.DB, logger *logger.Logger) lead.Repository {
	return &leadRepository{db: db, logger: logger}
}

func (r *leadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (
			id, customer_name, customer_email, customer_phone, job_description,
			city, lead_price, currency, payment_count, max_payments,
			is_payment_active, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	r.logger.Debugw("creating lead", "lead_id", l.ID, "city", l.City)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		l.ID, l.CustomerName, l.CustomerEmail, l.CustomerPhone, l.JobDescription,
		l.City, l.LeadPrice, l.Currency, l.PaymentCount, l.MaxPayments,
		l.IsPaymentActive, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create lead").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	var l lead.Lead
	err := r.db.GetQuerier(ctx).GetContext(ctx, &l,
		`SELECT * FROM leads WHERE id = $1 AND status != $2`, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("lead not found").
				WithHintf("Lead with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get lead").
			Mark(ierr.ErrDatabase)
	}
	return &l, nil
}

// IncrementPaymentCount bumps payment_count and flips is_payment_active off
// when the cap is reached, in one statement. The WHERE clause refuses the
// increment on inactive or exhausted leads so the counter can never exceed
// max_payments no matter how many purchases race.
func (r *leadRepository) IncrementPaymentCount(ctx context.Context, id string) (*lead.CounterResult, error) {
	query := `
		UPDATE leads SET
			payment_count = payment_count + 1,
			is_payment_active = (payment_count + 1 < max_payments),
			updated_at = $1
		WHERE id = $2
			AND is_payment_active = true
			AND payment_count < max_payments
		RETURNING payment_count, (payment_count >= max_payments) AS exhausted`

	var result lead.CounterResult
	err := r.db.GetQuerier(ctx).GetContext(ctx, &result, query, time.Now().UTC(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("lead is not open for payment").
				WithHint("The lead is inactive or has reached its payment limit").
				WithReportableDetails(map[string]any{
					"lead_id": id,
				}).
				Mark(ierr.ErrPreconditionFailed)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to increment lead payment count").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("incremented lead payment count",
		"lead_id", id,
		"payment_count", result.PaymentCount,
		"exhausted", result.Exhausted,
	)
	return &result, nil
}

func (r *leadRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE leads SET is_payment_active = false, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to deactivate lead").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ierr.NewError("lead not found").
			WithHintf("Lead with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *leadRepository) List(ctx context.Context) ([]*lead.Lead, error) {
	var leads []*lead.Lead
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &leads,
		`SELECT * FROM leads WHERE status = $1 ORDER BY created_at DESC`, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list leads").
			Mark(ierr.ErrDatabase)
	}
	return leads, nil
}

func (r *leadRepository) ListByIDs(ctx context.Context, ids []string) ([]*lead.Lead, error) {
	if len(ids) == 0 {
		return []*lead.Lead{}, nil
	}

	var leads []*lead.Lead
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &leads,
		`SELECT * FROM leads WHERE id = ANY($1) ORDER BY created_at DESC`, pq.Array(ids))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list leads").
			Mark(ierr.ErrDatabase)
	}
	return leads, nil
}
