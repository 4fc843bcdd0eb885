package payment

import (
	"time"

	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/shopspring/decimal"
)

// LeadPayment is one payment attempt by a painter for a lead. The gateway
// payment-intent id is the natural idempotency key: exactly one row exists
// per intent, and the synchronous and webhook paths race to move it from
// PENDING to a terminal status.
type LeadPayment struct {
	// Unique identifier for this payment attempt
	ID string `db:"id" json:"id"`
	// The lead being paid for
	LeadID string `db:"lead_id" json:"lead_id"`
	// The painter paying
	PainterID string `db:"painter_id" json:"painter_id"`
	// The saved payment method used, if any
	PaymentMethodID *string `db:"payment_method_id" json:"payment_method_id,omitempty"`
	// The gateway_payment_intent_id is unique across the table and acts as
	// the idempotency key for reconciliation
	GatewayPaymentIntentID string `db:"gateway_payment_intent_id" json:"gateway_payment_intent_id"`
	// The gateway customer the intent was charged against
	GatewayCustomerID string `db:"gateway_customer_id" json:"gateway_customer_id"`
	// The amount field specifies the payment value in the given currency
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// Three-letter ISO currency code
	Currency string `db:"currency" json:"currency"`
	// Current state of this payment; transitions are one-way
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	// The payment_number is the 1-based sequence per lead, computed from the
	// lead's payment_count at creation time
	PaymentNumber int `db:"payment_number" json:"payment_number"`
	// Human-facing receipt reference used in notifications
	ReceiptNumber string `db:"receipt_number" json:"receipt_number"`
	// Details about why the payment failed (optional)
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`
	// When this payment reached SUCCEEDED (optional)
	SucceededAt *time.Time `db:"succeeded_at" json:"succeeded_at,omitempty"`
	// When this payment reached FAILED (optional)
	FailedAt *time.Time `db:"failed_at" json:"failed_at,omitempty"`

	types.BaseModel
}

// Validate validates the payment
func (p *LeadPayment) Validate() error {
	if p.LeadID == "" {
		return ierr.NewError("invalid lead id").
			WithHint("Lead id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if p.PainterID == "" {
		return ierr.NewError("invalid painter id").
			WithHint("Painter id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if p.GatewayPaymentIntentID == "" {
		return ierr.NewError("invalid payment intent id").
			WithHint("Payment intent id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if p.Amount.IsZero() || p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if p.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is invalid").
			Mark(ierr.ErrValidation)
	}
	if p.PaymentNumber <= 0 {
		return ierr.NewError("invalid payment number").
			WithHint("Payment number must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the payment
func (p *LeadPayment) TableName() string {
	return "lead_payments"
}
