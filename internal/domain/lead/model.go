package lead

import (
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/shopspring/decimal"
)

// Lead represents a customer job posting that painters pay to access
type Lead struct {
	// Unique identifier for the lead
	ID string `db:"id" json:"id"`
	// Customer contact details, only visible to painters with an access grant
	CustomerName  string `db:"customer_name" json:"customer_name"`
	CustomerEmail string `db:"customer_email" json:"customer_email"`
	CustomerPhone string `db:"customer_phone" json:"customer_phone,omitempty"`
	// Free-text description of the job
	JobDescription string `db:"job_description" json:"job_description"`
	// City the job is located in
	City string `db:"city" json:"city,omitempty"`
	// The lead_price is what a single access grant costs
	LeadPrice decimal.Decimal `db:"lead_price" json:"lead_price"`
	// Three-letter ISO currency code for the lead price
	Currency string `db:"currency" json:"currency"`
	// The payment_count is the number of paid access grants so far.
	// Never decremented. Invariant: payment_count <= max_payments.
	PaymentCount int `db:"payment_count" json:"payment_count"`
	// The max_payments caps how many painters may buy this lead
	MaxPayments int `db:"max_payments" json:"max_payments"`
	// The is_payment_active flag is false once the lead is exhausted
	IsPaymentActive bool `db:"is_payment_active" json:"is_payment_active"`

	types.BaseModel
}

// CounterResult is the outcome of an atomic payment-count increment
type CounterResult struct {
	// PaymentCount is the count after the increment
	PaymentCount int `db:"payment_count"`
	// Exhausted reports whether the increment reached max_payments
	Exhausted bool `db:"exhausted"`
}

// Validate validates the lead
func (l *Lead) Validate() error {
	if l.CustomerName == "" {
		return ierr.NewError("invalid customer name").
			WithHint("Customer name must not be empty").
			Mark(ierr.ErrValidation)
	}
	if l.CustomerEmail == "" {
		return ierr.NewError("invalid customer email").
			WithHint("Customer email must not be empty").
			Mark(ierr.ErrValidation)
	}
	if l.LeadPrice.IsZero() || l.LeadPrice.IsNegative() {
		return ierr.NewError("invalid lead price").
			WithHint("Lead price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if l.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is invalid").
			Mark(ierr.ErrValidation)
	}
	if l.MaxPayments <= 0 {
		return ierr.NewError("invalid max payments").
			WithHint("Max payments must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsExhausted reports whether the lead has reached its maximum paid accesses
func (l *Lead) IsExhausted() bool {
	return l.PaymentCount >= l.MaxPayments
}

// TableName returns the table name for the lead
func (l *Lead) TableName() string {
	return "leads"
}
