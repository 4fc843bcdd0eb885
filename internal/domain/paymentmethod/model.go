package paymentmethod

import (
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
)

// PaymentMethod is a saved card reference for a painter. The card itself
// lives at the gateway; we only keep the gateway ids and display fields.
// Removal is a soft delete (status -> deleted) so payment history keeps a
// valid reference.
type PaymentMethod struct {
	// Unique identifier for the saved payment method
	ID string `db:"id" json:"id"`
	// The painter this payment method belongs to
	PainterID string `db:"painter_id" json:"painter_id"`
	// The gateway customer object the method is attached to
	GatewayCustomerID string `db:"gateway_customer_id" json:"gateway_customer_id"`
	// The gateway payment-method id; unique across the table
	GatewayPaymentMethodID string `db:"gateway_payment_method_id" json:"gateway_payment_method_id"`
	// Card brand for display only (visa, mastercard, ...)
	Brand string `db:"brand" json:"brand"`
	// Last four digits for display only
	Last4 string `db:"last4" json:"last4"`
	// The is_default flag; at most one default per painter
	IsDefault bool `db:"is_default" json:"is_default"`

	types.BaseModel
}

// Validate validates the payment method
func (pm *PaymentMethod) Validate() error {
	if pm.PainterID == "" {
		return ierr.NewError("invalid painter id").
			WithHint("Painter id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if pm.GatewayCustomerID == "" {
		return ierr.NewError("invalid gateway customer id").
			WithHint("Gateway customer id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if pm.GatewayPaymentMethodID == "" {
		return ierr.NewError("invalid gateway payment method id").
			WithHint("Gateway payment method id must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsActive reports whether the method can still be charged
func (pm *PaymentMethod) IsActive() bool {
	return pm.Status == types.StatusPublished
}

// TableName returns the table name for the payment method
func (pm *PaymentMethod) TableName() string {
	return "painter_payment_methods"
}
