package dto

import (
	"time"

	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
)

// SavePaymentMethodRequest represents a request to attach a gateway payment
// method to a painter. The card is tokenized client-side; only the gateway
// payment-method id reaches this API.
type SavePaymentMethodRequest struct {
	PainterID              string `json:"painter_id" binding:"required"`
	GatewayPaymentMethodID string `json:"gateway_payment_method_id" binding:"required"`
	SetDefault             bool   `json:"set_default"`
}

// Validate validates the save payment method request
func (r *SavePaymentMethodRequest) Validate() error {
	if r.PainterID == "" {
		return ierr.NewError("invalid painter id").
			WithHint("Painter id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if r.GatewayPaymentMethodID == "" {
		return ierr.NewError("invalid gateway payment method id").
			WithHint("Gateway payment method id must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethodResponse represents a saved payment method
type PaymentMethodResponse struct {
	ID                     string    `json:"id"`
	PainterID              string    `json:"painter_id"`
	GatewayPaymentMethodID string    `json:"gateway_payment_method_id"`
	Brand                  string    `json:"brand"`
	Last4                  string    `json:"last4"`
	IsDefault              bool      `json:"is_default"`
	CreatedAt              time.Time `json:"created_at"`
}

// NewPaymentMethodResponse creates a payment method response
func NewPaymentMethodResponse(pm *paymentmethod.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:                     pm.ID,
		PainterID:              pm.PainterID,
		GatewayPaymentMethodID: pm.GatewayPaymentMethodID,
		Brand:                  pm.Brand,
		Last4:                  pm.Last4,
		IsDefault:              pm.IsDefault,
		CreatedAt:              pm.CreatedAt,
	}
}

// ListPaymentMethodsResponse represents a painter's saved payment methods
type ListPaymentMethodsResponse struct {
	Items []*PaymentMethodResponse `json:"items"`
	Total int                      `json:"total"`
}
