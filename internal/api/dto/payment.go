package dto

import (
	"time"

	"github.com/brushlead/brushlead/internal/domain/payment"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/shopspring/decimal"
)

// PurchaseLeadRequest represents a painter's request to buy access to a
// lead. The optional payment method is addressed by its gateway id, the same
// id used when saving it; when empty the painter's default saved method is
// charged.
type PurchaseLeadRequest struct {
	LeadID                 string `json:"lead_id" binding:"required"`
	PainterID              string `json:"painter_id" binding:"required"`
	GatewayPaymentMethodID string `json:"payment_method_id,omitempty"`
}

// Validate validates the purchase request
func (r *PurchaseLeadRequest) Validate() error {
	if r.LeadID == "" {
		return ierr.NewError("invalid lead id").
			WithHint("Lead id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if r.PainterID == "" {
		return ierr.NewError("invalid painter id").
			WithHint("Painter id must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PurchaseLeadResponse represents the outcome of a purchase attempt.
// AccessGranted reports whether the synchronous charge already unlocked the
// lead; RequiresAction means the customer must complete authentication with
// the returned client secret and the payment stays pending until the gateway
// confirms it.
type PurchaseLeadResponse struct {
	Payment        *PaymentResponse `json:"payment"`
	AccessGranted  bool             `json:"access_granted"`
	RequiresAction bool             `json:"requires_action,omitempty"`
	ClientSecret   string           `json:"client_secret,omitempty"`
}

// PaymentResponse represents a lead payment
type PaymentResponse struct {
	ID                     string              `json:"id"`
	LeadID                 string              `json:"lead_id"`
	PainterID              string              `json:"painter_id"`
	PaymentMethodID        *string             `json:"payment_method_id,omitempty"`
	GatewayPaymentIntentID string              `json:"gateway_payment_intent_id"`
	Amount                 decimal.Decimal     `json:"amount"`
	Currency               string              `json:"currency"`
	PaymentStatus          types.PaymentStatus `json:"payment_status"`
	PaymentNumber          int                 `json:"payment_number"`
	ReceiptNumber          string              `json:"receipt_number"`
	ErrorMessage           *string             `json:"error_message,omitempty"`
	SucceededAt            *time.Time          `json:"succeeded_at,omitempty"`
	FailedAt               *time.Time          `json:"failed_at,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

// NewPaymentResponse creates a payment response from a lead payment
func NewPaymentResponse(p *payment.LeadPayment) *PaymentResponse {
	return &PaymentResponse{
		ID:                     p.ID,
		LeadID:                 p.LeadID,
		PainterID:              p.PainterID,
		PaymentMethodID:        p.PaymentMethodID,
		GatewayPaymentIntentID: p.GatewayPaymentIntentID,
		Amount:                 p.Amount,
		Currency:               p.Currency,
		PaymentStatus:          p.PaymentStatus,
		PaymentNumber:          p.PaymentNumber,
		ReceiptNumber:          p.ReceiptNumber,
		ErrorMessage:           p.ErrorMessage,
		SucceededAt:            p.SucceededAt,
		FailedAt:               p.FailedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// ListPaymentsResponse represents a list of payments
type ListPaymentsResponse struct {
	Items []*PaymentResponse `json:"items"`
	Total int                `json:"total"`
}
