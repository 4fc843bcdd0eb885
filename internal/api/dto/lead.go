package dto

import (
	"time"

	"github.com/brushlead/brushlead/internal/domain/lead"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/shopspring/decimal"
)

// CreateLeadRequest represents a request to publish a new lead
type CreateLeadRequest struct {
	CustomerName   string           `json:"customer_name" binding:"required"`
	CustomerEmail  string           `json:"customer_email" binding:"required,email"`
	CustomerPhone  string           `json:"customer_phone" binding:"required"`
	JobDescription string           `json:"job_description" binding:"required"`
	City           string           `json:"city" binding:"required"`
	LeadPrice      *decimal.Decimal `json:"lead_price,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	MaxPayments    *int             `json:"max_payments,omitempty"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if r.LeadPrice != nil && !r.LeadPrice.IsPositive() {
		return ierr.NewError("invalid lead price").
			WithHint("Lead price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.MaxPayments != nil && *r.MaxPayments <= 0 {
		return ierr.NewError("invalid max payments").
			WithHint("Max payments must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToLead converts the request to a lead domain model. Price, currency and
// payment cap fall back to the configured defaults when omitted.
func (r *CreateLeadRequest) ToLead(defaultPrice decimal.Decimal, defaultCurrency string, defaultMaxPayments int) *lead.Lead {
	price := defaultPrice
	if r.LeadPrice != nil {
		price = *r.LeadPrice
	}
	currency := defaultCurrency
	if r.Currency != "" {
		currency = r.Currency
	}
	maxPayments := defaultMaxPayments
	if r.MaxPayments != nil {
		maxPayments = *r.MaxPayments
	}

	return &lead.Lead{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEAD),
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		JobDescription:  r.JobDescription,
		City:            r.City,
		LeadPrice:       price,
		Currency:        currency,
		PaymentCount:    0,
		MaxPayments:     maxPayments,
		IsPaymentActive: true,
		BaseModel:       types.GetDefaultBaseModel(),
	}
}

// LeadResponse represents a lead. Customer contact fields are only present
// when the caller holds access to the lead.
type LeadResponse struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerEmail   string          `json:"customer_email,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	JobDescription  string          `json:"job_description"`
	City            string          `json:"city"`
	LeadPrice       decimal.Decimal `json:"lead_price"`
	Currency        string          `json:"currency"`
	PaymentCount    int             `json:"payment_count"`
	MaxPayments     int             `json:"max_payments"`
	IsPaymentActive bool            `json:"is_payment_active"`
	Status          types.Status    `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewLeadResponse creates a full lead response including customer contact
// details
func NewLeadResponse(l *lead.Lead) *LeadResponse {
	resp := newLeadPreview(l)
	resp.CustomerName = l.CustomerName
	resp.CustomerEmail = l.CustomerEmail
	resp.CustomerPhone = l.CustomerPhone
	return resp
}

// NewLeadPreviewResponse creates a lead response with customer contact
// details withheld, for painters without access
func NewLeadPreviewResponse(l *lead.Lead) *LeadResponse {
	return newLeadPreview(l)
}

func newLeadPreview(l *lead.Lead) *LeadResponse {
	return &LeadResponse{
		ID:              l.ID,
		JobDescription:  l.JobDescription,
		City:            l.City,
		LeadPrice:       l.LeadPrice,
		Currency:        l.Currency,
		PaymentCount:    l.PaymentCount,
		MaxPayments:     l.MaxPayments,
		IsPaymentActive: l.IsPaymentActive,
		Status:          l.Status,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ListLeadsResponse represents a list of leads
type ListLeadsResponse struct {
	Items []*LeadResponse `json:"items"`
	Total int             `json:"total"`
}
