package interfaces

import (
	"context"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentGateway abstracts the payment provider. The stripe integration is
// the production implementation; tests substitute an in-memory one.
type PaymentGateway interface {
	// CreateCustomer registers the painter with the gateway and returns the
	// gateway customer id
	CreateCustomer(ctx context.Context, p *painter.Painter) (string, error)
	// AttachPaymentMethod binds a tokenized payment method to the gateway
	// customer and returns its display details
	AttachPaymentMethod(ctx context.Context, customerID string, paymentMethodID string) (*types.GatewayCard, error)
	// DetachPaymentMethod removes the payment method from its gateway customer
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	// CreateAndConfirmIntent performs an immediate off-session charge. Card
	// declines come back as a ChargeResult with a failed status, not as an
	// error; errors are reserved for transport and gateway faults.
	CreateAndConfirmIntent(ctx context.Context, req *types.ChargeRequest) (*types.ChargeResult, error)
	// ParseWebhookEvent verifies the webhook signature and translates the
	// payload into a gateway-neutral event. Verification failures surface as
	// ErrPermissionDenied.
	ParseWebhookEvent(payload []byte, signature string) (*types.GatewayEvent, error)
}

// NotificationSink receives business events for delivery to painters and
// operators. Calls never fail the triggering operation; implementations log
// delivery problems and move on.
type NotificationSink interface {
	PaymentSucceeded(ctx context.Context, n *PaymentSucceededNotification)
	PaymentFailed(ctx context.Context, n *PaymentFailedNotification)
	LeadExhausted(ctx context.Context, n *LeadExhaustedNotification)
	PaymentMethodAdded(ctx context.Context, n *PaymentMethodNotification)
	PaymentMethodRemoved(ctx context.Context, n *PaymentMethodNotification)
}

// PaymentSucceededNotification carries the receipt details for a successful
// lead purchase
type PaymentSucceededNotification struct {
	PainterName   string
	PainterEmail  string
	ReceiptNumber string
	Amount        decimal.Decimal
	Currency      string
	LeadCity      string
	AccessGranted bool
}

// PaymentFailedNotification carries the details of a failed charge
type PaymentFailedNotification struct {
	PainterName  string
	PainterEmail string
	Amount       decimal.Decimal
	Currency     string
	Reason       string
}

// LeadExhaustedNotification is sent when a lead reaches its payment cap and
// is withdrawn from sale
type LeadExhaustedNotification struct {
	LeadID       string
	City         string
	PaymentCount int
}

// PaymentMethodNotification carries the details of a saved card change
type PaymentMethodNotification struct {
	PainterName  string
	PainterEmail string
	Brand        string
	Last4        string
}

// LeadPaymentService defines the interface for lead purchase operations
type LeadPaymentService interface {
	PurchaseLead(ctx context.Context, req *dto.PurchaseLeadRequest) (*dto.PurchaseLeadResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListLeadPayments(ctx context.Context, leadID string) (*dto.ListPaymentsResponse, error)
}

// WebhookReconciler applies verified gateway events to local payment state.
// Reconciliation is idempotent: replaying a delivered event is a no-op.
type WebhookReconciler interface {
	Reconcile(ctx context.Context, event *types.GatewayEvent) error
}

// PaymentMethodService defines the interface for saved card management
type PaymentMethodService interface {
	SavePaymentMethod(ctx context.Context, req *dto.SavePaymentMethodRequest) (*dto.PaymentMethodResponse, error)
	ListPaymentMethods(ctx context.Context, painterID string) (*dto.ListPaymentMethodsResponse, error)
	SetDefaultPaymentMethod(ctx context.Context, painterID string, id string) error
	RemovePaymentMethod(ctx context.Context, painterID string, id string) error
}

// LeadService defines the interface for lead operations. GetLead applies
// access control: painters without a grant receive the preview view.
type LeadService interface {
	CreateLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, id string, painterID string) (*dto.LeadResponse, error)
	ListLeads(ctx context.Context) (*dto.ListLeadsResponse, error)
	ListAccessibleLeads(ctx context.Context, painterID string) (*dto.ListLeadsResponse, error)
	HasAccess(ctx context.Context, leadID string, painterID string) (bool, error)
	DeactivateLead(ctx context.Context, id string) error
}

// PainterService defines the interface for painter operations
type PainterService interface {
	CreatePainter(ctx context.Context, req *dto.CreatePainterRequest) (*dto.PainterResponse, error)
	GetPainter(ctx context.Context, id string) (*dto.PainterResponse, error)
}
