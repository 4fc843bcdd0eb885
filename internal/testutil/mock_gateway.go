package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/brushlead/brushlead/internal/domain/painter"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/types"
)

var _ interfaces.PaymentGateway = (*MockPaymentGateway)(nil)

// MockPaymentGateway is a scriptable in-memory payment gateway. By default
// every charge succeeds; tests set NextChargeStatus or ChargeErr to drive
// decline and fault paths.
type MockPaymentGateway struct {
	mu sync.Mutex

	// NextChargeStatus is the intent status returned by the next charge.
	// Zero value means succeeded.
	NextChargeStatus types.GatewayIntentStatus
	// NextFailureMessage is the decline reason attached to failed charges
	NextFailureMessage string
	// ChargeErr, when set, is returned from CreateAndConfirmIntent instead
	// of a result
	ChargeErr error
	// CustomerErr, when set, is returned from CreateCustomer
	CustomerErr error
	// AttachErr, when set, is returned from AttachPaymentMethod
	AttachErr error

	// ChargeRequests records every charge attempted, in order
	ChargeRequests []*types.ChargeRequest
	// Detached records every gateway payment-method id detached, in order
	Detached []string

	customers int
	intents   int
}

// NewMockPaymentGateway creates a new mock payment gateway
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

// CreateCustomer returns a fresh fake gateway customer id
func (g *MockPaymentGateway) CreateCustomer(ctx context.Context, p *painter.Painter) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CustomerErr != nil {
		return "", g.CustomerErr
	}

	g.customers++
	return fmt.Sprintf("cus_test_%03d", g.customers), nil
}

// AttachPaymentMethod returns fixed display details for the attached method
func (g *MockPaymentGateway) AttachPaymentMethod(ctx context.Context, customerID string, paymentMethodID string) (*types.GatewayCard, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.AttachErr != nil {
		return nil, g.AttachErr
	}

	return &types.GatewayCard{
		PaymentMethodID: paymentMethodID,
		Brand:           "visa",
		Last4:           "4242",
	}, nil
}

// DetachPaymentMethod records the detachment
func (g *MockPaymentGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Detached = append(g.Detached, paymentMethodID)
	return nil
}

// CreateAndConfirmIntent returns the scripted charge result with a fresh
// intent id
func (g *MockPaymentGateway) CreateAndConfirmIntent(ctx context.Context, req *types.ChargeRequest) (*types.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ChargeRequests = append(g.ChargeRequests, req)

	if g.ChargeErr != nil {
		return nil, g.ChargeErr
	}

	g.intents++
	result := &types.ChargeResult{
		IntentID: fmt.Sprintf("pi_test_%03d", g.intents),
		Status:   g.NextChargeStatus,
	}
	if result.Status == "" {
		result.Status = types.GatewayIntentStatusSucceeded
	}
	switch result.Status {
	case types.GatewayIntentStatusRequiresAction:
		result.ClientSecret = result.IntentID + "_secret_test"
	case types.GatewayIntentStatusFailed, types.GatewayIntentStatusCanceled:
		result.FailureMessage = g.NextFailureMessage
	}
	return result, nil
}

// ParseWebhookEvent rejects everything; webhook translation is covered by
// the stripe integration tests
func (g *MockPaymentGateway) ParseWebhookEvent(payload []byte, signature string) (*types.GatewayEvent, error) {
	return nil, ierr.NewError("webhook parsing not supported by mock gateway").
		WithHint("Webhook signature verification failed").
		Mark(ierr.ErrPermissionDenied)
}

// ChargeCount returns how many charges were attempted
func (g *MockPaymentGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.ChargeRequests)
}
