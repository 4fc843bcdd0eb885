package paymentmethod

import (
	"context"
)

// Repository defines the interface for payment method persistence
type Repository interface {
	Create(ctx context.Context, pm *PaymentMethod) error
	Get(ctx context.Context, id string) (*PaymentMethod, error)
	// GetByGatewayID resolves an active payment method owned by the painter
	// from its gateway payment-method id
	GetByGatewayID(ctx context.Context, painterID string, gatewayPaymentMethodID string) (*PaymentMethod, error)
	// GetDefault returns the painter's default active payment method
	GetDefault(ctx context.Context, painterID string) (*PaymentMethod, error)
	List(ctx context.Context, painterID string) ([]*PaymentMethod, error)
	// SetDefault marks the given method as default and clears the flag on
	// every other method of the painter
	SetDefault(ctx context.Context, painterID string, id string) error
	// SoftDelete deactivates the method; the row is kept for history
	SoftDelete(ctx context.Context, id string) error
}
