package painter

import (
	"context"
)

// Repository defines the interface for painter persistence
type Repository interface {
	Create(ctx context.Context, painter *Painter) error
	Get(ctx context.Context, id string) (*Painter, error)
	// SetGatewayCustomerID records the gateway customer object created for
	// the painter on first payment-method save
	SetGatewayCustomerID(ctx context.Context, id string, gatewayCustomerID string) error
}
