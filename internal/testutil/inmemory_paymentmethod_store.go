package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
)

var _ paymentmethod.Repository = (*InMemoryPaymentMethodStore)(nil)

// InMemoryPaymentMethodStore implements paymentmethod.Repository
type InMemoryPaymentMethodStore struct {
	mu      sync.RWMutex
	methods map[string]*paymentmethod.PaymentMethod
}

// NewInMemoryPaymentMethodStore creates a new in-memory payment method repository
func NewInMemoryPaymentMethodStore() *InMemoryPaymentMethodStore {
	return &InMemoryPaymentMethodStore{
		methods: make(map[string]*paymentmethod.PaymentMethod),
	}
}

// Clear resets all stored data
func (m *InMemoryPaymentMethodStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods = make(map[string]*paymentmethod.PaymentMethod)
}

// Create stores a new payment method
func (m *InMemoryPaymentMethodStore) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	if pm == nil {
		return ierr.NewError("payment method cannot be nil").
			WithHint("Payment method cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.methods[pm.ID]; exists {
		return ierr.NewError("payment method already exists").
			WithHintf("A payment method with id %s already exists", pm.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	duplicate := lo.ContainsBy(lo.Values(m.methods), func(existing *paymentmethod.PaymentMethod) bool {
		return existing.GatewayPaymentMethodID == pm.GatewayPaymentMethodID && existing.IsActive()
	})
	if duplicate {
		return ierr.NewError("payment method already saved").
			WithHint("This card is already saved").
			Mark(ierr.ErrAlreadyExists)
	}

	m.methods[pm.ID] = pm
	return nil
}

// Get retrieves a payment method by ID
func (m *InMemoryPaymentMethodStore) Get(ctx context.Context, id string) (*paymentmethod.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pm, exists := m.methods[id]
	if !exists || !pm.IsActive() {
		return nil, ierr.NewError("payment method not found").
			WithHintf("Payment method with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return pm, nil
}

// GetByGatewayID resolves an active payment method owned by the painter
// from its gateway payment-method id
func (m *InMemoryPaymentMethodStore) GetByGatewayID(ctx context.Context, painterID string, gatewayPaymentMethodID string) (*paymentmethod.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pm, found := lo.Find(lo.Values(m.methods), func(existing *paymentmethod.PaymentMethod) bool {
		return existing.PainterID == painterID &&
			existing.GatewayPaymentMethodID == gatewayPaymentMethodID &&
			existing.IsActive()
	})
	if !found {
		return nil, ierr.NewError("payment method not found").
			WithHint("No saved payment method matches the gateway id").
			Mark(ierr.ErrNotFound)
	}
	return pm, nil
}

// GetDefault returns the painter's default active payment method
func (m *InMemoryPaymentMethodStore) GetDefault(ctx context.Context, painterID string) (*paymentmethod.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pm, found := lo.Find(lo.Values(m.methods), func(existing *paymentmethod.PaymentMethod) bool {
		return existing.PainterID == painterID && existing.IsDefault && existing.IsActive()
	})
	if !found {
		return nil, ierr.NewError("no default payment method").
			WithHint("Save a payment method before purchasing a lead").
			Mark(ierr.ErrNotFound)
	}
	return pm, nil
}

// List returns the painter's active payment methods, newest first
func (m *InMemoryPaymentMethodStore) List(ctx context.Context, painterID string) ([]*paymentmethod.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	methods := lo.Filter(lo.Values(m.methods), func(pm *paymentmethod.PaymentMethod, _ int) bool {
		return pm.PainterID == painterID && pm.IsActive()
	})
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].CreatedAt.After(methods[j].CreatedAt)
	})
	return methods, nil
}

// SetDefault marks the given method as default and clears the flag on every
// other method of the painter
func (m *InMemoryPaymentMethodStore) SetDefault(ctx context.Context, painterID string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, exists := m.methods[id]
	if !exists || target.PainterID != painterID || !target.IsActive() {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	for _, pm := range m.methods {
		if pm.PainterID != painterID {
			continue
		}
		pm.IsDefault = pm.ID == id
		pm.UpdatedAt = now
	}
	return nil
}

// SoftDelete deactivates the method; the row is kept for history
func (m *InMemoryPaymentMethodStore) SoftDelete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pm, exists := m.methods[id]
	if !exists {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	pm.Status = types.StatusDeleted
	pm.IsDefault = false
	pm.UpdatedAt = time.Now().UTC()
	return nil
}
