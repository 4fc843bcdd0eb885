package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/brushlead/brushlead/internal/domain/painter"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/samber/lo"
)

var _ painter.Repository = (*InMemoryPainterStore)(nil)

// InMemoryPainterStore implements painter.Repository
type InMemoryPainterStore struct {
	mu       sync.RWMutex
	painters map[string]*painter.Painter
}

// NewInMemoryPainterStore creates a new in-memory painter repository
func NewInMemoryPainterStore() *InMemoryPainterStore {
	return &InMemoryPainterStore{
		painters: make(map[string]*painter.Painter),
	}
}

// Clear resets all stored data
func (m *InMemoryPainterStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.painters = make(map[string]*painter.Painter)
}

// Create stores a new painter
func (m *InMemoryPainterStore) Create(ctx context.Context, p *painter.Painter) error {
	if p == nil {
		return ierr.NewError("painter cannot be nil").
			WithHint("Painter cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.painters[p.ID]; exists {
		return ierr.NewError("painter already exists").
			WithHintf("A painter with id %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	duplicateEmail := lo.ContainsBy(lo.Values(m.painters), func(existing *painter.Painter) bool {
		return existing.Email == p.Email
	})
	if duplicateEmail {
		return ierr.NewError("painter email already registered").
			WithHint("A painter with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	m.painters[p.ID] = p
	return nil
}

// Get retrieves a painter by ID
func (m *InMemoryPainterStore) Get(ctx context.Context, id string) (*painter.Painter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.painters[id]
	if !exists {
		return nil, ierr.NewError("painter not found").
			WithHintf("Painter with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

// SetGatewayCustomerID records the gateway customer id on the painter
func (m *InMemoryPainterStore) SetGatewayCustomerID(ctx context.Context, id string, gatewayCustomerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.painters[id]
	if !exists {
		return ierr.NewError("painter not found").
			WithHintf("Painter with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	p.GatewayCustomerID = lo.ToPtr(gatewayCustomerID)
	p.UpdatedAt = time.Now().UTC()
	return nil
}
