package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brushlead/brushlead/internal/domain/lead"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
)

var _ lead.Repository = (*InMemoryLeadStore)(nil)

// InMemoryLeadStore implements lead.Repository with the same counter
// semantics as the postgres repository: the increment and the
// is_payment_active flip happen under one lock, and incrementing a closed
// lead fails with ErrPreconditionFailed.
type InMemoryLeadStore struct {
	mu    sync.RWMutex
	leads map[string]*lead.Lead
}

// NewInMemoryLeadStore creates a new in-memory lead repository
func NewInMemoryLeadStore() *InMemoryLeadStore {
	return &InMemoryLeadStore{
		leads: make(map[string]*lead.Lead),
	}
}

// Clear resets all stored data
func (m *InMemoryLeadStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = make(map[string]*lead.Lead)
}

// Create stores a new lead
func (m *InMemoryLeadStore) Create(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").
			WithHint("Lead cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.leads[l.ID]; exists {
		return ierr.NewError("lead already exists").
			WithHintf("A lead with id %s already exists", l.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	m.leads[l.ID] = l
	return nil
}

// Get retrieves a lead by ID
func (m *InMemoryLeadStore) Get(ctx context.Context, id string) (*lead.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, exists := m.leads[id]
	if !exists {
		return nil, ierr.NewError("lead not found").
			WithHintf("Lead with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return l, nil
}

// IncrementPaymentCount bumps the counter and flips is_payment_active off
// when the new count reaches max_payments
func (m *InMemoryLeadStore) IncrementPaymentCount(ctx context.Context, id string) (*lead.CounterResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, exists := m.leads[id]
	if !exists {
		return nil, ierr.NewError("lead not found").
			WithHintf("Lead with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	if !l.IsPaymentActive || l.PaymentCount >= l.MaxPayments {
		return nil, ierr.NewError("lead is not open for payment").
			WithHint("The lead has been deactivated or reached its payment cap").
			Mark(ierr.ErrPreconditionFailed)
	}

	l.PaymentCount++
	l.IsPaymentActive = l.PaymentCount < l.MaxPayments
	l.UpdatedAt = time.Now().UTC()

	return &lead.CounterResult{
		PaymentCount: l.PaymentCount,
		Exhausted:    l.PaymentCount >= l.MaxPayments,
	}, nil
}

// Deactivate turns off is_payment_active without touching the counter
func (m *InMemoryLeadStore) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, exists := m.leads[id]
	if !exists {
		return ierr.NewError("lead not found").
			WithHintf("Lead with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	l.IsPaymentActive = false
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// List returns all published leads, newest first
func (m *InMemoryLeadStore) List(ctx context.Context) ([]*lead.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	leads := lo.Filter(lo.Values(m.leads), func(l *lead.Lead, _ int) bool {
		return l.Status == types.StatusPublished
	})
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads, nil
}

// ListByIDs returns the leads matching the given ids
func (m *InMemoryLeadStore) ListByIDs(ctx context.Context, ids []string) ([]*lead.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	leads := make([]*lead.Lead, 0, len(ids))
	for _, id := range ids {
		if l, exists := m.leads[id]; exists {
			leads = append(leads, l)
		}
	}
	return leads, nil
}
