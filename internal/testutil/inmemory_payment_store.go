package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brushlead/brushlead/internal/domain/payment"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
)

var _ payment.Repository = (*InMemoryPaymentStore)(nil)

// InMemoryPaymentStore implements payment.Repository with the same
// uniqueness and transition semantics as the postgres repository: one row
// per gateway intent id and one-way PENDING to terminal transitions.
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*payment.LeadPayment
	byIntent map[string]string
}

// NewInMemoryPaymentStore creates a new in-memory payment repository
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		payments: make(map[string]*payment.LeadPayment),
		byIntent: make(map[string]string),
	}
}

// Clear resets all stored data
func (m *InMemoryPaymentStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = make(map[string]*payment.LeadPayment)
	m.byIntent = make(map[string]string)
}

// Create stores a new payment. Fails with ErrAlreadyExists when a row with
// the same gateway intent id is already present.
func (m *InMemoryPaymentStore) Create(ctx context.Context, p *payment.LeadPayment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.payments[p.ID]; exists {
		return ierr.NewError("payment already exists").
			WithHintf("A payment with id %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	if _, exists := m.byIntent[p.GatewayPaymentIntentID]; exists {
		return ierr.NewError("payment intent already recorded").
			WithHint("A payment for this payment intent already exists").
			WithReportableDetails(map[string]any{
				"payment_intent_id": p.GatewayPaymentIntentID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	m.payments[p.ID] = p
	m.byIntent[p.GatewayPaymentIntentID] = p.ID
	return nil
}

// Get retrieves a payment by ID
func (m *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.LeadPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.payments[id]
	if !exists {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

// GetByIntentID retrieves a payment by its gateway intent id
func (m *InMemoryPaymentStore) GetByIntentID(ctx context.Context, intentID string) (*payment.LeadPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.getByIntentLocked(intentID)
}

func (m *InMemoryPaymentStore) getByIntentLocked(intentID string) (*payment.LeadPayment, error) {
	id, exists := m.byIntent[intentID]
	if !exists {
		return nil, ierr.NewError("payment not found").
			WithHintf("No payment recorded for payment intent %s", intentID).
			Mark(ierr.ErrNotFound)
	}
	return m.payments[id], nil
}

// MarkSucceeded transitions PENDING -> SUCCEEDED
func (m *InMemoryPaymentStore) MarkSucceeded(ctx context.Context, intentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.getByIntentLocked(intentID)
	if err != nil {
		return false, err
	}

	if p.PaymentStatus.IsTerminal() {
		return false, nil
	}

	now := time.Now().UTC()
	p.PaymentStatus = types.PaymentStatusSucceeded
	p.SucceededAt = lo.ToPtr(now)
	p.UpdatedAt = now
	return true, nil
}

// MarkFailed transitions PENDING -> FAILED, recording the error message
func (m *InMemoryPaymentStore) MarkFailed(ctx context.Context, intentID string, errorMessage string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.getByIntentLocked(intentID)
	if err != nil {
		return false, err
	}

	if p.PaymentStatus.IsTerminal() {
		return false, nil
	}

	now := time.Now().UTC()
	p.PaymentStatus = types.PaymentStatusFailed
	p.ErrorMessage = lo.ToPtr(errorMessage)
	p.FailedAt = lo.ToPtr(now)
	p.UpdatedAt = now
	return true, nil
}

// ListByLead returns all payments for a lead, newest first
func (m *InMemoryPaymentStore) ListByLead(ctx context.Context, leadID string) ([]*payment.LeadPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payments := lo.Filter(lo.Values(m.payments), func(p *payment.LeadPayment, _ int) bool {
		return p.LeadID == leadID
	})
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
