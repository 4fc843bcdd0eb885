package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/brushlead/brushlead/internal/domain/access"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/samber/lo"
)

var _ access.Repository = (*InMemoryAccessStore)(nil)

// InMemoryAccessStore implements access.Repository with the same grant
// semantics as the postgres repository: at most one row per (lead, painter)
// pair, created at most once.
type InMemoryAccessStore struct {
	mu     sync.RWMutex
	grants map[string]*access.LeadAccess
}

// NewInMemoryAccessStore creates a new in-memory access repository
func NewInMemoryAccessStore() *InMemoryAccessStore {
	return &InMemoryAccessStore{
		grants: make(map[string]*access.LeadAccess),
	}
}

// Clear resets all stored data
func (m *InMemoryAccessStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants = make(map[string]*access.LeadAccess)
}

func pairKey(leadID, painterID string) string {
	return leadID + "/" + painterID
}

// Has reports whether an access row exists for the (lead, painter) pair
func (m *InMemoryAccessStore) Has(ctx context.Context, leadID string, painterID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.grants[pairKey(leadID, painterID)]
	return exists, nil
}

// GrantOnce inserts the access row unless one already exists for the pair.
// Returns true when this call newly created the row.
func (m *InMemoryAccessStore) GrantOnce(ctx context.Context, grant *access.LeadAccess) (bool, error) {
	if grant == nil {
		return false, ierr.NewError("access grant cannot be nil").
			WithHint("Access grant cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(grant.LeadID, grant.PainterID)
	if _, exists := m.grants[key]; exists {
		return false, nil
	}

	m.grants[key] = grant
	return true, nil
}

// ListByPainter returns all grants held by a painter, newest first
func (m *InMemoryAccessStore) ListByPainter(ctx context.Context, painterID string) ([]*access.LeadAccess, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grants := lo.Filter(lo.Values(m.grants), func(g *access.LeadAccess, _ int) bool {
		return g.PainterID == painterID
	})
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].GrantedAt.After(grants[j].GrantedAt)
	})
	return grants, nil
}
