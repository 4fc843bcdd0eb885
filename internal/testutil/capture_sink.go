package testutil

import (
	"context"
	"sync"

	"github.com/brushlead/brushlead/internal/interfaces"
)

var _ interfaces.NotificationSink = (*CaptureSink)(nil)

// CaptureSink records every notification for assertions instead of sending
// anything
type CaptureSink struct {
	mu sync.Mutex

	Succeeded      []*interfaces.PaymentSucceededNotification
	Failed         []*interfaces.PaymentFailedNotification
	Exhausted      []*interfaces.LeadExhaustedNotification
	MethodsAdded   []*interfaces.PaymentMethodNotification
	MethodsRemoved []*interfaces.PaymentMethodNotification
}

// NewCaptureSink creates a new capturing notification sink
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (s *CaptureSink) PaymentSucceeded(ctx context.Context, n *interfaces.PaymentSucceededNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Succeeded = append(s.Succeeded, n)
}

func (s *CaptureSink) PaymentFailed(ctx context.Context, n *interfaces.PaymentFailedNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, n)
}

func (s *CaptureSink) LeadExhausted(ctx context.Context, n *interfaces.LeadExhaustedNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Exhausted = append(s.Exhausted, n)
}

func (s *CaptureSink) PaymentMethodAdded(ctx context.Context, n *interfaces.PaymentMethodNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MethodsAdded = append(s.MethodsAdded, n)
}

func (s *CaptureSink) PaymentMethodRemoved(ctx context.Context, n *interfaces.PaymentMethodNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MethodsRemoved = append(s.MethodsRemoved, n)
}
