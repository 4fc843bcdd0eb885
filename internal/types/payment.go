package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentStatus represents the persisted status of a lead payment.
// Transitions are one-way: PENDING -> SUCCEEDED or PENDING -> FAILED.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusSucceeded,
		PaymentStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid payment status: %s", s)
	}
	return nil
}

// IsTerminal reports whether the status can no longer change
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// GatewayIntentStatus is the status of a payment intent as reported by the
// gateway at confirm time. It is wider than PaymentStatus: several
// non-terminal gateway states all persist as PENDING.
type GatewayIntentStatus string

const (
	GatewayIntentStatusSucceeded      GatewayIntentStatus = "succeeded"
	GatewayIntentStatusRequiresAction GatewayIntentStatus = "requires_action"
	GatewayIntentStatusProcessing     GatewayIntentStatus = "processing"
	GatewayIntentStatusCanceled       GatewayIntentStatus = "canceled"
	GatewayIntentStatusFailed         GatewayIntentStatus = "failed"
)

// ToPaymentStatus maps a gateway intent status to the persisted payment status
func (s GatewayIntentStatus) ToPaymentStatus() PaymentStatus {
	switch s {
	case GatewayIntentStatusSucceeded:
		return PaymentStatusSucceeded
	case GatewayIntentStatusCanceled, GatewayIntentStatusFailed:
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}
