package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusIsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.True(t, PaymentStatusSucceeded.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
}

func TestPaymentStatusValidate(t *testing.T) {
	assert.NoError(t, PaymentStatusPending.Validate())
	assert.NoError(t, PaymentStatusSucceeded.Validate())
	assert.NoError(t, PaymentStatusFailed.Validate())
	assert.Error(t, PaymentStatus("REFUNDED").Validate())
}

func TestGatewayIntentStatusToPaymentStatus(t *testing.T) {
	tests := []struct {
		intent GatewayIntentStatus
		want   PaymentStatus
	}{
		{GatewayIntentStatusSucceeded, PaymentStatusSucceeded},
		{GatewayIntentStatusFailed, PaymentStatusFailed},
		{GatewayIntentStatusCanceled, PaymentStatusFailed},
		{GatewayIntentStatusRequiresAction, PaymentStatusPending},
		{GatewayIntentStatusProcessing, PaymentStatusPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.intent.ToPaymentStatus(), string(tt.intent))
	}
}
