package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/brushlead/brushlead/internal/config"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func newTestGateway(t *testing.T) interfaces.PaymentGateway {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Stripe = config.StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	}

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	return NewGateway(NewClient(cfg, log), log)
}

// signPayload builds a Stripe-Signature header for the payload: a timestamp
// and the hex HMAC-SHA256 of "<timestamp>.<payload>" under the secret.
func signPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestParseWebhookEventSucceededIntent(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{
		"id": "evt_test_ok",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_test_ok",
				"customer": "cus_test_ok",
				"metadata": {"lead_id": "lead_1", "painter_id": "painter_1"}
			}
		}
	}`)

	event, err := g.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, "evt_test_ok", event.ID)
	require.Equal(t, types.GatewayEventPaymentIntentSucceeded, event.Type)
	require.Equal(t, "pi_test_ok", event.IntentID)
	require.Equal(t, "cus_test_ok", event.CustomerID)
	require.Equal(t, "lead_1", event.Metadata["lead_id"])
}

func TestParseWebhookEventFailedIntentCarriesReason(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{
		"id": "evt_test_fail",
		"type": "payment_intent.payment_failed",
		"data": {
			"object": {
				"id": "pi_test_fail",
				"last_payment_error": {"message": "Your card was declined."}
			}
		}
	}`)

	event, err := g.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, types.GatewayEventPaymentIntentFailed, event.Type)
	require.Equal(t, "pi_test_fail", event.IntentID)
	require.Equal(t, "Your card was declined.", event.FailureMessage)
}

func TestParseWebhookEventPaymentMethodAttached(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{
		"id": "evt_test_pm",
		"type": "payment_method.attached",
		"data": {
			"object": {
				"id": "pm_test_card",
				"customer": "cus_test_ok"
			}
		}
	}`)

	event, err := g.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, types.GatewayEventPaymentMethodAttached, event.Type)
	require.Equal(t, "pm_test_card", event.PaymentMethodID)
	require.Equal(t, "cus_test_ok", event.CustomerID)
}

func TestParseWebhookEventUnhandledTypeTranslates(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{
		"id": "evt_test_refund",
		"type": "charge.refunded",
		"data": {"object": {"id": "re_test"}}
	}`)

	event, err := g.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, "evt_test_refund", event.ID)
	require.Empty(t, event.IntentID)
}

func TestParseWebhookEventRejectsBadSignature(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{"id": "evt_test_bad", "type": "payment_intent.succeeded", "data": {"object": {"id": "pi_x"}}}`)

	_, err := g.ParseWebhookEvent(payload, signPayload(payload, "whsec_wrong_secret", time.Now()))
	require.Error(t, err)
	require.True(t, ierr.IsPermissionDenied(err))

	_, err = g.ParseWebhookEvent(payload, "not-a-signature")
	require.Error(t, err)
	require.True(t, ierr.IsPermissionDenied(err))
}

func TestParseWebhookEventRejectsStaleTimestamp(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{"id": "evt_test_old", "type": "payment_intent.succeeded", "data": {"object": {"id": "pi_x"}}}`)

	stale := time.Now().Add(-time.Hour)
	_, err := g.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, stale))
	require.Error(t, err)
	require.True(t, ierr.IsPermissionDenied(err))
}

func TestParseWebhookEventRejectsTamperedPayload(t *testing.T) {
	g := newTestGateway(t)

	payload := []byte(`{"id": "evt_test_sig", "type": "payment_intent.succeeded", "data": {"object": {"id": "pi_x"}}}`)
	signature := signPayload(payload, testWebhookSecret, time.Now())

	tampered := []byte(`{"id": "evt_test_sig", "type": "payment_intent.succeeded", "data": {"object": {"id": "pi_y"}}}`)
	_, err := g.ParseWebhookEvent(tampered, signature)
	require.Error(t, err)
	require.True(t, ierr.IsPermissionDenied(err))
}
