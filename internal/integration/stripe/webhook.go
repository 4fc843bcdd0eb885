package stripe

import (
	"encoding/json"

	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ParseWebhookEvent verifies the Stripe-Signature header against the raw
// payload and translates the event into the gateway-neutral form. An invalid
// or missing signature surfaces as ErrPermissionDenied; callers must reject
// the delivery without processing it.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*types.GatewayEvent, error) {
	options := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.client.webhookSecret, options)
	if err != nil {
		g.logger.Errorw("stripe webhook verification failed", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Invalid webhook signature or payload").
			Mark(ierr.ErrPermissionDenied)
	}

	return translateEvent(&event)
}

// translateEvent maps a verified stripe.Event onto types.GatewayEvent.
// Event types the reconciler does not handle translate with only ID and
// Type set; the reconciler ignores them.
func translateEvent(event *stripe.Event) (*types.GatewayEvent, error) {
	out := &types.GatewayEvent{
		ID:   event.ID,
		Type: types.GatewayEventType(event.Type),
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Malformed payment intent payload").
				WithReportableDetails(map[string]any{
					"event_id": event.ID,
				}).
				Mark(ierr.ErrValidation)
		}
		out.IntentID = paymentIntent.ID
		out.Metadata = paymentIntent.Metadata
		if paymentIntent.Customer != nil {
			out.CustomerID = paymentIntent.Customer.ID
		}
		if paymentIntent.LastPaymentError != nil {
			out.FailureMessage = paymentIntent.LastPaymentError.Msg
		}

	case "payment_method.attached":
		var paymentMethod stripe.PaymentMethod
		if err := json.Unmarshal(event.Data.Raw, &paymentMethod); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Malformed payment method payload").
				WithReportableDetails(map[string]any{
					"event_id": event.ID,
				}).
				Mark(ierr.ErrValidation)
		}
		out.PaymentMethodID = paymentMethod.ID
		if paymentMethod.Customer != nil {
			out.CustomerID = paymentMethod.Customer.ID
		}
	}

	return out, nil
}
