package service

import (
	"context"

	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/types"
)

type webhookReconciler struct {
	paymentSettler
}

// NewWebhookReconciler creates a new webhook reconciler
func NewWebhookReconciler(params ServiceParams) interfaces.WebhookReconciler {
	return &webhookReconciler{
		paymentSettler: paymentSettler{ServiceParams: params},
	}
}

// Reconcile applies a verified gateway event to local payment state. The
// work is idempotent and order-independent: duplicate deliveries and events
// that raced the synchronous charge path settle to the same state. Events
// for unknown intents and unhandled event types are acknowledged without
// side effects so the gateway stops redelivering them.
func (r *webhookReconciler) Reconcile(ctx context.Context, event *types.GatewayEvent) error {
	switch event.Type {
	case types.GatewayEventPaymentIntentSucceeded:
		return r.reconcileSucceeded(ctx, event)
	case types.GatewayEventPaymentIntentFailed:
		return r.reconcileFailed(ctx, event)
	case types.GatewayEventPaymentMethodAttached:
		// Card details are recorded at save time; the event only confirms it.
		r.Logger.Debugw("payment method attached at gateway",
			"event_id", event.ID,
			"payment_method_id", event.PaymentMethodID,
		)
		return nil
	default:
		r.Logger.Debugw("ignoring unhandled gateway event",
			"event_id", event.ID,
			"event_type", event.Type,
		)
		return nil
	}
}

func (r *webhookReconciler) reconcileSucceeded(ctx context.Context, event *types.GatewayEvent) error {
	outcome, err := r.settleSucceeded(ctx, event.IntentID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// An intent we never recorded, for example one created directly
			// in the gateway dashboard. Nothing to reconcile.
			r.Logger.Warnw("gateway event for unknown payment intent",
				"event_id", event.ID,
				"event_type", event.Type,
				"payment_intent_id", event.IntentID,
			)
			return nil
		}
		return err
	}

	if !outcome.Transitioned {
		r.Logger.Debugw("payment already settled, skipping",
			"event_id", event.ID,
			"payment_intent_id", event.IntentID,
		)
		return nil
	}

	r.notifySettled(ctx, outcome)
	return nil
}

func (r *webhookReconciler) reconcileFailed(ctx context.Context, event *types.GatewayEvent) error {
	outcome, err := r.settleFailed(ctx, event.IntentID, event.FailureMessage)
	if err != nil {
		if ierr.IsNotFound(err) {
			r.Logger.Warnw("gateway event for unknown payment intent",
				"event_id", event.ID,
				"event_type", event.Type,
				"payment_intent_id", event.IntentID,
			)
			return nil
		}
		return err
	}

	if !outcome.Transitioned {
		r.Logger.Debugw("payment already settled, skipping",
			"event_id", event.ID,
			"payment_intent_id", event.IntentID,
		)
		return nil
	}

	r.notifySettled(ctx, outcome)
	return nil
}
