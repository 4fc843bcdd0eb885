package types

import "github.com/shopspring/decimal"

// GatewayEventType identifies the kind of an inbound gateway webhook event
type GatewayEventType string

const (
	GatewayEventPaymentIntentSucceeded GatewayEventType = "payment_intent.succeeded"
	GatewayEventPaymentIntentFailed    GatewayEventType = "payment_intent.payment_failed"
	GatewayEventPaymentMethodAttached  GatewayEventType = "payment_method.attached"
)

// GatewayEvent is a gateway-neutral view of a verified webhook event. The
// stripe integration translates stripe.Event into this before handing it to
// the reconciler so the reconciliation logic stays independent of the wire
// format.
type GatewayEvent struct {
	ID              string           `json:"id"`
	Type            GatewayEventType `json:"type"`
	IntentID        string           `json:"intent_id,omitempty"`
	PaymentMethodID string           `json:"payment_method_id,omitempty"`
	CustomerID      string           `json:"customer_id,omitempty"`
	FailureMessage  string           `json:"failure_message,omitempty"`
	Metadata        Metadata         `json:"metadata,omitempty"`
}

// ChargeRequest describes an off-session charge against a saved payment
// method. Amount is in major currency units; the gateway integration owns
// the conversion to the wire format.
type ChargeRequest struct {
	CustomerID      string          `json:"customer_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Metadata        Metadata        `json:"metadata,omitempty"`
}

// ChargeResult is the synchronous outcome of a charge attempt. A declined
// card is a result, not an error: Status carries the terminal state and
// FailureMessage the decline reason, with the intent id always set so the
// attempt can be recorded. ClientSecret is set only when Status is
// requires_action.
type ChargeResult struct {
	IntentID       string              `json:"intent_id"`
	Status         GatewayIntentStatus `json:"status"`
	ClientSecret   string              `json:"client_secret,omitempty"`
	FailureMessage string              `json:"failure_message,omitempty"`
}

// GatewayCard is the display view of a card held at the gateway
type GatewayCard struct {
	PaymentMethodID string `json:"payment_method_id"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4"`
}
