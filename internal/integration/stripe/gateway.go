package stripe

import (
	"context"

	"github.com/brushlead/brushlead/internal/domain/painter"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// Gateway implements the payment gateway against the Stripe API
type Gateway struct {
	client *Client
	logger *logger.Logger
}

// NewGateway creates a new Stripe payment gateway
func NewGateway(client *Client, logger *logger.Logger) interfaces.PaymentGateway {
	return &Gateway{
		client: client,
		logger: logger,
	}
}

// CreateCustomer registers the painter as a Stripe customer
func (g *Gateway) CreateCustomer(ctx context.Context, p *painter.Painter) (string, error) {
	params := &stripe.CustomerCreateParams{
		Name:  stripe.String(p.Name),
		Email: stripe.String(p.Email),
		Metadata: map[string]string{
			"painter_id": p.ID,
		},
	}
	if p.Phone != "" {
		params.Phone = stripe.String(p.Phone)
	}

	customer, err := g.client.API().V1Customers.Create(ctx, params)
	if err != nil {
		g.logger.Errorw("failed to create stripe customer",
			"error", err,
			"painter_id", p.ID,
		)
		return "", ierr.WithError(err).
			WithHint("Failed to create gateway customer").
			WithReportableDetails(map[string]any{
				"painter_id": p.ID,
			}).
			Mark(ierr.ErrGateway)
	}

	g.logger.Infow("created stripe customer",
		"painter_id", p.ID,
		"stripe_customer_id", customer.ID,
	)
	return customer.ID, nil
}

// AttachPaymentMethod binds the tokenized payment method to the Stripe
// customer and returns the card display details
func (g *Gateway) AttachPaymentMethod(ctx context.Context, customerID string, paymentMethodID string) (*types.GatewayCard, error) {
	pm, err := g.client.API().V1PaymentMethods.Attach(ctx, paymentMethodID, &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	})
	if err != nil {
		if stripeErr, ok := asStripeError(err); ok && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
			return nil, ierr.WithError(err).
				WithHint("The payment method could not be attached").
				WithReportableDetails(map[string]any{
					"payment_method_id": paymentMethodID,
					"stripe_error_code": stripeErr.Code,
				}).
				Mark(ierr.ErrValidation)
		}
		g.logger.Errorw("failed to attach payment method",
			"error", err,
			"stripe_customer_id", customerID,
			"payment_method_id", paymentMethodID,
		)
		return nil, ierr.WithError(err).
			WithHint("Failed to attach payment method").
			Mark(ierr.ErrGateway)
	}

	card := &types.GatewayCard{PaymentMethodID: pm.ID}
	if pm.Card != nil {
		card.Brand = string(pm.Card.Brand)
		card.Last4 = pm.Card.Last4
	}
	return card, nil
}

// DetachPaymentMethod removes the payment method from its Stripe customer
func (g *Gateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	_, err := g.client.API().V1PaymentMethods.Detach(ctx, paymentMethodID, &stripe.PaymentMethodDetachParams{})
	if err != nil {
		g.logger.Errorw("failed to detach payment method",
			"error", err,
			"payment_method_id", paymentMethodID,
		)
		return ierr.WithError(err).
			WithHint("Failed to detach payment method").
			Mark(ierr.ErrGateway)
	}
	return nil
}

// CreateAndConfirmIntent performs an immediate off-session charge against a
// saved payment method. Declines and authentication challenges come back as
// results carrying the intent id, so the caller can always record the
// attempt; only transport and gateway faults surface as errors.
func (g *Gateway) CreateAndConfirmIntent(ctx context.Context, req *types.ChargeRequest) (*types.ChargeResult, error) {
	amountInCents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(amountInCents),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
		Metadata:      req.Metadata,
	}

	paymentIntent, err := g.client.API().V1PaymentIntents.Create(ctx, params)
	if err != nil {
		if stripeErr, ok := asStripeError(err); ok && stripeErr.PaymentIntent != nil {
			switch stripeErr.Code {
			case stripe.ErrorCodeAuthenticationRequired:
				// The customer must complete authentication; the intent stays
				// open and the webhook settles the final state.
				return &types.ChargeResult{
					IntentID:     stripeErr.PaymentIntent.ID,
					Status:       types.GatewayIntentStatusRequiresAction,
					ClientSecret: stripeErr.PaymentIntent.ClientSecret,
				}, nil
			case stripe.ErrorCodeCardDeclined, stripe.ErrorCodeExpiredCard, stripe.ErrorCodeIncorrectCVC:
				g.logger.Warnw("card declined",
					"payment_intent_id", stripeErr.PaymentIntent.ID,
					"stripe_error_code", stripeErr.Code,
				)
				return &types.ChargeResult{
					IntentID:       stripeErr.PaymentIntent.ID,
					Status:         types.GatewayIntentStatusFailed,
					FailureMessage: stripeErr.Msg,
				}, nil
			}
		}

		g.logger.Errorw("failed to create payment intent",
			"error", err,
			"stripe_customer_id", req.CustomerID,
			"payment_method_id", req.PaymentMethodID,
			"amount", req.Amount.String(),
		)
		return nil, ierr.WithError(err).
			WithHint("Unable to process payment with the saved payment method").
			WithReportableDetails(map[string]any{
				"customer_id":       req.CustomerID,
				"payment_method_id": req.PaymentMethodID,
			}).
			Mark(ierr.ErrGateway)
	}

	result := &types.ChargeResult{
		IntentID: paymentIntent.ID,
		Status:   intentStatus(paymentIntent.Status),
	}
	if result.Status == types.GatewayIntentStatusRequiresAction {
		result.ClientSecret = paymentIntent.ClientSecret
	}
	if paymentIntent.LastPaymentError != nil {
		result.FailureMessage = paymentIntent.LastPaymentError.Msg
	}
	return result, nil
}

func intentStatus(s stripe.PaymentIntentStatus) types.GatewayIntentStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return types.GatewayIntentStatusSucceeded
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		return types.GatewayIntentStatusRequiresAction
	case stripe.PaymentIntentStatusProcessing:
		return types.GatewayIntentStatusProcessing
	case stripe.PaymentIntentStatusCanceled:
		return types.GatewayIntentStatusCanceled
	default:
		return types.GatewayIntentStatusFailed
	}
}

func asStripeError(err error) (*stripe.Error, bool) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr, true
	}
	return nil, false
}
