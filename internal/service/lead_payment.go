package service

import (
	"context"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/domain/payment"
	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
)

type leadPaymentService struct {
	paymentSettler
}

// NewLeadPaymentService creates a new lead payment service
func NewLeadPaymentService(params ServiceParams) interfaces.LeadPaymentService {
	return &leadPaymentService{
		paymentSettler: paymentSettler{ServiceParams: params},
	}
}

// PurchaseLead charges the painter for a lead and, when the charge succeeds
// synchronously, grants access right away. The gateway call happens outside
// any transaction; local state is reconciled afterwards from the charge
// result, and again from the webhook, whichever lands first.
func (s *leadPaymentService) PurchaseLead(ctx context.Context, req *dto.PurchaseLeadRequest) (*dto.PurchaseLeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PainterRepo.Get(ctx, req.PainterID)
	if err != nil {
		return nil, err
	}

	l, err := s.LeadRepo.Get(ctx, req.LeadID)
	if err != nil {
		return nil, err
	}

	if !l.IsPaymentActive || l.IsExhausted() {
		return nil, ierr.NewError("lead is not open for payment").
			WithHint("This lead is no longer available for purchase").
			WithReportableDetails(map[string]any{
				"lead_id":       l.ID,
				"payment_count": l.PaymentCount,
				"max_payments":  l.MaxPayments,
			}).
			Mark(ierr.ErrPreconditionFailed)
	}

	// A painter who already holds access is never charged twice.
	hasAccess, err := s.AccessRepo.Has(ctx, l.ID, p.ID)
	if err != nil {
		return nil, err
	}
	if hasAccess {
		return nil, ierr.NewError("lead already purchased").
			WithHint("You already have access to this lead").
			WithReportableDetails(map[string]any{
				"lead_id":    l.ID,
				"painter_id": p.ID,
			}).
			Mark(ierr.ErrPreconditionFailed)
	}

	pm, err := s.resolvePaymentMethod(ctx, p, req.GatewayPaymentMethodID)
	if err != nil {
		return nil, err
	}

	paymentID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT)

	// Charge first, record after: the intent id is the only reliable join key
	// between gateway and local state, and it does not exist until the
	// gateway call returns.
	result, err := s.Gateway.CreateAndConfirmIntent(ctx, &types.ChargeRequest{
		CustomerID:      pm.GatewayCustomerID,
		PaymentMethodID: pm.GatewayPaymentMethodID,
		Amount:          l.LeadPrice,
		Currency:        l.Currency,
		Metadata: types.Metadata{
			"lead_id":    l.ID,
			"painter_id": p.ID,
			"payment_id": paymentID,
		},
	})
	if err != nil {
		// The charge never produced an intent, so there is no row to settle.
		// The painter still hears that the attempt failed.
		s.Sink.PaymentFailed(ctx, &interfaces.PaymentFailedNotification{
			PainterName:  p.Name,
			PainterEmail: p.Email,
			Amount:       l.LeadPrice,
			Currency:     l.Currency,
			Reason:       "payment could not be processed",
		})
		return nil, err
	}

	leadPayment := &payment.LeadPayment{
		ID:                     paymentID,
		LeadID:                 l.ID,
		PainterID:              p.ID,
		PaymentMethodID:        lo.ToPtr(pm.ID),
		GatewayPaymentIntentID: result.IntentID,
		GatewayCustomerID:      pm.GatewayCustomerID,
		Amount:                 l.LeadPrice,
		Currency:               l.Currency,
		PaymentStatus:          types.PaymentStatusPending,
		PaymentNumber:          l.PaymentCount + 1,
		ReceiptNumber:          types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RECEIPT),
		BaseModel:              types.GetDefaultBaseModel(),
	}
	if err := leadPayment.Validate(); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.Create(ctx, leadPayment); err != nil {
		// A duplicate intent id means two local rows tried to claim the same
		// gateway charge. That is a serious wiring fault, not a retry case.
		return nil, err
	}

	switch result.Status {
	case types.GatewayIntentStatusSucceeded:
		outcome, err := s.settleSucceeded(ctx, result.IntentID)
		if err != nil {
			return nil, err
		}
		s.notifySettled(ctx, outcome)
		return &dto.PurchaseLeadResponse{
			Payment:       dto.NewPaymentResponse(outcome.Payment),
			AccessGranted: true,
		}, nil

	case types.GatewayIntentStatusRequiresAction:
		// The row stays PENDING; the webhook settles it after the customer
		// completes authentication.
		return &dto.PurchaseLeadResponse{
			Payment:        dto.NewPaymentResponse(leadPayment),
			RequiresAction: true,
			ClientSecret:   result.ClientSecret,
		}, nil

	case types.GatewayIntentStatusProcessing:
		return &dto.PurchaseLeadResponse{
			Payment: dto.NewPaymentResponse(leadPayment),
		}, nil

	default:
		outcome, err := s.settleFailed(ctx, result.IntentID, result.FailureMessage)
		if err != nil {
			return nil, err
		}
		s.notifySettled(ctx, outcome)
		return &dto.PurchaseLeadResponse{
			Payment: dto.NewPaymentResponse(outcome.Payment),
		}, nil
	}
}

// resolvePaymentMethod picks the saved method to charge: the caller-supplied
// gateway payment-method id, which must resolve to an active method owned by
// the painter, or the painter's default. An unusable method is a
// precondition failure, not a lookup error.
func (s *leadPaymentService) resolvePaymentMethod(ctx context.Context, p *painter.Painter, gatewayPaymentMethodID string) (*paymentmethod.PaymentMethod, error) {
	if p.GatewayCustomerID == nil || *p.GatewayCustomerID == "" {
		return nil, ierr.NewError("painter has no saved payment method").
			WithHint("Save a payment method before purchasing a lead").
			Mark(ierr.ErrPreconditionFailed)
	}

	if gatewayPaymentMethodID == "" {
		pm, err := s.PaymentMethodRepo.GetDefault(ctx, p.ID)
		if err != nil {
			if ierr.IsNotFound(err) {
				return nil, ierr.NewError("no usable payment method").
					WithHint("Save a payment method before purchasing a lead").
					Mark(ierr.ErrPreconditionFailed)
			}
			return nil, err
		}
		return pm, nil
	}

	pm, err := s.PaymentMethodRepo.GetByGatewayID(ctx, p.ID, gatewayPaymentMethodID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("no usable payment method").
				WithHint("The payment method is not one of your active saved methods").
				WithReportableDetails(map[string]any{
					"gateway_payment_method_id": gatewayPaymentMethodID,
				}).
				Mark(ierr.ErrPreconditionFailed)
		}
		return nil, err
	}
	return pm, nil
}

func (s *leadPaymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

func (s *leadPaymentService) ListLeadPayments(ctx context.Context, leadID string) (*dto.ListPaymentsResponse, error) {
	payments, err := s.PaymentRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(payments, func(p *payment.LeadPayment, _ int) *dto.PaymentResponse {
		return dto.NewPaymentResponse(p)
	})
	return &dto.ListPaymentsResponse{
		Items: items,
		Total: len(items),
	}, nil
}
