package service

import (
	"context"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
)

type paymentMethodService struct {
	ServiceParams
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(params ServiceParams) interfaces.PaymentMethodService {
	return &paymentMethodService{ServiceParams: params}
}

// SavePaymentMethod attaches a client-tokenized payment method to the
// painter's gateway customer and records it locally. The first saved method
// becomes the default automatically.
func (s *paymentMethodService) SavePaymentMethod(ctx context.Context, req *dto.SavePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PainterRepo.Get(ctx, req.PainterID)
	if err != nil {
		return nil, err
	}

	// Lazily create the gateway customer on first save.
	customerID := ""
	if p.GatewayCustomerID != nil {
		customerID = *p.GatewayCustomerID
	}
	if customerID == "" {
		customerID, err = s.Gateway.CreateCustomer(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := s.PainterRepo.SetGatewayCustomerID(ctx, p.ID, customerID); err != nil {
			return nil, err
		}
	}

	card, err := s.Gateway.AttachPaymentMethod(ctx, customerID, req.GatewayPaymentMethodID)
	if err != nil {
		return nil, err
	}

	existing, err := s.PaymentMethodRepo.List(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	makeDefault := req.SetDefault || len(existing) == 0

	pm := &paymentmethod.PaymentMethod{
		ID:                     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_METHOD),
		PainterID:              p.ID,
		GatewayCustomerID:      customerID,
		GatewayPaymentMethodID: card.PaymentMethodID,
		Brand:                  card.Brand,
		Last4:                  card.Last4,
		BaseModel:              types.GetDefaultBaseModel(),
	}
	if err := pm.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PaymentMethodRepo.Create(ctx, pm); err != nil {
			return err
		}
		if makeDefault {
			if err := s.PaymentMethodRepo.SetDefault(ctx, p.ID, pm.ID); err != nil {
				return err
			}
			pm.IsDefault = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Sink.PaymentMethodAdded(ctx, &interfaces.PaymentMethodNotification{
		PainterName:  p.Name,
		PainterEmail: p.Email,
		Brand:        pm.Brand,
		Last4:        pm.Last4,
	})

	return dto.NewPaymentMethodResponse(pm), nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, painterID string) (*dto.ListPaymentMethodsResponse, error) {
	methods, err := s.PaymentMethodRepo.List(ctx, painterID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(methods, func(pm *paymentmethod.PaymentMethod, _ int) *dto.PaymentMethodResponse {
		return dto.NewPaymentMethodResponse(pm)
	})
	return &dto.ListPaymentMethodsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *paymentMethodService) SetDefaultPaymentMethod(ctx context.Context, painterID string, id string) error {
	pm, err := s.PaymentMethodRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if pm.PainterID != painterID {
		return ierr.NewError("payment method belongs to another painter").
			WithHint("You can only manage your own payment methods").
			Mark(ierr.ErrPermissionDenied)
	}
	return s.PaymentMethodRepo.SetDefault(ctx, painterID, id)
}

// RemovePaymentMethod detaches the method at the gateway and soft deletes
// the local row. Payment history keeps pointing at the deleted row.
func (s *paymentMethodService) RemovePaymentMethod(ctx context.Context, painterID string, id string) error {
	pm, err := s.PaymentMethodRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if pm.PainterID != painterID {
		return ierr.NewError("payment method belongs to another painter").
			WithHint("You can only manage your own payment methods").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := s.Gateway.DetachPaymentMethod(ctx, pm.GatewayPaymentMethodID); err != nil {
		return err
	}

	if err := s.PaymentMethodRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	if p, err := s.PainterRepo.Get(ctx, painterID); err == nil {
		s.Sink.PaymentMethodRemoved(ctx, &interfaces.PaymentMethodNotification{
			PainterName:  p.Name,
			PainterEmail: p.Email,
			Brand:        pm.Brand,
			Last4:        pm.Last4,
		})
	}
	return nil
}
