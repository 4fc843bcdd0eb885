package service

import (
	"context"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/access"
	"github.com/brushlead/brushlead/internal/domain/lead"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/samber/lo"
)

type leadService struct {
	ServiceParams
}

// NewLeadService creates a new lead service
func NewLeadService(params ServiceParams) interfaces.LeadService {
	return &leadService{ServiceParams: params}
}

func (s *leadService) CreateLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLead(
		s.Config.Payment.DefaultLeadPrice,
		s.Config.Payment.DefaultCurrency,
		s.Config.Payment.DefaultMaxPayments,
	)
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := s.LeadRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.Logger.Infow("created lead",
		"lead_id", l.ID,
		"city", l.City,
		"lead_price", l.LeadPrice.String(),
		"max_payments", l.MaxPayments,
	)
	return dto.NewLeadResponse(l), nil
}

// GetLead returns the lead with customer contact details included only when
// the painter holds an access grant. An empty painter id always gets the
// preview view.
func (s *leadService) GetLead(ctx context.Context, id string, painterID string) (*dto.LeadResponse, error) {
	l, err := s.LeadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if painterID == "" {
		return dto.NewLeadPreviewResponse(l), nil
	}

	hasAccess, err := s.AccessRepo.Has(ctx, l.ID, painterID)
	if err != nil {
		return nil, err
	}
	if !hasAccess {
		return dto.NewLeadPreviewResponse(l), nil
	}
	return dto.NewLeadResponse(l), nil
}

func (s *leadService) ListLeads(ctx context.Context) (*dto.ListLeadsResponse, error) {
	leads, err := s.LeadRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(leads, func(l *lead.Lead, _ int) *dto.LeadResponse {
		return dto.NewLeadPreviewResponse(l)
	})
	return &dto.ListLeadsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// ListAccessibleLeads returns the leads the painter has paid for, with full
// customer contact details
func (s *leadService) ListAccessibleLeads(ctx context.Context, painterID string) (*dto.ListLeadsResponse, error) {
	grants, err := s.AccessRepo.ListByPainter(ctx, painterID)
	if err != nil {
		return nil, err
	}

	leadIDs := lo.Map(grants, func(g *access.LeadAccess, _ int) string {
		return g.LeadID
	})
	leads, err := s.LeadRepo.ListByIDs(ctx, leadIDs)
	if err != nil {
		return nil, err
	}

	items := lo.Map(leads, func(l *lead.Lead, _ int) *dto.LeadResponse {
		return dto.NewLeadResponse(l)
	})
	return &dto.ListLeadsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *leadService) HasAccess(ctx context.Context, leadID string, painterID string) (bool, error) {
	return s.AccessRepo.Has(ctx, leadID, painterID)
}

func (s *leadService) DeactivateLead(ctx context.Context, id string) error {
	if err := s.LeadRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deactivated lead", "lead_id", id)
	return nil
}
