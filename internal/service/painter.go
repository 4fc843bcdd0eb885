package service

import (
	"context"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/interfaces"
)

type painterService struct {
	ServiceParams
}

// NewPainterService creates a new painter service
func NewPainterService(params ServiceParams) interfaces.PainterService {
	return &painterService{ServiceParams: params}
}

func (s *painterService) CreatePainter(ctx context.Context, req *dto.CreatePainterRequest) (*dto.PainterResponse, error) {
	p := req.ToPainter()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PainterRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created painter", "painter_id", p.ID, "email", p.Email)
	return dto.NewPainterResponse(p), nil
}

func (s *painterService) GetPainter(ctx context.Context, id string) (*dto.PainterResponse, error) {
	p, err := s.PainterRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPainterResponse(p), nil
}
