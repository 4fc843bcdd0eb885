package dto

import (
	"time"

	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/types"
)

// CreatePainterRequest represents a request to register a painter
type CreatePainterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// ToPainter converts the request to a painter domain model
func (r *CreatePainterRequest) ToPainter() *painter.Painter {
	return &painter.Painter{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAINTER),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		BaseModel: types.GetDefaultBaseModel(),
	}
}

// PainterResponse represents a painter
type PainterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPainterResponse creates a painter response
func NewPainterResponse(p *painter.Painter) *PainterResponse {
	return &PainterResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}
