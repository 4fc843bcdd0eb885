package v1

import (
	"net/http"

	"github.com/brushlead/brushlead/internal/api/dto"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/gin-gonic/gin"
)

type PainterHandler struct {
	service interfaces.PainterService
	log     *logger.Logger
}

func NewPainterHandler(service interfaces.PainterService, log *logger.Logger) *PainterHandler {
	return &PainterHandler{service: service, log: log}
}

// @Summary Register a painter
// @Tags Painters
// @Accept json
// @Produce json
// @Param painter body dto.CreatePainterRequest true "Painter details"
// @Success 201 {object} dto.PainterResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /painters [post]
func (h *PainterHandler) CreatePainter(c *gin.Context) {
	var req dto.CreatePainterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind painter request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePainter(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a painter by ID
// @Tags Painters
// @Produce json
// @Param painter_id path string true "Painter ID"
// @Success 200 {object} dto.PainterResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /painters/{painter_id} [get]
func (h *PainterHandler) GetPainter(c *gin.Context) {
	id := c.Param("painter_id")
	resp, err := h.service.GetPainter(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
