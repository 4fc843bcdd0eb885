package v1

import (
	"net/http"

	"github.com/brushlead/brushlead/internal/api/dto"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	service interfaces.LeadService
	log     *logger.Logger
}

func NewLeadHandler(service interfaces.LeadService, log *logger.Logger) *LeadHandler {
	return &LeadHandler{service: service, log: log}
}

// @Summary Publish a new lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead body dto.CreateLeadRequest true "Lead details"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind lead request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateLead(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a lead
// @Description Returns the lead; customer contact details are included only
// when the requesting painter has purchased access
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Param painter_id query string false "Requesting painter ID"
// @Success 200 {object} dto.LeadResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	id := c.Param("id")
	painterID := c.Query("painter_id")

	resp, err := h.service.GetLead(c.Request.Context(), id, painterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List published leads
// @Tags Leads
// @Produce json
// @Success 200 {object} dto.ListLeadsResponse
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	resp, err := h.service.ListLeads(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List leads a painter has access to
// @Tags Leads
// @Produce json
// @Param painter_id path string true "Painter ID"
// @Success 200 {object} dto.ListLeadsResponse
// @Router /painters/{painter_id}/leads [get]
func (h *LeadHandler) ListAccessibleLeads(c *gin.Context) {
	painterID := c.Param("painter_id")
	if painterID == "" {
		c.Error(ierr.NewError("painter_id is required").
			WithHint("Painter ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListAccessibleLeads(c.Request.Context(), painterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Deactivate a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]interface{}
// @Router /leads/{id}/deactivate [post]
func (h *LeadHandler) DeactivateLead(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeactivateLead(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
