package v1

import (
	"net/http"

	"github.com/brushlead/brushlead/internal/api/dto"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service interfaces.LeadPaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service interfaces.LeadPaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Purchase access to a lead
// @Description Charge the painter's saved payment method and grant lead access
// @Tags Payments
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseLeadRequest true "Purchase details"
// @Success 200 {object} dto.PurchaseLeadResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /payments/purchase [post]
func (h *PaymentHandler) PurchaseLead(c *gin.Context) {
	var req dto.PurchaseLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind purchase request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.PurchaseLead(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a payment by ID
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List payments for a lead
// @Tags Payments
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /leads/{id}/payments [get]
func (h *PaymentHandler) ListLeadPayments(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		c.Error(ierr.NewError("lead_id is required").
			WithHint("Lead ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListLeadPayments(c.Request.Context(), leadID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
