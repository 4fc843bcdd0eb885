package v1

import (
	"net/http"

	"github.com/brushlead/brushlead/internal/api/dto"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/gin-gonic/gin"
)

type PaymentMethodHandler struct {
	service interfaces.PaymentMethodService
	log     *logger.Logger
}

func NewPaymentMethodHandler(service interfaces.PaymentMethodService, log *logger.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{service: service, log: log}
}

// @Summary Save a payment method
// @Description Attach a tokenized payment method to the painter's account
// @Tags PaymentMethods
// @Accept json
// @Produce json
// @Param payment_method body dto.SavePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payment-methods [post]
func (h *PaymentMethodHandler) SavePaymentMethod(c *gin.Context) {
	var req dto.SavePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind payment method request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SavePaymentMethod(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List a painter's payment methods
// @Tags PaymentMethods
// @Produce json
// @Param painter_id path string true "Painter ID"
// @Success 200 {object} dto.ListPaymentMethodsResponse
// @Router /painters/{painter_id}/payment-methods [get]
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	painterID := c.Param("painter_id")
	if painterID == "" {
		c.Error(ierr.NewError("painter_id is required").
			WithHint("Painter ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPaymentMethods(c.Request.Context(), painterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the default payment method
// @Tags PaymentMethods
// @Produce json
// @Param painter_id path string true "Painter ID"
// @Param id path string true "Payment method ID"
// @Success 200 {object} map[string]interface{}
// @Router /painters/{painter_id}/payment-methods/{id}/default [post]
func (h *PaymentMethodHandler) SetDefaultPaymentMethod(c *gin.Context) {
	painterID := c.Param("painter_id")
	id := c.Param("id")

	if err := h.service.SetDefaultPaymentMethod(c.Request.Context(), painterID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary Remove a payment method
// @Tags PaymentMethods
// @Produce json
// @Param painter_id path string true "Painter ID"
// @Param id path string true "Payment method ID"
// @Success 200 {object} map[string]interface{}
// @Router /painters/{painter_id}/payment-methods/{id} [delete]
func (h *PaymentMethodHandler) RemovePaymentMethod(c *gin.Context) {
	painterID := c.Param("painter_id")
	id := c.Param("id")

	if err := h.service.RemovePaymentMethod(c.Request.Context(), painterID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
