package v1

import (
	"io"
	"net/http"

	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	gateway    interfaces.PaymentGateway
	reconciler interfaces.WebhookReconciler
	logger     *logger.Logger
}

func NewWebhookHandler(
	gateway interfaces.PaymentGateway,
	reconciler interfaces.WebhookReconciler,
	logger *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		gateway:    gateway,
		reconciler: reconciler,
		logger:     logger,
	}
}

// @Summary Handle Stripe webhook events
// @Description Verify and reconcile incoming Stripe payment events
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe webhook signature"
// @Success 200 {object} map[string]interface{} "Webhook processed"
// @Failure 400 {object} map[string]interface{} "Invalid signature or payload"
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.logger.Errorw("missing Stripe-Signature header")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing Stripe-Signature header",
		})
		return
	}

	event, err := h.gateway.ParseWebhookEvent(body, signature)
	if err != nil {
		// Unverifiable deliveries are rejected outright; processing an
		// unsigned event would let anyone settle payments.
		h.logger.Errorw("webhook verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to verify webhook signature or parse event",
		})
		return
	}

	if err := h.reconciler.Reconcile(c.Request.Context(), event); err != nil {
		h.logger.Errorw("webhook reconciliation failed",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err,
		)
		// A 500 makes the gateway redeliver; reconciliation is idempotent so
		// the retry is safe.
		c.JSON(ierr.HTTPStatusFromErr(err), gin.H{
			"error": "Failed to process webhook event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"event_id": event.ID,
	})
}
