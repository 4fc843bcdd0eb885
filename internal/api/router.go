package api

import (
	v1 "github.com/brushlead/brushlead/internal/api/v1"
	"github.com/brushlead/brushlead/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers wired into the router
type Handlers struct {
	Health        *v1.HealthHandler
	Painter       *v1.PainterHandler
	Lead          *v1.LeadHandler
	Payment       *v1.PaymentHandler
	PaymentMethod *v1.PaymentMethodHandler
	Webhook       *v1.WebhookHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// Webhooks sit outside the versioned API; the path is registered with
	// the gateway and must stay stable.
	router.POST("/webhooks/stripe", handlers.Webhook.HandleStripeWebhook)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	painters := router.Group("/painters")
	{
		painters.POST("", handlers.Painter.CreatePainter)
		painters.GET("/:painter_id", handlers.Painter.GetPainter)
		painters.GET("/:painter_id/leads", handlers.Lead.ListAccessibleLeads)
		painters.GET("/:painter_id/payment-methods", handlers.PaymentMethod.ListPaymentMethods)
		painters.DELETE("/:painter_id/payment-methods/:id", handlers.PaymentMethod.RemovePaymentMethod)
		painters.POST("/:painter_id/payment-methods/:id/default", handlers.PaymentMethod.SetDefaultPaymentMethod)
	}

	router.POST("/payment-methods", handlers.PaymentMethod.SavePaymentMethod)

	leads := router.Group("/leads")
	{
		leads.POST("", handlers.Lead.CreateLead)
		leads.GET("", handlers.Lead.ListLeads)
		leads.GET("/:id", handlers.Lead.GetLead)
		leads.POST("/:id/deactivate", handlers.Lead.DeactivateLead)
		leads.GET("/:id/payments", handlers.Payment.ListLeadPayments)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/purchase", handlers.Payment.PurchaseLead)
		payments.GET("/:id", handlers.Payment.GetPayment)
	}
}
