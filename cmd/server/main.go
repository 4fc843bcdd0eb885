package main

import (
	"context"
	"time"

	"github.com/brushlead/brushlead/internal/api"
	v1 "github.com/brushlead/brushlead/internal/api/v1"
	"github.com/brushlead/brushlead/internal/config"
	"github.com/brushlead/brushlead/internal/integration/stripe"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/notification"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/brushlead/brushlead/internal/repository"
	"github.com/brushlead/brushlead/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title BrushLead API
// @version 1.0
// @description Pay-per-lead marketplace API for painters
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewPainterRepository,
			repository.NewLeadRepository,
			repository.NewPaymentRepository,
			repository.NewPaymentMethodRepository,
			repository.NewAccessRepository,

			// Integrations
			stripe.NewClient,
			stripe.NewGateway,
			notification.NewEmailClient,
			notification.NewEmailSink,

			// Services
			service.NewServiceParams,
			service.NewPainterService,
			service.NewLeadService,
			service.NewLeadPaymentService,
			service.NewPaymentMethodService,
			service.NewWebhookReconciler,

			// Handlers
			v1.NewHealthHandler,
			v1.NewPainterHandler,
			v1.NewLeadHandler,
			v1.NewPaymentHandler,
			v1.NewPaymentMethodHandler,
			v1.NewWebhookHandler,
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startAPIServer),
	)

	app.Run()
}

func provideHandlers(
	health *v1.HealthHandler,
	painter *v1.PainterHandler,
	lead *v1.LeadHandler,
	payment *v1.PaymentHandler,
	paymentMethod *v1.PaymentMethodHandler,
	webhook *v1.WebhookHandler,
) api.Handlers {
	return api.Handlers{
		Health:        health,
		Painter:       painter,
		Lead:          lead,
		Payment:       payment,
		PaymentMethod: paymentMethod,
		Webhook:       webhook,
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	db *postgres.DB,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
