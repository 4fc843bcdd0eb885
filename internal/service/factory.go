package service

import (
	"github.com/brushlead/brushlead/internal/config"
	"github.com/brushlead/brushlead/internal/domain/access"
	"github.com/brushlead/brushlead/internal/domain/lead"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/domain/payment"
	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	PainterRepo       painter.Repository
	LeadRepo          lead.Repository
	PaymentRepo       payment.Repository
	PaymentMethodRepo paymentmethod.Repository
	AccessRepo        access.Repository

	// Integrations
	Gateway interfaces.PaymentGateway
	Sink    interfaces.NotificationSink
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	painterRepo painter.Repository,
	leadRepo lead.Repository,
	paymentRepo payment.Repository,
	paymentMethodRepo paymentmethod.Repository,
	accessRepo access.Repository,
	gateway interfaces.PaymentGateway,
	sink interfaces.NotificationSink,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		DB:                db,
		PainterRepo:       painterRepo,
		LeadRepo:          leadRepo,
		PaymentRepo:       paymentRepo,
		PaymentMethodRepo: paymentMethodRepo,
		AccessRepo:        accessRepo,
		Gateway:           gateway,
		Sink:              sink,
	}
}
