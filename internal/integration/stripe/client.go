package stripe

import (
	"github.com/brushlead/brushlead/internal/config"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client holds the configured Stripe API client and webhook secret
type Client struct {
	api           *stripe.Client
	webhookSecret string
	logger        *logger.Logger
}

// NewClient creates a new Stripe client from the application configuration
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		api:           stripe.NewClient(cfg.Stripe.SecretKey, nil),
		webhookSecret: cfg.Stripe.WebhookSecret,
		logger:        logger,
	}
}

// API returns the underlying Stripe client
func (c *Client) API() *stripe.Client {
	return c.api
}
