package notification

import (
	"context"
	"fmt"

	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/logger"
)

// emailSink delivers business notifications over email. Every method is
// fire-and-forget: delivery failures are logged and never propagate to the
// operation that triggered them.
type emailSink struct {
	client *EmailClient
	logger *logger.Logger
}

// NewEmailSink creates a notification sink backed by the email client
func NewEmailSink(client *EmailClient, logger *logger.Logger) interfaces.NotificationSink {
	return &emailSink{
		client: client,
		logger: logger,
	}
}

func (s *emailSink) PaymentSucceeded(ctx context.Context, n *interfaces.PaymentSucceededNotification) {
	subject := fmt.Sprintf("Receipt %s: lead purchase confirmed", n.ReceiptNumber)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour payment of %s %s for a lead in %s was successful.\nReceipt number: %s\n\nThe customer's contact details are now available in your dashboard.",
		n.PainterName, n.Amount.StringFixed(2), n.Currency, n.LeadCity, n.ReceiptNumber,
	)
	s.send(ctx, "payment_succeeded", n.PainterEmail, subject, text)
}

func (s *emailSink) PaymentFailed(ctx context.Context, n *interfaces.PaymentFailedNotification) {
	subject := "Your lead purchase could not be completed"
	text := fmt.Sprintf(
		"Hi %s,\n\nYour payment of %s %s failed: %s\n\nPlease check your payment method and try again.",
		n.PainterName, n.Amount.StringFixed(2), n.Currency, n.Reason,
	)
	s.send(ctx, "payment_failed", n.PainterEmail, subject, text)
}

func (s *emailSink) LeadExhausted(ctx context.Context, n *interfaces.LeadExhaustedNotification) {
	// Operational signal only; there is no painter recipient for this one.
	s.logger.Infow("lead reached payment limit",
		"lead_id", n.LeadID,
		"city", n.City,
		"payment_count", n.PaymentCount,
	)
}

func (s *emailSink) PaymentMethodAdded(ctx context.Context, n *interfaces.PaymentMethodNotification) {
	subject := "A payment method was added to your account"
	text := fmt.Sprintf(
		"Hi %s,\n\nA %s card ending in %s was added to your account.\nIf this wasn't you, contact support immediately.",
		n.PainterName, n.Brand, n.Last4,
	)
	s.send(ctx, "payment_method_added", n.PainterEmail, subject, text)
}

func (s *emailSink) PaymentMethodRemoved(ctx context.Context, n *interfaces.PaymentMethodNotification) {
	subject := "A payment method was removed from your account"
	text := fmt.Sprintf(
		"Hi %s,\n\nThe %s card ending in %s was removed from your account.\nIf this wasn't you, contact support immediately.",
		n.PainterName, n.Brand, n.Last4,
	)
	s.send(ctx, "payment_method_removed", n.PainterEmail, subject, text)
}

func (s *emailSink) send(ctx context.Context, kind string, to string, subject string, text string) {
	if !s.client.IsEnabled() {
		s.logger.Debugw("email disabled, skipping notification", "kind", kind, "to", to)
		return
	}

	messageID, err := s.client.SendEmail(ctx, to, subject, "", text)
	if err != nil {
		s.logger.Errorw("failed to send notification email",
			"kind", kind,
			"to", to,
			"error", err,
		)
		return
	}
	s.logger.Infow("sent notification email",
		"kind", kind,
		"to", to,
		"message_id", messageID,
	)
}
