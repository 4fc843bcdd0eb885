package service

import (
	"context"
	"time"

	"github.com/brushlead/brushlead/internal/domain/access"
	"github.com/brushlead/brushlead/internal/domain/payment"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/types"
)

// settleOutcome describes what a settlement call actually changed. The same
// intent can be settled from the synchronous charge path and from webhook
// delivery; only the first caller observes Transitioned=true and the
// follow-on effects.
type settleOutcome struct {
	Payment       *payment.LeadPayment
	Transitioned  bool
	AccessCreated bool
	Exhausted     bool
}

// paymentSettler applies terminal payment outcomes to local state. All
// writes for one settlement happen in one transaction so a crash cannot
// leave a succeeded payment without its access grant.
type paymentSettler struct {
	ServiceParams
}

// settleSucceeded moves the payment for the intent to SUCCEEDED and, when
// this call performed the transition, grants lead access and bumps the
// lead's payment counter. Safe to call any number of times.
func (s *paymentSettler) settleSucceeded(ctx context.Context, intentID string) (*settleOutcome, error) {
	outcome := &settleOutcome{}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		transitioned, err := s.PaymentRepo.MarkSucceeded(ctx, intentID)
		if err != nil {
			return err
		}
		outcome.Transitioned = transitioned

		p, err := s.PaymentRepo.GetByIntentID(ctx, intentID)
		if err != nil {
			return err
		}
		outcome.Payment = p

		if !transitioned {
			return nil
		}

		created, err := s.AccessRepo.GrantOnce(ctx, &access.LeadAccess{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCESS),
			LeadID:    p.LeadID,
			PainterID: p.PainterID,
			PaymentID: p.ID,
			GrantedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		outcome.AccessCreated = created

		if !created {
			// The painter already held access; a repeat payment never bumps
			// the counter.
			return nil
		}

		counter, err := s.LeadRepo.IncrementPaymentCount(ctx, p.LeadID)
		if err != nil {
			// The lead was exhausted or deactivated between charge and
			// settlement. The painter paid, so the grant stands; the counter
			// stays at its cap.
			if ierr.IsPreconditionFailed(err) {
				s.Logger.Warnw("access granted on a closed lead",
					"lead_id", p.LeadID,
					"painter_id", p.PainterID,
					"payment_intent_id", intentID,
				)
				return nil
			}
			return err
		}
		outcome.Exhausted = counter.Exhausted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// settleFailed moves the payment for the intent to FAILED. Returns the
// payment and whether this call performed the transition.
func (s *paymentSettler) settleFailed(ctx context.Context, intentID string, reason string) (*settleOutcome, error) {
	if reason == "" {
		reason = "payment failed"
	}

	transitioned, err := s.PaymentRepo.MarkFailed(ctx, intentID, reason)
	if err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	return &settleOutcome{
		Payment:      p,
		Transitioned: transitioned,
	}, nil
}

// notifySettled fans the settlement out to the notification sink. Failures
// to look up the painter or lead are logged, never returned: the payment
// state is already committed.
func (s *paymentSettler) notifySettled(ctx context.Context, outcome *settleOutcome) {
	if outcome == nil || !outcome.Transitioned {
		return
	}
	p := outcome.Payment

	painter, err := s.PainterRepo.Get(ctx, p.PainterID)
	if err != nil {
		s.Logger.Errorw("cannot notify painter for settled payment",
			"painter_id", p.PainterID,
			"payment_id", p.ID,
			"error", err,
		)
		return
	}

	switch p.PaymentStatus {
	case types.PaymentStatusSucceeded:
		city := ""
		paymentCount := 0
		if l, err := s.LeadRepo.Get(ctx, p.LeadID); err == nil {
			city = l.City
			paymentCount = l.PaymentCount
		}
		s.Sink.PaymentSucceeded(ctx, &interfaces.PaymentSucceededNotification{
			PainterName:   painter.Name,
			PainterEmail:  painter.Email,
			ReceiptNumber: p.ReceiptNumber,
			Amount:        p.Amount,
			Currency:      p.Currency,
			LeadCity:      city,
			AccessGranted: outcome.AccessCreated,
		})

		if outcome.Exhausted {
			s.Sink.LeadExhausted(ctx, &interfaces.LeadExhaustedNotification{
				LeadID:       p.LeadID,
				City:         city,
				PaymentCount: paymentCount,
			})
		}
	case types.PaymentStatusFailed:
		reason := ""
		if p.ErrorMessage != nil {
			reason = *p.ErrorMessage
		}
		s.Sink.PaymentFailed(ctx, &interfaces.PaymentFailedNotification{
			PainterName:  painter.Name,
			PainterEmail: painter.Email,
			Amount:       p.Amount,
			Currency:     p.Currency,
			Reason:       reason,
		})
	}
}
