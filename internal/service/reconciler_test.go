package service

import (
	"testing"

	"github.com/brushlead/brushlead/internal/domain/lead"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/domain/payment"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/testutil"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WebhookReconcilerSuite struct {
	testutil.BaseServiceTestSuite
	reconciler interfaces.WebhookReconciler
	testData   struct {
		painter *painter.Painter
		lead    *lead.Lead
		payment *payment.LeadPayment
	}
}

func TestWebhookReconciler(t *testing.T) {
	suite.Run(t, new(WebhookReconcilerSuite))
}

func (s *WebhookReconcilerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.reconciler = NewWebhookReconciler(newTestServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *WebhookReconcilerSuite) setupTestData() {
	s.testData.painter = &painter.Painter{
		ID:                "painter_test_webhook",
		Name:              "Brush Bros",
		Email:             "crew@brushbros.test",
		GatewayCustomerID: lo.ToPtr("cus_test_hook"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), s.testData.painter))

	s.testData.lead = &lead.Lead{
		ID:              "lead_test_webhook",
		CustomerName:    "Jo Miller",
		CustomerEmail:   "jo@example.test",
		JobDescription:  "Exterior trim",
		City:            "Austin",
		LeadPrice:       decimal.NewFromInt(25),
		Currency:        "usd",
		MaxPayments:     2,
		IsPaymentActive: true,
		BaseModel:       types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().LeadRepo.Create(s.GetContext(), s.testData.lead))

	// A charge confirmed off-session whose outcome arrives by webhook.
	s.testData.payment = &payment.LeadPayment{
		ID:                     "pay_test_webhook",
		LeadID:                 s.testData.lead.ID,
		PainterID:              s.testData.painter.ID,
		GatewayPaymentIntentID: "pi_test_hook",
		GatewayCustomerID:      "cus_test_hook",
		Amount:                 decimal.NewFromInt(25),
		Currency:               "usd",
		PaymentStatus:          types.PaymentStatusPending,
		PaymentNumber:          1,
		ReceiptNumber:          "LD-TEST01",
		BaseModel:              types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), s.testData.payment))
}

func (s *WebhookReconcilerSuite) succeededEvent() *types.GatewayEvent {
	return &types.GatewayEvent{
		ID:       "evt_test_succeeded",
		Type:     types.GatewayEventPaymentIntentSucceeded,
		IntentID: s.testData.payment.GatewayPaymentIntentID,
	}
}

func (s *WebhookReconcilerSuite) failedEvent() *types.GatewayEvent {
	return &types.GatewayEvent{
		ID:             "evt_test_failed",
		Type:           types.GatewayEventPaymentIntentFailed,
		IntentID:       s.testData.payment.GatewayPaymentIntentID,
		FailureMessage: "Your card has insufficient funds.",
	}
}

func (s *WebhookReconcilerSuite) TestReconcileSucceededSettlesPayment() {
	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.succeededEvent()))

	p, err := s.GetStores().PaymentRepo.GetByIntentID(s.GetContext(), "pi_test_hook")
	s.NoError(err)
	s.Equal(types.PaymentStatusSucceeded, p.PaymentStatus)
	s.NotNil(p.SucceededAt)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.True(hasAccess)

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)

	s.Len(s.GetSink().Succeeded, 1)
	s.Equal("LD-TEST01", s.GetSink().Succeeded[0].ReceiptNumber)
}

func (s *WebhookReconcilerSuite) TestReconcileReplayIsIdempotent() {
	event := s.succeededEvent()
	s.NoError(s.reconciler.Reconcile(s.GetContext(), event))
	s.NoError(s.reconciler.Reconcile(s.GetContext(), event))
	s.NoError(s.reconciler.Reconcile(s.GetContext(), event))

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)

	// Only the delivery that performed the transition notified.
	s.Len(s.GetSink().Succeeded, 1)
}

func (s *WebhookReconcilerSuite) TestReconcileFailedRecordsReason() {
	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.failedEvent()))

	p, err := s.GetStores().PaymentRepo.GetByIntentID(s.GetContext(), "pi_test_hook")
	s.NoError(err)
	s.Equal(types.PaymentStatusFailed, p.PaymentStatus)
	s.NotNil(p.ErrorMessage)
	s.Equal("Your card has insufficient funds.", *p.ErrorMessage)
	s.NotNil(p.FailedAt)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.False(hasAccess)

	s.Len(s.GetSink().Failed, 1)
	s.Empty(s.GetSink().Succeeded)
}

func (s *WebhookReconcilerSuite) TestReconcileIgnoresLateContradictingEvent() {
	// The failure lands first; a stale success delivery must not resurrect
	// the payment.
	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.failedEvent()))
	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.succeededEvent()))

	p, err := s.GetStores().PaymentRepo.GetByIntentID(s.GetContext(), "pi_test_hook")
	s.NoError(err)
	s.Equal(types.PaymentStatusFailed, p.PaymentStatus)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.False(hasAccess)
	s.Empty(s.GetSink().Succeeded)
}

func (s *WebhookReconcilerSuite) TestReconcileUnknownIntentIsAcked() {
	event := &types.GatewayEvent{
		ID:       "evt_test_unknown",
		Type:     types.GatewayEventPaymentIntentSucceeded,
		IntentID: "pi_never_seen",
	}
	s.NoError(s.reconciler.Reconcile(s.GetContext(), event))

	// Local state is untouched.
	p, err := s.GetStores().PaymentRepo.GetByIntentID(s.GetContext(), "pi_test_hook")
	s.NoError(err)
	s.Equal(types.PaymentStatusPending, p.PaymentStatus)
	s.Empty(s.GetSink().Succeeded)
}

func (s *WebhookReconcilerSuite) TestReconcileUnhandledTypeIsIgnored() {
	event := &types.GatewayEvent{
		ID:   "evt_test_refund",
		Type: types.GatewayEventType("charge.refunded"),
	}
	s.NoError(s.reconciler.Reconcile(s.GetContext(), event))

	attached := &types.GatewayEvent{
		ID:              "evt_test_attached",
		Type:            types.GatewayEventPaymentMethodAttached,
		PaymentMethodID: "pm_card_visa",
	}
	s.NoError(s.reconciler.Reconcile(s.GetContext(), attached))
}

func (s *WebhookReconcilerSuite) TestReconcileExhaustsLeadAtCap() {
	s.testData.lead.MaxPayments = 1

	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.succeededEvent()))

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)
	s.False(l.IsPaymentActive)
	s.Len(s.GetSink().Exhausted, 1)
}

func (s *WebhookReconcilerSuite) TestReconcileGrantStandsOnClosedLead() {
	// The lead closes between charge and settlement. The painter paid, so
	// the grant is created anyway; the counter stays put.
	s.NoError(s.GetStores().LeadRepo.Deactivate(s.GetContext(), s.testData.lead.ID))

	s.NoError(s.reconciler.Reconcile(s.GetContext(), s.succeededEvent()))

	p, err := s.GetStores().PaymentRepo.GetByIntentID(s.GetContext(), "pi_test_hook")
	s.NoError(err)
	s.Equal(types.PaymentStatusSucceeded, p.PaymentStatus)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.True(hasAccess)

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(0, l.PaymentCount)
	s.False(l.IsPaymentActive)
}
