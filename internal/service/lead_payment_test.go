package service

import (
	"testing"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/lead"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/testutil"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	return ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		DB:                s.GetDB(),
		PainterRepo:       s.GetStores().PainterRepo,
		LeadRepo:          s.GetStores().LeadRepo,
		PaymentRepo:       s.GetStores().PaymentRepo,
		PaymentMethodRepo: s.GetStores().PaymentMethodRepo,
		AccessRepo:        s.GetStores().AccessRepo,
		Gateway:           s.GetGateway(),
		Sink:              s.GetSink(),
	}
}

type LeadPaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  interfaces.LeadPaymentService
	testData struct {
		painter *painter.Painter
		method  *paymentmethod.PaymentMethod
		lead    *lead.Lead
	}
}

func TestLeadPaymentService(t *testing.T) {
	suite.Run(t, new(LeadPaymentServiceSuite))
}

func (s *LeadPaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLeadPaymentService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *LeadPaymentServiceSuite) setupTestData() {
	s.testData.painter = &painter.Painter{
		ID:                "painter_test_purchase",
		Name:              "Fresh Coat Painting",
		Email:             "owner@freshcoat.test",
		GatewayCustomerID: lo.ToPtr("cus_test_001"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), s.testData.painter))

	s.testData.method = &paymentmethod.PaymentMethod{
		ID:                     "pm_test_purchase",
		PainterID:              s.testData.painter.ID,
		GatewayCustomerID:      "cus_test_001",
		GatewayPaymentMethodID: "pm_card_visa",
		Brand:                  "visa",
		Last4:                  "4242",
		IsDefault:              true,
		BaseModel:              types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PaymentMethodRepo.Create(s.GetContext(), s.testData.method))

	s.testData.lead = &lead.Lead{
		ID:              "lead_test_purchase",
		CustomerName:    "Dana Smith",
		CustomerEmail:   "dana@example.test",
		CustomerPhone:   "555-0101",
		JobDescription:  "Repaint two bedrooms",
		City:            "Portland",
		LeadPrice:       decimal.NewFromInt(25),
		Currency:        "usd",
		MaxPayments:     3,
		IsPaymentActive: true,
		BaseModel:       types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().LeadRepo.Create(s.GetContext(), s.testData.lead))
}

func (s *LeadPaymentServiceSuite) purchase() (*dto.PurchaseLeadResponse, error) {
	return s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:    s.testData.lead.ID,
		PainterID: s.testData.painter.ID,
	})
}

func (s *LeadPaymentServiceSuite) TestPurchaseLeadSucceeds() {
	resp, err := s.purchase()
	s.NoError(err)
	s.True(resp.AccessGranted)
	s.False(resp.RequiresAction)
	s.Equal(types.PaymentStatusSucceeded, resp.Payment.PaymentStatus)
	s.Equal(1, resp.Payment.PaymentNumber)
	s.NotEmpty(resp.Payment.ReceiptNumber)
	s.NotNil(resp.Payment.SucceededAt)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.True(hasAccess)

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)
	s.True(l.IsPaymentActive)

	s.Len(s.GetSink().Succeeded, 1)
	s.Equal("Portland", s.GetSink().Succeeded[0].LeadCity)
	s.True(s.GetSink().Succeeded[0].AccessGranted)
	s.Empty(s.GetSink().Exhausted)
}

func (s *LeadPaymentServiceSuite) TestPurchaseAlreadyOwnedLeadSkipsCharge() {
	_, err := s.purchase()
	s.NoError(err)
	s.Equal(1, s.GetGateway().ChargeCount())

	_, err = s.purchase()
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))

	// No second charge and no second counter bump.
	s.Equal(1, s.GetGateway().ChargeCount())
	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)
}

func (s *LeadPaymentServiceSuite) TestPurchaseExhaustedLeadFails() {
	s.testData.lead.PaymentCount = 3
	s.testData.lead.IsPaymentActive = false

	_, err := s.purchase()
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
	s.Equal(0, s.GetGateway().ChargeCount())
}

func (s *LeadPaymentServiceSuite) TestPurchaseDeactivatedLeadFails() {
	s.NoError(s.GetStores().LeadRepo.Deactivate(s.GetContext(), s.testData.lead.ID))

	_, err := s.purchase()
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
	s.Equal(0, s.GetGateway().ChargeCount())
}

func (s *LeadPaymentServiceSuite) TestPurchaseDeclinedCardRecordsFailedPayment() {
	s.GetGateway().NextChargeStatus = types.GatewayIntentStatusFailed
	s.GetGateway().NextFailureMessage = "Your card was declined."

	resp, err := s.purchase()
	s.NoError(err)
	s.False(resp.AccessGranted)
	s.Equal(types.PaymentStatusFailed, resp.Payment.PaymentStatus)
	s.NotNil(resp.Payment.ErrorMessage)
	s.Equal("Your card was declined.", *resp.Payment.ErrorMessage)

	// The attempt is recorded but nothing else moves.
	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.False(hasAccess)

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(0, l.PaymentCount)

	s.Len(s.GetSink().Failed, 1)
	s.Equal("Your card was declined.", s.GetSink().Failed[0].Reason)
	s.Empty(s.GetSink().Succeeded)
}

func (s *LeadPaymentServiceSuite) TestPurchaseRequiresActionStaysPending() {
	s.GetGateway().NextChargeStatus = types.GatewayIntentStatusRequiresAction

	resp, err := s.purchase()
	s.NoError(err)
	s.True(resp.RequiresAction)
	s.False(resp.AccessGranted)
	s.NotEmpty(resp.ClientSecret)
	s.Equal(types.PaymentStatusPending, resp.Payment.PaymentStatus)

	hasAccess, err := s.GetStores().AccessRepo.Has(s.GetContext(), s.testData.lead.ID, s.testData.painter.ID)
	s.NoError(err)
	s.False(hasAccess)
	s.Empty(s.GetSink().Succeeded)
	s.Empty(s.GetSink().Failed)
}

func (s *LeadPaymentServiceSuite) TestPurchaseProcessingStaysPending() {
	s.GetGateway().NextChargeStatus = types.GatewayIntentStatusProcessing

	resp, err := s.purchase()
	s.NoError(err)
	s.False(resp.AccessGranted)
	s.False(resp.RequiresAction)
	s.Equal(types.PaymentStatusPending, resp.Payment.PaymentStatus)
}

func (s *LeadPaymentServiceSuite) TestPurchaseWithoutSavedMethodFails() {
	bare := &painter.Painter{
		ID:        "painter_test_no_method",
		Name:      "No Card Painting",
		Email:     "nocard@example.test",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), bare))

	_, err := s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:    s.testData.lead.ID,
		PainterID: bare.ID,
	})
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
	s.Equal(0, s.GetGateway().ChargeCount())
}

func (s *LeadPaymentServiceSuite) TestPurchaseWithExplicitGatewayMethodSucceeds() {
	resp, err := s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:                 s.testData.lead.ID,
		PainterID:              s.testData.painter.ID,
		GatewayPaymentMethodID: s.testData.method.GatewayPaymentMethodID,
	})
	s.NoError(err)
	s.True(resp.AccessGranted)
	s.Equal(1, s.GetGateway().ChargeCount())
	s.Equal("pm_card_visa", s.GetGateway().ChargeRequests[0].PaymentMethodID)
}

func (s *LeadPaymentServiceSuite) TestPurchaseWithForeignMethodFails() {
	other := &painter.Painter{
		ID:                "painter_test_other",
		Name:              "Other Painting Co",
		Email:             "other@example.test",
		GatewayCustomerID: lo.ToPtr("cus_test_other"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), other))

	// The card belongs to the suite's painter; for anyone else it is not a
	// usable method.
	_, err := s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:                 s.testData.lead.ID,
		PainterID:              other.ID,
		GatewayPaymentMethodID: s.testData.method.GatewayPaymentMethodID,
	})
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
	s.Equal(0, s.GetGateway().ChargeCount())
}

func (s *LeadPaymentServiceSuite) TestPurchaseWithCustomerButNoMethodFails() {
	stale := &painter.Painter{
		ID:                "painter_test_stale",
		Name:              "Stale Card Painting",
		Email:             "stale@example.test",
		GatewayCustomerID: lo.ToPtr("cus_test_stale"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), stale))

	// A gateway customer without any active saved method, for example after
	// removing the last card.
	_, err := s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:    s.testData.lead.ID,
		PainterID: stale.ID,
	})
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
	s.Equal(0, s.GetGateway().ChargeCount())
}

func (s *LeadPaymentServiceSuite) TestPurchaseGatewayFaultNotifiesFailure() {
	s.GetGateway().ChargeErr = ierr.NewError("gateway unavailable").
		WithHint("Payment could not be processed").
		Mark(ierr.ErrGateway)

	_, err := s.purchase()
	s.Error(err)
	s.True(ierr.IsGateway(err))

	// No intent means no payment row, but the failure is still announced.
	payments, err := s.GetStores().PaymentRepo.ListByLead(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Empty(payments)
	s.Len(s.GetSink().Failed, 1)
	s.Equal("payment could not be processed", s.GetSink().Failed[0].Reason)
}

func (s *LeadPaymentServiceSuite) TestWebhookReplayAfterSyncSettlement() {
	resp, err := s.purchase()
	s.NoError(err)
	s.True(resp.AccessGranted)

	// Stripe delivers the succeeded event for the intent the synchronous
	// path already settled; the final state must not change.
	reconciler := NewWebhookReconciler(newTestServiceParams(&s.BaseServiceTestSuite))
	s.NoError(reconciler.Reconcile(s.GetContext(), &types.GatewayEvent{
		ID:       "evt_after_sync",
		Type:     types.GatewayEventPaymentIntentSucceeded,
		IntentID: resp.Payment.GatewayPaymentIntentID,
	}))

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)

	grants, err := s.GetStores().AccessRepo.ListByPainter(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.Len(grants, 1)

	s.Len(s.GetSink().Succeeded, 1)
}

func (s *LeadPaymentServiceSuite) TestPurchaseExhaustsLeadAtCap() {
	s.testData.lead.MaxPayments = 1

	resp, err := s.purchase()
	s.NoError(err)
	s.True(resp.AccessGranted)

	l, err := s.GetStores().LeadRepo.Get(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(1, l.PaymentCount)
	s.False(l.IsPaymentActive)

	s.Len(s.GetSink().Exhausted, 1)
	s.Equal(s.testData.lead.ID, s.GetSink().Exhausted[0].LeadID)

	// The next painter cannot buy the exhausted lead.
	other := &painter.Painter{
		ID:                "painter_test_late",
		Name:              "Late Painting Co",
		Email:             "late@example.test",
		GatewayCustomerID: lo.ToPtr("cus_test_late"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), other))

	_, err = s.service.PurchaseLead(s.GetContext(), &dto.PurchaseLeadRequest{
		LeadID:    s.testData.lead.ID,
		PainterID: other.ID,
	})
	s.Error(err)
	s.True(ierr.IsPreconditionFailed(err))
}

func (s *LeadPaymentServiceSuite) TestGetPayment() {
	resp, err := s.purchase()
	s.NoError(err)

	got, err := s.service.GetPayment(s.GetContext(), resp.Payment.ID)
	s.NoError(err)
	s.Equal(resp.Payment.ID, got.ID)
	s.Equal(types.PaymentStatusSucceeded, got.PaymentStatus)

	_, err = s.service.GetPayment(s.GetContext(), "pay_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *LeadPaymentServiceSuite) TestListLeadPayments() {
	s.GetGateway().NextChargeStatus = types.GatewayIntentStatusFailed
	s.GetGateway().NextFailureMessage = "Your card was declined."
	_, err := s.purchase()
	s.NoError(err)

	s.GetGateway().NextChargeStatus = types.GatewayIntentStatusSucceeded
	s.GetGateway().NextFailureMessage = ""
	_, err = s.purchase()
	s.NoError(err)

	list, err := s.service.ListLeadPayments(s.GetContext(), s.testData.lead.ID)
	s.NoError(err)
	s.Equal(2, list.Total)

	statuses := lo.Map(list.Items, func(p *dto.PaymentResponse, _ int) types.PaymentStatus {
		return p.PaymentStatus
	})
	s.ElementsMatch([]types.PaymentStatus{types.PaymentStatusFailed, types.PaymentStatusSucceeded}, statuses)
}
