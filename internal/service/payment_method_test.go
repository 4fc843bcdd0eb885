package service

import (
	"testing"

	"github.com/brushlead/brushlead/internal/api/dto"
	"github.com/brushlead/brushlead/internal/domain/painter"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/testutil"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type PaymentMethodServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  interfaces.PaymentMethodService
	testData struct {
		painter *painter.Painter
	}
}

func TestPaymentMethodService(t *testing.T) {
	suite.Run(t, new(PaymentMethodServiceSuite))
}

func (s *PaymentMethodServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentMethodService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.testData.painter = &painter.Painter{
		ID:        "painter_test_methods",
		Name:      "Prime Time Painters",
		Email:     "hello@primetime.test",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), s.testData.painter))
}

func (s *PaymentMethodServiceSuite) save(gatewayID string, setDefault bool) *dto.PaymentMethodResponse {
	resp, err := s.service.SavePaymentMethod(s.GetContext(), &dto.SavePaymentMethodRequest{
		PainterID:              s.testData.painter.ID,
		GatewayPaymentMethodID: gatewayID,
		SetDefault:             setDefault,
	})
	s.NoError(err)
	return resp
}

func (s *PaymentMethodServiceSuite) TestFirstSavedMethodBecomesDefault() {
	resp := s.save("pm_card_first", false)
	s.True(resp.IsDefault)
	s.Equal("visa", resp.Brand)
	s.Equal("4242", resp.Last4)

	// The gateway customer was created lazily and recorded on the painter.
	p, err := s.GetStores().PainterRepo.Get(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.NotNil(p.GatewayCustomerID)
	s.NotEmpty(*p.GatewayCustomerID)

	s.Len(s.GetSink().MethodsAdded, 1)
	s.Equal("4242", s.GetSink().MethodsAdded[0].Last4)
}

func (s *PaymentMethodServiceSuite) TestSecondMethodIsNotDefault() {
	first := s.save("pm_card_first", false)
	second := s.save("pm_card_second", false)
	s.False(second.IsDefault)

	pm, err := s.GetStores().PaymentMethodRepo.GetDefault(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.Equal(first.ID, pm.ID)
}

func (s *PaymentMethodServiceSuite) TestSetDefaultSwitchesSingleDefault() {
	first := s.save("pm_card_first", false)
	second := s.save("pm_card_second", true)
	s.True(second.IsDefault)

	list, err := s.service.ListPaymentMethods(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.Equal(2, list.Total)

	defaults := lo.Filter(list.Items, func(pm *dto.PaymentMethodResponse, _ int) bool {
		return pm.IsDefault
	})
	s.Len(defaults, 1)
	s.Equal(second.ID, defaults[0].ID)

	s.NoError(s.service.SetDefaultPaymentMethod(s.GetContext(), s.testData.painter.ID, first.ID))
	pm, err := s.GetStores().PaymentMethodRepo.GetDefault(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.Equal(first.ID, pm.ID)
}

func (s *PaymentMethodServiceSuite) TestSetDefaultRejectsForeignMethod() {
	first := s.save("pm_card_first", false)

	other := &painter.Painter{
		ID:        "painter_test_methods_other",
		Name:      "Other Crew",
		Email:     "other@crew.test",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), other))

	err := s.service.SetDefaultPaymentMethod(s.GetContext(), other.ID, first.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentMethodServiceSuite) TestRemoveDetachesAndSoftDeletes() {
	first := s.save("pm_card_first", false)

	s.NoError(s.service.RemovePaymentMethod(s.GetContext(), s.testData.painter.ID, first.ID))

	s.Contains(s.GetGateway().Detached, "pm_card_first")

	list, err := s.service.ListPaymentMethods(s.GetContext(), s.testData.painter.ID)
	s.NoError(err)
	s.Equal(0, list.Total)

	s.Len(s.GetSink().MethodsRemoved, 1)
	s.Equal("4242", s.GetSink().MethodsRemoved[0].Last4)
}

func (s *PaymentMethodServiceSuite) TestRemoveRejectsForeignMethod() {
	first := s.save("pm_card_first", false)

	other := &painter.Painter{
		ID:        "painter_test_methods_other",
		Name:      "Other Crew",
		Email:     "other@crew.test",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().PainterRepo.Create(s.GetContext(), other))

	err := s.service.RemovePaymentMethod(s.GetContext(), other.ID, first.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
	s.Empty(s.GetGateway().Detached)
}
