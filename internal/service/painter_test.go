package service

import (
	"testing"

	"github.com/brushlead/brushlead/internal/api/dto"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/interfaces"
	"github.com/brushlead/brushlead/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type PainterServiceSuite struct {
	testutil.BaseServiceTestSuite
	service interfaces.PainterService
}

func TestPainterService(t *testing.T) {
	suite.Run(t, new(PainterServiceSuite))
}

func (s *PainterServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPainterService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *PainterServiceSuite) TestCreateAndGetPainter() {
	resp, err := s.service.CreatePainter(s.GetContext(), &dto.CreatePainterRequest{
		Name:  "Steady Hand Painting",
		Email: "info@steadyhand.test",
		Phone: "555-0104",
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("Steady Hand Painting", resp.Name)

	got, err := s.service.GetPainter(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.ID, got.ID)
	s.Equal("info@steadyhand.test", got.Email)
}

func (s *PainterServiceSuite) TestCreatePainterRejectsDuplicateEmail() {
	_, err := s.service.CreatePainter(s.GetContext(), &dto.CreatePainterRequest{
		Name:  "Steady Hand Painting",
		Email: "info@steadyhand.test",
	})
	s.NoError(err)

	_, err = s.service.CreatePainter(s.GetContext(), &dto.CreatePainterRequest{
		Name:  "Copycat Painting",
		Email: "info@steadyhand.test",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *PainterServiceSuite) TestGetMissingPainter() {
	_, err := s.service.GetPainter(s.GetContext(), "painter_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
