package testutil

import (
	"context"
	"time"

	"github.com/brushlead/brushlead/internal/config"
	"github.com/brushlead/brushlead/internal/domain/access"
	"github.com/brushlead/brushlead/internal/domain/lead"
	"github.com/brushlead/brushlead/internal/domain/painter"
	"github.com/brushlead/brushlead/internal/domain/payment"
	"github.com/brushlead/brushlead/internal/domain/paymentmethod"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/postgres"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PainterRepo       painter.Repository
	LeadRepo          lead.Repository
	PaymentRepo       payment.Repository
	PaymentMethodRepo paymentmethod.Repository
	AccessRepo        access.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites: an in-memory store per repository, a pass-through transaction
// client, a mock gateway and a capturing notification sink.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	gateway *MockPaymentGateway
	sink    *CaptureSink
	db      postgres.IClient
	logger  *logger.Logger
	config  *config.Configuration
	now     time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = Stores{
		PainterRepo:       NewInMemoryPainterStore(),
		LeadRepo:          NewInMemoryLeadStore(),
		PaymentRepo:       NewInMemoryPaymentStore(),
		PaymentMethodRepo: NewInMemoryPaymentMethodStore(),
		AccessRepo:        NewInMemoryAccessStore(),
	}
	s.gateway = NewMockPaymentGateway()
	s.sink = NewCaptureSink()
	s.db = NewMockPostgresClient(s.logger)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

// ClearStores resets all in-memory stores
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.PainterRepo.(*InMemoryPainterStore).Clear()
	s.stores.LeadRepo.(*InMemoryLeadStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.PaymentMethodRepo.(*InMemoryPaymentMethodStore).Clear()
	s.stores.AccessRepo.(*InMemoryAccessStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetGateway returns the mock payment gateway
func (s *BaseServiceTestSuite) GetGateway() *MockPaymentGateway {
	return s.gateway
}

// GetSink returns the capturing notification sink
func (s *BaseServiceTestSuite) GetSink() *CaptureSink {
	return s.sink
}

// GetDB returns the pass-through transaction client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the time when the current test started
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
