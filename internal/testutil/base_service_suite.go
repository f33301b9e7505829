package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/domain/invoice"
	"github.com/facturio/facturio/internal/logger"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	ClientRepo  client.Repository
	InvoiceRepo invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = logger.L
	s.config = config.GetDefaultConfig()
	s.stores = Stores{
		ClientRepo:  NewInMemoryClientStore(),
		InvoiceRepo: NewInMemoryInvoiceStore(),
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test config
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}
