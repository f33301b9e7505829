package service

import (
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/domain/invoice"
	"github.com/facturio/facturio/internal/logger"
)

// ServiceParams bundles the dependencies shared by all services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	ClientRepo  client.Repository
	InvoiceRepo invoice.Repository
}

// NewServiceParams assembles the common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	clientRepo client.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		ClientRepo:  clientRepo,
		InvoiceRepo: invoiceRepo,
	}
}
