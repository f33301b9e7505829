package repository

import (
	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/domain/invoice"
	"github.com/facturio/facturio/internal/dynamodb"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/repository/dynamo"
)

func NewClientRepository(db *dynamodb.Client, log *logger.Logger) client.Repository {
	return dynamo.NewClientRepository(db, log)
}

func NewInvoiceRepository(db *dynamodb.Client, log *logger.Logger) invoice.Repository {
	return dynamo.NewInvoiceRepository(db, log)
}
