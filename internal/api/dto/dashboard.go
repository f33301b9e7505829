package dto

import (
	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/domain/invoice"
)

// DashboardStatsResponse summarizes the ledger state as of query time
type DashboardStatsResponse struct {
	TotalInvoices int `json:"total_invoices"`
	TotalClients  int `json:"total_clients"`

	// TotalRevenue is the sum of totals over paid invoices only
	TotalRevenue decimal.Decimal `json:"total_revenue"`

	StatusBreakdown []*invoice.StatusAggregate `json:"status_breakdown"`
}
