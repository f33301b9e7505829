package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/api/dto"
	"github.com/facturio/facturio/internal/types"
)

// DashboardService summarizes the stored ledger state. It is read-only and
// holds no state of its own: every call folds over the store as of query
// time, with no caching.
type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalInvoices, err := s.InvoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalClients, err := s.ClientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.InvoiceRepo.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	// Revenue only counts invoices that were actually paid
	revenue := decimal.Zero
	for _, agg := range breakdown {
		if agg.Status == types.InvoiceStatusPaid {
			revenue = revenue.Add(agg.TotalAmount)
		}
	}

	return &dto.DashboardStatsResponse{
		TotalInvoices:   totalInvoices,
		TotalClients:    totalClients,
		TotalRevenue:    revenue,
		StatusBreakdown: breakdown,
	}, nil
}
