package service

import (
	"context"
	"time"

	"github.com/facturio/facturio/internal/api/dto"
	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/domain/invoice"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/types"
)

// InvoiceService owns the invoice lifecycle: numbering, totals and the
// denormalized client-name snapshot
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	GetInvoices(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An invoice against a client that does not exist is rejected outright
	// rather than stored with a placeholder name.
	cl, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	// Latest-number read and the create below are not one atomic step; see
	// invoice.NextNumber.
	last, err := s.InvoiceRepo.LatestNumber(ctx)
	if err != nil {
		return nil, err
	}
	number := invoice.NextNumber(last)

	items := req.ToLineItems()
	taxRate := req.GetTaxRate()
	subtotal, taxAmount, total := invoice.ComputeTotals(items, taxRate)

	now := time.Now().UTC()
	inv := &invoice.Invoice{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		Number:     number,
		IssueDate:  types.Today(),
		DueDate:    req.DueDate,
		ClientID:   cl.ID,
		ClientName: cl.Name,
		Items:      items,
		Subtotal:   subtotal,
		TaxRate:    taxRate,
		TaxAmount:  taxAmount,
		Total:      total,
		Status:     types.InvoiceStatusDraft,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"numero", inv.Number,
		"client_id", inv.ClientID,
	)
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("L'identifiant de la facture est requis").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = &dto.InvoiceResponse{Invoice: inv}
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("L'identifiant de la facture est requis").
			Mark(ierr.ErrValidation)
	}

	if !req.HasUpdates() {
		return nil, ierr.NewError("empty update payload").
			WithHint("Aucune donnée à mettre à jour").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reassigning the client refreshes the denormalized name snapshot
	if req.ClientID != nil {
		cl, err := s.resolveClient(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		inv.ClientID = cl.ID
		inv.ClientName = cl.Name
	}

	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.Status != nil {
		inv.Status = *req.Status
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	if req.TaxRate != nil {
		inv.TaxRate = *req.TaxRate
	}
	if req.Items != nil {
		inv.Items = req.ToLineItems()
	}

	// Any change to items or tax rate invalidates the derived amounts. When
	// only items are supplied the previously stored tax rate is used.
	if req.Items != nil || req.TaxRate != nil {
		inv.Subtotal, inv.TaxAmount, inv.Total = invoice.ComputeTotals(inv.Items, inv.TaxRate)
	}

	inv.UpdatedAt = time.Now().UTC()

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("invoice ID is required").
			WithHint("L'identifiant de la facture est requis").
			Mark(ierr.ErrValidation)
	}

	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted invoice", "invoice_id", id)
	return nil
}

// resolveClient maps a missing client onto a validation error: a dangling
// client reference is a caller mistake, not a lookup miss on the invoice.
func (s *invoiceService) resolveClient(ctx context.Context, clientID string) (*client.Client, error) {
	cl, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Client inconnu").
				WithReportableDetails(map[string]any{
					"client_id": clientID,
				}).
				Mark(ierr.ErrValidation)
		}
		return nil, err
	}
	return cl, nil
}
