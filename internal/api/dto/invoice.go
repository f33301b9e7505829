package dto

import (
	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/domain/invoice"
	"github.com/facturio/facturio/internal/types"
	"github.com/facturio/facturio/internal/validator"
)

// LineItemRequest carries one priced entry; the total is always recomputed
// server-side and never accepted from the caller
type LineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prix_unitaire"`
}

type CreateInvoiceRequest struct {
	ClientID string            `json:"client_id" validate:"required"`
	DueDate  *types.Date       `json:"date_echeance"`
	Items    []LineItemRequest `json:"items" validate:"omitempty,dive"`
	TaxRate  *decimal.Decimal  `json:"taux_tva"`
	Notes    *string           `json:"notes"`
}

type UpdateInvoiceRequest struct {
	ClientID *string              `json:"client_id" validate:"omitempty,min=1"`
	DueDate  *types.Date          `json:"date_echeance"`
	Items    []LineItemRequest    `json:"items" validate:"omitempty,dive"`
	TaxRate  *decimal.Decimal     `json:"taux_tva"`
	Status   *types.InvoiceStatus `json:"statut"`
	Notes    *string              `json:"notes"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, item := range r.ToLineItems() {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetTaxRate returns the supplied tax rate or the default when absent
func (r *CreateInvoiceRequest) GetTaxRate() decimal.Decimal {
	if r.TaxRate == nil {
		return invoice.DefaultTaxRate
	}
	return *r.TaxRate
}

func (r *CreateInvoiceRequest) ToLineItems() []*invoice.LineItem {
	return toLineItems(r.Items)
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	for _, item := range r.ToLineItems() {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether at least one field was supplied
func (r *UpdateInvoiceRequest) HasUpdates() bool {
	return r.ClientID != nil ||
		r.DueDate != nil ||
		r.Items != nil ||
		r.TaxRate != nil ||
		r.Status != nil ||
		r.Notes != nil
}

func (r *UpdateInvoiceRequest) ToLineItems() []*invoice.LineItem {
	return toLineItems(r.Items)
}

func toLineItems(reqs []LineItemRequest) []*invoice.LineItem {
	items := make([]*invoice.LineItem, len(reqs))
	for i, req := range reqs {
		items[i] = &invoice.LineItem{
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
		}
	}
	return items
}
