package invoice

import (
	"github.com/shopspring/decimal"

	ierr "github.com/facturio/facturio/internal/errors"
)

// LineItem represents a single priced entry on an invoice. Line items have no
// identity of their own; they are owned by their invoice and rewritten as a
// whole on every items update.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prix_unitaire"`
	Total       decimal.Decimal `json:"total"`
}

// Validate validates the invoice line item
func (i *LineItem) Validate() error {
	if i.Quantity.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("La quantité doit être positive").
			Mark(ierr.ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("Le prix unitaire doit être positif").
			Mark(ierr.ErrValidation)
	}
	return nil
}
