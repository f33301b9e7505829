package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/types"
)

// DefaultTaxRate is the VAT percentage applied when none is supplied
var DefaultTaxRate = decimal.NewFromFloat(20.0)

// Invoice represents the invoice domain model. Subtotal, TaxAmount and Total
// are derived from the line items and tax rate and are recomputed on every
// write that touches either; they are never accepted from the caller.
type Invoice struct {
	// ID is the unique identifier for the invoice, generated at creation
	ID string `json:"id"`

	// Number is the sequential FAC-NNNNNN invoice number, assigned exactly
	// once at creation and immutable thereafter
	Number string `json:"numero"`

	// IssueDate is the invoice calendar date, defaults to the day of creation
	IssueDate types.Date `json:"date_creation"`

	// DueDate is the optional payment deadline
	DueDate *types.Date `json:"date_echeance"`

	// ClientID references the client this invoice is billed to
	ClientID string `json:"client_id"`

	// ClientName is a snapshot of the client's display name taken when the
	// client reference was last set; it is not kept in sync with later
	// client edits
	ClientName string `json:"client_nom"`

	// Items is the ordered sequence of line items
	Items []*LineItem `json:"items"`

	// Derived amounts
	Subtotal  decimal.Decimal `json:"sous_total"`
	TaxRate   decimal.Decimal `json:"taux_tva"`
	TaxAmount decimal.Decimal `json:"montant_tva"`
	Total     decimal.Decimal `json:"total"`

	Status types.InvoiceStatus `json:"statut"`
	Notes  *string             `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusAggregate is the per-status slice of the dashboard breakdown
type StatusAggregate struct {
	Status      types.InvoiceStatus `json:"statut"`
	Count       int                 `json:"count"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

// ComputeTotals derives the invoice amounts from its line items and tax rate.
// Each item's total is set to quantity × unit price. No rounding is applied;
// precision flows through to storage.
func ComputeTotals(items []*LineItem, taxRate decimal.Decimal) (subtotal, taxAmount, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		item.Total = item.Quantity.Mul(item.UnitPrice)
		subtotal = subtotal.Add(item.Total)
	}
	taxAmount = subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	total = subtotal.Add(taxAmount)
	return subtotal, taxAmount, total
}
