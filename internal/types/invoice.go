package types

import (
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the lifecycle status of an invoice. The set is closed but
// no transition graph is enforced: any status can be set via update.
// The tokens are the wire values and must not change without a data migration.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "brouillon"
	InvoiceStatusSent    InvoiceStatus = "envoyée"
	InvoiceStatusPaid    InvoiceStatus = "payée"
	InvoiceStatusOverdue InvoiceStatus = "en_retard"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Statut de facture invalide").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
