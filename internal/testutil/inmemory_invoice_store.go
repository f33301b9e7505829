package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/domain/invoice"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	items := make([]*invoice.LineItem, len(inv.Items))
	for i, item := range inv.Items {
		itemCopy := *item
		items[i] = &itemCopy
	}

	var dueDate *types.Date
	if inv.DueDate != nil {
		d := *inv.DueDate
		dueDate = &d
	}

	return &invoice.Invoice{
		ID:         inv.ID,
		Number:     inv.Number,
		IssueDate:  inv.IssueDate,
		DueDate:    dueDate,
		ClientID:   inv.ClientID,
		ClientName: inv.ClientName,
		Items:      items,
		Subtotal:   inv.Subtotal,
		TaxRate:    inv.TaxRate,
		TaxAmount:  inv.TaxAmount,
		Total:      inv.Total,
		Status:     inv.Status,
		Notes:      copyPtr(inv.Notes),
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.WithError(err).
			WithHint("Une facture avec cet identifiant existe déjà").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Facture non trouvée").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.QueryFilter) ([]*invoice.Invoice, error) {
	sortFn := func(i, j *invoice.Invoice) bool {
		return i.CreatedAt.After(j.CreatedAt)
	}

	items, err := s.InMemoryStore.List(ctx, filter, nil, sortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}

func (s *InMemoryInvoiceStore) CountByClient(ctx context.Context, clientID string) (int, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.ClientID == clientID
	}
	return s.InMemoryStore.Count(ctx, nil, filterFn)
}

func (s *InMemoryInvoiceStore) LatestNumber(ctx context.Context) (*string, error) {
	invoices, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var latest *string
	for _, inv := range invoices {
		if latest == nil || inv.Number > *latest {
			latest = lo.ToPtr(inv.Number)
		}
	}
	return latest, nil
}

func (s *InMemoryInvoiceStore) StatusBreakdown(ctx context.Context) ([]*invoice.StatusAggregate, error) {
	invoices, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[types.InvoiceStatus]int)
	sums := make(map[types.InvoiceStatus]decimal.Decimal)
	for _, inv := range invoices {
		counts[inv.Status]++
		sums[inv.Status] = sums[inv.Status].Add(inv.Total)
	}

	statuses := lo.Keys(counts)
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	aggregates := make([]*invoice.StatusAggregate, 0, len(statuses))
	for _, status := range statuses {
		aggregates = append(aggregates, &invoice.StatusAggregate{
			Status:      status,
			Count:       counts[status],
			TotalAmount: sums[status],
		})
	}
	return aggregates, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.WithError(err).
			WithHint("Facture non trouvée").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHint("Facture non trouvée").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
