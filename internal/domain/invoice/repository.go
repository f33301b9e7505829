package invoice

import (
	"context"

	"github.com/facturio/facturio/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// List retrieves invoices ordered by creation timestamp, newest first
	List(ctx context.Context, filter *types.QueryFilter) ([]*Invoice, error)

	// Count returns the total number of invoices
	Count(ctx context.Context) (int, error)

	// CountByClient returns the number of invoices referencing a client
	CountByClient(ctx context.Context, clientID string) (int, error)

	// LatestNumber returns the greatest stored invoice number, or nil when
	// no invoice exists
	LatestNumber(ctx context.Context) (*string, error)

	// StatusBreakdown returns per-status invoice counts and total sums
	StatusBreakdown(ctx context.Context) ([]*StatusAggregate, error)

	// Update persists the full invoice document
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice by ID
	Delete(ctx context.Context, id string) error
}
