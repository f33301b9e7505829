package client

import (
	"context"

	"github.com/facturio/facturio/internal/types"
)

// Repository defines the interface for client data access
type Repository interface {
	Create(ctx context.Context, client *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	// List returns clients ordered by display name, ascending
	List(ctx context.Context, filter *types.QueryFilter) ([]*Client, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
}
