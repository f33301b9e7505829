package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/facturio/facturio/internal/domain/client"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/types"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}

	return &client.Client{
		ID:         c.ID,
		Name:       c.Name,
		Email:      copyPtr(c.Email),
		Phone:      copyPtr(c.Phone),
		Address:    copyPtr(c.Address),
		City:       copyPtr(c.City),
		PostalCode: copyPtr(c.PostalCode),
		Country:    c.Country,
		CreatedAt:  c.CreatedAt,
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	if err := s.InMemoryStore.Create(ctx, c.ID, copyClient(c)); err != nil {
		return ierr.WithError(err).
			WithHint("Un client avec cet identifiant existe déjà").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Client non trouvé").
			Mark(ierr.ErrNotFound)
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.QueryFilter) ([]*client.Client, error) {
	sortFn := func(i, j *client.Client) bool {
		return i.Name < j.Name
	}

	items, err := s.InMemoryStore.List(ctx, filter, nil, sortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c *client.Client, _ int) *client.Client {
		return copyClient(c)
	}), nil
}

func (s *InMemoryClientStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyClient(c)); err != nil {
		return ierr.WithError(err).
			WithHint("Client non trouvé").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHint("Client non trouvé").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
