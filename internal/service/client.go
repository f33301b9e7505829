package service

import (
	"context"

	"github.com/facturio/facturio/internal/api/dto"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/types"
)

// ClientService manages the client directory
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	GetClients(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{
		ServiceParams: params,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created client", "client_id", c.ID)
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if id == "" {
		return nil, ierr.NewError("client ID is required").
			WithHint("L'identifiant du client est requis").
			Mark(ierr.ErrValidation)
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClients(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	clients, err := s.ClientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ClientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = &dto.ClientResponse{Client: c}
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if id == "" {
		return nil, ierr.NewError("client ID is required").
			WithHint("L'identifiant du client est requis").
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

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("client ID is required").
			WithHint("L'identifiant du client est requis").
			Mark(ierr.ErrValidation)
	}

	// Referential integrity: a client referenced by invoices cannot go away.
	// The count and the delete are two separate store round trips; an invoice
	// created in between slips through (no cross-document transactions).
	count, err := s.InvoiceRepo.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewError("client has invoices").
			WithHint("Impossible de supprimer un client avec des factures").
			WithReportableDetails(map[string]any{
				"invoice_count": count,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.ClientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted client", "client_id", id)
	return nil
}
