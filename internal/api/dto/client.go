package dto

import (
	"context"
	"time"

	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/types"
	"github.com/facturio/facturio/internal/validator"
)

type CreateClientRequest struct {
	Name       string  `json:"nom" validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"telephone" validate:"omitempty,max=30"`
	Address    *string `json:"adresse" validate:"omitempty,max=255"`
	City       *string `json:"ville" validate:"omitempty,max=100"`
	PostalCode *string `json:"code_postal" validate:"omitempty,max=20"`
	Country    *string `json:"pays" validate:"omitempty,max=100"`
}

type UpdateClientRequest struct {
	Name       *string `json:"nom" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"telephone" validate:"omitempty,max=30"`
	Address    *string `json:"adresse" validate:"omitempty,max=255"`
	City       *string `json:"ville" validate:"omitempty,max=100"`
	PostalCode *string `json:"code_postal" validate:"omitempty,max=20"`
	Country    *string `json:"pays" validate:"omitempty,max=100"`
}

type ClientResponse struct {
	*client.Client
}

// ListClientsResponse represents the response for listing clients
type ListClientsResponse = types.ListResponse[*ClientResponse]

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	country := client.DefaultCountry
	if r.Country != nil && *r.Country != "" {
		country = *r.Country
	}
	return &client.Client{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Country:    country,
		CreatedAt:  time.Now().UTC(),
	}
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// HasUpdates reports whether at least one field was supplied
func (r *UpdateClientRequest) HasUpdates() bool {
	return r.Name != nil ||
		r.Email != nil ||
		r.Phone != nil ||
		r.Address != nil ||
		r.City != nil ||
		r.PostalCode != nil ||
		r.Country != nil
}

// Apply merges the supplied fields onto the client; absent fields are left
// untouched
func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.City != nil {
		c.City = r.City
	}
	if r.PostalCode != nil {
		c.PostalCode = r.PostalCode
	}
	if r.Country != nil {
		c.Country = *r.Country
	}
}
