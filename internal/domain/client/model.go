package client

import (
	"time"
)

// DefaultCountry is applied when a client is created without a country
const DefaultCountry = "France"

// Client represents a billable client in the directory.
// JSON tags are the wire contract of the public API.
type Client struct {
	// ID is the unique identifier for the client, generated at creation
	ID string `json:"id"`

	// Name is the display name of the client
	Name string `json:"nom"`

	// Optional contact fields
	Email      *string `json:"email"`
	Phone      *string `json:"telephone"`
	Address    *string `json:"adresse"`
	City       *string `json:"ville"`
	PostalCode *string `json:"code_postal"`

	// Country defaults to DefaultCountry when unspecified
	Country string `json:"pays"`

	// CreatedAt is set once at creation and never changes
	CreatedAt time.Time `json:"created_at"`
}
