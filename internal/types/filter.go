package types

import (
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/samber/lo"
)

// DefaultListLimit caps unpaginated list queries
const DefaultListLimit = 1000

// BaseFilter is implemented by all list filters
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	IsUnlimited() bool
	Validate() error
}

// QueryFilter represents a generic query filter with optional fields. The
// zero value is a valid filter bounded by the default list cap; unlimited
// queries exist only through NewNoLimitQueryFilter.
type QueryFilter struct {
	Limit  *int `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`

	unlimited bool
}

// NewDefaultQueryFilter returns a filter with the default list cap
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(DefaultListLimit),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter returns a filter with no pagination limits, for
// internal full-table reads only; it is never constructible from a request
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		unlimited: true,
	}
}

// IsUnlimited returns true if this is an unlimited query
func (f QueryFilter) IsUnlimited() bool {
	return f.unlimited
}

// GetLimit returns the limit value or the default cap if not set
func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return DefaultListLimit
	}
	return *f.Limit
}

// GetOffset returns the offset value or 0 if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > DefaultListLimit) {
		return ierr.NewError("invalid limit").
			WithHintf("Le paramètre limit doit être compris entre 1 et %d", DefaultListLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("invalid offset").
			WithHint("Le paramètre offset doit être positif").
			Mark(ierr.ErrValidation)
	}
	return nil
}
