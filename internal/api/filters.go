package api

import (
	"context"
	"net/http"

	"github.com/user/scout/internal/model"
)

// FiltersAPI makes calls against the filters endpoints.
type FiltersAPI struct {
	c *Client
}

// NewFiltersAPI returns a filters gateway on top of c.
func NewFiltersAPI(c *Client) *FiltersAPI {
	return &FiltersAPI{c: c}
}

// List returns all filters.
func (a *FiltersAPI) List(ctx context.Context) Result[[]model.Filter] {
	filters, err := request[[]model.Filter](ctx, a.c, http.MethodGet, "/filters", nil)
	if err != nil {
		return Errorf[[]model.Filter]("could not get filters: %v", err)
	}
	return Success(filters)
}

// Update replaces the full filter list and returns the stored records.
func (a *FiltersAPI) Update(ctx context.Context, filters []model.Filter) Result[[]model.Filter] {
	stored, err := request[[]model.Filter](ctx, a.c, http.MethodPut, "/filters", filters)
	if err != nil {
		return Errorf[[]model.Filter]("could not update filters: %v", err)
	}
	return Success(stored)
}
