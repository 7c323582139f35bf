package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user/scout/internal/model"
)

// SourcesAPI makes calls against the sources endpoints.
type SourcesAPI struct {
	c *Client
}

// NewSourcesAPI returns a sources gateway on top of c.
func NewSourcesAPI(c *Client) *SourcesAPI {
	return &SourcesAPI{c: c}
}

// List returns all sources.
func (a *SourcesAPI) List(ctx context.Context) Result[[]model.Source] {
	sources, err := request[[]model.Source](ctx, a.c, http.MethodGet, "/sources", nil)
	if err != nil {
		return Errorf[[]model.Source]("could not get sources: %v", err)
	}
	return Success(sources)
}

// Create persists a new source and returns the stored record.
func (a *SourcesAPI) Create(ctx context.Context, source model.Source) Result[model.Source] {
	stored, err := request[model.Source](ctx, a.c, http.MethodPost, "/sources", source)
	if err != nil {
		return Errorf[model.Source]("cannot add source: %v", err)
	}
	return Success(stored)
}

// Update replaces an existing source and returns the stored record.
func (a *SourcesAPI) Update(ctx context.Context, source model.Source) Result[model.Source] {
	if source.ID == nil {
		return Errorf[model.Source]("could not update source: missing id")
	}
	stored, err := request[model.Source](ctx, a.c, http.MethodPut, fmt.Sprintf("/sources/%d", *source.ID), source)
	if err != nil {
		return Errorf[model.Source]("could not update source: %v", err)
	}
	return Success(stored)
}

// Delete removes a source by id.
func (a *SourcesAPI) Delete(ctx context.Context, id int) Result[struct{}] {
	_, err := request[struct{}](ctx, a.c, http.MethodDelete, fmt.Sprintf("/sources/%d", id), nil)
	if err != nil {
		return Errorf[struct{}]("could not delete source: %v", err)
	}
	return Success(struct{}{})
}

// ResetCache removes the content cached server-side for a source.
func (a *SourcesAPI) ResetCache(ctx context.Context, id int) Result[struct{}] {
	_, err := request[struct{}](ctx, a.c, http.MethodPut, fmt.Sprintf("/sources/%d/reset", id), nil)
	if err != nil {
		return Errorf[struct{}]("could not reset source cache: %v", err)
	}
	return Success(struct{}{})
}
