package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user/scout/internal/model"
)

// SuggestionsAPI makes calls against the suggestions endpoints.
type SuggestionsAPI struct {
	c *Client
}

// NewSuggestionsAPI returns a suggestions gateway on top of c.
func NewSuggestionsAPI(c *Client) *SuggestionsAPI {
	return &SuggestionsAPI{c: c}
}

// List returns all suggestions.
func (a *SuggestionsAPI) List(ctx context.Context) Result[[]model.Suggestion] {
	suggestions, err := request[[]model.Suggestion](ctx, a.c, http.MethodGet, "/suggestions", nil)
	if err != nil {
		return Errorf[[]model.Suggestion]("could not get suggestions: %v", err)
	}
	return Success(suggestions)
}

// ForSource returns suggestions similar to a specific source.
func (a *SuggestionsAPI) ForSource(ctx context.Context, sourceID int) Result[[]model.Suggestion] {
	suggestions, err := request[[]model.Suggestion](ctx, a.c, http.MethodGet, fmt.Sprintf("/sources/%d/suggestions", sourceID), nil)
	if err != nil {
		return Errorf[[]model.Suggestion]("could not get suggestions for source: %v", err)
	}
	return Success(suggestions)
}

// Refresh recomputes the suggestions for a specific source.
func (a *SuggestionsAPI) Refresh(ctx context.Context, sourceID int) Result[[]model.Suggestion] {
	suggestions, err := request[[]model.Suggestion](ctx, a.c, http.MethodPut, fmt.Sprintf("/sources/%d/suggestions/refresh", sourceID), nil)
	if err != nil {
		return Errorf[[]model.Suggestion]("could not refresh suggestions for source: %v", err)
	}
	return Success(suggestions)
}
