package sync

import (
	"context"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// SuggestionsGateway is the slice of the remote API the suggestions handler
// needs.
type SuggestionsGateway interface {
	List(ctx context.Context) api.Result[[]model.Suggestion]
	ForSource(ctx context.Context, sourceID int) api.Result[[]model.Suggestion]
	Refresh(ctx context.Context, sourceID int) api.Result[[]model.Suggestion]
}

// SuggestionsHandler fetches candidate sources. The store always holds the
// most recently fetched suggestion set, whichever operation produced it.
type SuggestionsHandler struct {
	gw          SuggestionsGateway
	suggestions *store.Store[[]model.Suggestion]
	notify      *NotificationHandler
}

// NewSuggestionsHandler seeds a handler from the registry.
func NewSuggestionsHandler(reg *store.Registry, gw SuggestionsGateway) *SuggestionsHandler {
	return &SuggestionsHandler{
		gw:          gw,
		suggestions: reg.Suggestions,
		notify:      NewNotificationHandler(reg.Notifications),
	}
}

// Suggestions returns the last committed suggestion set.
func (h *SuggestionsHandler) Suggestions() []model.Suggestion {
	return h.suggestions.Get()
}

// Subscribe registers fn to run whenever the suggestion set changes.
func (h *SuggestionsHandler) Subscribe(fn func([]model.Suggestion)) func() {
	return h.suggestions.Subscribe(fn)
}

// GetSuggestions fetches all suggestions and commits them.
func (h *SuggestionsHandler) GetSuggestions(ctx context.Context) api.Result[[]model.Suggestion] {
	return h.commit(h.gw.List(ctx))
}

// GetSourceSuggestions fetches the suggestions similar to one source and
// commits them.
func (h *SuggestionsHandler) GetSourceSuggestions(ctx context.Context, sourceID int) api.Result[[]model.Suggestion] {
	return h.commit(h.gw.ForSource(ctx, sourceID))
}

// RefreshSourceSuggestions recomputes and commits the suggestions for one
// source.
func (h *SuggestionsHandler) RefreshSourceSuggestions(ctx context.Context, sourceID int) api.Result[[]model.Suggestion] {
	return h.commit(h.gw.Refresh(ctx, sourceID))
}

func (h *SuggestionsHandler) commit(res api.Result[[]model.Suggestion]) api.Result[[]model.Suggestion] {
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.suggestions.Set(res.Data)
	return res
}
