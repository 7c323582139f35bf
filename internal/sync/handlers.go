package sync

import (
	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/store"
)

// Handlers bundles one handler per entity family, all sharing the same
// registry and API client. Convenience wiring for the application root;
// views are free to construct their own handlers instead.
type Handlers struct {
	Sources       *SourcesHandler
	Postings      *PostingsHandler
	Filters       *FiltersHandler
	Settings      *SettingsHandler
	Suggestions   *SuggestionsHandler
	Usage         *UsageHandler
	Notifications *NotificationHandler
}

// NewHandlers wires every handler against the given registry and client.
func NewHandlers(reg *store.Registry, client *api.Client) *Handlers {
	return &Handlers{
		Sources:       NewSourcesHandler(reg, api.NewSourcesAPI(client)),
		Postings:      NewPostingsHandler(reg, api.NewPostingsAPI(client)),
		Filters:       NewFiltersHandler(reg, api.NewFiltersAPI(client)),
		Settings:      NewSettingsHandler(reg, api.NewSettingsAPI(client)),
		Suggestions:   NewSuggestionsHandler(reg, api.NewSuggestionsAPI(client)),
		Usage:         NewUsageHandler(reg, api.NewUsageAPI(client)),
		Notifications: NewNotificationHandler(reg.Notifications),
	}
}

// Close detaches every handler from its store.
func (h *Handlers) Close() {
	h.Sources.Close()
	h.Postings.Close()
	h.Filters.Close()
	h.Settings.Close()
}
