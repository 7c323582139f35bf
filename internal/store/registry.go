package store

import "github.com/user/scout/internal/model"

// Registry bundles the stores for all entity families plus the two shared
// side-channels (selected source, pending notifications). It is constructed
// once by the application root and injected into every handler; nothing in
// the module reaches for a package-level store.
type Registry struct {
	Sources        *Store[[]model.Source]
	Postings       *Store[[]model.Posting]
	Filters        *Store[[]model.Filter]
	Settings       *Store[model.Settings]
	Suggestions    *Store[[]model.Suggestion]
	SelectedSource *Store[model.SelectedSource]
	Notifications  *Store[[]model.Notification]
}

// NewRegistry builds a registry with empty collections and the "all"
// source selection.
func NewRegistry() *Registry {
	return &Registry{
		Sources:        New[[]model.Source](nil),
		Postings:       New[[]model.Posting](nil),
		Filters:        New[[]model.Filter](nil),
		Settings:       New(model.Settings{}),
		Suggestions:    New[[]model.Suggestion](nil),
		SelectedSource: New(model.SelectAll),
		Notifications:  New[[]model.Notification](nil),
	}
}
