package snapshot

import (
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// Restore seeds the registry's stores from the snapshot database. Families
// with no snapshot yet are left at their zero value. Restore happens before
// any handler subscribes, so no notifications fire.
func Restore(s *Store, reg *store.Registry) error {
	var sources []model.Source
	if ok, err := s.Load(FamilySources, &sources); err != nil {
		return err
	} else if ok {
		reg.Sources.Set(sources)
	}

	var postings []model.Posting
	if ok, err := s.Load(FamilyPostings, &postings); err != nil {
		return err
	} else if ok {
		reg.Postings.Set(postings)
	}

	var filters []model.Filter
	if ok, err := s.Load(FamilyFilters, &filters); err != nil {
		return err
	} else if ok {
		reg.Filters.Set(filters)
	}

	var settings model.Settings
	if ok, err := s.Load(FamilySettings, &settings); err != nil {
		return err
	} else if ok {
		reg.Settings.Set(settings)
	}

	var suggestions []model.Suggestion
	if ok, err := s.Load(FamilySuggestions, &suggestions); err != nil {
		return err
	} else if ok {
		reg.Suggestions.Set(suggestions)
	}

	return nil
}

// Persist subscribes to every entity store and writes each committed value
// to disk. Write errors are swallowed: the snapshot is best-effort and the
// in-memory store stays authoritative. The returned function detaches all
// subscriptions.
func Persist(s *Store, reg *store.Registry) func() {
	unsubs := []func(){
		reg.Sources.Subscribe(func(v []model.Source) { _ = s.Save(FamilySources, v) }),
		reg.Postings.Subscribe(func(v []model.Posting) { _ = s.Save(FamilyPostings, v) }),
		reg.Filters.Subscribe(func(v []model.Filter) { _ = s.Save(FamilyFilters, v) }),
		reg.Settings.Subscribe(func(v model.Settings) { _ = s.Save(FamilySettings, v) }),
		reg.Suggestions.Subscribe(func(v []model.Suggestion) { _ = s.Save(FamilySuggestions, v) }),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
