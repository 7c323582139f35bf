package sync

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// SourcesGateway is the slice of the remote API the sources handler needs.
type SourcesGateway interface {
	List(ctx context.Context) api.Result[[]model.Source]
	Create(ctx context.Context, source model.Source) api.Result[model.Source]
	Update(ctx context.Context, source model.Source) api.Result[model.Source]
	Delete(ctx context.Context, id int) api.Result[struct{}]
	ResetCache(ctx context.Context, id int) api.Result[struct{}]
}

// SourcesHandler synchronizes the source collection and the selected-source
// scalar with the server.
type SourcesHandler struct {
	gw       SourcesGateway
	sources  *store.Store[[]model.Source]
	selected *store.Store[model.SelectedSource]
	notify   *NotificationHandler

	mu    sync.Mutex
	local []model.Source
	unsub func()
}

// NewSourcesHandler seeds a handler from the registry. The handler tracks
// store changes made by other handler instances until Close.
func NewSourcesHandler(reg *store.Registry, gw SourcesGateway) *SourcesHandler {
	h := &SourcesHandler{
		gw:       gw,
		sources:  reg.Sources,
		selected: reg.SelectedSource,
		notify:   NewNotificationHandler(reg.Notifications),
		local:    reg.Sources.Get(),
	}
	h.unsub = reg.Sources.Subscribe(func(sources []model.Source) {
		h.mu.Lock()
		h.local = sources
		h.mu.Unlock()
	})
	return h
}

// Close detaches the handler from the store.
func (h *SourcesHandler) Close() {
	h.unsub()
}

// Sources returns the handler's working copy.
func (h *SourcesHandler) Sources() []model.Source {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.local
}

// Subscribe registers fn to run whenever the source collection changes.
func (h *SourcesHandler) Subscribe(fn func([]model.Source)) func() {
	return h.sources.Subscribe(fn)
}

// SourceByID returns the source with the given id from the working copy.
func (h *SourcesHandler) SourceByID(id int) (model.Source, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.local {
		if s.ID != nil && *s.ID == id {
			return s, true
		}
	}
	return model.Source{}, false
}

// SortedSources returns the sources ordered by case-insensitive name.
// The sort is stable, so equal names keep their collection order.
func (h *SourcesHandler) SortedSources() []model.Source {
	h.mu.Lock()
	sorted := make([]model.Source, len(h.local))
	copy(sorted, h.local)
	h.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

// SelectedSource returns the current postings-view selection.
func (h *SourcesHandler) SelectedSource() model.SelectedSource {
	return h.selected.Get()
}

// SetSelectedSource changes the postings-view selection. Purely local; the
// server is not involved.
func (h *SourcesHandler) SetSelectedSource(selected model.SelectedSource) {
	h.selected.Set(selected)
}

// SubscribeSelectedSource registers fn to run whenever the selection changes.
func (h *SourcesHandler) SubscribeSelectedSource(fn func(model.SelectedSource)) func() {
	return h.selected.Subscribe(fn)
}

// Refresh pulls the authoritative source collection from the server and
// commits it. On failure the store keeps its previous value.
func (h *SourcesHandler) Refresh(ctx context.Context) api.Result[[]model.Source] {
	res := h.gw.List(ctx)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.sources.Set(res.Data)
	return res
}

// Create persists a new source and appends the stored record.
func (h *SourcesHandler) Create(ctx context.Context, source model.Source) api.Result[model.Source] {
	res := h.gw.Create(ctx, source)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.sources.Update(func(current []model.Source) []model.Source {
		next := make([]model.Source, len(current), len(current)+1)
		copy(next, current)
		return append(next, res.Data)
	})
	return res
}

// Update replaces a source by id with the record the server returns. All
// other elements are preserved unchanged; the updated source moves to the
// end of the collection.
func (h *SourcesHandler) Update(ctx context.Context, source model.Source) api.Result[model.Source] {
	if source.ID == nil {
		res := api.Errorf[model.Source]("could not update source: not stored yet")
		h.notify.Error(res.Message, "")
		return res
	}
	res := h.gw.Update(ctx, source)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	id := *source.ID
	h.sources.Update(func(current []model.Source) []model.Source {
		next := make([]model.Source, 0, len(current))
		for _, s := range current {
			if s.ID == nil || *s.ID != id {
				next = append(next, s)
			}
		}
		return append(next, res.Data)
	})
	return res
}

// Delete removes a source by id, keeping all other elements in order.
func (h *SourcesHandler) Delete(ctx context.Context, id int) api.Result[struct{}] {
	res := h.gw.Delete(ctx, id)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.sources.Update(func(current []model.Source) []model.Source {
		next := make([]model.Source, 0, len(current))
		for _, s := range current {
			if s.ID == nil || *s.ID != id {
				next = append(next, s)
			}
		}
		return next
	})
	return res
}

// ResetCache drops the content cached server-side for a source. No local
// state is involved.
func (h *SourcesHandler) ResetCache(ctx context.Context, id int) api.Result[struct{}] {
	res := h.gw.ResetCache(ctx, id)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
	}
	return res
}
