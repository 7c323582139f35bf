package sync

import (
	"context"
	"sync"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// FiltersGateway is the slice of the remote API the filters handler needs.
type FiltersGateway interface {
	List(ctx context.Context) api.Result[[]model.Filter]
	Update(ctx context.Context, filters []model.Filter) api.Result[[]model.Filter]
}

// FiltersHandler synchronizes the scraping filters with the server.
type FiltersHandler struct {
	gw      FiltersGateway
	filters *store.Store[[]model.Filter]
	notify  *NotificationHandler

	mu    sync.Mutex
	local []model.Filter
	unsub func()
}

// NewFiltersHandler seeds a handler from the registry.
func NewFiltersHandler(reg *store.Registry, gw FiltersGateway) *FiltersHandler {
	h := &FiltersHandler{
		gw:      gw,
		filters: reg.Filters,
		notify:  NewNotificationHandler(reg.Notifications),
		local:   reg.Filters.Get(),
	}
	h.unsub = reg.Filters.Subscribe(func(filters []model.Filter) {
		h.mu.Lock()
		h.local = filters
		h.mu.Unlock()
	})
	return h
}

// Close detaches the handler from the store.
func (h *FiltersHandler) Close() {
	h.unsub()
}

// Filters returns the handler's working copy.
func (h *FiltersHandler) Filters() []model.Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.local
}

// Subscribe registers fn to run whenever the filter list changes.
func (h *FiltersHandler) Subscribe(fn func([]model.Filter)) func() {
	return h.filters.Subscribe(fn)
}

// Refresh pulls the filter list and commits it.
func (h *FiltersHandler) Refresh(ctx context.Context) api.Result[[]model.Filter] {
	res := h.gw.List(ctx)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.filters.Set(res.Data)
	return res
}

// Update replaces the full filter list with what the server stores.
func (h *FiltersHandler) Update(ctx context.Context, filters []model.Filter) api.Result[[]model.Filter] {
	res := h.gw.Update(ctx, filters)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.filters.Set(res.Data)
	return res
}
