package sync

import (
	"context"
	"sync"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// SettingsGateway is the slice of the remote API the settings handler needs.
type SettingsGateway interface {
	Get(ctx context.Context) api.Result[model.Settings]
	Update(ctx context.Context, settings model.Settings) api.Result[model.Settings]
	Models(ctx context.Context) api.Result[[]string]
}

// SettingsHandler synchronizes the singleton settings record. Consumers
// always observe a settings value; a missing server record shows up as the
// zero Settings.
type SettingsHandler struct {
	gw       SettingsGateway
	settings *store.Store[model.Settings]
	notify   *NotificationHandler

	mu    sync.Mutex
	local model.Settings
	unsub func()
}

// NewSettingsHandler seeds a handler from the registry.
func NewSettingsHandler(reg *store.Registry, gw SettingsGateway) *SettingsHandler {
	h := &SettingsHandler{
		gw:       gw,
		settings: reg.Settings,
		notify:   NewNotificationHandler(reg.Notifications),
		local:    reg.Settings.Get(),
	}
	h.unsub = reg.Settings.Subscribe(func(settings model.Settings) {
		h.mu.Lock()
		h.local = settings
		h.mu.Unlock()
	})
	return h
}

// Close detaches the handler from the store.
func (h *SettingsHandler) Close() {
	h.unsub()
}

// Settings returns the handler's working copy.
func (h *SettingsHandler) Settings() model.Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.local
}

// Subscribe registers fn to run whenever the settings change.
func (h *SettingsHandler) Subscribe(fn func(model.Settings)) func() {
	return h.settings.Subscribe(fn)
}

// Refresh pulls the settings record and commits it.
func (h *SettingsHandler) Refresh(ctx context.Context) api.Result[model.Settings] {
	res := h.gw.Get(ctx)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.settings.Set(res.Data)
	return res
}

// Update replaces the settings record with what the server stores.
func (h *SettingsHandler) Update(ctx context.Context, settings model.Settings) api.Result[model.Settings] {
	res := h.gw.Update(ctx, settings)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.settings.Set(res.Data)
	return res
}

// Models returns the model identifiers available for extraction. Not held
// in any store.
func (h *SettingsHandler) Models(ctx context.Context) api.Result[[]string] {
	res := h.gw.Models(ctx)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
	}
	return res
}
