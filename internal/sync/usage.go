package sync

import (
	"context"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// UsageGateway is the slice of the remote API the usage handler needs.
type UsageGateway interface {
	Cost(ctx context.Context, days *int) api.Result[[]model.Usage]
}

// UsageHandler reads the per-source extraction cost. Usage is a read-only
// aggregate; there is nothing to store or mutate.
type UsageHandler struct {
	gw     UsageGateway
	notify *NotificationHandler
}

// NewUsageHandler seeds a handler from the registry.
func NewUsageHandler(reg *store.Registry, gw UsageGateway) *UsageHandler {
	return &UsageHandler{
		gw:     gw,
		notify: NewNotificationHandler(reg.Notifications),
	}
}

// GetUsageCost returns the per-source cost, optionally limited to the last
// `days` days.
func (h *UsageHandler) GetUsageCost(ctx context.Context, days *int) api.Result[[]model.Usage] {
	res := h.gw.Cost(ctx, days)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
	}
	return res
}
