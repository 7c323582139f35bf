// Package sync contains the per-family synchronization handlers. A handler
// owns a working copy seeded from its store, calls the matching remote
// gateway, and on success commits the reconciled data back into the store;
// on failure the store is left untouched and the gateway's error result is
// surfaced unchanged.
package sync

import (
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// NotificationHandler manages the pending user-facing notifications.
type NotificationHandler struct {
	notifications *store.Store[[]model.Notification]
}

// NewNotificationHandler returns a handler on top of the notification store.
func NewNotificationHandler(notifications *store.Store[[]model.Notification]) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Notifications returns the currently pending notifications.
func (h *NotificationHandler) Notifications() []model.Notification {
	return h.notifications.Get()
}

// Subscribe registers fn to run whenever the notification list changes.
func (h *NotificationHandler) Subscribe(fn func([]model.Notification)) func() {
	return h.notifications.Subscribe(fn)
}

// Add appends a notification of the given severity.
func (h *NotificationHandler) Add(severity model.Severity, message, details string) {
	h.notifications.Update(func(current []model.Notification) []model.Notification {
		next := make([]model.Notification, len(current), len(current)+1)
		copy(next, current)
		return append(next, model.Notification{
			Severity: severity,
			Message:  message,
			Details:  details,
		})
	})
}

// Error appends an error notification.
func (h *NotificationHandler) Error(message, details string) {
	h.Add(model.SeverityError, message, details)
}

// Success appends a success notification.
func (h *NotificationHandler) Success(message string) {
	h.Add(model.SeveritySuccess, message, "")
}

// Remove deletes the first notification equal to n.
func (h *NotificationHandler) Remove(n model.Notification) {
	h.notifications.Update(func(current []model.Notification) []model.Notification {
		for i, existing := range current {
			if existing == n {
				next := make([]model.Notification, 0, len(current)-1)
				next = append(next, current[:i]...)
				return append(next, current[i+1:]...)
			}
		}
		return current
	})
}
