package handler

import (
	"net/http"

	"chatrelay/internal/httputil"
	"chatrelay/internal/notify"
)

// NotificationHandler exposes the active transient notifications.
type NotificationHandler struct {
	notifier *notify.Notifier
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(notifier *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// List returns notifications that have not yet expired.
// GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	active := h.notifier.Active()
	if active == nil {
		active = []notify.Notification{}
	}
	httputil.RespondJSON(w, http.StatusOK, active)
}
