package handlers

import (
	"net/http"
	"strconv"

	"github.com/mauv0809/courtside/internal/inbox"
)

// MyNotificationsHandler lists the caller's inbox, newest first, up to ?limit=.
func MyNotificationsHandler(store inbox.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}
		notifications, err := store.ListForUser(r.Context(), UserIDFromContext(r), limit)
		if err != nil {
			writeError(w, err, "Failed to get notifications")
			return
		}
		if notifications == nil {
			notifications = []inbox.Notification{}
		}
		writeJSON(w, http.StatusOK, notifications)
	}
}

func MarkNotificationReadHandler(store inbox.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.MarkRead(r.Context(), UserIDFromContext(r), r.PathValue("notificationID")); err != nil {
			writeError(w, err, "Failed to mark notification read")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
