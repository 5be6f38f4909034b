package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/profile"
)

type profileRequest struct {
	DisplayName          string       `json:"display_name"`
	Location             geo.Location `json:"location"`
	NotificationRadiusKm *float64     `json:"notification_radius_km"`
	// Omitted means enabled, matching a freshly created profile.
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

// UpdateProfileHandler replaces the caller's location and notification
// preferences.
func UpdateProfileHandler(store profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		p := profile.Candidate{
			UserID:               UserIDFromContext(r),
			DisplayName:          req.DisplayName,
			Location:             req.Location,
			NotificationRadiusKm: req.NotificationRadiusKm,
			NotificationsEnabled: req.NotificationsEnabled == nil || *req.NotificationsEnabled,
		}
		if err := p.Validate(); err != nil {
			writeError(w, err, "Invalid profile")
			return
		}
		if err := store.UpsertProfile(r.Context(), p); err != nil {
			writeError(w, err, "Failed to update profile")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
