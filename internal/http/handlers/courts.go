package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/match"
)

func ListCourtsHandler(store court.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courts, err := store.ListCourts(r.Context())
		if err != nil {
			http.Error(w, "Failed to get courts", http.StatusInternalServerError)
			log.Error("Failed to get courts from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, courts)
	}
}

// SlotsHandler lists free start times for ?date=YYYY-MM-DD.
func SlotsHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courtID := r.PathValue("courtID")
		date := r.URL.Query().Get("date")
		if date == "" {
			http.Error(w, "date is required", http.StatusBadRequest)
			return
		}
		slots, err := svc.ComputeSlots(r.Context(), courtID, date)
		if err != nil {
			writeError(w, err, "Failed to compute slots")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"court_id": courtID,
			"date":     date,
			"slots":    slots,
		})
	}
}

// QuoteHandler prices ?duration=&max_players= on the court.
func QuoteHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		duration, err := strconv.ParseFloat(q.Get("duration"), 64)
		if err != nil {
			http.Error(w, "duration must be a number", http.StatusBadRequest)
			return
		}
		maxPlayers, err := strconv.Atoi(q.Get("max_players"))
		if err != nil {
			http.Error(w, "max_players must be an integer", http.StatusBadRequest)
			return
		}
		quote, err := svc.Quote(r.Context(), r.PathValue("courtID"), duration, maxPlayers)
		if err != nil {
			writeError(w, err, "Failed to quote match")
			return
		}
		writeJSON(w, http.StatusOK, quote)
	}
}
