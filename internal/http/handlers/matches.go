package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/processor"
)

func CreateMatchHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in match.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		in.CaptainID = UserIDFromContext(r)

		m, err := svc.Create(eventContext(r), in)
		if err != nil {
			writeError(w, err, "Failed to create match")
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

// ListMatchesHandler lists available matches, narrowed by ?q= and ?sport=.
func ListMatchesHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		matches, err := svc.Search(r.Context(), q.Get("q"), q.Get("sport"))
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(matches))
	}
}

func GetMatchHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Get(r.Context(), r.PathValue("matchID"))
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// eventContext carries dry_run to handlers of events the request publishes.
func eventContext(r *http.Request) context.Context {
	return processor.WithDryRun(r.Context(), IsDryRunFromContext(r))
}

type membershipFunc func(ctx context.Context, matchID, userID string) (*match.Match, error)

func membershipHandler(action string, fn membershipFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		m, err := fn(eventContext(r), matchID, UserIDFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to "+action+" match")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func JoinMatchHandler(svc *match.Service) http.HandlerFunc {
	return membershipHandler("join", svc.Join)
}

func LeaveMatchHandler(svc *match.Service) http.HandlerFunc {
	return membershipHandler("leave", svc.Leave)
}

func CancelMatchHandler(svc *match.Service) http.HandlerFunc {
	return membershipHandler("cancel", svc.Cancel)
}

// PaymentStatusHandler records the status reported by the payment provider.
func PaymentStatusHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
			http.Error(w, "status is required", http.StatusBadRequest)
			return
		}
		matchID := r.PathValue("matchID")
		if err := svc.SetPaymentStatus(r.Context(), matchID, body.Status); err != nil {
			writeError(w, err, "Failed to update payment status")
			return
		}
		log.Info("Updated payment status", "matchID", matchID, "status", body.Status)
		w.WriteHeader(http.StatusNoContent)
	}
}

func MyMatchesHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := svc.ListForUser(r.Context(), UserIDFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, http.StatusOK, nonNil(matches))
	}
}

func nonNil(matches []match.Match) []match.Match {
	if matches == nil {
		return []match.Match{}
	}
	return matches
}
