package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/pricing"
	"github.com/mauv0809/courtside/internal/profile"
	"github.com/mauv0809/courtside/internal/schedule"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
	UserIDKey ContextKey = "userID"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// WithUserID stores the caller identity on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the caller identity set by the identity middleware.
func UserIDFromContext(r *http.Request) string {
	userID, _ := r.Context().Value(UserIDKey).(string)
	return userID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var rejection *schedule.RejectionError
	switch {
	case errors.Is(err, match.ErrNotFound),
		errors.Is(err, match.ErrCourtNotFound),
		errors.Is(err, inbox.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, match.ErrNotCaptain):
		return http.StatusForbidden
	case errors.Is(err, match.ErrCaptainRequired),
		errors.Is(err, match.ErrUserRequired),
		errors.Is(err, profile.ErrUserRequired):
		return http.StatusUnauthorized
	case match.IsConflict(err):
		return http.StatusConflict
	case errors.As(err, &rejection),
		errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, pricing.ErrInvalidDuration),
		errors.Is(err, pricing.ErrInvalidMaxPlayers),
		errors.Is(err, pricing.ErrNegativePrice),
		errors.Is(err, match.ErrInvalidMaxPlayers),
		errors.Is(err, match.ErrCapacityExceeded),
		errors.Is(err, match.ErrCourtInactive),
		errors.Is(err, match.ErrInvalidCriteria),
		errors.Is(err, profile.ErrInvalidLocation),
		errors.Is(err, profile.ErrInvalidRadius):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes it with its mapped status.
func writeError(w http.ResponseWriter, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Debug(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

// pushEnvelope is the body of a Pub/Sub push subscription request.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// decodePush returns the raw payload of a push request.
func decodePush(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return rawData, nil
}
