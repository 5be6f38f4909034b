package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/processor"
)

type eventHandler func(ctx context.Context, data []byte) error

func pushHandler(name string, handle eventHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePush(r)
		if err != nil {
			log.Error("Failed to decode push message", "event", name, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := handle(eventContext(r), rawData); err != nil {
			log.Error("Failed to process event", "event", name, "error", err)
			http.Error(w, "Failed to process event", http.StatusBadRequest)
			return
		}
		w.Write([]byte("OK"))
	}
}

func MatchCreatedPushHandler(p *processor.Processor) http.HandlerFunc {
	return pushHandler("match-created", p.HandleMatchCreated)
}

func MatchCancelledPushHandler(p *processor.Processor) http.HandlerFunc {
	return pushHandler("match-cancelled", p.HandleMatchCancelled)
}
