package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/profile"
)

func NewServer(matches *match.Service, courts court.Store, box inbox.Store, profiles profile.Store, proc *processor.Processor, db handlers.Pinger, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Matches:        matches,
		Courts:         courts,
		Inbox:          box,
		Profiles:       profiles,
		Processor:      proc,
		DB:             db,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Routes acting on behalf of a user also require identityMiddleware.
	// Payment callbacks authenticate with a shared secret instead.
	public := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware) }
	user := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware, identityMiddleware) }
	webhook := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware, webhookMiddleware(s.Cfg.PaymentWebhookSecret)) }

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", public(handlers.HealthCheckHandler(s.DB)))

	s.Router.Handle("GET /courts", public(handlers.ListCourtsHandler(s.Courts)))
	s.Router.Handle("GET /courts/{courtID}/slots", public(handlers.SlotsHandler(s.Matches)))
	s.Router.Handle("GET /courts/{courtID}/quote", public(handlers.QuoteHandler(s.Matches)))

	s.Router.Handle("GET /matches", public(handlers.ListMatchesHandler(s.Matches)))
	s.Router.Handle("GET /matches/{matchID}", public(handlers.GetMatchHandler(s.Matches)))
	s.Router.Handle("GET /matches/{matchID}/similar", public(handlers.SimilarMatchesHandler(s.Matches)))
	s.Router.Handle("POST /matches", user(handlers.CreateMatchHandler(s.Matches)))
	s.Router.Handle("POST /matches/{matchID}/join", user(handlers.JoinMatchHandler(s.Matches)))
	s.Router.Handle("POST /matches/{matchID}/leave", user(handlers.LeaveMatchHandler(s.Matches)))
	s.Router.Handle("POST /matches/{matchID}/cancel", user(handlers.CancelMatchHandler(s.Matches)))
	s.Router.Handle("PUT /matches/{matchID}/payment-status", webhook(handlers.PaymentStatusHandler(s.Matches)))

	s.Router.Handle("GET /me/matches", user(handlers.MyMatchesHandler(s.Matches)))
	s.Router.Handle("GET /me/recommendations", user(handlers.RecommendationsHandler(s.Matches)))
	s.Router.Handle("PUT /me/profile", user(handlers.UpdateProfileHandler(s.Profiles)))
	s.Router.Handle("GET /me/notifications", user(handlers.MyNotificationsHandler(s.Inbox)))
	s.Router.Handle("POST /me/notifications/{notificationID}/read", user(handlers.MarkNotificationReadHandler(s.Inbox)))

	s.Router.Handle("POST /pubsub/match-created", public(handlers.MatchCreatedPushHandler(s.Processor)))
	s.Router.Handle("POST /pubsub/match-cancelled", public(handlers.MatchCancelledPushHandler(s.Processor)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
