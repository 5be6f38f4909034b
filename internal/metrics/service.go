package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      name,
		Help:      help,
	})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesCreated:            counter("matches_created_total", "The total number of matches created."),
		MatchJoins:                counter("match_joins_total", "The total number of successful joins."),
		JoinConflicts:             counter("match_join_conflicts_total", "Joins rejected because the match was full, cancelled or already joined."),
		MatchLeaves:               counter("match_leaves_total", "The total number of successful leaves."),
		MatchCancels:              counter("match_cancels_total", "The total number of cancelled matches."),
		NotificationsEmitted:      counter("proximity_notifications_total", "Proximity notifications written."),
		NotificationBatchFailures: counter("proximity_batch_failures_total", "Proximity notification batches that failed to write."),
		FanOutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "courtside",
			Name:      "proximity_fanout_duration_seconds",
			Help:      "The duration of one proximity fan-out.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		EventsPublished:      counter("events_published_total", "Lifecycle events handed to the event transport."),
		EventPublishFailures: counter("event_publish_failures_total", "Lifecycle events the transport failed to accept."),
		CourtCacheHits:       counter("court_cache_hits_total", "Court lookups served from the cache."),
		CourtCacheMisses:     counter("court_cache_misses_total", "Court lookups that fell through to the database."),
		SlackNotifSent:       counter("slack_notifications_sent_total", "The total number of Slack notifications successfully sent."),
		SlackNotifFailed:     counter("slack_notifications_failed_total", "The total number of Slack notifications that failed to send."),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "courtside",
			Name:      "startup_duration_seconds",
			Help:      "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.MatchJoins,
		s.JoinConflicts,
		s.MatchLeaves,
		s.MatchCancels,
		s.NotificationsEmitted,
		s.NotificationBatchFailures,
		s.FanOutDuration,
		s.EventsPublished,
		s.EventPublishFailures,
		s.CourtCacheHits,
		s.CourtCacheMisses,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated()            { s.MatchesCreated.Inc() }
func (s *Service) IncMatchJoins()                { s.MatchJoins.Inc() }
func (s *Service) IncJoinConflicts()             { s.JoinConflicts.Inc() }
func (s *Service) IncMatchLeaves()               { s.MatchLeaves.Inc() }
func (s *Service) IncMatchCancels()              { s.MatchCancels.Inc() }
func (s *Service) IncNotificationBatchFailures() { s.NotificationBatchFailures.Inc() }
func (s *Service) IncEventsPublished()           { s.EventsPublished.Inc() }
func (s *Service) IncEventPublishFailures()      { s.EventPublishFailures.Inc() }
func (s *Service) IncCourtCacheHits()            { s.CourtCacheHits.Inc() }
func (s *Service) IncCourtCacheMisses()          { s.CourtCacheMisses.Inc() }
func (s *Service) IncSlackNotifSent()            { s.SlackNotifSent.Inc() }
func (s *Service) IncSlackNotifFailed()          { s.SlackNotifFailed.Inc() }

func (s *Service) IncNotificationsEmitted(n int) {
	s.NotificationsEmitted.Add(float64(n))
}

func (s *Service) ObserveFanOutDuration(seconds float64) {
	s.FanOutDuration.Observe(seconds)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
