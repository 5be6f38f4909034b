package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesCreated            prometheus.Counter
	MatchJoins                prometheus.Counter
	JoinConflicts             prometheus.Counter
	MatchLeaves               prometheus.Counter
	MatchCancels              prometheus.Counter
	NotificationsEmitted      prometheus.Counter
	NotificationBatchFailures prometheus.Counter
	FanOutDuration            prometheus.Histogram
	EventsPublished           prometheus.Counter
	EventPublishFailures      prometheus.Counter
	CourtCacheHits            prometheus.Counter
	CourtCacheMisses          prometheus.Counter
	SlackNotifSent            prometheus.Counter
	SlackNotifFailed          prometheus.Counter
	StartupTimeSeconds        prometheus.Gauge
}
