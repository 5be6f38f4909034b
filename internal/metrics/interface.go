package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesCreated()
	IncMatchJoins()
	IncJoinConflicts()
	IncMatchLeaves()
	IncMatchCancels()
	IncNotificationsEmitted(n int)
	IncNotificationBatchFailures()
	ObserveFanOutDuration(seconds float64)
	IncEventsPublished()
	IncEventPublishFailures()
	IncCourtCacheHits()
	IncCourtCacheMisses()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
