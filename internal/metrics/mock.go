package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesCreated       int
	matchJoins           int
	joinConflicts        int
	matchLeaves          int
	matchCancels         int
	notificationsEmitted int
	batchFailures        int
	fanOutDurations      []float64
	eventsPublished      int
	eventPublishFailures int
	cacheHits            int
	cacheMisses          int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		fanOutDurations: make([]float64, 0),
	}
}

func (m *Mock) inc(field *int, by int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field += by
}

func (m *Mock) get(field *int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *field
}

func (m *Mock) IncMatchesCreated()            { m.inc(&m.matchesCreated, 1) }
func (m *Mock) IncMatchJoins()                { m.inc(&m.matchJoins, 1) }
func (m *Mock) IncJoinConflicts()             { m.inc(&m.joinConflicts, 1) }
func (m *Mock) IncMatchLeaves()               { m.inc(&m.matchLeaves, 1) }
func (m *Mock) IncMatchCancels()              { m.inc(&m.matchCancels, 1) }
func (m *Mock) IncNotificationsEmitted(n int) { m.inc(&m.notificationsEmitted, n) }
func (m *Mock) IncNotificationBatchFailures() { m.inc(&m.batchFailures, 1) }
func (m *Mock) IncEventsPublished()           { m.inc(&m.eventsPublished, 1) }
func (m *Mock) IncEventPublishFailures()      { m.inc(&m.eventPublishFailures, 1) }
func (m *Mock) IncCourtCacheHits()            { m.inc(&m.cacheHits, 1) }
func (m *Mock) IncCourtCacheMisses()          { m.inc(&m.cacheMisses, 1) }
func (m *Mock) IncSlackNotifSent()            { m.inc(&m.slackNotifSent, 1) }
func (m *Mock) IncSlackNotifFailed()          { m.inc(&m.slackNotifFailed, 1) }

func (m *Mock) ObserveFanOutDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fanOutDurations = append(m.fanOutDurations, seconds)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) MatchesCreated() int       { return m.get(&m.matchesCreated) }
func (m *Mock) MatchJoins() int           { return m.get(&m.matchJoins) }
func (m *Mock) JoinConflicts() int        { return m.get(&m.joinConflicts) }
func (m *Mock) MatchLeaves() int          { return m.get(&m.matchLeaves) }
func (m *Mock) MatchCancels() int         { return m.get(&m.matchCancels) }
func (m *Mock) NotificationsEmitted() int { return m.get(&m.notificationsEmitted) }
func (m *Mock) BatchFailures() int        { return m.get(&m.batchFailures) }
func (m *Mock) EventsPublished() int      { return m.get(&m.eventsPublished) }
func (m *Mock) EventPublishFailures() int { return m.get(&m.eventPublishFailures) }
func (m *Mock) CourtCacheHits() int       { return m.get(&m.cacheHits) }
func (m *Mock) CourtCacheMisses() int     { return m.get(&m.cacheMisses) }

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int { return m.get(&m.slackNotifSent) }

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int { return m.get(&m.slackNotifFailed) }

// FanOutDurations returns a copy of every observed fan-out duration.
func (m *Mock) FanOutDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.fanOutDurations))
	copy(out, m.fanOutDurations)
	return out
}

func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
