package proximity

import (
	"context"
	"sync"

	"github.com/mauv0809/courtside/internal/match"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of Notifier for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	NotifyFunc func(ctx context.Context, m match.Match) (int, error)

	NotifyCalls []match.Match
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = nil
}

func (m *Mock) Notify(ctx context.Context, mt match.Match) (int, error) {
	m.mu.Lock()
	m.NotifyCalls = append(m.NotifyCalls, mt)
	fn := m.NotifyFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, mt)
	}
	return 0, nil
}

// Calls returns a copy of the recorded Notify calls.
func (m *Mock) Calls() []match.Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]match.Match, len(m.NotifyCalls))
	copy(out, m.NotifyCalls)
	return out
}
