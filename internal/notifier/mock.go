package notifier

import (
	"sync"

	"github.com/mauv0809/courtside/internal/match"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchCreatedFunc   func(m *match.Match, dryRun bool) error
	SendMatchCancelledFunc func(m *match.Match, dryRun bool) error

	// Call records
	SendMatchCreatedCalls   []Call
	SendMatchCancelledCalls []Call
}

// Call holds the arguments of one announcement.
type Call struct {
	Match  *match.Match
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCreatedCalls = nil
	m.SendMatchCancelledCalls = nil
}

func (m *Mock) SendMatchCreated(mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCreatedCalls = append(m.SendMatchCreatedCalls, Call{Match: mt, DryRun: dryRun})
	if m.SendMatchCreatedFunc != nil {
		return m.SendMatchCreatedFunc(mt, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchCancelled(mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCancelledCalls = append(m.SendMatchCancelledCalls, Call{Match: mt, DryRun: dryRun})
	if m.SendMatchCancelledFunc != nil {
		return m.SendMatchCancelledFunc(mt, dryRun)
	}
	return nil
}

// CreatedCalls returns a copy of the recorded SendMatchCreated calls.
func (m *Mock) CreatedCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.SendMatchCreatedCalls...)
}

// CancelledCalls returns a copy of the recorded SendMatchCancelled calls.
func (m *Mock) CancelledCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.SendMatchCancelledCalls...)
}
