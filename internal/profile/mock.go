package profile

import (
	"context"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is a mock implementation of Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Candidates []Candidate

	ListNotificationCandidatesFunc func(ctx context.Context) ([]Candidate, error)

	ListNotificationCandidatesCalls int
	UpsertProfileCalls              []Candidate
}

// NewMock creates a new mock instance returning candidates.
func NewMock(candidates ...Candidate) *MockStore {
	return &MockStore{Candidates: candidates}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListNotificationCandidatesCalls = 0
	m.UpsertProfileCalls = nil
}

func (m *MockStore) ListNotificationCandidates(ctx context.Context) ([]Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListNotificationCandidatesCalls++
	if m.ListNotificationCandidatesFunc != nil {
		return m.ListNotificationCandidatesFunc(ctx)
	}
	var out []Candidate
	for _, c := range m.Candidates {
		if c.NotificationRadiusKm != nil && *c.NotificationRadiusKm > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockStore) UpsertProfile(ctx context.Context, c Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertProfileCalls = append(m.UpsertProfileCalls, c)
	m.Candidates = append(m.Candidates, c)
	return nil
}
