package court

import (
	"context"
	"fmt"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Courts map[string]*Court

	GetCourtFunc func(ctx context.Context, courtID string) (*Court, error)

	GetCourtCalls    []string
	UpsertCourtCalls []*Court
}

// NewMock creates a new mock instance.
func NewMock(courts ...*Court) *MockStore {
	m := &MockStore{Courts: map[string]*Court{}}
	for _, c := range courts {
		m.Courts[c.ID] = c
	}
	return m
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCourtCalls = nil
	m.UpsertCourtCalls = nil
}

func (m *MockStore) GetCourt(ctx context.Context, courtID string) (*Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCourtCalls = append(m.GetCourtCalls, courtID)
	if m.GetCourtFunc != nil {
		return m.GetCourtFunc(ctx, courtID)
	}
	c, ok := m.Courts[courtID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, courtID)
	}
	clone := *c
	return &clone, nil
}

func (m *MockStore) ListCourts(ctx context.Context) ([]Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Court, 0, len(m.Courts))
	for _, c := range m.Courts {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockStore) UpsertCourt(ctx context.Context, c *Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCourtCalls = append(m.UpsertCourtCalls, c)
	clone := *c
	m.Courts[c.ID] = &clone
	return nil
}
