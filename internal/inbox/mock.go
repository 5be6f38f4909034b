package inbox

import (
	"context"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is a mock implementation of Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	InsertBatchFunc func(ctx context.Context, notifications []Notification) error

	InsertBatchCalls [][]Notification
	MarkReadCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertBatchCalls = nil
	m.MarkReadCalls = nil
}

func (m *MockStore) InsertBatch(ctx context.Context, notifications []Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertBatchCalls = append(m.InsertBatchCalls, notifications)
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, notifications)
	}
	return nil
}

func (m *MockStore) ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Notification{}
	for _, batch := range m.InsertBatchCalls {
		for _, n := range batch {
			if n.UserID == userID {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (m *MockStore) MarkRead(ctx context.Context, userID, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkReadCalls = append(m.MarkReadCalls, notificationID)
	return nil
}

// Inserted returns every notification passed to InsertBatch.
func (m *MockStore) Inserted() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Notification
	for _, batch := range m.InsertBatchCalls {
		out = append(out, batch...)
	}
	return out
}
