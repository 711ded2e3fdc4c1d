package activity

import (
	"context"
	"strings"
	"sync"
)

// MockActivityService implements Service in memory for unit tests.
type MockActivityService struct {
	mu         sync.RWMutex
	activities []Activity
	nextID     int64
}

// NewMockActivityService creates an empty mock. IDs start at 1.
func NewMockActivityService() *MockActivityService {
	return &MockActivityService{nextID: 1}
}

func (m *MockActivityService) List(_ context.Context) ([]Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Activity{}, m.activities...), nil
}

func (m *MockActivityService) Get(_ context.Context, id int64) (*Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.activities {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockActivityService) Create(_ context.Context, name string) (*Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.activities {
		if a.Name == name {
			return nil, ErrAlreadyExists
		}
	}
	a := Activity{ID: m.nextID, Name: name}
	m.nextID++
	m.activities = append(m.activities, a)
	return &a, nil
}

// Compile-time interface check
var _ Service = (*MockActivityService)(nil)
