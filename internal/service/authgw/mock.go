package authgw

import (
	"context"
	"sync"
)

// Mock implements Gateway for tests. With Err set every call fails with it.
// With Passwords set only listed pairs verify; otherwise every pair does.
type Mock struct {
	Err       error
	Passwords map[string]string

	mu    sync.Mutex
	calls []string
}

// NewMock returns a gateway that verifies every pair.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Authenticate(_ context.Context, email, password string) error {
	m.mu.Lock()
	m.calls = append(m.calls, email)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.Passwords != nil {
		if want, ok := m.Passwords[email]; !ok || want != password {
			return ErrRejected
		}
	}
	return nil
}

// Calls returns the emails checked so far, in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Compile-time interface check
var _ Gateway = (*Mock)(nil)
