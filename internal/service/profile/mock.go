package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/service/authgw"
)

// MockProfileService implements Service in memory for unit tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	gateway  authgw.Gateway
	onDelete []func(email string)
}

// NewMockProfileService creates a mock that verifies credentials through
// gateway. A nil gateway verifies everything.
func NewMockProfileService(gateway authgw.Gateway) *MockProfileService {
	if gateway == nil {
		gateway = authgw.NewMock()
	}
	return &MockProfileService{
		profiles: make(map[string]*Profile),
		gateway:  gateway,
	}
}

func (m *MockProfileService) List(_ context.Context) ([]Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *MockProfileService) Create(ctx context.Context, params CreateParams) (*Profile, error) {
	if err := m.gateway.Authenticate(ctx, strings.TrimSpace(params.Email), params.Password); err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := database.NormalizeEmail(params.Email)
	if _, exists := m.profiles[email]; exists {
		return nil, ErrAlreadyExists
	}
	p := newProfile(email, params)
	m.profiles[email] = &p
	out := p
	return &out, nil
}

func (m *MockProfileService) Get(_ context.Context, email string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[database.NormalizeEmail(email)]
	if !exists {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *MockProfileService) Update(_ context.Context, email string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[database.NormalizeEmail(email)]
	if !exists {
		return nil, ErrNotFound
	}
	applyUpdate(p, params)
	if p.Role == "" {
		p.Role = defaultRole
	}
	out := *p
	return &out, nil
}

// OnDelete registers fn to run after a profile is deleted, so dependent mocks
// can drop rows the database would remove with it.
func (m *MockProfileService) OnDelete(fn func(email string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDelete = append(m.onDelete, fn)
}

func (m *MockProfileService) Delete(_ context.Context, email string) error {
	email = database.NormalizeEmail(email)

	m.mu.Lock()
	if _, exists := m.profiles[email]; !exists {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.profiles, email)
	hooks := append([]func(string){}, m.onDelete...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(email)
	}
	return nil
}

// Clear removes all profiles (useful for test cleanup).
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
