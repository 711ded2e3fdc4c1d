package bookmark

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/service/activity"
	"github.com/janisto/trail-profiles/internal/service/profile"
)

// MockBookmarkService implements Service in memory for unit tests. Profile
// and activity existence is checked against the given services.
type MockBookmarkService struct {
	mu         sync.RWMutex
	profiles   profile.Service
	activities activity.Service
	favourites map[string][]int64
	trails     map[string][]SavedTrail
}

// NewMockBookmarkService creates an empty mock backed by profiles and
// activities. When profiles supports OnDelete, deleting a profile also drops
// its favourites and saved trails.
func NewMockBookmarkService(profiles profile.Service, activities activity.Service) *MockBookmarkService {
	m := &MockBookmarkService{
		profiles:   profiles,
		activities: activities,
		favourites: make(map[string][]int64),
		trails:     make(map[string][]SavedTrail),
	}
	if hooked, ok := profiles.(interface{ OnDelete(func(string)) }); ok {
		hooked.OnDelete(m.removeProfile)
	}
	return m
}

// removeProfile drops the links of a deleted profile.
func (m *MockBookmarkService) removeProfile(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.favourites, email)
	delete(m.trails, email)
}

func (m *MockBookmarkService) requireProfile(ctx context.Context, email string) error {
	if _, err := m.profiles.Get(ctx, email); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (m *MockBookmarkService) ListActivities(ctx context.Context, email string) ([]activity.Activity, error) {
	email = database.NormalizeEmail(email)
	if err := m.requireProfile(ctx, email); err != nil {
		return nil, err
	}
	all, err := m.activities.List(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []activity.Activity{}
	for _, id := range m.favourites[email] {
		for _, a := range all {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockBookmarkService) AddActivity(ctx context.Context, email string, activityID int64) error {
	email = database.NormalizeEmail(email)
	if err := m.requireProfile(ctx, email); err != nil {
		return err
	}
	all, err := m.activities.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, a := range all {
		if a.ID == activityID {
			found = true
			break
		}
	}
	if !found {
		return ErrActivityNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.favourites[email] {
		if id == activityID {
			return ErrAlreadyExists
		}
	}
	m.favourites[email] = append(m.favourites[email], activityID)
	return nil
}

func (m *MockBookmarkService) ListTrails(ctx context.Context, email string) ([]SavedTrail, error) {
	email = database.NormalizeEmail(email)
	if err := m.requireProfile(ctx, email); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]SavedTrail{}, m.trails[email]...)
	sort.Slice(out, func(i, j int) bool { return out[i].TrailID < out[j].TrailID })
	return out, nil
}

func (m *MockBookmarkService) AddTrail(ctx context.Context, email string, params AddTrailParams) (*SavedTrail, error) {
	email = database.NormalizeEmail(email)
	if err := m.requireProfile(ctx, email); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.trails[email] {
		if t.TrailID == params.TrailID {
			return nil, ErrAlreadyExists
		}
	}
	t := SavedTrail{Email: email, TrailID: params.TrailID, SavedDate: savedDateOrToday(params.SavedDate)}
	m.trails[email] = append(m.trails[email], t)
	return &t, nil
}

// Compile-time interface check
var _ Service = (*MockBookmarkService)(nil)
