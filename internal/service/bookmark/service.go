// Package bookmark manages the links between a profile and the activities it
// likes and the trails it has saved.
package bookmark

import (
	"context"
	"errors"

	"github.com/janisto/trail-profiles/internal/platform/timeutil"
	"github.com/janisto/trail-profiles/internal/service/activity"
)

// Service errors.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadyExists    = errors.New("bookmark already exists")
)

// SavedTrail is a profile's bookmark of an external trail.
type SavedTrail struct {
	Email     string
	TrailID   int64
	SavedDate timeutil.Date
}

// AddTrailParams for saving a trail. A zero SavedDate means today (UTC).
type AddTrailParams struct {
	TrailID   int64
	SavedDate timeutil.Date
}

// Service defines favourite-activity and saved-trail operations. Every
// operation fails with ErrProfileNotFound when the profile does not exist.
type Service interface {
	ListActivities(ctx context.Context, email string) ([]activity.Activity, error)
	AddActivity(ctx context.Context, email string, activityID int64) error
	ListTrails(ctx context.Context, email string) ([]SavedTrail, error)
	AddTrail(ctx context.Context, email string, params AddTrailParams) (*SavedTrail, error)
}

func savedDateOrToday(d timeutil.Date) timeutil.Date {
	if d.IsZero() {
		return timeutil.Today()
	}
	return timeutil.NewDate(d.Time)
}
