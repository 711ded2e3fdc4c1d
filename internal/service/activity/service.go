// Package activity manages the catalogue of activity types that profiles can
// mark as favourites.
package activity

import (
	"context"
	"errors"
)

// Service errors.
var (
	ErrNotFound      = errors.New("activity not found")
	ErrAlreadyExists = errors.New("activity already exists")
	ErrInvalidName   = errors.New("activity name is required")
)

// MaxNameLength bounds the display name.
const MaxNameLength = 30

// Activity is an activity type such as "Hiking".
type Activity struct {
	ID   int64
	Name string
}

// Service defines activity operations.
type Service interface {
	List(ctx context.Context) ([]Activity, error)
	Get(ctx context.Context, id int64) (*Activity, error)
	Create(ctx context.Context, name string) (*Activity, error)
}
