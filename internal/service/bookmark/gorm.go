package bookmark

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/platform/metrics"
	"github.com/janisto/trail-profiles/internal/platform/timeutil"
	"github.com/janisto/trail-profiles/internal/service/activity"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrProfileNotFound):
		return "profile_not_found"
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	default:
		return "internal_error"
	}
}

// GormStore implements Service on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new bookmark store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListActivities(ctx context.Context, email string) ([]activity.Activity, error) {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpListFavourites)
	defer op.Done()

	var records []database.ActivityRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, email); err != nil {
			return err
		}
		return tx.
			Joins("JOIN favourite_activities ON favourite_activities.activity_id = activities.activity_id").
			Where("favourite_activities.email = ?", email).
			Order("activities.activity_id").
			Find(&records).Error
	})
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			err = op.Fail(fmt.Errorf("listing favourites: %w", err))
		}
		return nil, err
	}

	out := make([]activity.Activity, len(records))
	for i, r := range records {
		out[i] = activity.FromRecord(r)
	}
	return out, nil
}

// AddActivity links an existing activity to an existing profile.
func (s *GormStore) AddActivity(ctx context.Context, email string, activityID int64) error {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpAddFavourite)
	defer op.Done()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, email); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&database.ActivityRecord{}).Where("activity_id = ?", activityID).Count(&count).Error; err != nil {
			return op.Fail(err)
		}
		if count == 0 {
			return ErrActivityNotFound
		}
		if err := tx.Model(&database.FavouriteActivityRecord{}).
			Where("email = ? AND activity_id = ?", email, activityID).
			Count(&count).Error; err != nil {
			return op.Fail(err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return insert(tx, op, &database.FavouriteActivityRecord{Email: email, ActivityID: activityID})
	})
	audit(ctx, "add_activity", email, "favourite_activity", strconv.FormatInt(activityID, 10), err)
	return err
}

func (s *GormStore) ListTrails(ctx context.Context, email string) ([]SavedTrail, error) {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpListTrails)
	defer op.Done()

	var records []database.SavedTrailRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, email); err != nil {
			return err
		}
		return tx.Where("email = ?", email).Order("trail_id").Find(&records).Error
	})
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			err = op.Fail(fmt.Errorf("listing saved trails: %w", err))
		}
		return nil, err
	}

	out := make([]SavedTrail, len(records))
	for i := range records {
		out[i] = trailFromRecord(&records[i])
	}
	return out, nil
}

// AddTrail saves a trail for an existing profile. Trail IDs are external and
// are not checked.
func (s *GormStore) AddTrail(ctx context.Context, email string, params AddTrailParams) (*SavedTrail, error) {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpAddTrail)
	defer op.Done()

	rec := database.SavedTrailRecord{
		Email:     email,
		TrailID:   params.TrailID,
		SavedDate: savedDateOrToday(params.SavedDate).Time,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, email); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&database.SavedTrailRecord{}).
			Where("email = ? AND trail_id = ?", email, params.TrailID).
			Count(&count).Error; err != nil {
			return op.Fail(err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return insert(tx, op, &rec)
	})
	audit(ctx, "add_trail", email, "saved_trail", strconv.FormatInt(params.TrailID, 10), err)
	if err != nil {
		return nil, err
	}
	out := trailFromRecord(&rec)
	return &out, nil
}

// insert creates a link row. Key and foreign-key violations from a racing
// writer map to the same errors as the pre-checks.
func insert(tx *gorm.DB, op *database.Op, value any) error {
	err := tx.Create(value).Error
	switch {
	case err == nil:
		return nil
	case database.IsDuplicateKey(err):
		return ErrAlreadyExists
	case database.IsForeignKeyViolation(err):
		return ErrProfileNotFound
	default:
		return op.Fail(err)
	}
}

func requireProfile(tx *gorm.DB, email string) error {
	var count int64
	if err := tx.Model(&database.ProfileRecord{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("checking profile: %w", err)
	}
	if count == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func audit(ctx context.Context, action, email, resourceType, resourceID string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, email, resourceType, resourceID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, email, resourceType, resourceID, applog.AuditSuccess, nil)
}

func trailFromRecord(r *database.SavedTrailRecord) SavedTrail {
	return SavedTrail{
		Email:     r.Email,
		TrailID:   r.TrailID,
		SavedDate: timeutil.NewDate(r.SavedDate),
	}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
