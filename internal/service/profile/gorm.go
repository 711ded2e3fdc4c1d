package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/platform/metrics"
	"github.com/janisto/trail-profiles/internal/platform/timeutil"
	"github.com/janisto/trail-profiles/internal/service/authgw"
)

const (
	resourceType = "profile"
	defaultRole  = database.DefaultRole
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, authgw.ErrRejected):
		return "auth_rejected"
	case errors.Is(err, authgw.ErrUnavailable):
		return "auth_unavailable"
	default:
		return "internal_error"
	}
}

func audit(ctx context.Context, action, email string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, email, resourceType, email, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, email, resourceType, email, applog.AuditSuccess, nil)
}

// GormStore implements Service on a relational database. Each call runs its
// checks and write in one transaction.
type GormStore struct {
	db      *gorm.DB
	gateway authgw.Gateway
}

// NewGormStore creates a store that verifies new profiles through gateway.
func NewGormStore(db *gorm.DB, gateway authgw.Gateway) *GormStore {
	return &GormStore{db: db, gateway: gateway}
}

func (s *GormStore) List(ctx context.Context) ([]Profile, error) {
	op := database.Track(metrics.DBOpListProfiles)
	defer op.Done()

	var records []database.ProfileRecord
	if err := s.db.WithContext(ctx).Order("email").Find(&records).Error; err != nil {
		return nil, op.Fail(fmt.Errorf("listing profiles: %w", err))
	}
	profiles := make([]Profile, len(records))
	for i := range records {
		profiles[i] = fromRecord(&records[i])
	}
	return profiles, nil
}

// Create verifies the credentials before touching storage, so a rejected or
// unavailable gateway never leaves a row behind.
func (s *GormStore) Create(ctx context.Context, params CreateParams) (*Profile, error) {
	email := database.NormalizeEmail(params.Email)

	if err := s.gateway.Authenticate(ctx, strings.TrimSpace(params.Email), params.Password); err != nil {
		audit(ctx, "create", email, err)
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}

	op := database.Track(metrics.DBOpCreateProfile)
	defer op.Done()

	p := newProfile(email, params)
	rec := toRecord(p)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.ProfileRecord{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return op.Fail(err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		if err := tx.Create(&rec).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return op.Fail(err)
		}
		return nil
	})
	audit(ctx, "create", email, err)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Get(ctx context.Context, email string) (*Profile, error) {
	op := database.Track(metrics.DBOpGetProfile)
	defer op.Done()

	rec, err := findProfile(s.db.WithContext(ctx), database.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			_ = op.Fail(err)
		}
		return nil, err
	}
	p := fromRecord(rec)
	return &p, nil
}

// Update merges the provided fields into the stored row with an upsert.
func (s *GormStore) Update(ctx context.Context, email string, params UpdateParams) (*Profile, error) {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpUpdateProfile)
	defer op.Done()

	var result Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findProfile(tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), email)
		if err != nil {
			return err
		}
		result = fromRecord(rec)
		applyUpdate(&result, params)
		if result.Role == "" {
			result.Role = defaultRole
		}

		// The row is locked, so an update never recreates a deleted profile.
		merged := toRecord(result)
		res := tx.Model(&merged).Select("*").Updates(&merged)
		if res.Error != nil {
			return op.Fail(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	audit(ctx, "update", email, err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the profile together with its favourites and saved trails.
// Link rows are deleted explicitly so the result does not depend on the
// driver enforcing ON DELETE CASCADE.
func (s *GormStore) Delete(ctx context.Context, email string) error {
	email = database.NormalizeEmail(email)
	op := database.Track(metrics.DBOpDeleteProfile)
	defer op.Done()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProfile(tx, email); err != nil {
			return err
		}
		if err := tx.Where("email = ?", email).Delete(&database.FavouriteActivityRecord{}).Error; err != nil {
			return op.Fail(err)
		}
		if err := tx.Where("email = ?", email).Delete(&database.SavedTrailRecord{}).Error; err != nil {
			return op.Fail(err)
		}
		if err := tx.Where("email = ?", email).Delete(&database.ProfileRecord{}).Error; err != nil {
			return op.Fail(err)
		}
		return nil
	})
	audit(ctx, "delete", email, err)
	return err
}

func findProfile(db *gorm.DB, email string) (*database.ProfileRecord, error) {
	var rec database.ProfileRecord
	if err := db.Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &rec, nil
}

func toRecord(p Profile) database.ProfileRecord {
	return database.ProfileRecord{
		Email:    p.Email,
		Username: p.Username,
		AboutMe:  p.AboutMe,
		Location: p.Location,
		Dob:      p.Dob.Ptr(),
		Language: p.Language,
		Role:     p.Role,
	}
}

func fromRecord(r *database.ProfileRecord) Profile {
	return Profile{
		Email:    r.Email,
		Username: r.Username,
		AboutMe:  r.AboutMe,
		Location: r.Location,
		Dob:      timeutil.FromPtr(r.Dob),
		Language: r.Language,
		Role:     r.Role,
	}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
