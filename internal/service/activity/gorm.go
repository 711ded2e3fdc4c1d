package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/platform/metrics"
)

// GormStore implements Service on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new activity store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context) ([]Activity, error) {
	op := database.Track(metrics.DBOpListActivities)
	defer op.Done()

	var records []database.ActivityRecord
	if err := s.db.WithContext(ctx).Order("activity_id").Find(&records).Error; err != nil {
		return nil, op.Fail(fmt.Errorf("listing activities: %w", err))
	}
	out := make([]Activity, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out, nil
}

func (s *GormStore) Get(ctx context.Context, id int64) (*Activity, error) {
	op := database.Track(metrics.DBOpGetActivity)
	defer op.Done()

	var rec database.ActivityRecord
	if err := s.db.WithContext(ctx).Where("activity_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, op.Fail(fmt.Errorf("loading activity: %w", err))
	}
	out := FromRecord(rec)
	return &out, nil
}

// Create inserts a new activity. The name must be unique; the unique index
// settles concurrent inserts of the same name.
func (s *GormStore) Create(ctx context.Context, name string) (*Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	op := database.Track(metrics.DBOpCreateActivity)
	defer op.Done()

	rec := database.ActivityRecord{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.ActivityRecord{}).Where("activity = ?", name).Count(&count).Error; err != nil {
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
	if err != nil {
		applog.LogAuditEvent(ctx, "create", "", "activity", name, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", "", "activity", strconv.FormatInt(rec.ID, 10), applog.AuditSuccess, nil)

	out := FromRecord(rec)
	return &out, nil
}

func categorizeError(err error) string {
	if errors.Is(err, ErrAlreadyExists) {
		return "already_exists"
	}
	return "internal_error"
}

// FromRecord maps a stored activity to the domain type.
func FromRecord(r database.ActivityRecord) Activity {
	return Activity{ID: r.ID, Name: r.Name}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
