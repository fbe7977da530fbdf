package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/types"
)

type SchoolProfileRepo interface {
	Get(ctx context.Context, tx *gorm.DB) (*types.SchoolProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.SchoolProfile) (*types.SchoolProfile, error)
}

type schoolProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchoolProfileRepo(db *gorm.DB, baseLog *logger.Logger) SchoolProfileRepo {
	repoLog := baseLog.With("repo", "SchoolProfileRepo")
	return &schoolProfileRepo{db: db, log: repoLog}
}

// Get returns the deployment's single profile row, or nil when none was
// configured yet.
func (r *schoolProfileRepo) Get(ctx context.Context, tx *gorm.DB) (*types.SchoolProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var profile types.SchoolProfile
	err := transaction.WithContext(ctx).
		Order("created_at ASC").
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *schoolProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.SchoolProfile) (*types.SchoolProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	existing, err := r.Get(ctx, transaction)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
			return nil, err
		}
		return profile, nil
	}

	existing.Name = profile.Name
	existing.District = profile.District
	existing.TamazightTaught = profile.TamazightTaught
	if err := transaction.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
