package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/types"
)

type AcqClassRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.AcqClassRecord) ([]*types.AcqClassRecord, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AcqClassRecord, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.AcqClassRecord, error)
	ListByLevel(ctx context.Context, tx *gorm.DB, level string) ([]*types.AcqClassRecord, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type acqClassRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAcqClassRecordRepo(db *gorm.DB, baseLog *logger.Logger) AcqClassRecordRepo {
	repoLog := baseLog.With("repo", "AcqClassRecordRepo")
	return &acqClassRecordRepo{db: db, log: repoLog}
}

func (r *acqClassRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AcqClassRecord) ([]*types.AcqClassRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*types.AcqClassRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *acqClassRecordRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AcqClassRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var record types.AcqClassRecord
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *acqClassRecordRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AcqClassRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var records []*types.AcqClassRecord
	if err := transaction.WithContext(ctx).
		Order("upload_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *acqClassRecordRepo) ListByLevel(ctx context.Context, tx *gorm.DB, level string) ([]*types.AcqClassRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var records []*types.AcqClassRecord
	if err := transaction.WithContext(ctx).
		Where("level = ?", level).
		Order("upload_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *acqClassRecordRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.AcqClassRecord{}).Error
}
