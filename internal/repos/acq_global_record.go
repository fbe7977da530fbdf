package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/types"
)

type AcqGlobalRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.AcqGlobalRecord) ([]*types.AcqGlobalRecord, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AcqGlobalRecord, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.AcqGlobalRecord, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type acqGlobalRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAcqGlobalRecordRepo(db *gorm.DB, baseLog *logger.Logger) AcqGlobalRecordRepo {
	repoLog := baseLog.With("repo", "AcqGlobalRecordRepo")
	return &acqGlobalRecordRepo{db: db, log: repoLog}
}

func (r *acqGlobalRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AcqGlobalRecord) ([]*types.AcqGlobalRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*types.AcqGlobalRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *acqGlobalRecordRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AcqGlobalRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var record types.AcqGlobalRecord
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *acqGlobalRecordRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AcqGlobalRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var records []*types.AcqGlobalRecord
	if err := transaction.WithContext(ctx).
		Order("upload_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *acqGlobalRecordRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.AcqGlobalRecord{}).Error
}
