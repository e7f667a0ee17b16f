package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"inventory-tracker/internal/model"
)

type IssuanceRepository interface {
	WithTx(tx *gorm.DB) IssuanceRepository
	Create(ctx context.Context, record *model.IssuanceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IssuanceRecord, error)
	FindAll(ctx context.Context) ([]model.IssuanceRecord, error)
	FindByDateRange(ctx context.Context, start, end datatypes.Date) ([]model.IssuanceRecord, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.IssuanceRecord, error)
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID, deletedBy string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type issuanceRepo struct {
	db *gorm.DB
}

func NewIssuanceRepo(db *gorm.DB) IssuanceRepository {
	return &issuanceRepo{db}
}

func (r *issuanceRepo) WithTx(tx *gorm.DB) IssuanceRepository {
	return &issuanceRepo{tx}
}

// projected preloads the product and user rows used for display names. Both
// are loaded unscoped so history survives a soft-deleted user.
func (r *issuanceRepo) projected(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Product", unscopedPreload).
		Preload("User", unscopedPreload)
}

func unscopedPreload(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func (r *issuanceRepo) Create(ctx context.Context, record *model.IssuanceRecord) error {
	return r.db.WithContext(ctx).Omit("Product", "User").Create(record).Error
}

func (r *issuanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.IssuanceRecord, error) {
	var record model.IssuanceRecord
	if err := r.projected(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *issuanceRepo) FindAll(ctx context.Context) ([]model.IssuanceRecord, error) {
	var records []model.IssuanceRecord
	err := r.projected(ctx).Order("issue_date DESC, created_at DESC").Find(&records).Error
	return records, err
}

// FindByDateRange matches issue dates in [start, end]. An inverted range
// matches nothing.
func (r *issuanceRepo) FindByDateRange(ctx context.Context, start, end datatypes.Date) ([]model.IssuanceRecord, error) {
	var records []model.IssuanceRecord
	err := r.projected(ctx).
		Where("issue_date BETWEEN ? AND ?", start, end).
		Order("issue_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *issuanceRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.IssuanceRecord, error) {
	var records []model.IssuanceRecord
	err := r.projected(ctx).
		Where("product_id = ?", productID).
		Order("issue_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *issuanceRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.IssuanceRecord{}, id, deletedBy)
}

// DeleteByProduct removes a product's whole issuance history without touching stock.
func (r *issuanceRepo) DeleteByProduct(ctx context.Context, productID uuid.UUID, deletedBy string) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.IssuanceRecord{}).Where("product_id = ?", productID).
		Update("deleted_by", deletedBy).Error; err != nil {
		return 0, err
	}
	res := db.Where("product_id = ?", productID).Delete(&model.IssuanceRecord{})
	return res.RowsAffected, res.Error
}

func (r *issuanceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.IssuanceRecord{}).Count(&n).Error
	return n, err
}
