package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/infrastructure/persistence/models"
)

// GormProductSaleRepository implements billing.ProductSaleRepository using GORM
type GormProductSaleRepository struct {
	db *gorm.DB
}

// NewGormProductSaleRepository creates a new GormProductSaleRepository
func NewGormProductSaleRepository(db *gorm.DB) *GormProductSaleRepository {
	return &GormProductSaleRepository{db: db}
}

// Create inserts a new product sale row
func (r *GormProductSaleRepository) Create(ctx context.Context, sale *billing.ProductSale) error {
	var model models.ProductSaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByIDForTenant returns the sale, or nil when missing or out of scope
func (r *GormProductSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.ProductSale, error) {
	var model models.ProductSaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists sales matching the filter, newest first
func (r *GormProductSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.ProductSaleFilter) ([]billing.ProductSale, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductSaleModel{}).
		Where("tenant_id = ?", tenantID), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var saleModels []models.ProductSaleModel
	if err := query.Order("sold_at DESC").Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]billing.ProductSale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales, nil
}

// CountForTenant counts sales matching the filter
func (r *GormProductSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.ProductSaleFilter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductSaleModel{}).
		Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteForTenant removes a sale row
func (r *GormProductSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ProductSaleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query. From/To are UTC instants;
// the range is half-open.
func (r *GormProductSaleRepository) applyFilter(query *gorm.DB, filter billing.ProductSaleFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}
	if filter.From != nil {
		query = query.Where("sold_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sold_at < ?", *filter.To)
	}
	return query
}

// Ensure GormProductSaleRepository implements ProductSaleRepository
var _ billing.ProductSaleRepository = (*GormProductSaleRepository)(nil)
