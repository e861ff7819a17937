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

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a new payment row
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByIDForTenant returns the payment, or nil when missing or out of scope
func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
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

// FindAllForTenant lists payments matching the filter, newest business date
// first
func (r *GormPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) ([]billing.Payment, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("tenant_id = ?", tenantID), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var paymentModels []models.PaymentModel
	if err := query.Order("paid_on DESC, created_at DESC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// CountForTenant counts payments matching the filter
func (r *GormPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// MarkCorrected flips is_corrected on the original row under a version
// compare-and-swap. Zero affected rows means another writer got there first
// (or the version was stale to begin with), which surfaces as a concurrency
// conflict.
func (r *GormPaymentRepository) MarkCorrected(ctx context.Context, tenantID, id uuid.UUID, expectedVersion int) error {
	result := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("tenant_id = ? AND id = ? AND version = ? AND is_corrected = ?", tenantID, id, expectedVersion, false).
		Updates(map[string]any{
			"is_corrected": true,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant removes a payment row
func (r *GormPaymentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PaymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter billing.PaymentFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}
	if filter.FromDate != nil {
		query = query.Where("paid_on >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("paid_on <= ?", *filter.ToDate)
	}
	if !filter.IncludeCorrections {
		query = query.Where("is_correction = ?", false)
	}
	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
