package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/infrastructure/persistence/models"
)

// GormMonthLockRepository implements billing.MonthLockRepository using GORM
type GormMonthLockRepository struct {
	db *gorm.DB
}

// NewGormMonthLockRepository creates a new GormMonthLockRepository
func NewGormMonthLockRepository(db *gorm.DB) *GormMonthLockRepository {
	return &GormMonthLockRepository{db: db}
}

// Create inserts a lock row. A duplicate on the tenant+branch+month unique
// index maps to ALREADY_EXISTS so callers can treat the race as idempotent.
func (r *GormMonthLockRepository) Create(ctx context.Context, lock *billing.RevenueMonthLock) error {
	var model models.RevenueMonthLockModel
	model.FromDomain(lock)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Find returns the lock, or nil when the month is open
func (r *GormMonthLockRepository) Find(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (*billing.RevenueMonthLock, error) {
	var model models.RevenueMonthLockModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND month = ?", tenantID, branchID, month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// IsLocked reports whether the month is locked
func (r *GormMonthLockRepository) IsLocked(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RevenueMonthLockModel{}).
		Where("tenant_id = ? AND branch_id = ? AND month = ?", tenantID, branchID, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a lock row; reports whether a row existed
func (r *GormMonthLockRepository) Delete(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND month = ?", tenantID, branchID, month).
		Delete(&models.RevenueMonthLockModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindAllForBranch lists locks for a branch, newest month first
func (r *GormMonthLockRepository) FindAllForBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]billing.RevenueMonthLock, error) {
	var lockModels []models.RevenueMonthLockModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Order("month DESC").
		Find(&lockModels).Error; err != nil {
		return nil, err
	}

	locks := make([]billing.RevenueMonthLock, len(lockModels))
	for i := range lockModels {
		locks[i] = *lockModels[i].ToDomain()
	}
	return locks, nil
}

// Ensure GormMonthLockRepository implements MonthLockRepository
var _ billing.MonthLockRepository = (*GormMonthLockRepository)(nil)
