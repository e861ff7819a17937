package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/report"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/infrastructure/persistence/models"
)

// GormRevenueQueryRepository implements report.RevenueQueryRepository using
// GORM. Membership queries filter on is_corrected = false: corrected
// originals drop out and the correction rows that replaced them carry the
// amounts, so a payment is never counted twice.
type GormRevenueQueryRepository struct {
	db *gorm.DB
}

// NewGormRevenueQueryRepository creates a new GormRevenueQueryRepository
func NewGormRevenueQueryRepository(db *gorm.DB) *GormRevenueQueryRepository {
	return &GormRevenueQueryRepository{db: db}
}

// MembershipTotal sums current payment amounts with paid_on in [from, to]
func (r *GormRevenueQueryRepository) MembershipTotal(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.currentPayments(ctx, tenantID, branchID, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// MembershipDailyTotals groups current payment amounts by paid_on. Days
// without payments do not appear; the caller zero-fills.
func (r *GormRevenueQueryRepository) MembershipDailyTotals(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) ([]report.DailyTotal, error) {
	var rows []struct {
		PaidOn calendar.Date
		Total  decimal.Decimal
	}
	if err := r.currentPayments(ctx, tenantID, branchID, from, to).
		Select("paid_on, COALESCE(SUM(amount), 0) AS total").
		Group("paid_on").
		Order("paid_on").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]report.DailyTotal, len(rows))
	for i, row := range rows {
		totals[i] = report.DailyTotal{Date: row.PaidOn, Amount: row.Total}
	}
	return totals, nil
}

// MembershipByMethod groups current payment amounts by payment method
func (r *GormRevenueQueryRepository) MembershipByMethod(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) ([]report.MethodTotal, error) {
	var rows []struct {
		PaymentMethod string
		Total         decimal.Decimal
	}
	if err := r.currentPayments(ctx, tenantID, branchID, from, to).
		Select("payment_method, COALESCE(SUM(amount), 0) AS total").
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return methodTotals(rows), nil
}

// ProductTotal sums sale totals with sold_at in [start, end)
func (r *GormRevenueQueryRepository) ProductTotal(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.salesInRange(ctx, tenantID, branchID, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ProductSaleInstants returns raw sale instants with sold_at in [start, end)
func (r *GormRevenueQueryRepository) ProductSaleInstants(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) ([]report.SaleInstant, error) {
	var rows []struct {
		SoldAt      time.Time
		TotalAmount decimal.Decimal
	}
	if err := r.salesInRange(ctx, tenantID, branchID, start, end).
		Select("sold_at, total_amount").
		Order("sold_at").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	instants := make([]report.SaleInstant, len(rows))
	for i, row := range rows {
		instants[i] = report.SaleInstant{SoldAt: row.SoldAt.UTC(), Amount: row.TotalAmount}
	}
	return instants, nil
}

// ProductByMethod groups sale totals by payment method with sold_at in [start, end)
func (r *GormRevenueQueryRepository) ProductByMethod(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) ([]report.MethodTotal, error) {
	var rows []struct {
		PaymentMethod string
		Total         decimal.Decimal
	}
	if err := r.salesInRange(ctx, tenantID, branchID, start, end).
		Select("payment_method, COALESCE(SUM(total_amount), 0) AS total").
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return methodTotals(rows), nil
}

func (r *GormRevenueQueryRepository) currentPayments(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Where("is_corrected = ?", false).
		Where("paid_on BETWEEN ? AND ?", from, to)
}

func (r *GormRevenueQueryRepository) salesInRange(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ProductSaleModel{}).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Where("sold_at >= ? AND sold_at < ?", start, end)
}

func methodTotals(rows []struct {
	PaymentMethod string
	Total         decimal.Decimal
}) []report.MethodTotal {
	totals := make([]report.MethodTotal, len(rows))
	for i, row := range rows {
		totals[i] = report.MethodTotal{
			Method: billing.PaymentMethod(row.PaymentMethod),
			Amount: row.Total,
		}
	}
	return totals
}

// Ensure GormRevenueQueryRepository implements RevenueQueryRepository
var _ report.RevenueQueryRepository = (*GormRevenueQueryRepository)(nil)
