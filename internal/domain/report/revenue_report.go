// Package report holds the read-side query contracts for revenue reporting.
// Reports are always recomputed from source rows; there is no cached
// aggregate to invalidate, so whatever the ledger has committed is what a
// report returns.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// DailyTotal is one business day's summed amount
type DailyTotal struct {
	Date   calendar.Date
	Amount decimal.Decimal
}

// MethodTotal is one payment method's summed amount
type MethodTotal struct {
	Method billing.PaymentMethod
	Amount decimal.Decimal
}

// SaleInstant is a product sale's instant and amount, fetched raw so the
// caller can group by tenant-local day through the calendar.
type SaleInstant struct {
	SoldAt time.Time
	Amount decimal.Decimal
}

// RevenueQueryRepository answers the aggregation queries behind every
// revenue report. Membership revenue sums payment rows with
// is_corrected = false: a correction row (itself never corrected) carries
// the superseding amount while the original it replaced is excluded, so the
// sum reflects the latest truth without double counting. Product revenue
// sums sale rows by their UTC instant range.
type RevenueQueryRepository interface {
	// MembershipTotal sums current payment amounts with paid_on in [from, to]
	MembershipTotal(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) (decimal.Decimal, error)
	// MembershipDailyTotals groups current payment amounts by paid_on; days
	// without payments are absent from the result
	MembershipDailyTotals(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) ([]DailyTotal, error)
	// MembershipByMethod groups current payment amounts by payment method
	MembershipByMethod(ctx context.Context, tenantID, branchID uuid.UUID, from, to calendar.Date) ([]MethodTotal, error)

	// ProductTotal sums sale totals with sold_at in [start, end)
	ProductTotal(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	// ProductSaleInstants returns raw sale instants with sold_at in [start, end)
	ProductSaleInstants(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) ([]SaleInstant, error)
	// ProductByMethod groups sale totals by payment method with sold_at in [start, end)
	ProductByMethod(ctx context.Context, tenantID, branchID uuid.UUID, start, end time.Time) ([]MethodTotal, error)
}
