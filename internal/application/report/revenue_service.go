package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/report"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// MaxTrendMonths caps the trend window
const MaxTrendMonths = 24

// RevenueService computes revenue reports from the ledger's source rows.
// Membership revenue is summed over current payments only (corrected
// originals excluded, their correction rows included), keyed by the paid_on
// business date. Product revenue is summed over sale instants inside the
// tenant-local month's UTC range. Reports are recomputed on every call.
type RevenueService struct {
	queries report.RevenueQueryRepository
	locks   billing.MonthLockRepository
	cal     *calendar.Calendar
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(queries report.RevenueQueryRepository, locks billing.MonthLockRepository, cal *calendar.Calendar) *RevenueService {
	return &RevenueService{queries: queries, locks: locks, cal: cal}
}

// MonthlyRevenue returns one month's membership, product and total revenue
// together with the month's lock state
func (s *RevenueService) MonthlyRevenue(ctx context.Context, req MonthlyRevenueRequest) (*MonthlyRevenueReport, error) {
	if err := validateScope(req.TenantID, req.BranchID); err != nil {
		return nil, err
	}
	if req.Month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}

	membership, product, err := s.monthTotals(ctx, req.TenantID, req.BranchID, req.Month)
	if err != nil {
		return nil, err
	}
	locked, err := s.locks.IsLocked(ctx, req.TenantID, req.BranchID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month lock: %w", err)
	}

	return &MonthlyRevenueReport{
		Month:      req.Month,
		Membership: membership.StringFixed(2),
		Product:    product.StringFixed(2),
		Total:      membership.Add(product).StringFixed(2),
		Locked:     locked,
	}, nil
}

// Trend returns the last req.Months months ending at req.EndMonth, oldest
// first. Every month in the window appears, zero amounts included.
func (s *RevenueService) Trend(ctx context.Context, req TrendRequest) ([]TrendEntry, error) {
	if err := validateScope(req.TenantID, req.BranchID); err != nil {
		return nil, err
	}
	if req.Months < 1 || req.Months > MaxTrendMonths {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Trend window must be between 1 and %d months", MaxTrendMonths))
	}

	end := req.EndMonth
	if end.IsZero() {
		end = s.cal.MonthOf(time.Now())
	}

	months := make([]calendar.MonthKey, req.Months)
	mk := end
	for i := req.Months - 1; i >= 0; i-- {
		months[i] = mk
		mk = mk.Prev()
	}

	entries := make([]TrendEntry, 0, len(months))
	for _, month := range months {
		membership, product, err := s.monthTotals(ctx, req.TenantID, req.BranchID, month)
		if err != nil {
			return nil, err
		}
		entries = append(entries, TrendEntry{
			Month:      month,
			Membership: membership.StringFixed(2),
			Product:    product.StringFixed(2),
			Total:      membership.Add(product).StringFixed(2),
		})
	}
	return entries, nil
}

// DailyBreakdown returns one entry per calendar day of the month, zero-filled
// for days without revenue. Product sales are attributed to the tenant-local
// day their instant falls on.
func (s *RevenueService) DailyBreakdown(ctx context.Context, req DailyBreakdownRequest) ([]DailyEntry, error) {
	if err := validateScope(req.TenantID, req.BranchID); err != nil {
		return nil, err
	}
	if req.Month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}

	days := req.Month.Days()
	membershipByDay := make(map[calendar.Date]decimal.Decimal, len(days))
	productByDay := make(map[calendar.Date]decimal.Decimal, len(days))

	daily, err := s.queries.MembershipDailyTotals(ctx, req.TenantID, req.BranchID, req.Month.FirstDay(), req.Month.LastDay())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily membership revenue: %w", err)
	}
	for _, d := range daily {
		membershipByDay[d.Date] = d.Amount
	}

	start, end := s.cal.MonthRange(req.Month)
	instants, err := s.queries.ProductSaleInstants(ctx, req.TenantID, req.BranchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query product sales: %w", err)
	}
	for _, sale := range instants {
		day := s.cal.DateOf(sale.SoldAt)
		productByDay[day] = productByDay[day].Add(sale.Amount)
	}

	entries := make([]DailyEntry, 0, len(days))
	for _, day := range days {
		membership := membershipByDay[day]
		product := productByDay[day]
		entries = append(entries, DailyEntry{
			Date:       day,
			Membership: membership.StringFixed(2),
			Product:    product.StringFixed(2),
			Total:      membership.Add(product).StringFixed(2),
		})
	}
	return entries, nil
}

// MethodBreakdown returns one entry per payment method, zero-filled for
// methods without revenue
func (s *RevenueService) MethodBreakdown(ctx context.Context, req MethodBreakdownRequest) ([]MethodEntry, error) {
	if err := validateScope(req.TenantID, req.BranchID); err != nil {
		return nil, err
	}
	if req.Month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}

	membershipByMethod := make(map[billing.PaymentMethod]decimal.Decimal)
	productByMethod := make(map[billing.PaymentMethod]decimal.Decimal)

	membership, err := s.queries.MembershipByMethod(ctx, req.TenantID, req.BranchID, req.Month.FirstDay(), req.Month.LastDay())
	if err != nil {
		return nil, fmt.Errorf("failed to query membership revenue by method: %w", err)
	}
	for _, m := range membership {
		membershipByMethod[m.Method] = m.Amount
	}

	start, end := s.cal.MonthRange(req.Month)
	product, err := s.queries.ProductByMethod(ctx, req.TenantID, req.BranchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query product revenue by method: %w", err)
	}
	for _, m := range product {
		productByMethod[m.Method] = m.Amount
	}

	entries := make([]MethodEntry, 0, len(billing.AllPaymentMethods))
	for _, method := range billing.AllPaymentMethods {
		ms := membershipByMethod[method]
		ps := productByMethod[method]
		entries = append(entries, MethodEntry{
			Method:     method,
			Membership: ms.StringFixed(2),
			Product:    ps.StringFixed(2),
			Total:      ms.Add(ps).StringFixed(2),
		})
	}
	return entries, nil
}

func (s *RevenueService) monthTotals(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (decimal.Decimal, decimal.Decimal, error) {
	membership, err := s.queries.MembershipTotal(ctx, tenantID, branchID, month.FirstDay(), month.LastDay())
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query membership revenue: %w", err)
	}
	start, end := s.cal.MonthRange(month)
	product, err := s.queries.ProductTotal(ctx, tenantID, branchID, start, end)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query product revenue: %w", err)
	}
	return membership, product, nil
}

func validateScope(tenantID, branchID uuid.UUID) error {
	if tenantID == uuid.Nil || branchID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	return nil
}
