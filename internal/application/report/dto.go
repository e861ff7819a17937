package report

import (
	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// All report amounts are fixed two-decimal strings so clients never receive
// floats for money.

// MonthlyRevenueRequest asks for one month's revenue summary
type MonthlyRevenueRequest struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	Month    calendar.MonthKey
}

// MonthlyRevenueReport is one branch-month's revenue summary
type MonthlyRevenueReport struct {
	Month      calendar.MonthKey `json:"month"`
	Membership string            `json:"membership_revenue"`
	Product    string            `json:"product_revenue"`
	Total      string            `json:"total_revenue"`
	Locked     bool              `json:"locked"`
}

// TrendRequest asks for the last Months months ending at EndMonth. A zero
// EndMonth means the current tenant-local month.
type TrendRequest struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	Months   int
	EndMonth calendar.MonthKey
}

// TrendEntry is one month in a revenue trend. Months without revenue appear
// with zero amounts.
type TrendEntry struct {
	Month      calendar.MonthKey `json:"month"`
	Membership string            `json:"membership_revenue"`
	Product    string            `json:"product_revenue"`
	Total      string            `json:"total_revenue"`
}

// DailyBreakdownRequest asks for a per-day breakdown of one month
type DailyBreakdownRequest struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	Month    calendar.MonthKey
}

// DailyEntry is one calendar day's revenue. Every day of the month appears,
// zero-filled when nothing was earned.
type DailyEntry struct {
	Date       calendar.Date `json:"date"`
	Membership string        `json:"membership_revenue"`
	Product    string        `json:"product_revenue"`
	Total      string        `json:"total_revenue"`
}

// MethodBreakdownRequest asks for a per-payment-method breakdown of one month
type MethodBreakdownRequest struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	Month    calendar.MonthKey
}

// MethodEntry is one payment method's revenue. Every method appears,
// zero-filled when unused.
type MethodEntry struct {
	Method     billing.PaymentMethod `json:"payment_method"`
	Membership string                `json:"membership_revenue"`
	Product    string                `json:"product_revenue"`
	Total      string                `json:"total_revenue"`
}
