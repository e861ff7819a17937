package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// PaymentFilter represents query filter options for payments
type PaymentFilter struct {
	BranchID           *uuid.UUID
	MemberID           *uuid.UUID
	PaymentMethod      *PaymentMethod
	FromDate           *calendar.Date
	ToDate             *calendar.Date
	IncludeCorrections bool
	Page               int
	PageSize           int
}

// PaymentRepository persists Payment aggregates. Every lookup is scoped by
// tenant; a row belonging to another tenant behaves exactly like a missing
// row.
type PaymentRepository interface {
	// Create inserts a new payment row
	Create(ctx context.Context, payment *Payment) error
	// FindByIDForTenant returns the payment, or nil when missing or out of scope
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	// FindAllForTenant lists payments matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]Payment, error)
	// CountForTenant counts payments matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) (int64, error)
	// MarkCorrected flips is_corrected and bumps version on the original row,
	// conditioned on the stored version still equaling expectedVersion and the
	// row not already being corrected. Returns shared.ErrConcurrencyConflict
	// when the conditional update affects no rows.
	MarkCorrected(ctx context.Context, tenantID, id uuid.UUID, expectedVersion int) error
	// DeleteForTenant removes a payment row
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// MonthLockRepository persists revenue month locks. IsLocked is on the hot
// path of every mutating operation and must stay a keyed point lookup.
type MonthLockRepository interface {
	// Create inserts a lock row
	Create(ctx context.Context, lock *RevenueMonthLock) error
	// Find returns the lock, or nil when the month is open
	Find(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (*RevenueMonthLock, error)
	// IsLocked reports whether the month is locked
	IsLocked(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error)
	// Delete removes a lock row; reports whether a row existed
	Delete(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error)
	// FindAllForBranch lists locks for a branch, newest month first
	FindAllForBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]RevenueMonthLock, error)
}

// ProductSaleFilter represents query filter options for product sales
type ProductSaleFilter struct {
	BranchID      *uuid.UUID
	ProductID     *uuid.UUID
	MemberID      *uuid.UUID
	PaymentMethod *PaymentMethod
	From          *time.Time
	To            *time.Time
	Page          int
	PageSize      int
}

// ProductSaleRepository persists ProductSale aggregates
type ProductSaleRepository interface {
	Create(ctx context.Context, sale *ProductSale) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductSale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductSaleFilter) ([]ProductSale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductSaleFilter) (int64, error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
