package billing

import (
	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// RevenueMonthLock freezes the financial records of one tenant-local month
// for one branch. While a lock exists, no payment or product sale whose
// business date falls inside the month may be created, corrected or deleted.
// Locking is idempotent: locking an already-locked month returns the
// existing lock unchanged.
type RevenueMonthLock struct {
	shared.BaseEntity
	TenantID uuid.UUID         `json:"tenant_id"`
	BranchID uuid.UUID         `json:"branch_id"`
	Month    calendar.MonthKey `json:"month"`
	LockedBy uuid.UUID         `json:"locked_by"`
}

// NewRevenueMonthLock creates a lock for the given tenant, branch and month
func NewRevenueMonthLock(tenantID, branchID uuid.UUID, month calendar.MonthKey, lockedBy uuid.UUID) (*RevenueMonthLock, error) {
	if tenantID == uuid.Nil || branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Tenant and branch are required")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}
	if lockedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Locking user is required")
	}
	return &RevenueMonthLock{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		BranchID:   branchID,
		Month:      month,
		LockedBy:   lockedBy,
	}, nil
}
