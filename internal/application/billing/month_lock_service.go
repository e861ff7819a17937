package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// MonthLockService manages revenue month locks. A lock freezes one
// tenant-local month for one branch; payments and product sales whose
// business date falls inside a locked month can no longer be created,
// corrected or deleted until the month is unlocked.
type MonthLockService struct {
	locks  billing.MonthLockRepository
	events shared.EventPublisher
}

// NewMonthLockService creates a new MonthLockService
func NewMonthLockService(locks billing.MonthLockRepository, events shared.EventPublisher) *MonthLockService {
	return &MonthLockService{locks: locks, events: events}
}

// Lock freezes the month. Locking an already-locked month is a no-op that
// returns the existing lock, so retried requests cannot fail.
func (s *MonthLockService) Lock(ctx context.Context, tenantID, branchID, userID uuid.UUID, month calendar.MonthKey) (*billing.RevenueMonthLock, error) {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	existing, err := s.locks.Find(ctx, tenantID, branchID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month lock: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	lock, err := billing.NewRevenueMonthLock(tenantID, branchID, month, userID)
	if err != nil {
		return nil, err
	}
	if err := s.locks.Create(ctx, lock); err != nil {
		// Lost a race to another lock request; the month ends up locked
		// either way, so return the winner's row.
		if derr, ok := err.(*shared.DomainError); ok && derr.Code == shared.ErrAlreadyExists.Code {
			return s.locks.Find(ctx, tenantID, branchID, month)
		}
		return nil, fmt.Errorf("failed to create month lock: %w", err)
	}

	s.publish(ctx, billing.NewMonthLockedEvent(lock))
	return lock, nil
}

// Unlock reopens the month. Unlocking a month that is not locked returns
// NOT_FOUND.
func (s *MonthLockService) Unlock(ctx context.Context, tenantID, branchID, userID uuid.UUID, month calendar.MonthKey) error {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	lock, err := s.locks.Find(ctx, tenantID, branchID, month)
	if err != nil {
		return fmt.Errorf("failed to check month lock: %w", err)
	}
	if lock == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Month %s is not locked", month))
	}

	existed, err := s.locks.Delete(ctx, tenantID, branchID, month)
	if err != nil {
		return fmt.Errorf("failed to delete month lock: %w", err)
	}
	if !existed {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Month %s is not locked", month))
	}

	s.publish(ctx, billing.NewMonthUnlockedEvent(lock))
	return nil
}

// IsLocked reports whether the month is locked
func (s *MonthLockService) IsLocked(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error) {
	if tenantID == uuid.Nil {
		return false, shared.ErrUnauthorized
	}
	return s.locks.IsLocked(ctx, tenantID, branchID, month)
}

// IsDateLocked reports whether the month containing the given business date
// is locked
func (s *MonthLockService) IsDateLocked(ctx context.Context, tenantID, branchID uuid.UUID, date calendar.Date) (bool, error) {
	return s.IsLocked(ctx, tenantID, branchID, date.MonthKey())
}

// ListLocks returns the branch's locks, newest month first
func (s *MonthLockService) ListLocks(ctx context.Context, tenantID, branchID uuid.UUID) ([]billing.RevenueMonthLock, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	return s.locks.FindAllForBranch(ctx, tenantID, branchID)
}

func (s *MonthLockService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
