package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/billing/acl"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

// PaymentService owns the payment ledger: create, correct, get, list and
// delete. Corrections run under optimistic concurrency; every mutating path
// consults the month lock before writing and again inside the write
// transaction.
type PaymentService struct {
	payments      billing.PaymentRepository
	monthLocks    billing.MonthLockRepository
	members       acl.MemberDirectory
	txScope       TransactionScope
	events        shared.EventPublisher
	policy        billing.PaymentPolicy
	warnAfterDays int
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments billing.PaymentRepository,
	monthLocks billing.MonthLockRepository,
	members acl.MemberDirectory,
	txScope TransactionScope,
	events shared.EventPublisher,
	policy billing.PaymentPolicy,
	warnAfterDays int,
) *PaymentService {
	return &PaymentService{
		payments:      payments,
		monthLocks:    monthLocks,
		members:       members,
		txScope:       txScope,
		events:        events,
		policy:        policy,
		warnAfterDays: warnAfterDays,
	}
}

// CreatePayment records a new membership payment
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*billing.Payment, error) {
	if req.TenantID == uuid.Nil || req.BranchID == uuid.Nil || req.UserID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	member, err := s.members.FindMemberRef(ctx, req.TenantID, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}
	if member == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Member not found")
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, s.policy.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid decimal number")
	}

	payment, err := billing.NewPayment(
		req.TenantID, req.BranchID, req.UserID, req.MemberID,
		amount, req.PaidOn, req.PaymentMethod, req.Note,
		s.policy, calendar.TodayUTC(),
	)
	if err != nil {
		return nil, err
	}

	month := payment.PaidOn.MonthKey()
	if err := s.ensureMonthOpen(ctx, s.monthLocks, req.TenantID, req.BranchID, month); err != nil {
		return nil, err
	}

	// The pre-check above fails fast; the re-check below closes the window
	// where a lock lands between check and commit.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.ensureMonthOpen(ctx, repos.MonthLockRepo(), req.TenantID, req.BranchID, month); err != nil {
			return err
		}
		return repos.PaymentRepo().Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payment)
	return payment, nil
}

// CorrectPayment applies the single allowed correction to a payment.
//
// The original row is never rewritten: a new correction row is inserted and
// the original only has is_corrected flipped and version bumped, under a
// compare-and-swap on the version the caller supplied. Exactly one of any
// set of concurrent correction attempts can win that swap.
func (s *PaymentService) CorrectPayment(ctx context.Context, req CorrectPaymentRequest) (*CorrectPaymentResult, error) {
	if req.TenantID == uuid.Nil || req.UserID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	original, err := s.payments.FindByIDForTenant(ctx, req.TenantID, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if original == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	if original.IsCorrected {
		return nil, shared.ErrAlreadyCorrected
	}
	if req.Version != original.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	input := billing.CorrectionInput{
		PaidOn:        req.PaidOn,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		Reason:        req.Reason,
	}
	if req.Amount != nil {
		amount, err := valueobject.NewMoneyFromString(*req.Amount, s.policy.Currency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid decimal number")
		}
		input.Amount = &amount
	}

	today := calendar.TodayUTC()
	correction, err := original.BuildCorrection(req.UserID, input, s.policy, today)
	if err != nil {
		return nil, err
	}

	// A correction must not move money into or out of a closed month, so
	// both the original's month and the new business date's month gate it.
	months := []calendar.MonthKey{original.PaidOn.MonthKey()}
	if newMonth := correction.PaidOn.MonthKey(); newMonth != months[0] {
		months = append(months, newMonth)
	}
	for _, month := range months {
		if err := s.ensureMonthOpen(ctx, s.monthLocks, req.TenantID, original.BranchID, month); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, month := range months {
			if err := s.ensureMonthOpen(ctx, repos.MonthLockRepo(), req.TenantID, original.BranchID, month); err != nil {
				return err
			}
		}
		// The conditional update loses to whichever concurrent correction
		// committed first; surfacing the same conflict as a stale read lets
		// the client re-fetch and retry uniformly.
		if err := repos.PaymentRepo().MarkCorrected(ctx, req.TenantID, original.ID, req.Version); err != nil {
			return err
		}
		return repos.PaymentRepo().Create(ctx, correction)
	})
	if err != nil {
		return nil, err
	}

	result := &CorrectPaymentResult{Payment: correction}
	if age := today.DaysSince(original.PaidOn); age > s.warnAfterDays {
		result.Warning = fmt.Sprintf("The corrected payment is %d days old; make sure this change is intended", age)
	}

	s.publishEvents(ctx, correction)
	return result, nil
}

// GetPayment returns a payment by ID within the tenant's scope
func (s *PaymentService) GetPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*billing.Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	payment, err := s.payments.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	return payment, nil
}

// ListPayments returns a page of payments matching the filters
func (s *PaymentService) ListPayments(ctx context.Context, req ListPaymentsRequest) (*shared.Paginated[billing.Payment], error) {
	if req.TenantID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	filter := billing.PaymentFilter{
		BranchID:           req.BranchID,
		MemberID:           req.MemberID,
		PaymentMethod:      req.PaymentMethod,
		FromDate:           req.FromDate,
		ToDate:             req.ToDate,
		IncludeCorrections: req.IncludeCorrections,
		Page:               req.Page,
		PageSize:           req.PageSize,
	}
	items, err := s.payments.FindAllForTenant(ctx, req.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	total, err := s.payments.CountForTenant(ctx, req.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	page := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &page, nil
}

// DeletePayment removes an uncorrected, non-correction payment from an open
// month. Corrected originals and correction rows are the audit trail and
// cannot be deleted.
func (s *PaymentService) DeletePayment(ctx context.Context, tenantID, userID, paymentID uuid.UUID) error {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	payment, err := s.payments.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	if !payment.IsDeletable() {
		return shared.NewDomainError("INVALID_STATE", "Corrected payments and corrections cannot be deleted")
	}

	month := payment.PaidOn.MonthKey()
	if err := s.ensureMonthOpen(ctx, s.monthLocks, tenantID, payment.BranchID, month); err != nil {
		return err
	}
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.ensureMonthOpen(ctx, repos.MonthLockRepo(), tenantID, payment.BranchID, month); err != nil {
			return err
		}
		return repos.PaymentRepo().DeleteForTenant(ctx, tenantID, paymentID)
	})
}

// ensureMonthOpen rejects the operation when the month is locked, naming the
// offending month in the error.
func (s *PaymentService) ensureMonthOpen(ctx context.Context, locks billing.MonthLockRepository, tenantID, branchID uuid.UUID, month calendar.MonthKey) error {
	locked, err := locks.IsLocked(ctx, tenantID, branchID, month)
	if err != nil {
		return fmt.Errorf("failed to check month lock: %w", err)
	}
	if locked {
		return shared.NewDomainError("MONTH_LOCKED", fmt.Sprintf("Month %s is locked for changes", month))
	}
	return nil
}

func (s *PaymentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, aggregate.GetDomainEvents()...)
	aggregate.ClearDomainEvents()
}
