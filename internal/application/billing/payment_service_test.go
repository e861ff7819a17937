package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/billing/acl"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

func testPaymentPolicy() billing.PaymentPolicy {
	return billing.PaymentPolicy{
		MaxAmount:     decimal.RequireFromString("999999.99"),
		MaxNoteLength: 500,
		Currency:      valueobject.TRY,
	}
}

type paymentServiceFixture struct {
	payments *MockPaymentRepository
	locks    *MockMonthLockRepository
	members  *MockMemberDirectory
	events   *recordingPublisher
	service  *PaymentService
}

func newPaymentServiceFixture() *paymentServiceFixture {
	payments := new(MockPaymentRepository)
	locks := new(MockMonthLockRepository)
	members := new(MockMemberDirectory)
	events := &recordingPublisher{}
	txScope := NewNoOpTransactionScope(payments, locks, nil)

	return &paymentServiceFixture{
		payments: payments,
		locks:    locks,
		members:  members,
		events:   events,
		service: NewPaymentService(payments, locks, members, txScope, events,
			testPaymentPolicy(), 90),
	}
}

func storedPayment(t *testing.T, tenantID, branchID uuid.UUID, paidOn string) *billing.Payment {
	t.Helper()
	p, err := billing.NewPayment(
		tenantID, branchID, uuid.New(), uuid.New(),
		valueobject.MustMoneyFromString("200.00", valueobject.TRY),
		calendar.MustParseDate(paidOn),
		billing.PaymentMethodCash, "", testPaymentPolicy(),
		calendar.MustParseDate(paidOn),
	)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestPaymentService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	tenantID, branchID, userID, memberID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	validRequest := func() CreatePaymentRequest {
		return CreatePaymentRequest{
			TenantID:      tenantID,
			BranchID:      branchID,
			UserID:        userID,
			MemberID:      memberID,
			Amount:        "150.00",
			PaidOn:        calendar.TodayUTC(),
			PaymentMethod: billing.PaymentMethodCash,
		}
	}

	t.Run("success", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.members.On("FindMemberRef", ctx, tenantID, memberID).
			Return(&acl.MemberRef{ID: memberID, TenantID: tenantID}, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, calendar.TodayUTC().MonthKey()).
			Return(false, nil)
		f.payments.On("Create", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

		payment, err := f.service.CreatePayment(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, "150.00", payment.Amount.StringFixed(2))
		assert.Equal(t, []string{"PaymentCreated"}, f.events.eventTypes())
		f.payments.AssertExpectations(t)
		// pre-check plus in-transaction re-check
		f.locks.AssertNumberOfCalls(t, "IsLocked", 2)
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.members.On("FindMemberRef", ctx, tenantID, memberID).Return(nil, nil)

		_, err := f.service.CreatePayment(ctx, validRequest())
		assertServiceCode(t, err, "NOT_FOUND")
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unparseable amount", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.members.On("FindMemberRef", ctx, tenantID, memberID).
			Return(&acl.MemberRef{ID: memberID, TenantID: tenantID}, nil)

		req := validRequest()
		req.Amount = "150,00"
		_, err := f.service.CreatePayment(ctx, req)
		assertServiceCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("month locked", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.members.On("FindMemberRef", ctx, tenantID, memberID).
			Return(&acl.MemberRef{ID: memberID, TenantID: tenantID}, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, calendar.TodayUTC().MonthKey()).
			Return(true, nil)

		_, err := f.service.CreatePayment(ctx, validRequest())
		assertServiceCode(t, err, "MONTH_LOCKED")
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing identity", func(t *testing.T) {
		f := newPaymentServiceFixture()
		req := validRequest()
		req.UserID = uuid.Nil
		_, err := f.service.CreatePayment(ctx, req)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestPaymentService_CorrectPayment(t *testing.T) {
	ctx := context.Background()
	tenantID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	newAmount := "180.00"

	t.Run("success within same month", func(t *testing.T) {
		f := newPaymentServiceFixture()
		original := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, original.PaidOn.MonthKey()).
			Return(false, nil)
		f.payments.On("MarkCorrected", ctx, tenantID, original.ID, 1).Return(nil)
		f.payments.On("Create", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

		result, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   1,
			Amount:    &newAmount,
			Reason:    "typo",
		})
		require.NoError(t, err)

		assert.True(t, result.Payment.IsCorrection)
		assert.Equal(t, "180.00", result.Payment.Amount.StringFixed(2))
		assert.Empty(t, result.Warning)
		assert.Equal(t, []string{"PaymentCorrected"}, f.events.eventTypes())
		f.payments.AssertExpectations(t)
	})

	t.Run("both months gated when the date moves", func(t *testing.T) {
		f := newPaymentServiceFixture()
		today := calendar.TodayUTC()
		original := storedPayment(t, tenantID, branchID, today.String())
		prevMonth := today.MonthKey().Prev()
		movedDate := prevMonth.FirstDay()

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)
		// original month open, target month locked
		f.locks.On("IsLocked", ctx, tenantID, branchID, original.PaidOn.MonthKey()).
			Return(false, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, prevMonth).
			Return(true, nil)

		_, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   1,
			PaidOn:    &movedDate,
			Reason:    "wrong month",
		})
		assertServiceCode(t, err, "MONTH_LOCKED")
		f.payments.AssertNotCalled(t, "MarkCorrected", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already corrected", func(t *testing.T) {
		f := newPaymentServiceFixture()
		original := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())
		require.NoError(t, original.MarkCorrected())

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)

		_, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   2,
			Reason:    "again",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyCorrected)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newPaymentServiceFixture()
		original := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)

		_, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   7,
			Reason:    "stale",
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("compare-and-swap loss surfaces as conflict", func(t *testing.T) {
		f := newPaymentServiceFixture()
		original := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, original.PaidOn.MonthKey()).
			Return(false, nil)
		f.payments.On("MarkCorrected", ctx, tenantID, original.ID, 1).
			Return(shared.ErrConcurrencyConflict)

		_, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   1,
			Reason:    "race",
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newPaymentServiceFixture()
		missing := uuid.New()
		f.payments.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, nil)

		_, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: missing,
			Version:   1,
			Reason:    "gone",
		})
		assertServiceCode(t, err, "NOT_FOUND")
	})

	t.Run("old payment produces warning", func(t *testing.T) {
		f := newPaymentServiceFixture()
		oldDate := calendar.TodayUTC().AddDays(-120)
		original := storedPayment(t, tenantID, branchID, oldDate.String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, original.ID).Return(original, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, mock.Anything).Return(false, nil)
		f.payments.On("MarkCorrected", ctx, tenantID, original.ID, 1).Return(nil)
		f.payments.On("Create", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

		result, err := f.service.CorrectPayment(ctx, CorrectPaymentRequest{
			TenantID:  tenantID,
			UserID:    userID,
			PaymentID: original.ID,
			Version:   1,
			Amount:    &newAmount,
			Reason:    "late fix",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Warning, "120 days old")
	})
}

func TestPaymentService_ListPayments(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("defaults applied", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.payments.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(filter billing.PaymentFilter) bool {
			return filter.Page == 1 && filter.PageSize == 20
		})).Return([]billing.Payment{}, nil)
		f.payments.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(0), nil)

		page, err := f.service.ListPayments(ctx, ListPaymentsRequest{TenantID: tenantID, Page: 0, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
	})

	t.Run("pagination meta", func(t *testing.T) {
		f := newPaymentServiceFixture()
		f.payments.On("FindAllForTenant", ctx, tenantID, mock.Anything).
			Return([]billing.Payment{}, nil)
		f.payments.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(45), nil)

		page, err := f.service.ListPayments(ctx, ListPaymentsRequest{TenantID: tenantID, Page: 2, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(45), page.Total)
		assert.Equal(t, 3, page.TotalPages)
	})
}

func TestPaymentService_DeletePayment(t *testing.T) {
	ctx := context.Background()
	tenantID, branchID, userID := uuid.New(), uuid.New(), uuid.New()

	t.Run("deletable payment removed", func(t *testing.T) {
		f := newPaymentServiceFixture()
		payment := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, payment.ID).Return(payment, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, payment.PaidOn.MonthKey()).
			Return(false, nil)
		f.payments.On("DeleteForTenant", ctx, tenantID, payment.ID).Return(nil)

		require.NoError(t, f.service.DeletePayment(ctx, tenantID, userID, payment.ID))
		f.payments.AssertExpectations(t)
	})

	t.Run("corrected payment kept", func(t *testing.T) {
		f := newPaymentServiceFixture()
		payment := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())
		require.NoError(t, payment.MarkCorrected())

		f.payments.On("FindByIDForTenant", ctx, tenantID, payment.ID).Return(payment, nil)

		err := f.service.DeletePayment(ctx, tenantID, userID, payment.ID)
		assertServiceCode(t, err, "INVALID_STATE")
		f.payments.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("locked month blocks delete", func(t *testing.T) {
		f := newPaymentServiceFixture()
		payment := storedPayment(t, tenantID, branchID, calendar.TodayUTC().String())

		f.payments.On("FindByIDForTenant", ctx, tenantID, payment.ID).Return(payment, nil)
		f.locks.On("IsLocked", ctx, tenantID, branchID, payment.PaidOn.MonthKey()).
			Return(true, nil)

		err := f.service.DeletePayment(ctx, tenantID, userID, payment.ID)
		assertServiceCode(t, err, "MONTH_LOCKED")
	})
}

func assertServiceCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}
