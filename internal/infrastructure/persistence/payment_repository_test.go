package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

func testRepoPolicy() billing.PaymentPolicy {
	return billing.PaymentPolicy{
		MaxAmount:     decimal.RequireFromString("999999.99"),
		MaxNoteLength: 500,
		Currency:      valueobject.TRY,
	}
}

func seedPayment(t *testing.T, repo *GormPaymentRepository, tenantID, branchID uuid.UUID, amount, paidOn string, method billing.PaymentMethod) *billing.Payment {
	t.Helper()
	day := calendar.MustParseDate(paidOn)
	payment, err := billing.NewPayment(tenantID, branchID, uuid.New(), uuid.New(),
		valueobject.MustMoneyFromString(amount, valueobject.TRY),
		day, method, "", testRepoPolicy(), day)
	require.NoError(t, err)
	payment.ClearDomainEvents()
	require.NoError(t, repo.Create(context.Background(), payment))
	return payment
}

func TestGormPaymentRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(openTestDB(t))
	tenantID, branchID := uuid.New(), uuid.New()

	t.Run("round trip", func(t *testing.T) {
		created := seedPayment(t, repo, tenantID, branchID, "150.00", "2026-02-10", billing.PaymentMethodCash)

		found, err := repo.FindByIDForTenant(ctx, tenantID, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, branchID, found.BranchID)
		assert.Equal(t, "150.00", found.Amount.StringFixed(2))
		assert.Equal(t, calendar.MustParseDate("2026-02-10"), found.PaidOn)
		assert.Equal(t, billing.PaymentMethodCash, found.PaymentMethod)
		assert.Equal(t, 1, found.Version)
		assert.False(t, found.IsCorrected)
	})

	t.Run("missing row resolves to nil", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("another tenant's row resolves to nil", func(t *testing.T) {
		created := seedPayment(t, repo, tenantID, branchID, "99.00", "2026-02-11", billing.PaymentMethodCash)

		found, err := repo.FindByIDForTenant(ctx, uuid.New(), created.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormPaymentRepository_FindAllForTenant(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(openTestDB(t))
	tenantID, branchID := uuid.New(), uuid.New()

	first := seedPayment(t, repo, tenantID, branchID, "100.00", "2026-02-05", billing.PaymentMethodCash)
	second := seedPayment(t, repo, tenantID, branchID, "200.00", "2026-02-10", billing.PaymentMethodCreditCard)
	third := seedPayment(t, repo, tenantID, branchID, "300.00", "2026-02-15", billing.PaymentMethodCash)

	// a correction row replacing first
	correction, err := first.BuildCorrection(uuid.New(), billing.CorrectionInput{
		Amount: ptrMoney("120.00"),
		Reason: "typo in amount",
	}, testRepoPolicy(), calendar.MustParseDate("2026-02-15"))
	require.NoError(t, err)
	correction.ClearDomainEvents()
	require.NoError(t, repo.Create(ctx, correction))

	t.Run("corrections are hidden by default", func(t *testing.T) {
		payments, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{})
		require.NoError(t, err)
		require.Len(t, payments, 3)

		// newest business date first
		assert.Equal(t, third.ID, payments[0].ID)
		assert.Equal(t, second.ID, payments[1].ID)
		assert.Equal(t, first.ID, payments[2].ID)
	})

	t.Run("corrections appear when asked for", func(t *testing.T) {
		payments, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{IncludeCorrections: true})
		require.NoError(t, err)
		assert.Len(t, payments, 4)
	})

	t.Run("method filter", func(t *testing.T) {
		method := billing.PaymentMethodCreditCard
		payments, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{PaymentMethod: &method})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, second.ID, payments[0].ID)
	})

	t.Run("date range filter is inclusive on both ends", func(t *testing.T) {
		from := calendar.MustParseDate("2026-02-05")
		to := calendar.MustParseDate("2026-02-10")
		payments, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{FromDate: &from, ToDate: &to})
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, second.ID, payments[0].ID)
		assert.Equal(t, first.ID, payments[1].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		pageOne, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, pageOne, 2)

		pageTwo, err := repo.FindAllForTenant(ctx, tenantID, billing.PaymentFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, pageTwo, 1)
		assert.Equal(t, first.ID, pageTwo[0].ID)

		total, err := repo.CountForTenant(ctx, tenantID, billing.PaymentFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("tenant isolation", func(t *testing.T) {
		payments, err := repo.FindAllForTenant(ctx, uuid.New(), billing.PaymentFilter{})
		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestGormPaymentRepository_MarkCorrected(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(openTestDB(t))
	tenantID, branchID := uuid.New(), uuid.New()

	t.Run("flips the flag and bumps the version", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "150.00", "2026-02-10", billing.PaymentMethodCash)

		require.NoError(t, repo.MarkCorrected(ctx, tenantID, payment.ID, 1))

		found, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.IsCorrected)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("already corrected row conflicts even at the bumped version", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "150.00", "2026-02-11", billing.PaymentMethodCash)

		require.NoError(t, repo.MarkCorrected(ctx, tenantID, payment.ID, 1))
		assert.ErrorIs(t, repo.MarkCorrected(ctx, tenantID, payment.ID, 2), shared.ErrConcurrencyConflict)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "150.00", "2026-02-12", billing.PaymentMethodCash)

		assert.ErrorIs(t, repo.MarkCorrected(ctx, tenantID, payment.ID, 7), shared.ErrConcurrencyConflict)

		found, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.False(t, found.IsCorrected)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("another tenant cannot mark the row", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "150.00", "2026-02-13", billing.PaymentMethodCash)

		assert.ErrorIs(t, repo.MarkCorrected(ctx, uuid.New(), payment.ID, 1), shared.ErrConcurrencyConflict)
	})
}

func TestGormPaymentRepository_DeleteForTenant(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(openTestDB(t))
	tenantID, branchID := uuid.New(), uuid.New()

	t.Run("removes the row", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "80.00", "2026-02-10", billing.PaymentMethodCash)

		require.NoError(t, repo.DeleteForTenant(ctx, tenantID, payment.ID))

		found, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("missing row", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, uuid.New()), shared.ErrNotFound)
	})

	t.Run("another tenant's row stays", func(t *testing.T) {
		payment := seedPayment(t, repo, tenantID, branchID, "80.00", "2026-02-11", billing.PaymentMethodCash)

		assert.ErrorIs(t, repo.DeleteForTenant(ctx, uuid.New(), payment.ID), shared.ErrNotFound)

		found, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}

func ptrMoney(amount string) *valueobject.Money {
	m := valueobject.MustMoneyFromString(amount, valueobject.TRY)
	return &m
}
