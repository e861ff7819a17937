package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

func testPolicy() PaymentPolicy {
	return PaymentPolicy{
		MaxAmount:     decimal.RequireFromString("999999.99"),
		MaxNoteLength: 500,
		Currency:      valueobject.TRY,
	}
}

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		valueobject.MustMoneyFromString("150.00", valueobject.TRY),
		calendar.MustParseDate("2026-02-10"),
		PaymentMethodCash,
		"february dues",
		testPolicy(),
		calendar.MustParseDate("2026-02-14"),
	)
	require.NoError(t, err)
	return p
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func TestNewPayment(t *testing.T) {
	policy := testPolicy()
	today := calendar.MustParseDate("2026-02-14")
	tenantID, branchID, userID, memberID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	amount := valueobject.MustMoneyFromString("150.00", valueobject.TRY)

	t.Run("valid payment", func(t *testing.T) {
		p := newTestPayment(t)

		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, 1, p.Version)
		assert.False(t, p.IsCorrection)
		assert.False(t, p.IsCorrected)
		assert.Nil(t, p.CorrectedPaymentID)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "PaymentCreated", events[0].EventType())
	})

	t.Run("missing scope", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, branchID, userID, memberID, amount,
			today, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_SCOPE")
	})

	t.Run("missing member", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, uuid.Nil, amount,
			today, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_MEMBER")
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID,
			valueobject.Zero(valueobject.TRY), today, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID,
			valueobject.MustMoneyFromString("-10.00", valueobject.TRY),
			today, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("amount above limit", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID,
			valueobject.MustMoneyFromString("1000000.00", valueobject.TRY),
			today, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("amount exactly at limit passes", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID,
			valueobject.MustMoneyFromString("999999.99", valueobject.TRY),
			today, PaymentMethodCash, "", policy, today)
		assert.NoError(t, err)
	})

	t.Run("future date", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID, amount,
			calendar.MustParseDate("2026-02-15"), PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_DATE")
	})

	t.Run("paid today passes", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID, amount,
			today, PaymentMethodCash, "", policy, today)
		assert.NoError(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID, amount,
			calendar.Date{}, PaymentMethodCash, "", policy, today)
		assertDomainCode(t, err, "INVALID_DATE")
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := NewPayment(tenantID, branchID, userID, memberID, amount,
			today, PaymentMethod("BARTER"), "", policy, today)
		assertDomainCode(t, err, "INVALID_PAYMENT_METHOD")
	})

	t.Run("note too long", func(t *testing.T) {
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'x'
		}
		_, err := NewPayment(tenantID, branchID, userID, memberID, amount,
			today, PaymentMethodCash, string(long), policy, today)
		assertDomainCode(t, err, "INVALID_NOTE")
	})
}

func TestPayment_BuildCorrection(t *testing.T) {
	policy := testPolicy()
	today := calendar.MustParseDate("2026-02-14")

	t.Run("overrides apply and omissions fall back", func(t *testing.T) {
		original := newTestPayment(t)
		corrector := uuid.New()
		newAmount := valueobject.MustMoneyFromString("175.00", valueobject.TRY)

		correction, err := original.BuildCorrection(corrector, CorrectionInput{
			Amount: &newAmount,
			Reason: "typo in amount",
		}, policy, today)
		require.NoError(t, err)

		assert.True(t, correction.IsCorrection)
		assert.Equal(t, "175.00", correction.Amount.StringFixed(2))
		// untouched fields carry over from the original
		assert.Equal(t, original.PaidOn, correction.PaidOn)
		assert.Equal(t, original.PaymentMethod, correction.PaymentMethod)
		assert.Equal(t, original.Note, correction.Note)
		assert.Equal(t, original.MemberID, correction.MemberID)
		assert.Equal(t, original.BranchID, correction.BranchID)
		require.NotNil(t, correction.CorrectedPaymentID)
		assert.Equal(t, original.ID, *correction.CorrectedPaymentID)
		assert.Equal(t, "typo in amount", correction.CorrectionReason)
		assert.NotEqual(t, original.ID, correction.ID)

		// building the correction does not mutate the original
		assert.False(t, original.IsCorrected)

		events := correction.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "PaymentCorrected", events[0].EventType())
	})

	t.Run("all fields overridable", func(t *testing.T) {
		original := newTestPayment(t)
		amount := valueobject.MustMoneyFromString("99.00", valueobject.TRY)
		paidOn := calendar.MustParseDate("2026-01-31")
		method := PaymentMethodBankTransfer
		note := "moved to january"

		correction, err := original.BuildCorrection(uuid.New(), CorrectionInput{
			Amount:        &amount,
			PaidOn:        &paidOn,
			PaymentMethod: &method,
			Note:          &note,
			Reason:        "wrong month",
		}, policy, today)
		require.NoError(t, err)

		assert.Equal(t, "99.00", correction.Amount.StringFixed(2))
		assert.Equal(t, paidOn, correction.PaidOn)
		assert.Equal(t, method, correction.PaymentMethod)
		assert.Equal(t, note, correction.Note)
	})

	t.Run("correction of a correction rejected", func(t *testing.T) {
		original := newTestPayment(t)
		correction, err := original.BuildCorrection(uuid.New(), CorrectionInput{Reason: "first"}, policy, today)
		require.NoError(t, err)

		_, err = correction.BuildCorrection(uuid.New(), CorrectionInput{Reason: "second"}, policy, today)
		assertDomainCode(t, err, "NOT_CORRECTABLE")
	})

	t.Run("already corrected rejected", func(t *testing.T) {
		original := newTestPayment(t)
		require.NoError(t, original.MarkCorrected())

		_, err := original.BuildCorrection(uuid.New(), CorrectionInput{Reason: "again"}, policy, today)
		assert.ErrorIs(t, err, shared.ErrAlreadyCorrected)
	})

	t.Run("invalid override rejected", func(t *testing.T) {
		original := newTestPayment(t)
		future := calendar.MustParseDate("2026-03-01")

		_, err := original.BuildCorrection(uuid.New(), CorrectionInput{
			PaidOn: &future,
			Reason: "oops",
		}, policy, today)
		assertDomainCode(t, err, "INVALID_DATE")
	})

	t.Run("missing corrector rejected", func(t *testing.T) {
		original := newTestPayment(t)
		_, err := original.BuildCorrection(uuid.Nil, CorrectionInput{Reason: "r"}, policy, today)
		assertDomainCode(t, err, "INVALID_SCOPE")
	})
}

func TestPayment_MarkCorrected(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.MarkCorrected())
	assert.True(t, p.IsCorrected)
	assert.Equal(t, 2, p.Version)

	assert.ErrorIs(t, p.MarkCorrected(), shared.ErrAlreadyCorrected)
	assert.Equal(t, 2, p.Version)
}

func TestPayment_IsDeletable(t *testing.T) {
	original := newTestPayment(t)
	assert.True(t, original.IsDeletable())

	correction, err := original.BuildCorrection(uuid.New(), CorrectionInput{Reason: "r"},
		testPolicy(), calendar.MustParseDate("2026-02-14"))
	require.NoError(t, err)
	assert.False(t, correction.IsDeletable())

	require.NoError(t, original.MarkCorrected())
	assert.False(t, original.IsDeletable())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	for _, m := range AllPaymentMethods {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, PaymentMethod("").IsValid())
	assert.False(t, PaymentMethod("cash").IsValid())
}
