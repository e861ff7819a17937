package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

func TestNewProductSale(t *testing.T) {
	policy := testPolicy()
	tenantID, branchID, userID, productID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	unitPrice := valueobject.MustMoneyFromString("24.50", valueobject.TRY)
	soldAt := time.Date(2026, 2, 13, 21, 35, 0, 0, time.UTC)

	t.Run("valid sale derives total", func(t *testing.T) {
		memberID := uuid.New()
		sale, err := NewProductSale(tenantID, branchID, userID, productID,
			"Protein Bar", &memberID, 3, unitPrice, PaymentMethodCreditCard,
			soldAt, "", policy)
		require.NoError(t, err)

		assert.Equal(t, "73.50", sale.TotalAmount.StringFixed(2))
		assert.Equal(t, "24.50", sale.UnitPrice.StringFixed(2))
		assert.Equal(t, int64(3), sale.Quantity)
		assert.Equal(t, soldAt, sale.SoldAt)
		assert.Equal(t, time.UTC, sale.SoldAt.Location())

		events := sale.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "ProductSaleRecorded", events[0].EventType())
	})

	t.Run("walk-in sale has no member", func(t *testing.T) {
		sale, err := NewProductSale(tenantID, branchID, userID, productID,
			"Water", nil, 1, unitPrice, PaymentMethodCash, soldAt, "", policy)
		require.NoError(t, err)
		assert.Nil(t, sale.MemberID)
	})

	t.Run("sold at is normalized to UTC", func(t *testing.T) {
		ist, err := time.LoadLocation("Europe/Istanbul")
		require.NoError(t, err)
		local := time.Date(2026, 2, 14, 0, 35, 0, 0, ist)

		sale, err := NewProductSale(tenantID, branchID, userID, productID,
			"Towel", nil, 1, unitPrice, PaymentMethodCash, local, "", policy)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, sale.SoldAt.Location())
		assert.True(t, sale.SoldAt.Equal(local))
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"Bar", nil, 0, unitPrice, PaymentMethodCash, soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_QUANTITY")
	})

	t.Run("zero unit price", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"Bar", nil, 1, valueobject.Zero(valueobject.TRY), PaymentMethodCash, soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("total above limit", func(t *testing.T) {
		big := valueobject.MustMoneyFromString("500000.00", valueobject.TRY)
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"Membership Bundle", nil, 3, big, PaymentMethodCash, soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, uuid.Nil,
			"Bar", nil, 1, unitPrice, PaymentMethodCash, soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_PRODUCT")
	})

	t.Run("empty product name", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"", nil, 1, unitPrice, PaymentMethodCash, soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_PRODUCT")
	})

	t.Run("zero sold at", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"Bar", nil, 1, unitPrice, PaymentMethodCash, time.Time{}, "", policy)
		assertDomainCode(t, err, "INVALID_DATE")
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := NewProductSale(tenantID, branchID, userID, productID,
			"Bar", nil, 1, unitPrice, PaymentMethod("IOU"), soldAt, "", policy)
		assertDomainCode(t, err, "INVALID_PAYMENT_METHOD")
	})
}
