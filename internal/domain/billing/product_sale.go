package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

// ProductSale records an over-the-counter product sale at a branch. Unlike
// payments there is no correction mechanism: a wrong sale is deleted and
// recreated, with both operations gated by the month lock on the sale's
// tenant-local month.
type ProductSale struct {
	shared.TenantAggregateRoot
	BranchID      uuid.UUID       `json:"branch_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"` // denormalized for display
	MemberID      *uuid.UUID      `json:"member_id"`    // optional: walk-in sales have none
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	SoldAt        time.Time       `json:"sold_at"` // UTC instant
	Note          string          `json:"note"`
}

// NewProductSale creates a new product sale. The total is derived from unit
// price and quantity through Money math; callers never supply it.
func NewProductSale(
	tenantID, branchID, createdBy, productID uuid.UUID,
	productName string,
	memberID *uuid.UUID,
	quantity int64,
	unitPrice valueobject.Money,
	method PaymentMethod,
	soldAt time.Time,
	note string,
	policy PaymentPolicy,
) (*ProductSale, error) {
	if tenantID == uuid.Nil || branchID == uuid.Nil || createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Tenant, branch and user are required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price must be positive")
	}
	total := unitPrice.MultiplyByInt(quantity)
	if err := validateAmount(total.Amount(), policy); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if soldAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale time is required")
	}
	if err := validateNote(note, policy); err != nil {
		return nil, err
	}

	s := &ProductSale{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		BranchID:            branchID,
		ProductID:           productID,
		ProductName:         productName,
		MemberID:            memberID,
		Quantity:            quantity,
		UnitPrice:           unitPrice.Amount(),
		TotalAmount:         total.Amount(),
		PaymentMethod:       method,
		SoldAt:              soldAt.UTC(),
		Note:                note,
	}
	s.AddDomainEvent(NewProductSaleRecordedEvent(s))
	return s, nil
}
