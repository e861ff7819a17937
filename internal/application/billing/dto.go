package billing

import (
	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// CreatePaymentRequest carries the input for recording a membership payment.
// Amount arrives as a decimal string so no float ever touches money.
type CreatePaymentRequest struct {
	TenantID      uuid.UUID
	BranchID      uuid.UUID
	UserID        uuid.UUID
	MemberID      uuid.UUID
	Amount        string
	PaidOn        calendar.Date
	PaymentMethod billing.PaymentMethod
	Note          string
}

// CorrectPaymentRequest carries the input for correcting a payment. Nil
// optional fields keep the original's values. Version is the version the
// caller last read; a mismatch with the stored version rejects the request.
type CorrectPaymentRequest struct {
	TenantID      uuid.UUID
	UserID        uuid.UUID
	PaymentID     uuid.UUID
	Version       int
	Amount        *string
	PaidOn        *calendar.Date
	PaymentMethod *billing.PaymentMethod
	Note          *string
	Reason        string
}

// CorrectPaymentResult is the outcome of a successful correction. Warning is
// set when the original payment is old enough that the caller should confirm
// the user really meant to touch it; it is advisory, never an error.
type CorrectPaymentResult struct {
	Payment *billing.Payment
	Warning string
}

// ListPaymentsRequest carries list filters and pagination
type ListPaymentsRequest struct {
	TenantID           uuid.UUID
	BranchID           *uuid.UUID
	MemberID           *uuid.UUID
	PaymentMethod      *billing.PaymentMethod
	FromDate           *calendar.Date
	ToDate             *calendar.Date
	IncludeCorrections bool
	Page               int
	PageSize           int
}

// CreateProductSaleRequest carries the input for recording a product sale
type CreateProductSaleRequest struct {
	TenantID      uuid.UUID
	BranchID      uuid.UUID
	UserID        uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	MemberID      *uuid.UUID
	Quantity      int64
	UnitPrice     string
	PaymentMethod billing.PaymentMethod
	SoldAt        string // RFC 3339 instant
	Note          string
}

// ListProductSalesRequest carries list filters and pagination
type ListProductSalesRequest struct {
	TenantID      uuid.UUID
	BranchID      *uuid.UUID
	ProductID     *uuid.UUID
	MemberID      *uuid.UUID
	PaymentMethod *billing.PaymentMethod
	FromDate      *calendar.Date
	ToDate        *calendar.Date
	Page          int
	PageSize      int
}
