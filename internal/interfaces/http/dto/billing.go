package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// CreatePaymentRequest is the request body for recording a membership
// payment. Amount is a decimal string; PaidOn is a YYYY-MM-DD business date.
type CreatePaymentRequest struct {
	BranchID      uuid.UUID `json:"branch_id" binding:"required"`
	MemberID      uuid.UUID `json:"member_id" binding:"required"`
	Amount        string    `json:"amount" binding:"required"`
	PaidOn        string    `json:"paid_on" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required,paymentmethod"`
	Note          string    `json:"note"`
}

// CorrectPaymentRequest is the request body for correcting a payment.
// Version must echo the version the caller last read. Omitted optional
// fields keep the original payment's values.
type CorrectPaymentRequest struct {
	Version       int     `json:"version" binding:"required"`
	Amount        *string `json:"amount"`
	PaidOn        *string `json:"paid_on"`
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
	Reason        string  `json:"reason" binding:"required"`
}

// CreateProductSaleRequest is the request body for recording a product sale.
// SoldAt is an optional RFC 3339 instant; omitted means now.
type CreateProductSaleRequest struct {
	BranchID      uuid.UUID  `json:"branch_id" binding:"required"`
	ProductID     uuid.UUID  `json:"product_id" binding:"required"`
	ProductName   string     `json:"product_name" binding:"required"`
	MemberID      *uuid.UUID `json:"member_id"`
	Quantity      int64      `json:"quantity" binding:"required,min=1"`
	UnitPrice     string     `json:"unit_price" binding:"required"`
	PaymentMethod string     `json:"payment_method" binding:"required,paymentmethod"`
	SoldAt        string     `json:"sold_at"`
	Note          string     `json:"note"`
}

// MonthLockRequest is the request body for locking a revenue month
type MonthLockRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Month    string    `json:"month" binding:"required"`
}

// PaymentResponse is the API view of a payment ledger row
type PaymentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	BranchID           uuid.UUID  `json:"branch_id"`
	MemberID           uuid.UUID  `json:"member_id"`
	Amount             string     `json:"amount"`
	PaidOn             string     `json:"paid_on"`
	PaymentMethod      string     `json:"payment_method"`
	Note               string     `json:"note"`
	IsCorrection       bool       `json:"is_correction"`
	CorrectedPaymentID *uuid.UUID `json:"corrected_payment_id,omitempty"`
	CorrectionReason   string     `json:"correction_reason,omitempty"`
	IsCorrected        bool       `json:"is_corrected"`
	Version            int        `json:"version"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewPaymentResponse maps a payment to its API view
func NewPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		BranchID:           p.BranchID,
		MemberID:           p.MemberID,
		Amount:             p.Amount.StringFixed(2),
		PaidOn:             p.PaidOn.String(),
		PaymentMethod:      p.PaymentMethod.String(),
		Note:               p.Note,
		IsCorrection:       p.IsCorrection,
		CorrectedPaymentID: p.CorrectedPaymentID,
		CorrectionReason:   p.CorrectionReason,
		IsCorrected:        p.IsCorrected,
		Version:            p.Version,
		CreatedAt:          p.CreatedAt,
	}
}

// NewPaymentResponseList maps a slice of payments to their API views
func NewPaymentResponseList(payments []billing.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}

// CorrectPaymentResponse wraps the correction row together with the advisory
// warning for old payments
type CorrectPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Warning string          `json:"warning,omitempty"`
}

// ProductSaleResponse is the API view of a product sale
type ProductSaleResponse struct {
	ID            uuid.UUID  `json:"id"`
	BranchID      uuid.UUID  `json:"branch_id"`
	ProductID     uuid.UUID  `json:"product_id"`
	ProductName   string     `json:"product_name"`
	MemberID      *uuid.UUID `json:"member_id,omitempty"`
	Quantity      int64      `json:"quantity"`
	UnitPrice     string     `json:"unit_price"`
	TotalAmount   string     `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	SoldAt        time.Time  `json:"sold_at"`
	Note          string     `json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewProductSaleResponse maps a product sale to its API view
func NewProductSaleResponse(s *billing.ProductSale) ProductSaleResponse {
	return ProductSaleResponse{
		ID:            s.ID,
		BranchID:      s.BranchID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		MemberID:      s.MemberID,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice.StringFixed(2),
		TotalAmount:   s.TotalAmount.StringFixed(2),
		PaymentMethod: s.PaymentMethod.String(),
		SoldAt:        s.SoldAt,
		Note:          s.Note,
		CreatedAt:     s.CreatedAt,
	}
}

// NewProductSaleResponseList maps a slice of sales to their API views
func NewProductSaleResponseList(sales []billing.ProductSale) []ProductSaleResponse {
	out := make([]ProductSaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, NewProductSaleResponse(&sales[i]))
	}
	return out
}

// MonthLockResponse is the API view of a revenue month lock
type MonthLockResponse struct {
	ID       uuid.UUID `json:"id"`
	BranchID uuid.UUID `json:"branch_id"`
	Month    string    `json:"month"`
	LockedBy uuid.UUID `json:"locked_by"`
	LockedAt time.Time `json:"locked_at"`
}

// NewMonthLockResponse maps a month lock to its API view
func NewMonthLockResponse(l *billing.RevenueMonthLock) MonthLockResponse {
	return MonthLockResponse{
		ID:       l.ID,
		BranchID: l.BranchID,
		Month:    l.Month.String(),
		LockedBy: l.LockedBy,
		LockedAt: l.CreatedAt,
	}
}

// NewMonthLockResponseList maps a slice of locks to their API views
func NewMonthLockResponseList(locks []billing.RevenueMonthLock) []MonthLockResponse {
	out := make([]MonthLockResponse, 0, len(locks))
	for i := range locks {
		out = append(out, NewMonthLockResponse(&locks[i]))
	}
	return out
}

// MonthLockStatusResponse reports one month's lock state
type MonthLockStatusResponse struct {
	BranchID uuid.UUID `json:"branch_id"`
	Month    string    `json:"month"`
	Locked   bool      `json:"locked"`
}

// ParseOptionalDate parses a YYYY-MM-DD query or body value, returning nil
// for the empty string
func ParseOptionalDate(s string) (*calendar.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
