package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// PaymentCreatedEvent is raised when a new membership payment is recorded
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID       `json:"payment_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	MemberID      uuid.UUID       `json:"member_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaidOn        calendar.Date   `json:"paid_on"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// EventType returns the event type name
func (e *PaymentCreatedEvent) EventType() string {
	return "PaymentCreated"
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentCreated", "Payment", p.ID, p.TenantID),
		PaymentID:       p.ID,
		BranchID:        p.BranchID,
		MemberID:        p.MemberID,
		Amount:          p.Amount,
		PaidOn:          p.PaidOn,
		PaymentMethod:   p.PaymentMethod,
	}
}

// PaymentCorrectedEvent is raised when a correction row supersedes an original payment
type PaymentCorrectedEvent struct {
	shared.BaseDomainEvent
	CorrectionID   uuid.UUID       `json:"correction_id"`
	OriginalID     uuid.UUID       `json:"original_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	MemberID       uuid.UUID       `json:"member_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	NewAmount      decimal.Decimal `json:"new_amount"`
	OriginalPaidOn calendar.Date   `json:"original_paid_on"`
	NewPaidOn      calendar.Date   `json:"new_paid_on"`
	Reason         string          `json:"reason"`
}

// EventType returns the event type name
func (e *PaymentCorrectedEvent) EventType() string {
	return "PaymentCorrected"
}

// NewPaymentCorrectedEvent creates a new PaymentCorrectedEvent
func NewPaymentCorrectedEvent(correction, original *Payment) *PaymentCorrectedEvent {
	return &PaymentCorrectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentCorrected", "Payment", correction.ID, correction.TenantID),
		CorrectionID:    correction.ID,
		OriginalID:      original.ID,
		BranchID:        correction.BranchID,
		MemberID:        correction.MemberID,
		OriginalAmount:  original.Amount,
		NewAmount:       correction.Amount,
		OriginalPaidOn:  original.PaidOn,
		NewPaidOn:       correction.PaidOn,
		Reason:          correction.CorrectionReason,
	}
}

// ProductSaleRecordedEvent is raised when a product sale is recorded
type ProductSaleRecordedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// EventType returns the event type name
func (e *ProductSaleRecordedEvent) EventType() string {
	return "ProductSaleRecorded"
}

// NewProductSaleRecordedEvent creates a new ProductSaleRecordedEvent
func NewProductSaleRecordedEvent(s *ProductSale) *ProductSaleRecordedEvent {
	return &ProductSaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProductSaleRecorded", "ProductSale", s.ID, s.TenantID),
		SaleID:          s.ID,
		BranchID:        s.BranchID,
		ProductID:       s.ProductID,
		Quantity:        s.Quantity,
		TotalAmount:     s.TotalAmount,
		PaymentMethod:   s.PaymentMethod,
	}
}

// MonthLockedEvent is raised when a revenue month is locked
type MonthLockedEvent struct {
	shared.BaseDomainEvent
	BranchID uuid.UUID         `json:"branch_id"`
	Month    calendar.MonthKey `json:"month"`
	LockedBy uuid.UUID         `json:"locked_by"`
}

// EventType returns the event type name
func (e *MonthLockedEvent) EventType() string {
	return "MonthLocked"
}

// NewMonthLockedEvent creates a new MonthLockedEvent
func NewMonthLockedEvent(l *RevenueMonthLock) *MonthLockedEvent {
	return &MonthLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MonthLocked", "RevenueMonthLock", l.ID, l.TenantID),
		BranchID:        l.BranchID,
		Month:           l.Month,
		LockedBy:        l.LockedBy,
	}
}

// MonthUnlockedEvent is raised when a revenue month is reopened
type MonthUnlockedEvent struct {
	shared.BaseDomainEvent
	BranchID uuid.UUID         `json:"branch_id"`
	Month    calendar.MonthKey `json:"month"`
}

// EventType returns the event type name
func (e *MonthUnlockedEvent) EventType() string {
	return "MonthUnlocked"
}

// NewMonthUnlockedEvent creates a new MonthUnlockedEvent
func NewMonthUnlockedEvent(l *RevenueMonthLock) *MonthUnlockedEvent {
	return &MonthUnlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MonthUnlocked", "RevenueMonthLock", l.ID, l.TenantID),
		BranchID:        l.BranchID,
		Month:           l.Month,
	}
}
