package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// PaymentModel is the persistence model for the Payment aggregate root.
// paid_on is a plain SQL date so revenue queries can group and range-filter
// on the business date directly.
type PaymentModel struct {
	TenantAggregateModel
	BranchID           uuid.UUID             `gorm:"type:uuid;not null;index:idx_payments_branch_paid_on,priority:1"`
	MemberID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	PaidOn             calendar.Date         `gorm:"type:date;not null;index:idx_payments_branch_paid_on,priority:2"`
	PaymentMethod      billing.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	Note               string                `gorm:"type:varchar(500)"`
	IsCorrection       bool                  `gorm:"not null;default:false"`
	CorrectedPaymentID *uuid.UUID            `gorm:"type:uuid;index"`
	CorrectionReason   string                `gorm:"type:varchar(500)"`
	IsCorrected        bool                  `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		BranchID:           m.BranchID,
		MemberID:           m.MemberID,
		Amount:             m.Amount,
		PaidOn:             m.PaidOn,
		PaymentMethod:      m.PaymentMethod,
		Note:               m.Note,
		IsCorrection:       m.IsCorrection,
		CorrectedPaymentID: m.CorrectedPaymentID,
		CorrectionReason:   m.CorrectionReason,
		IsCorrected:        m.IsCorrected,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.BranchID = p.BranchID
	m.MemberID = p.MemberID
	m.Amount = p.Amount
	m.PaidOn = p.PaidOn
	m.PaymentMethod = p.PaymentMethod
	m.Note = p.Note
	m.IsCorrection = p.IsCorrection
	m.CorrectedPaymentID = p.CorrectedPaymentID
	m.CorrectionReason = p.CorrectionReason
	m.IsCorrected = p.IsCorrected
}

// ProductSaleModel is the persistence model for the ProductSale aggregate
// root. sold_at stays a UTC timestamp; the tenant-local month boundaries are
// applied as instant ranges at query time.
type ProductSaleModel struct {
	TenantAggregateModel
	BranchID      uuid.UUID             `gorm:"type:uuid;not null;index:idx_product_sales_branch_sold_at,priority:1"`
	ProductID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductName   string                `gorm:"type:varchar(200);not null"`
	MemberID      *uuid.UUID            `gorm:"type:uuid;index"`
	Quantity      int64                 `gorm:"not null"`
	UnitPrice     decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	TotalAmount   decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	PaymentMethod billing.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	SoldAt        time.Time             `gorm:"not null;index:idx_product_sales_branch_sold_at,priority:2"`
	Note          string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProductSaleModel) TableName() string {
	return "product_sales"
}

// ToDomain converts the persistence model to a domain ProductSale entity.
func (m *ProductSaleModel) ToDomain() *billing.ProductSale {
	return &billing.ProductSale{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		BranchID:      m.BranchID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		MemberID:      m.MemberID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalAmount:   m.TotalAmount,
		PaymentMethod: m.PaymentMethod,
		SoldAt:        m.SoldAt.UTC(),
		Note:          m.Note,
	}
}

// FromDomain populates the persistence model from a domain ProductSale entity.
func (m *ProductSaleModel) FromDomain(s *billing.ProductSale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.BranchID = s.BranchID
	m.ProductID = s.ProductID
	m.ProductName = s.ProductName
	m.MemberID = s.MemberID
	m.Quantity = s.Quantity
	m.UnitPrice = s.UnitPrice
	m.TotalAmount = s.TotalAmount
	m.PaymentMethod = s.PaymentMethod
	m.SoldAt = s.SoldAt.UTC()
	m.Note = s.Note
}

// RevenueMonthLockModel is the persistence model for RevenueMonthLock. The
// unique index over tenant, branch and month makes concurrent lock attempts
// collapse to one row.
type RevenueMonthLockModel struct {
	BaseModel
	TenantID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_month_locks_scope,priority:1"`
	BranchID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_month_locks_scope,priority:2"`
	Month    calendar.MonthKey `gorm:"type:varchar(7);not null;uniqueIndex:idx_month_locks_scope,priority:3"`
	LockedBy uuid.UUID         `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (RevenueMonthLockModel) TableName() string {
	return "revenue_month_locks"
}

// ToDomain converts the persistence model to a domain RevenueMonthLock entity.
func (m *RevenueMonthLockModel) ToDomain() *billing.RevenueMonthLock {
	return &billing.RevenueMonthLock{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		BranchID:   m.BranchID,
		Month:      m.Month,
		LockedBy:   m.LockedBy,
	}
}

// FromDomain populates the persistence model from a domain RevenueMonthLock entity.
func (m *RevenueMonthLockModel) FromDomain(l *billing.RevenueMonthLock) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.BranchID = l.BranchID
	m.Month = l.Month
	m.LockedBy = l.LockedBy
}

// MemberModel is the minimal members table billing reads through its
// anti-corruption layer. The membership context owns the full schema; only
// the columns needed for existence checks and display names appear here.
type MemberModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}
