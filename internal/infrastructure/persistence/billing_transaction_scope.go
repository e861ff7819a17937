package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/gymops/backend/internal/application/billing"
	"github.com/gymops/backend/internal/domain/billing"
)

// GormTransactionScope implements the billing TransactionScope using GORM
// transactions. The correction algorithm's paired writes commit through one
// scope execution or not at all.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// PaymentRepo returns the payment repository scoped to the current transaction
func (r *gormTransactionalRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// MonthLockRepo returns the month lock repository scoped to the current transaction
func (r *gormTransactionalRepositories) MonthLockRepo() billing.MonthLockRepository {
	return NewGormMonthLockRepository(r.tx)
}

// ProductSaleRepo returns the product sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductSaleRepo() billing.ProductSaleRepository {
	return NewGormProductSaleRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
