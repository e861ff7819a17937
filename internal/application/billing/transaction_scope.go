package billing

import (
	"context"

	"github.com/gymops/backend/internal/domain/billing"
)

// TransactionScope provides transactional access to the billing repositories.
// The correction algorithm's two writes (insert correction, compare-and-swap
// the original) and the in-transaction month-lock re-check all run through a
// single scope execution, so they commit together or not at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() billing.PaymentRepository
	// MonthLockRepo returns the month lock repository scoped to the current transaction
	MonthLockRepo() billing.MonthLockRepository
	// ProductSaleRepo returns the product sale repository scoped to the current transaction
	ProductSaleRepo() billing.ProductSaleRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Intended for tests.
type NoOpTransactionScope struct {
	Payments     billing.PaymentRepository
	MonthLocks   billing.MonthLockRepository
	ProductSales billing.ProductSaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	payments billing.PaymentRepository,
	monthLocks billing.MonthLockRepository,
	productSales billing.ProductSaleRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		Payments:     payments,
		MonthLocks:   monthLocks,
		ProductSales: productSales,
	}
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(noOpRepositories{scope: s})
}

type noOpRepositories struct {
	scope *NoOpTransactionScope
}

func (r noOpRepositories) PaymentRepo() billing.PaymentRepository {
	return r.scope.Payments
}

func (r noOpRepositories) MonthLockRepo() billing.MonthLockRepository {
	return r.scope.MonthLocks
}

func (r noOpRepositories) ProductSaleRepo() billing.ProductSaleRepository {
	return r.scope.ProductSales
}

// Ensure NoOpTransactionScope implements TransactionScope
var _ TransactionScope = (*NoOpTransactionScope)(nil)
