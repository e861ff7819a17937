package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/billing/acl"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if p := args.Get(0); p != nil {
		return p.(*billing.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	if p := args.Get(0); p != nil {
		return p.([]billing.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) MarkCorrected(ctx context.Context, tenantID, id uuid.UUID, expectedVersion int) error {
	args := m.Called(ctx, tenantID, id, expectedVersion)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockMonthLockRepository struct {
	mock.Mock
}

func (m *MockMonthLockRepository) Create(ctx context.Context, lock *billing.RevenueMonthLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

func (m *MockMonthLockRepository) Find(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (*billing.RevenueMonthLock, error) {
	args := m.Called(ctx, tenantID, branchID, month)
	if l := args.Get(0); l != nil {
		return l.(*billing.RevenueMonthLock), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMonthLockRepository) IsLocked(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error) {
	args := m.Called(ctx, tenantID, branchID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockMonthLockRepository) Delete(ctx context.Context, tenantID, branchID uuid.UUID, month calendar.MonthKey) (bool, error) {
	args := m.Called(ctx, tenantID, branchID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockMonthLockRepository) FindAllForBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]billing.RevenueMonthLock, error) {
	args := m.Called(ctx, tenantID, branchID)
	if l := args.Get(0); l != nil {
		return l.([]billing.RevenueMonthLock), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProductSaleRepository struct {
	mock.Mock
}

func (m *MockProductSaleRepository) Create(ctx context.Context, sale *billing.ProductSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockProductSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.ProductSale, error) {
	args := m.Called(ctx, tenantID, id)
	if s := args.Get(0); s != nil {
		return s.(*billing.ProductSale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.ProductSaleFilter) ([]billing.ProductSale, error) {
	args := m.Called(ctx, tenantID, filter)
	if s := args.Get(0); s != nil {
		return s.([]billing.ProductSale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.ProductSaleFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockMemberDirectory struct {
	mock.Mock
}

func (m *MockMemberDirectory) FindMemberRef(ctx context.Context, tenantID, memberID uuid.UUID) (*acl.MemberRef, error) {
	args := m.Called(ctx, tenantID, memberID)
	if r := args.Get(0); r != nil {
		return r.(*acl.MemberRef), args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}
