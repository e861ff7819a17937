package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

// ProductSaleService records over-the-counter product sales. Sales have no
// correction mechanism; a wrong sale is deleted and recreated, and both
// writes are gated by the month lock on the sale's tenant-local month.
type ProductSaleService struct {
	sales      billing.ProductSaleRepository
	monthLocks billing.MonthLockRepository
	txScope    TransactionScope
	events     shared.EventPublisher
	cal        *calendar.Calendar
	policy     billing.PaymentPolicy
}

// NewProductSaleService creates a new ProductSaleService
func NewProductSaleService(
	sales billing.ProductSaleRepository,
	monthLocks billing.MonthLockRepository,
	txScope TransactionScope,
	events shared.EventPublisher,
	cal *calendar.Calendar,
	policy billing.PaymentPolicy,
) *ProductSaleService {
	return &ProductSaleService{
		sales:      sales,
		monthLocks: monthLocks,
		txScope:    txScope,
		events:     events,
		cal:        cal,
		policy:     policy,
	}
}

// CreateSale records a product sale
func (s *ProductSaleService) CreateSale(ctx context.Context, req CreateProductSaleRequest) (*billing.ProductSale, error) {
	if req.TenantID == uuid.Nil || req.BranchID == uuid.Nil || req.UserID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	unitPrice, err := valueobject.NewMoneyFromString(req.UnitPrice, s.policy.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price is not a valid decimal number")
	}

	soldAt := time.Now().UTC()
	if req.SoldAt != "" {
		soldAt, err = time.Parse(time.RFC3339, req.SoldAt)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Sale time must be an RFC 3339 timestamp")
		}
	}

	sale, err := billing.NewProductSale(
		req.TenantID, req.BranchID, req.UserID, req.ProductID,
		req.ProductName, req.MemberID, req.Quantity, unitPrice,
		req.PaymentMethod, soldAt, req.Note, s.policy,
	)
	if err != nil {
		return nil, err
	}

	month := s.cal.MonthOf(sale.SoldAt)
	if err := s.ensureMonthOpen(ctx, s.monthLocks, req.TenantID, req.BranchID, month); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.ensureMonthOpen(ctx, repos.MonthLockRepo(), req.TenantID, req.BranchID, month); err != nil {
			return err
		}
		return repos.ProductSaleRepo().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, sale.GetDomainEvents()...)
		sale.ClearDomainEvents()
	}
	return sale, nil
}

// GetSale returns a sale by ID within the tenant's scope
func (s *ProductSaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*billing.ProductSale, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product sale: %w", err)
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product sale not found")
	}
	return sale, nil
}

// ListSales returns a page of sales matching the filters. Date filters are
// tenant-local business days widened to UTC instant ranges.
func (s *ProductSaleService) ListSales(ctx context.Context, req ListProductSalesRequest) (*shared.Paginated[billing.ProductSale], error) {
	if req.TenantID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	filter := billing.ProductSaleFilter{
		BranchID:      req.BranchID,
		ProductID:     req.ProductID,
		MemberID:      req.MemberID,
		PaymentMethod: req.PaymentMethod,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}
	if req.FromDate != nil {
		start, _ := s.cal.DayRange(*req.FromDate)
		filter.From = &start
	}
	if req.ToDate != nil {
		_, end := s.cal.DayRange(*req.ToDate)
		filter.To = &end
	}

	items, err := s.sales.FindAllForTenant(ctx, req.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list product sales: %w", err)
	}
	total, err := s.sales.CountForTenant(ctx, req.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count product sales: %w", err)
	}
	page := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &page, nil
}

// DeleteSale removes a sale from an open month
func (s *ProductSaleService) DeleteSale(ctx context.Context, tenantID, userID, saleID uuid.UUID) error {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return fmt.Errorf("failed to load product sale: %w", err)
	}
	if sale == nil {
		return shared.NewDomainError("NOT_FOUND", "Product sale not found")
	}

	month := s.cal.MonthOf(sale.SoldAt)
	if err := s.ensureMonthOpen(ctx, s.monthLocks, tenantID, sale.BranchID, month); err != nil {
		return err
	}
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.ensureMonthOpen(ctx, repos.MonthLockRepo(), tenantID, sale.BranchID, month); err != nil {
			return err
		}
		return repos.ProductSaleRepo().DeleteForTenant(ctx, tenantID, saleID)
	})
}

func (s *ProductSaleService) ensureMonthOpen(ctx context.Context, locks billing.MonthLockRepository, tenantID, branchID uuid.UUID, month calendar.MonthKey) error {
	locked, err := locks.IsLocked(ctx, tenantID, branchID, month)
	if err != nil {
		return fmt.Errorf("failed to check month lock: %w", err)
	}
	if locked {
		return shared.NewDomainError("MONTH_LOCKED", fmt.Sprintf("Month %s is locked for changes", month))
	}
	return nil
}
