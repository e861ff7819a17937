package billing

import (
	"context"

	"go.uber.org/zap"

	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared"
)

// AuditLogHandler writes an audit log line for every billing domain event.
// Corrections and month locks are the operations finance teams get asked
// about after the fact, so each event lands in the structured log with its
// full business context. Logging only; no consistency depends on it.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		"PaymentCreated",
		"PaymentCorrected",
		"ProductSaleRecorded",
		"MonthLocked",
		"MonthUnlocked",
	}
}

// Handle writes the audit entry for a billing event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *billing.PaymentCreatedEvent:
		fields = append(fields,
			zap.String("branch_id", e.BranchID.String()),
			zap.String("member_id", e.MemberID.String()),
			zap.String("amount", e.Amount.StringFixed(2)),
			zap.String("paid_on", e.PaidOn.String()),
			zap.String("payment_method", string(e.PaymentMethod)),
		)
		h.logger.Info("payment recorded", fields...)
	case *billing.PaymentCorrectedEvent:
		fields = append(fields,
			zap.String("original_id", e.OriginalID.String()),
			zap.String("original_amount", e.OriginalAmount.StringFixed(2)),
			zap.String("new_amount", e.NewAmount.StringFixed(2)),
			zap.String("original_paid_on", e.OriginalPaidOn.String()),
			zap.String("new_paid_on", e.NewPaidOn.String()),
			zap.String("reason", e.Reason),
		)
		h.logger.Info("payment corrected", fields...)
	case *billing.ProductSaleRecordedEvent:
		fields = append(fields,
			zap.String("branch_id", e.BranchID.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.Int64("quantity", e.Quantity),
			zap.String("total_amount", e.TotalAmount.StringFixed(2)),
		)
		h.logger.Info("product sale recorded", fields...)
	case *billing.MonthLockedEvent:
		fields = append(fields,
			zap.String("branch_id", e.BranchID.String()),
			zap.String("month", e.Month.String()),
			zap.String("locked_by", e.LockedBy.String()),
		)
		h.logger.Info("revenue month locked", fields...)
	case *billing.MonthUnlockedEvent:
		fields = append(fields,
			zap.String("branch_id", e.BranchID.String()),
			zap.String("month", e.Month.String()),
		)
		h.logger.Warn("revenue month unlocked", fields...)
	default:
		h.logger.Info("billing event", append(fields, zap.String("event_type", event.EventType()))...)
	}

	return nil
}

// Ensure AuditLogHandler implements shared.EventHandler
var _ shared.EventHandler = (*AuditLogHandler)(nil)
