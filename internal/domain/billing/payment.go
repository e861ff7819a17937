package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
)

// PaymentMethod represents how a membership payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// AllPaymentMethods lists every method in a stable order, used by the
// payment-method revenue breakdown to zero-fill absent methods.
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodBankTransfer,
	PaymentMethodCheck,
	PaymentMethodOther,
}

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodBankTransfer,
		PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentPolicy carries the configured limits applied to payment amounts and
// notes. It is built once from configuration and passed into constructors.
type PaymentPolicy struct {
	MaxAmount     decimal.Decimal
	MaxNoteLength int
	Currency      valueobject.Currency
}

// Payment is the aggregate root of the payment ledger. A Payment row is
// immutable once written: a correction never rewrites the original's money,
// date, method or note. The only mutation an original ever sees is the
// IsCorrected flag flipping to true together with a version bump, both under
// a compare-and-swap on the version column.
type Payment struct {
	shared.TenantAggregateRoot
	BranchID           uuid.UUID       `json:"branch_id"`
	MemberID           uuid.UUID       `json:"member_id"`
	Amount             decimal.Decimal `json:"amount"`
	PaidOn             calendar.Date   `json:"paid_on"` // business date, not an instant
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	Note               string          `json:"note"`
	IsCorrection       bool            `json:"is_correction"`
	CorrectedPaymentID *uuid.UUID      `json:"corrected_payment_id"`
	CorrectionReason   string          `json:"correction_reason"`
	IsCorrected        bool            `json:"is_corrected"`
}

// NewPayment creates a new membership payment.
// today is the current civil date at UTC; paidOn may not be after it.
func NewPayment(
	tenantID, branchID, createdBy, memberID uuid.UUID,
	amount valueobject.Money,
	paidOn calendar.Date,
	method PaymentMethod,
	note string,
	policy PaymentPolicy,
	today calendar.Date,
) (*Payment, error) {
	if tenantID == uuid.Nil || branchID == uuid.Nil || createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Tenant, branch and user are required")
	}
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if err := validateAmount(amount.Amount(), policy); err != nil {
		return nil, err
	}
	if err := validatePaidOn(paidOn, today); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if err := validateNote(note, policy); err != nil {
		return nil, err
	}

	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		BranchID:            branchID,
		MemberID:            memberID,
		Amount:              amount.Amount(),
		PaidOn:              paidOn,
		PaymentMethod:       method,
		Note:                note,
	}
	p.AddDomainEvent(NewPaymentCreatedEvent(p))
	return p, nil
}

// CorrectionInput carries the caller-supplied overrides for a correction.
// Nil fields fall back to the original payment's values, never to null.
type CorrectionInput struct {
	Amount        *valueobject.Money
	PaidOn        *calendar.Date
	PaymentMethod *PaymentMethod
	Note          *string
	Reason        string
}

// BuildCorrection creates the correction row for this payment. It does not
// touch the original; the caller commits the correction insert and the
// original's MarkCorrected compare-and-swap in one transaction.
func (p *Payment) BuildCorrection(
	correctedBy uuid.UUID,
	in CorrectionInput,
	policy PaymentPolicy,
	today calendar.Date,
) (*Payment, error) {
	if p.IsCorrection {
		return nil, shared.NewDomainError("NOT_CORRECTABLE", "A correction cannot itself be corrected")
	}
	if p.IsCorrected {
		return nil, shared.ErrAlreadyCorrected
	}
	if correctedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Correcting user is required")
	}

	amount := p.Amount
	if in.Amount != nil {
		if err := validateAmount(in.Amount.Amount(), policy); err != nil {
			return nil, err
		}
		amount = in.Amount.Amount()
	}
	paidOn := p.PaidOn
	if in.PaidOn != nil {
		if err := validatePaidOn(*in.PaidOn, today); err != nil {
			return nil, err
		}
		paidOn = *in.PaidOn
	}
	method := p.PaymentMethod
	if in.PaymentMethod != nil {
		if !in.PaymentMethod.IsValid() {
			return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
		}
		method = *in.PaymentMethod
	}
	note := p.Note
	if in.Note != nil {
		if err := validateNote(*in.Note, policy); err != nil {
			return nil, err
		}
		note = *in.Note
	}
	if len(in.Reason) > policy.MaxNoteLength {
		return nil, shared.NewDomainError("INVALID_NOTE",
			fmt.Sprintf("Correction reason cannot exceed %d characters", policy.MaxNoteLength))
	}

	originalID := p.ID
	correction := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(p.TenantID, correctedBy),
		BranchID:            p.BranchID,
		MemberID:            p.MemberID,
		Amount:              amount,
		PaidOn:              paidOn,
		PaymentMethod:       method,
		Note:                note,
		IsCorrection:        true,
		CorrectedPaymentID:  &originalID,
		CorrectionReason:    in.Reason,
	}
	correction.AddDomainEvent(NewPaymentCorrectedEvent(correction, p))
	return correction, nil
}

// MarkCorrected flips the superseded flag on the original. Persistence must
// pair this with a version compare-and-swap; the in-memory version bump here
// mirrors what the conditional UPDATE does.
func (p *Payment) MarkCorrected() error {
	if p.IsCorrected {
		return shared.ErrAlreadyCorrected
	}
	p.IsCorrected = true
	p.IncrementVersion()
	return nil
}

// IsDeletable reports whether the payment may be removed from the ledger.
// Corrected originals and correction rows form the audit trail and stay.
func (p *Payment) IsDeletable() bool {
	return !p.IsCorrected && !p.IsCorrection
}

func validateAmount(amount decimal.Decimal, policy PaymentPolicy) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if amount.GreaterThan(policy.MaxAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Amount cannot exceed %s", policy.MaxAmount.StringFixed(2)))
	}
	return nil
}

func validatePaidOn(paidOn, today calendar.Date) error {
	if paidOn.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	if paidOn.After(today) {
		return shared.NewDomainError("INVALID_DATE", "Payment date cannot be in the future")
	}
	return nil
}

func validateNote(note string, policy PaymentPolicy) error {
	if len(note) > policy.MaxNoteLength {
		return shared.NewDomainError("INVALID_NOTE",
			fmt.Sprintf("Note cannot exceed %d characters", policy.MaxNoteLength))
	}
	return nil
}
