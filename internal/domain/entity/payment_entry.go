// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// PaymentKind represents the kind of a payment-plan entry.
type PaymentKind string

const (
	PaymentKindCash      PaymentKind = "cash"
	PaymentKindBoleto    PaymentKind = "boleto"
	PaymentKindCard      PaymentKind = "card"
	PaymentKindFinancing PaymentKind = "financing"
)

// ValidPaymentKind reports whether kind is one of the known payment kinds.
func ValidPaymentKind(kind PaymentKind) bool {
	switch kind {
	case PaymentKindCash, PaymentKindBoleto, PaymentKindCard, PaymentKindFinancing:
		return true
	}
	return false
}

// PaymentEntry is one component of how a budget's negotiated value will be
// paid. The ID is client-generated until the entry is persisted, after
// which the backend-assigned ID takes over. Locked entries must never be
// altered by recompute or update operations.
type PaymentEntry struct {
	ID           uuid.UUID
	Kind         PaymentKind
	NominalValue decimal.Decimal
	PresentValue decimal.Decimal // discounted cash-flow value, <= NominalValue
	Installments int
	Details      map[string]interface{} // kind-specific payload (card fees, financing terms, ...)
	Locked       bool
	CreatedAt    time.Time
}

// NewPaymentEntry creates a new PaymentEntry with a client-generated ID.
func NewPaymentEntry(
	kind PaymentKind,
	nominalValue decimal.Decimal,
	presentValue decimal.Decimal,
	installments int,
	details map[string]interface{},
) *PaymentEntry {
	return &PaymentEntry{
		ID:           uuid.New(),
		Kind:         kind,
		NominalValue: nominalValue,
		PresentValue: presentValue,
		Installments: installments,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	}
}

// clone copies the entry including its details map.
func (p PaymentEntry) clone() PaymentEntry {
	out := p
	if p.Details != nil {
		out.Details = make(map[string]interface{}, len(p.Details))
		for key, value := range p.Details {
			out.Details[key] = value
		}
	}
	return out
}

// Validate checks the entry's internal invariants.
func (p *PaymentEntry) Validate() error {
	if !ValidPaymentKind(p.Kind) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPaymentEntry,
			"payment kind must be 'cash', 'boleto', 'card' or 'financing'",
			domainerror.ErrInvalidPaymentKind,
		)
	}
	if p.NominalValue.IsNegative() || p.PresentValue.IsNegative() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPaymentEntry,
			"payment values must not be negative",
			domainerror.ErrNegativePaymentValue,
		)
	}
	if p.PresentValue.GreaterThan(p.NominalValue) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPaymentEntry,
			"present value must not exceed nominal value",
			domainerror.ErrPresentExceedsNominal,
		)
	}
	if p.Installments < 1 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPaymentEntry,
			"installment count must be at least 1",
			domainerror.ErrInvalidInstallments,
		)
	}
	return nil
}
