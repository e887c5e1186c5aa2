// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// Budget is the aggregate root of an in-progress orçamento: a client, an
// ordered list of priced environments, a discount and a payment plan
// describing how the negotiated total will be paid. ID and Number are
// zero-valued until the budget is persisted on the ERP backend.
//
// Every mutating method validates its input and leaves the aggregate
// untouched when validation fails. Derived totals are never stored here;
// they are recomputed from the aggregate (see valueobject.ComputeTotals).
type Budget struct {
	ID              uuid.UUID
	Number          string
	Client          *Client
	Environments    []Environment
	DiscountPercent decimal.Decimal
	PaymentPlan     []PaymentEntry
	Observations    string
	StatusID        *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBudget creates an empty Budget, the state a new budget flow starts in.
func NewBudget() *Budget {
	now := time.Now().UTC()
	return &Budget{
		DiscountPercent: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetClient replaces the client reference. It does not affect environments
// or the payment plan.
func (b *Budget) SetClient(client *Client) {
	b.Client = client
	b.touch()
}

// SetEnvironments replaces the environment list wholesale. Any invalid
// entry rejects the whole list; the previous list is retained.
func (b *Budget) SetEnvironments(environments []Environment) error {
	for _, env := range environments {
		if !env.Valid() {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidEnvironmentList,
				"each environment needs an id, a name and a non-negative value",
				domainerror.ErrInvalidEnvironmentList,
			)
		}
	}

	b.Environments = make([]Environment, len(environments))
	copy(b.Environments, environments)
	b.touch()
	return nil
}

// SetDiscount validates and applies a discount percentage. Out-of-range
// input is rejected and the previous value retained.
func (b *Budget) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeDiscountOutOfRange,
			"discount percent must be between 0 and 100",
			domainerror.ErrDiscountOutOfRange,
		)
	}

	b.DiscountPercent = percent
	b.touch()
	return nil
}

// SetObservations replaces the free-text observations.
func (b *Budget) SetObservations(observations string) {
	b.Observations = observations
	b.touch()
}

// AddPaymentEntry appends a validated entry to the payment plan. Pushing
// the allocated present value above the negotiated value is allowed here;
// the store only reports a negative remaining value, it never hard-blocks.
func (b *Budget) AddPaymentEntry(entry PaymentEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	b.PaymentPlan = append(b.PaymentPlan, entry)
	b.touch()
	return nil
}

// RemovePaymentEntry removes the entry with the given ID from the plan.
func (b *Budget) RemovePaymentEntry(id uuid.UUID) error {
	for i, entry := range b.PaymentPlan {
		if entry.ID == id {
			b.PaymentPlan = append(b.PaymentPlan[:i], b.PaymentPlan[i+1:]...)
			b.touch()
			return nil
		}
	}
	return domainerror.NewBudgetError(
		domainerror.ErrCodePaymentEntryNotFound,
		"payment entry not found",
		domainerror.ErrPaymentEntryNotFound,
	)
}

// UpdatePaymentEntry replaces an existing, unlocked entry in place. Locked
// entries are never altered.
func (b *Budget) UpdatePaymentEntry(updated PaymentEntry) error {
	if err := updated.Validate(); err != nil {
		return err
	}

	for i, entry := range b.PaymentPlan {
		if entry.ID != updated.ID {
			continue
		}
		if entry.Locked {
			return domainerror.NewBudgetError(
				domainerror.ErrCodePaymentEntryLocked,
				"locked payment entries cannot be modified",
				domainerror.ErrPaymentEntryLocked,
			)
		}
		updated.CreatedAt = entry.CreatedAt
		b.PaymentPlan[i] = updated
		b.touch()
		return nil
	}
	return domainerror.NewBudgetError(
		domainerror.ErrCodePaymentEntryNotFound,
		"payment entry not found",
		domainerror.ErrPaymentEntryNotFound,
	)
}

// CanSave reports whether the budget is complete enough to persist:
// a client is set and at least one environment is present. The payment
// plan does not matter here.
func (b *Budget) CanSave() bool {
	return b.Client != nil && len(b.Environments) > 0
}

// CanGenerateContract reports whether a contract can be generated: the
// budget is saveable and the payment plan is non-empty.
func (b *Budget) CanGenerateContract() bool {
	return b.CanSave() && len(b.PaymentPlan) > 0
}

// ValidateForSave returns the specific validation error blocking a save.
func (b *Budget) ValidateForSave() error {
	if b.Client == nil {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeClientRequired,
			"select a client before saving",
			domainerror.ErrClientRequired,
		)
	}
	if len(b.Environments) == 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeEnvironmentsRequired,
			"add at least one environment before saving",
			domainerror.ErrEnvironmentsRequired,
		)
	}
	return nil
}

// Clone returns a deep copy of the aggregate. Snapshots handed to other
// goroutines must not share slices, maps or pointers with the stored
// aggregate.
func (b *Budget) Clone() *Budget {
	clone := *b
	if b.Client != nil {
		client := *b.Client
		clone.Client = &client
	}
	if b.StatusID != nil {
		statusID := *b.StatusID
		clone.StatusID = &statusID
	}
	clone.Environments = append([]Environment(nil), b.Environments...)
	if b.PaymentPlan != nil {
		clone.PaymentPlan = make([]PaymentEntry, len(b.PaymentPlan))
		for i, entry := range b.PaymentPlan {
			clone.PaymentPlan[i] = entry.clone()
		}
	}
	return &clone
}

func (b *Budget) touch() {
	b.UpdatedAt = time.Now().UTC()
}
