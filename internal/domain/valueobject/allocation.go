// Package valueobject contains domain value objects for the Fluyt budget service.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// allocationEpsilon is the monetary rounding tolerance (0.01 currency
// units) used when deciding whether a plan is fully allocated.
var allocationEpsilon = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// Totals holds the derived values of a budget. They are never stored;
// every mutation recomputes them from the aggregate. All values keep full
// decimal precision here; rounding to 2 decimal places happens only at
// I/O boundaries (DTOs, wire payloads, storage).
type Totals struct {
	Gross             decimal.Decimal // sum of environment values
	Negotiated        decimal.Decimal // gross after discount
	PresentValueTotal decimal.Decimal // sum of payment-plan present values
	Remaining         decimal.Decimal // negotiated - present value total
}

// ComputeTotals derives the totals for a budget aggregate.
func ComputeTotals(budget *entity.Budget) Totals {
	gross := decimal.Zero
	for _, env := range budget.Environments {
		gross = gross.Add(env.Value)
	}

	// negotiated = gross * (1 - discount/100), computed in full precision
	factor := decimal.NewFromInt(1).Sub(budget.DiscountPercent.Div(oneHundred))
	negotiated := gross.Mul(factor)

	presentTotal := decimal.Zero
	for _, entry := range budget.PaymentPlan {
		presentTotal = presentTotal.Add(entry.PresentValue)
	}

	return Totals{
		Gross:             gross,
		Negotiated:        negotiated,
		PresentValueTotal: presentTotal,
		Remaining:         negotiated.Sub(presentTotal),
	}
}

// IsFullyAllocated reports whether the remaining value is zero within the
// monetary tolerance.
func (t Totals) IsFullyAllocated() bool {
	return t.Remaining.Abs().LessThanOrEqual(allocationEpsilon)
}

// IsOverAllocated reports whether the payment plan exceeds the negotiated
// value beyond the monetary tolerance.
func (t Totals) IsOverAllocated() bool {
	return t.Remaining.LessThan(allocationEpsilon.Neg())
}
