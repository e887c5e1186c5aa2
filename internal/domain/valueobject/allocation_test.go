// Package valueobject contains domain value objects for the Fluyt budget service.
package valueobject

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

func budgetWithEnvironments(values ...float64) *entity.Budget {
	budget := entity.NewBudget()
	environments := make([]entity.Environment, len(values))
	for i, v := range values {
		environments[i] = entity.Environment{
			ID:    uuid.New(),
			Name:  "Ambiente",
			Value: decimal.NewFromFloat(v),
		}
	}
	if err := budget.SetEnvironments(environments); err != nil {
		panic(err)
	}
	return budget
}

func addPresentValue(t *testing.T, budget *entity.Budget, value float64) {
	t.Helper()
	entry := entity.NewPaymentEntry(
		entity.PaymentKindCash,
		decimal.NewFromFloat(value),
		decimal.NewFromFloat(value),
		1,
		nil,
	)
	if err := budget.AddPaymentEntry(*entry); err != nil {
		t.Fatalf("failed to add payment entry: %v", err)
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("sums environments into gross", func(t *testing.T) {
		budget := budgetWithEnvironments(1000, 2500.50, 499.50)

		totals := ComputeTotals(budget)

		if !totals.Gross.Equal(decimal.NewFromFloat(4000)) {
			t.Errorf("expected gross 4000, got %s", totals.Gross)
		}
		if !totals.Negotiated.Equal(totals.Gross) {
			t.Errorf("expected negotiated to equal gross with no discount, got %s", totals.Negotiated)
		}
	})

	t.Run("applies discount to negotiated value", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		if err := budget.SetDiscount(decimal.NewFromInt(10)); err != nil {
			t.Fatalf("failed to set discount: %v", err)
		}

		totals := ComputeTotals(budget)

		if !totals.Negotiated.Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected negotiated 900, got %s", totals.Negotiated)
		}
		if !totals.Remaining.Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected remaining 900 with empty plan, got %s", totals.Remaining)
		}
	})

	t.Run("remaining shrinks as the plan fills", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		addPresentValue(t, budget, 400)
		addPresentValue(t, budget, 350)

		totals := ComputeTotals(budget)

		if !totals.PresentValueTotal.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected present value total 750, got %s", totals.PresentValueTotal)
		}
		if !totals.Remaining.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected remaining 250, got %s", totals.Remaining)
		}
	})

	t.Run("keeps full precision on fractional discounts", func(t *testing.T) {
		// 1/3 style fractions must not drift: 100 * (1 - 33.33/100)
		budget := budgetWithEnvironments(100)
		if err := budget.SetDiscount(decimal.NewFromFloat(33.33)); err != nil {
			t.Fatalf("failed to set discount: %v", err)
		}

		totals := ComputeTotals(budget)

		expected := decimal.NewFromFloat(66.67)
		if !totals.Negotiated.Equal(expected) {
			t.Errorf("expected negotiated %s, got %s", expected, totals.Negotiated)
		}
	})

	t.Run("tracks a negotiation end to end", func(t *testing.T) {
		budget := budgetWithEnvironments(15000, 8000)
		if err := budget.SetDiscount(decimal.NewFromInt(10)); err != nil {
			t.Fatalf("failed to set discount: %v", err)
		}

		totals := ComputeTotals(budget)
		if !totals.Negotiated.Equal(decimal.NewFromInt(20700)) {
			t.Fatalf("expected negotiated 20700, got %s", totals.Negotiated)
		}

		addPresentValue(t, budget, 20700)
		totals = ComputeTotals(budget)
		if !totals.Remaining.IsZero() || !totals.IsFullyAllocated() {
			t.Errorf("expected a fully allocated plan, remaining %s", totals.Remaining)
		}

		addPresentValue(t, budget, 500)
		totals = ComputeTotals(budget)
		if !totals.Remaining.Equal(decimal.NewFromInt(-500)) || !totals.IsOverAllocated() {
			t.Errorf("expected over-allocation by 500, remaining %s", totals.Remaining)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		budget := budgetWithEnvironments(1234.56, 789.01)
		if err := budget.SetDiscount(decimal.NewFromFloat(12.5)); err != nil {
			t.Fatalf("failed to set discount: %v", err)
		}
		addPresentValue(t, budget, 500)

		first := ComputeTotals(budget)
		second := ComputeTotals(budget)

		if !first.Negotiated.Equal(second.Negotiated) || !first.Remaining.Equal(second.Remaining) {
			t.Error("expected repeated computation to yield identical totals")
		}
	})
}

func TestTotalsAllocationPredicates(t *testing.T) {
	t.Run("fully allocated within one cent", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		addPresentValue(t, budget, 999.99)

		totals := ComputeTotals(budget)

		if !totals.IsFullyAllocated() {
			t.Errorf("expected remaining %s to count as fully allocated", totals.Remaining)
		}
		if totals.IsOverAllocated() {
			t.Error("expected no over-allocation within tolerance")
		}
	})

	t.Run("not fully allocated beyond one cent", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		addPresentValue(t, budget, 999.98)

		totals := ComputeTotals(budget)

		if totals.IsFullyAllocated() {
			t.Errorf("expected remaining %s to not count as fully allocated", totals.Remaining)
		}
	})

	t.Run("over-allocated beyond one cent", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		addPresentValue(t, budget, 1000.02)

		totals := ComputeTotals(budget)

		if !totals.IsOverAllocated() {
			t.Errorf("expected remaining %s to count as over-allocated", totals.Remaining)
		}
	})

	t.Run("exact one cent over is still tolerated", func(t *testing.T) {
		budget := budgetWithEnvironments(1000)
		addPresentValue(t, budget, 1000.01)

		totals := ComputeTotals(budget)

		if totals.IsOverAllocated() {
			t.Errorf("expected remaining %s to stay within tolerance", totals.Remaining)
		}
		if !totals.IsFullyAllocated() {
			t.Errorf("expected remaining %s to count as fully allocated", totals.Remaining)
		}
	})
}
