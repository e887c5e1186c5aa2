// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

func validEnvironment(name string, value float64) Environment {
	return Environment{ID: uuid.New(), Name: name, Value: decimal.NewFromFloat(value)}
}

func validEntry(present float64) *PaymentEntry {
	return NewPaymentEntry(
		PaymentKindBoleto,
		decimal.NewFromFloat(present),
		decimal.NewFromFloat(present),
		3,
		nil,
	)
}

func TestBudget_SetEnvironments(t *testing.T) {
	t.Run("replaces the list wholesale", func(t *testing.T) {
		budget := NewBudget()
		first := []Environment{validEnvironment("Cozinha", 1000)}
		if err := budget.SetEnvironments(first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := []Environment{
			validEnvironment("Dormitorio", 2000),
			validEnvironment("Banheiro", 500),
		}
		if err := budget.SetEnvironments(second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(budget.Environments) != 2 {
			t.Fatalf("expected 2 environments, got %d", len(budget.Environments))
		}
		if budget.Environments[0].Name != "Dormitorio" || budget.Environments[1].Name != "Banheiro" {
			t.Error("expected replacement to preserve input order")
		}
	})

	t.Run("one invalid entry rejects the whole list", func(t *testing.T) {
		budget := NewBudget()
		if err := budget.SetEnvironments([]Environment{validEnvironment("Cozinha", 1000)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		invalid := []Environment{
			validEnvironment("Dormitorio", 2000),
			{ID: uuid.New(), Name: "", Value: decimal.NewFromInt(100)},
		}
		err := budget.SetEnvironments(invalid)
		if !errors.Is(err, domainerror.ErrInvalidEnvironmentList) {
			t.Fatalf("expected ErrInvalidEnvironmentList, got %v", err)
		}

		if len(budget.Environments) != 1 || budget.Environments[0].Name != "Cozinha" {
			t.Error("expected previous list to be retained after rejection")
		}
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		budget := NewBudget()
		input := []Environment{validEnvironment("Cozinha", 1000)}
		if err := budget.SetEnvironments(input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		input[0].Name = "mutated"
		if budget.Environments[0].Name != "Cozinha" {
			t.Error("expected stored environments to be a copy")
		}
	})
}

func TestBudget_SetDiscount(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		wantErr bool
	}{
		{"zero is valid", 0, false},
		{"mid-range is valid", 15.5, false},
		{"upper bound is valid", 100, false},
		{"negative is rejected", -0.01, true},
		{"above upper bound is rejected", 100.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := NewBudget()
			err := budget.SetDiscount(decimal.NewFromFloat(tt.percent))
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrDiscountOutOfRange) {
					t.Fatalf("expected ErrDiscountOutOfRange, got %v", err)
				}
				if !budget.DiscountPercent.IsZero() {
					t.Error("expected previous discount to be retained after rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !budget.DiscountPercent.Equal(decimal.NewFromFloat(tt.percent)) {
				t.Errorf("expected discount %v, got %s", tt.percent, budget.DiscountPercent)
			}
		})
	}
}

func TestBudget_PaymentPlan(t *testing.T) {
	t.Run("add validates the entry", func(t *testing.T) {
		budget := NewBudget()
		entry := validEntry(100)
		entry.Kind = "pix"

		err := budget.AddPaymentEntry(*entry)
		if !errors.Is(err, domainerror.ErrInvalidPaymentKind) {
			t.Fatalf("expected ErrInvalidPaymentKind, got %v", err)
		}
		if len(budget.PaymentPlan) != 0 {
			t.Error("expected plan to stay empty after rejection")
		}
	})

	t.Run("add allows over-allocation", func(t *testing.T) {
		budget := NewBudget()
		if err := budget.SetEnvironments([]Environment{validEnvironment("Cozinha", 100)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Plan worth far more than the negotiated value is accepted; the
		// negative remaining value is reported, not blocked.
		if err := budget.AddPaymentEntry(*validEntry(1000)); err != nil {
			t.Fatalf("expected over-allocation to be accepted, got %v", err)
		}
	})

	t.Run("remove unknown entry fails", func(t *testing.T) {
		budget := NewBudget()
		err := budget.RemovePaymentEntry(uuid.New())
		if !errors.Is(err, domainerror.ErrPaymentEntryNotFound) {
			t.Fatalf("expected ErrPaymentEntryNotFound, got %v", err)
		}
	})

	t.Run("update preserves creation time", func(t *testing.T) {
		budget := NewBudget()
		entry := validEntry(100)
		if err := budget.AddPaymentEntry(*entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated := *validEntry(200)
		updated.ID = entry.ID
		if err := budget.UpdatePaymentEntry(updated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !budget.PaymentPlan[0].CreatedAt.Equal(entry.CreatedAt) {
			t.Error("expected update to preserve the original creation time")
		}
		if !budget.PaymentPlan[0].PresentValue.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected present value 200, got %s", budget.PaymentPlan[0].PresentValue)
		}
	})

	t.Run("update rejects locked entries", func(t *testing.T) {
		budget := NewBudget()
		entry := validEntry(100)
		entry.Locked = true
		if err := budget.AddPaymentEntry(*entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated := *validEntry(200)
		updated.ID = entry.ID
		err := budget.UpdatePaymentEntry(updated)
		if !errors.Is(err, domainerror.ErrPaymentEntryLocked) {
			t.Fatalf("expected ErrPaymentEntryLocked, got %v", err)
		}
		if !budget.PaymentPlan[0].PresentValue.Equal(decimal.NewFromInt(100)) {
			t.Error("expected locked entry to be untouched")
		}
	})
}

func TestBudget_Capabilities(t *testing.T) {
	tests := []struct {
		name                string
		client              bool
		environments        bool
		plan                bool
		canSave             bool
		canGenerateContract bool
	}{
		{"empty budget", false, false, false, false, false},
		{"client only", true, false, false, false, false},
		{"environments only", false, true, false, false, false},
		{"client and environments", true, true, false, true, false},
		{"client, environments and plan", true, true, true, true, true},
		{"plan without client", false, true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := NewBudget()
			if tt.client {
				budget.SetClient(&Client{ID: uuid.New(), Name: "Maria"})
			}
			if tt.environments {
				if err := budget.SetEnvironments([]Environment{validEnvironment("Cozinha", 1000)}); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if tt.plan {
				if err := budget.AddPaymentEntry(*validEntry(500)); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if budget.CanSave() != tt.canSave {
				t.Errorf("CanSave: expected %v, got %v", tt.canSave, budget.CanSave())
			}
			if budget.CanGenerateContract() != tt.canGenerateContract {
				t.Errorf("CanGenerateContract: expected %v, got %v", tt.canGenerateContract, budget.CanGenerateContract())
			}
		})
	}
}

func TestBudget_ValidateForSave(t *testing.T) {
	t.Run("reports missing client first", func(t *testing.T) {
		budget := NewBudget()
		err := budget.ValidateForSave()
		if !errors.Is(err, domainerror.ErrClientRequired) {
			t.Fatalf("expected ErrClientRequired, got %v", err)
		}
	})

	t.Run("reports missing environments", func(t *testing.T) {
		budget := NewBudget()
		budget.SetClient(&Client{ID: uuid.New(), Name: "Maria"})
		err := budget.ValidateForSave()
		if !errors.Is(err, domainerror.ErrEnvironmentsRequired) {
			t.Fatalf("expected ErrEnvironmentsRequired, got %v", err)
		}
	})
}

func TestBudget_Clone(t *testing.T) {
	budget := NewBudget()
	budget.SetClient(&Client{ID: uuid.New(), Name: "Maria"})
	if err := budget.SetEnvironments([]Environment{validEnvironment("Cozinha", 1000)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := NewPaymentEntry(
		PaymentKindCard,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(950),
		6,
		map[string]interface{}{"bandeira": "visa"},
	)
	if err := budget.AddPaymentEntry(*entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone := budget.Clone()

	t.Run("copies every field", func(t *testing.T) {
		if clone.Client == nil || clone.Client.Name != "Maria" {
			t.Error("expected the client to be copied")
		}
		if len(clone.Environments) != 1 || len(clone.PaymentPlan) != 1 {
			t.Fatal("expected environments and payment plan to be copied")
		}
		if clone.PaymentPlan[0].Details["bandeira"] != "visa" {
			t.Error("expected entry details to be copied")
		}
	})

	t.Run("shares no memory with the original", func(t *testing.T) {
		clone.Client.Name = "Outra"
		clone.Environments[0].Name = "Banheiro"
		clone.PaymentPlan[0].Details["bandeira"] = "master"
		if err := clone.AddPaymentEntry(*validEntry(50)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if budget.Client.Name != "Maria" {
			t.Error("expected the original client to be untouched")
		}
		if budget.Environments[0].Name != "Cozinha" {
			t.Error("expected the original environments to be untouched")
		}
		if budget.PaymentPlan[0].Details["bandeira"] != "visa" {
			t.Error("expected the original entry details to be untouched")
		}
		if len(budget.PaymentPlan) != 1 {
			t.Errorf("expected the original plan to keep 1 entry, got %d", len(budget.PaymentPlan))
		}
	})
}
