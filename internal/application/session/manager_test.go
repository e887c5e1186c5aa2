// Package session holds the in-memory budget session store.
package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// fakeRepo is an in-memory SessionRepository with switchable failure.
type fakeRepo struct {
	stored  map[string]*entity.Budget
	failing bool
	saves   int
	deletes int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[string]*entity.Budget)}
}

func (r *fakeRepo) Load(ctx context.Context, sessionID string) (*entity.Budget, bool) {
	if r.failing {
		return nil, false
	}
	budget, ok := r.stored[sessionID]
	return budget, ok
}

func (r *fakeRepo) Save(ctx context.Context, sessionID string, budget *entity.Budget) bool {
	r.saves++
	if r.failing {
		return false
	}
	r.stored[sessionID] = budget
	return true
}

func (r *fakeRepo) Delete(ctx context.Context, sessionID string) {
	r.deletes++
	delete(r.stored, sessionID)
}

func setTestClient(budget *entity.Budget) error {
	budget.SetClient(&entity.Client{ID: uuid.New(), Name: "Maria"})
	return nil
}

func TestManager_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a fresh budget for an unknown session", func(t *testing.T) {
		manager := NewManager(newFakeRepo())

		budget := manager.Get(ctx, "tab-1")
		if budget == nil {
			t.Fatal("expected a budget")
		}
		if budget.Client != nil || len(budget.Environments) != 0 {
			t.Error("expected the fresh budget to be empty")
		}
	})

	t.Run("rehydrates from the repository on an in-memory miss", func(t *testing.T) {
		repo := newFakeRepo()
		stored := entity.NewBudget()
		stored.SetClient(&entity.Client{ID: uuid.New(), Name: "Joana"})
		repo.stored["tab-1"] = stored

		manager := NewManager(repo)

		budget := manager.Get(ctx, "tab-1")
		if budget.Client == nil || budget.Client.Name != "Joana" {
			t.Error("expected the stored budget to be rehydrated")
		}
	})

	t.Run("repeat calls observe mutations applied through Mutate", func(t *testing.T) {
		manager := NewManager(newFakeRepo())

		if _, _, err := manager.Mutate(ctx, "tab-1", setTestClient); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		budget := manager.Get(ctx, "tab-1")
		if budget.Client == nil || budget.Client.Name != "Maria" {
			t.Error("expected the mutation to be visible on a later Get")
		}
	})

	t.Run("returns an isolated snapshot", func(t *testing.T) {
		manager := NewManager(newFakeRepo())

		first := manager.Get(ctx, "tab-1")
		first.SetClient(&entity.Client{ID: uuid.New(), Name: "Intrusa"})
		if err := first.AddPaymentEntry(*entity.NewPaymentEntry(
			entity.PaymentKindCash, decimal.NewFromInt(100), decimal.NewFromInt(100), 1, nil,
		)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := manager.Get(ctx, "tab-1")
		if second.Client != nil || len(second.PaymentPlan) != 0 {
			t.Error("expected edits on a snapshot to never reach the stored aggregate")
		}
	})
}

func TestManager_Mutate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists after a successful mutation", func(t *testing.T) {
		repo := newFakeRepo()
		manager := NewManager(repo)

		_, _, err := manager.Mutate(ctx, "tab-1", setTestClient)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.saves != 1 {
			t.Errorf("expected 1 mirror write, got %d", repo.saves)
		}
	})

	t.Run("mirror failure is not surfaced", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failing = true
		manager := NewManager(repo)

		budget, totals, err := manager.Mutate(ctx, "tab-1", setTestClient)
		if err != nil {
			t.Fatalf("expected mutation to succeed despite mirror failure, got %v", err)
		}
		if budget.Client == nil {
			t.Error("expected the in-memory aggregate to carry the mutation")
		}
		if !totals.Gross.IsZero() {
			t.Errorf("expected zero gross, got %s", totals.Gross)
		}

		// The in-memory copy stays authoritative across the outage.
		again := manager.Get(ctx, "tab-1")
		if again.Client == nil || again.Client.Name != "Maria" {
			t.Error("expected the mutation to survive in memory")
		}
	})

	t.Run("validation error leaves nothing persisted", func(t *testing.T) {
		repo := newFakeRepo()
		manager := NewManager(repo)

		_, _, err := manager.Mutate(ctx, "tab-1", func(b *entity.Budget) error {
			return b.SetDiscount(decimal.NewFromInt(150))
		})
		if err == nil {
			t.Fatal("expected a validation error")
		}
		if repo.saves != 0 {
			t.Errorf("expected no mirror write after rejection, got %d", repo.saves)
		}
	})
}

// Mutations and reads on one session from parallel gin handlers must not
// share memory. Run with -race.
func TestManager_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(newFakeRepo())

	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 50; j++ {
				_, _, err := manager.Mutate(ctx, "tab-1", func(b *entity.Budget) error {
					entry := entity.NewPaymentEntry(
						entity.PaymentKindCash, decimal.NewFromInt(10), decimal.NewFromInt(10), 1, nil,
					)
					return b.AddPaymentEntry(*entry)
				})
				if err != nil {
					t.Errorf("unexpected mutation error: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 50; j++ {
				budget := manager.Get(ctx, "tab-1")
				totals := valueobject.ComputeTotals(budget)
				if totals.PresentValueTotal.IsNegative() {
					t.Error("present value total must never be negative")
					return
				}
			}
		}()
	}

	close(start)
	wg.Wait()

	final := manager.Get(ctx, "tab-1")
	if len(final.PaymentPlan) != 200 {
		t.Errorf("expected 200 payment entries, got %d", len(final.PaymentPlan))
	}
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	manager := NewManager(repo)

	if _, _, err := manager.Mutate(ctx, "tab-1", setTestClient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager.Clear(ctx, "tab-1")

	if repo.deletes != 1 {
		t.Errorf("expected 1 mirror delete, got %d", repo.deletes)
	}

	budget := manager.Get(ctx, "tab-1")
	if budget.Client != nil {
		t.Error("expected a fresh budget after clear")
	}
}

func TestManager_Replace(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	manager := NewManager(repo)

	if _, _, err := manager.Mutate(ctx, "tab-1", setTestClient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replacement := entity.NewBudget()
	replacement.Number = "ORC-0042"
	manager.Replace(ctx, "tab-1", replacement)

	budget := manager.Get(ctx, "tab-1")
	if budget.Number != "ORC-0042" {
		t.Error("expected the replacement to supersede the previous aggregate")
	}
	if budget.Client != nil {
		t.Error("expected no client on the replaced aggregate")
	}
}
