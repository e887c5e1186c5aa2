package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

// registerBudgetSteps registers the domain-specific steps: auth, session
// construction, ERP backend scripting, and side-effect assertions.
func registerBudgetSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am authenticated as a salesperson$`, iAmAuthenticatedAsASalesperson)
	ctx.Step(`^my session id is "([^"]*)"$`, mySessionIDIs)
	ctx.Step(`^my session holds a saveable budget with (\d+) payment entries$`, mySessionHoldsASaveableBudget)
	ctx.Step(`^the ERP backend will reject the budget header with status (\d+) and message "([^"]*)"$`, theERPBackendWillRejectTheHeader)
	ctx.Step(`^the ERP backend will fail payment entry (\d+)$`, theERPBackendWillFailPaymentEntry)
	ctx.Step(`^the ERP backend is unreachable$`, theERPBackendIsUnreachable)
	ctx.Step(`^a budget for "([^"]*)" exists on the ERP backend$`, aBudgetExistsOnTheERPBackend)
	ctx.Step(`^the ERP backend should hold (\d+) payment entries$`, theERPBackendShouldHoldPaymentEntries)
	ctx.Step(`^the ERP backend should hold (\d+) budgets?$`, theERPBackendShouldHoldBudgets)
	ctx.Step(`^a partial-save alert should be queued$`, aPartialSaveAlertShouldBeQueued)
	ctx.Step(`^the save journal should record a "([^"]*)" attempt$`, theSaveJournalShouldRecordAttempt)
}

func iAmAuthenticatedAsASalesperson(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	claims := jwt.MapClaims{
		"vendedor_id": uuid.NewString(),
		"loja_id":     uuid.NewString(),
		"email":       "carlos@fluyt.com.br",
		"nome":        "Carlos",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return ctx, fmt.Errorf("failed to sign test token: %w", err)
	}

	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

func mySessionIDIs(ctx context.Context, sessionID string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.sessionID = sessionID
	return SetTestContext(ctx, tc), nil
}

// mySessionHoldsASaveableBudget seeds the session store directly instead
// of replaying every editing request.
func mySessionHoldsASaveableBudget(ctx context.Context, entries int) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if tc.sessionID == "" {
		return ctx, fmt.Errorf("no session id set")
	}

	_, _, err := tc.injector.Sessions.Mutate(ctx, tc.sessionID, func(budget *entity.Budget) error {
		budget.SetClient(&entity.Client{ID: uuid.New(), Name: "Maria Souza"})
		if err := budget.SetEnvironments([]entity.Environment{
			{ID: uuid.New(), Name: "Cozinha", Value: decimal.NewFromInt(3000)},
		}); err != nil {
			return err
		}
		for i := 0; i < entries; i++ {
			entry := entity.NewPaymentEntry(
				entity.PaymentKindBoleto,
				decimal.NewFromInt(1000),
				decimal.NewFromInt(1000),
				2,
				nil,
			)
			if err := budget.AddPaymentEntry(*entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to seed session: %w", err)
	}
	return SetTestContext(ctx, tc), nil
}

func theERPBackendWillRejectTheHeader(ctx context.Context, status int, message string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.erp.RejectBudgetCreation(status, message)
	return nil
}

func theERPBackendWillFailPaymentEntry(ctx context.Context, n int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.erp.FailPaymentEntry(n)
	return nil
}

func theERPBackendIsUnreachable(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.erp.Close()
	return nil
}

func aBudgetExistsOnTheERPBackend(ctx context.Context, clientName string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.knownBudgetID = tc.erp.SeedBudget(clientName, 4000, 3600)
	return SetTestContext(ctx, tc), nil
}

func theERPBackendShouldHoldPaymentEntries(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.erp.EntryCount(); got != expected {
		return fmt.Errorf("expected %d payment entries on the backend, got %d", expected, got)
	}
	return nil
}

func theERPBackendShouldHoldBudgets(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.erp.BudgetCount(); got != expected {
		return fmt.Errorf("expected %d budgets on the backend, got %d", expected, got)
	}
	return nil
}

func aPartialSaveAlertShouldBeQueued(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var count int64
	err := tc.db.Model(&model.EmailQueueModel{}).
		Where("template_type = ?", string(entity.TemplatePartialSaveAlert)).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count queued alerts: %w", err)
	}
	if count != 1 {
		return fmt.Errorf("expected 1 queued alert, got %d", count)
	}
	return nil
}

func theSaveJournalShouldRecordAttempt(ctx context.Context, outcome string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	attempts, err := tc.injector.Journal.FindBySession(ctx, tc.sessionID)
	if err != nil {
		return fmt.Errorf("failed to read the save journal: %w", err)
	}
	if len(attempts) == 0 {
		return fmt.Errorf("expected at least one journaled attempt")
	}
	if string(attempts[0].Outcome) != outcome {
		return fmt.Errorf("expected latest outcome %q, got %q", outcome, attempts[0].Outcome)
	}
	return nil
}
