// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// SaveBudgetInput represents the input for the orchestrated save.
type SaveBudgetInput struct {
	SessionID        string
	Token            string
	StoreID          uuid.UUID
	SalespersonID    uuid.UUID
	SalespersonEmail string
	SalespersonName  string
}

// SaveBudgetOutput represents the result of a fully successful save.
type SaveBudgetOutput struct {
	BudgetID        uuid.UUID
	Number          string
	CreatedEntryIDs []uuid.UUID
}

// SaveBudgetUseCase orchestrates the two-step save: the budget header
// first, then each payment entry sequentially (the backend assigns
// display order by creation sequence, so entry N+1 never starts before
// entry N resolved). The save is deliberately NOT atomic: a failed entry
// after a persisted header leaves the header in place and surfaces a
// PartialSaveFailureError, with no rollback and no automatic retry.
type SaveBudgetUseCase struct {
	sessions *session.Manager
	gateway  adapter.ERPGateway
	journal  adapter.SaveJournal
	emails   adapter.EmailService // optional, may be nil

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSaveBudgetUseCase creates a new SaveBudgetUseCase instance.
func NewSaveBudgetUseCase(
	sessions *session.Manager,
	gateway adapter.ERPGateway,
	journal adapter.SaveJournal,
	emails adapter.EmailService,
) *SaveBudgetUseCase {
	return &SaveBudgetUseCase{
		sessions: sessions,
		gateway:  gateway,
		journal:  journal,
		emails:   emails,
		inFlight: make(map[string]bool),
	}
}

// Execute performs the orchestrated save. A second call for the same
// session while one is outstanding is rejected, so a double-click cannot
// create duplicate headers.
func (uc *SaveBudgetUseCase) Execute(ctx context.Context, input SaveBudgetInput) (*SaveBudgetOutput, error) {
	if !uc.beginSave(input.SessionID) {
		return nil, domainerror.ErrSaveInProgress
	}
	defer uc.endSave(input.SessionID)

	budget := uc.sessions.Get(ctx, input.SessionID)
	if err := budget.ValidateForSave(); err != nil {
		return nil, err
	}

	totals := valueobject.ComputeTotals(budget)
	attempt := entity.NewSaveAttempt(input.SessionID)

	created, err := uc.gateway.CreateBudget(ctx, input.Token, adapter.CreateBudgetInput{
		ClientID:        budget.Client.ID,
		StoreID:         input.StoreID,
		SalespersonID:   input.SalespersonID,
		GrossValue:      totals.Gross.Round(2),
		DiscountPercent: budget.DiscountPercent.Round(2),
		FinalValue:      totals.Negotiated.Round(2),
		Observations:    budget.Observations,
	})
	if err != nil {
		attempt.Outcome = entity.SaveOutcomeFailed
		attempt.ErrorText = err.Error()
		uc.record(ctx, attempt)
		return nil, err
	}

	attempt.BudgetID = &created.ID
	attempt.BudgetNumber = created.Number

	createdEntryIDs := make([]uuid.UUID, 0, len(budget.PaymentPlan))
	for _, entry := range budget.PaymentPlan {
		persisted, err := uc.gateway.CreatePaymentEntry(ctx, input.Token, created.ID, entry)
		if err != nil {
			failedID := entry.ID
			attempt.Outcome = entity.SaveOutcomePartial
			attempt.CreatedEntryIDs = createdEntryIDs
			attempt.FailedEntryID = &failedID
			attempt.ErrorText = err.Error()
			uc.record(ctx, attempt)
			uc.alertPartialSave(ctx, input, budget, created, len(createdEntryIDs), err)

			return nil, &domainerror.PartialSaveFailureError{
				BudgetID:        created.ID,
				BudgetNumber:    created.Number,
				CreatedEntryIDs: createdEntryIDs,
				FailedEntryID:   failedID,
				Err:             err,
			}
		}
		createdEntryIDs = append(createdEntryIDs, persisted.ID)
	}

	attempt.Outcome = entity.SaveOutcomeComplete
	attempt.CreatedEntryIDs = createdEntryIDs
	uc.record(ctx, attempt)

	// Re-hydrate the session with the server-assigned identity.
	_, _, err = uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		b.ID = created.ID
		b.Number = created.Number
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update session after save: %w", err)
	}

	return &SaveBudgetOutput{
		BudgetID:        created.ID,
		Number:          created.Number,
		CreatedEntryIDs: createdEntryIDs,
	}, nil
}

func (uc *SaveBudgetUseCase) beginSave(sessionID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight[sessionID] {
		return false
	}
	uc.inFlight[sessionID] = true
	return true
}

func (uc *SaveBudgetUseCase) endSave(sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, sessionID)
}

// record journals the attempt. Journal failures are logged, not surfaced:
// the save result itself must not depend on the local audit write.
func (uc *SaveBudgetUseCase) record(ctx context.Context, attempt *entity.SaveAttempt) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.Record(ctx, attempt); err != nil {
		slog.Error("Failed to journal save attempt",
			"session_id", attempt.SessionID,
			"outcome", attempt.Outcome,
			"error", err,
		)
	}
}

func (uc *SaveBudgetUseCase) alertPartialSave(
	ctx context.Context,
	input SaveBudgetInput,
	budget *entity.Budget,
	created *adapter.CreatedBudget,
	createdEntries int,
	cause error,
) {
	if uc.emails == nil || input.SalespersonEmail == "" {
		return
	}

	err := uc.emails.QueuePartialSaveAlertEmail(ctx, adapter.QueuePartialSaveAlertInput{
		RecipientEmail: input.SalespersonEmail,
		RecipientName:  input.SalespersonName,
		BudgetID:       created.ID.String(),
		BudgetNumber:   created.Number,
		ClientName:     budget.Client.Name,
		CreatedEntries: createdEntries,
		TotalEntries:   len(budget.PaymentPlan),
		FailureReason:  cause.Error(),
	})
	if err != nil {
		slog.Error("Failed to queue partial-save alert", "budget_id", created.ID, "error", err)
	}
}
