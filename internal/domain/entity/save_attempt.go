// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaveOutcome classifies the result of a budget save attempt.
type SaveOutcome string

const (
	// SaveOutcomeComplete means header and every payment entry persisted.
	SaveOutcomeComplete SaveOutcome = "complete"
	// SaveOutcomePartial means the header persisted but at least one
	// payment entry did not. The header is not rolled back.
	SaveOutcomePartial SaveOutcome = "partial"
	// SaveOutcomeFailed means the header itself was rejected or unreachable.
	SaveOutcomeFailed SaveOutcome = "failed"
)

// SaveAttempt is the local journal record of one saveBudgetComplete run.
// For partial outcomes it records which entries made it to the backend so
// a caller can diff against the local plan and retry only the missing ones.
type SaveAttempt struct {
	ID              uuid.UUID
	SessionID       string
	BudgetID        *uuid.UUID
	BudgetNumber    string
	Outcome         SaveOutcome
	CreatedEntryIDs []uuid.UUID
	FailedEntryID   *uuid.UUID
	ErrorText       string
	CreatedAt       time.Time
}

// NewSaveAttempt creates a journal record for a session's save run.
func NewSaveAttempt(sessionID string) *SaveAttempt {
	return &SaveAttempt{
		ID:        uuid.New(),
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
}
