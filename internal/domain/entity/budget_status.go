// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// BudgetStatus is an entry of the status taxonomy owned by the ERP backend
// (draft, sent, approved, ...). Used for display and filtering only.
type BudgetStatus struct {
	ID     uuid.UUID
	Name   string
	Color  string
	Order  int
	Active bool
}
