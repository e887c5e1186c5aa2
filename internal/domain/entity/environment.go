// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Environment is a priced unit of furniture/design work (e.g. "kitchen")
// contributing to a budget's gross value. It is owned by the ambientes
// subsystem; the budget treats it as an immutable line item.
type Environment struct {
	ID    uuid.UUID
	Name  string
	Value decimal.Decimal
}

// Valid reports whether the environment is a usable reference: a non-nil
// ID, a non-empty name and a non-negative value.
func (e Environment) Valid() bool {
	return e.ID != uuid.Nil && e.Name != "" && !e.Value.IsNegative()
}
