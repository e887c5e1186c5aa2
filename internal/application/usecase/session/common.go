// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// Result is the state returned by every session use case: the aggregate,
// its derived totals and the capability flags the UI drives buttons with.
type Result struct {
	Budget              *entity.Budget
	Totals              valueobject.Totals
	CanSave             bool
	CanGenerateContract bool
}

func newResult(budget *entity.Budget, totals valueobject.Totals) Result {
	return Result{
		Budget:              budget,
		Totals:              totals,
		CanSave:             budget.CanSave(),
		CanGenerateContract: budget.CanGenerateContract(),
	}
}
