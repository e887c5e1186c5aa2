// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/application/usecase/budget"
	"github.com/fluyt/budget-service/internal/domain/entity"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// SaveBudgetResponse represents the result of a fully successful save.
type SaveBudgetResponse struct {
	BudgetID        string   `json:"budget_id"`
	Number          string   `json:"number"`
	CreatedEntryIDs []string `json:"created_entry_ids"`
}

// PartialSaveResponse reports a save that persisted the header but not the
// whole payment plan. The client diffs CreatedEntryIDs against its local
// plan to retry only the missing entries.
type PartialSaveResponse struct {
	Error           string   `json:"error"`
	Code            string   `json:"code"`
	BudgetID        string   `json:"budget_id"`
	BudgetNumber    string   `json:"budget_number"`
	CreatedEntryIDs []string `json:"created_entry_ids"`
	FailedEntryID   string   `json:"failed_entry_id"`
}

// LoadBudgetResponse represents a budget re-hydrated into the session.
type LoadBudgetResponse struct {
	SessionStateResponse
	GrossValue             float64 `json:"gross_value"`
	EnvironmentsRehydrated bool    `json:"environments_rehydrated"`
}

// UpdateBudgetRequest represents a partial header update. Absent fields
// are left unchanged.
type UpdateBudgetRequest struct {
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	FinalValue      *float64 `json:"final_value,omitempty"`
	Observations    *string  `json:"observations,omitempty"`
	StatusID        *string  `json:"status_id,omitempty" binding:"omitempty,uuid"`
}

// BudgetSummaryResponse represents one row of a budget listing.
type BudgetSummaryResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	StatusID   string    `json:"status_id,omitempty"`
	FinalValue float64   `json:"final_value"`
	CreatedAt  time.Time `json:"created_at"`
}

// BudgetListResponse represents a paginated budget listing.
type BudgetListResponse struct {
	Items []BudgetSummaryResponse `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
	Pages int                     `json:"pages"`
}

// BudgetStatusResponse represents one entry of the status taxonomy.
type BudgetStatusResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Order int    `json:"order"`
}

// BudgetStatusListResponse represents the status taxonomy.
type BudgetStatusListResponse struct {
	Statuses []BudgetStatusResponse `json:"statuses"`
}

// ToSaveBudgetResponse converts a save output to its DTO.
func ToSaveBudgetResponse(output *budget.SaveBudgetOutput) SaveBudgetResponse {
	return SaveBudgetResponse{
		BudgetID:        output.BudgetID.String(),
		Number:          output.Number,
		CreatedEntryIDs: uuidStrings(output.CreatedEntryIDs),
	}
}

// ToPartialSaveResponse converts a partial-save failure to its DTO.
func ToPartialSaveResponse(failure *domainerror.PartialSaveFailureError) PartialSaveResponse {
	return PartialSaveResponse{
		Error:           failure.Error(),
		Code:            string(domainerror.ErrCodePartialSaveFailure),
		BudgetID:        failure.BudgetID.String(),
		BudgetNumber:    failure.BudgetNumber,
		CreatedEntryIDs: uuidStrings(failure.CreatedEntryIDs),
		FailedEntryID:   failure.FailedEntryID.String(),
	}
}

// ToLoadBudgetResponse converts a load output to its DTO.
func ToLoadBudgetResponse(output *budget.LoadBudgetOutput) LoadBudgetResponse {
	return LoadBudgetResponse{
		SessionStateResponse: SessionStateResponse{
			Budget:              ToBudgetStateResponse(output.Budget),
			Totals:              ToTotalsResponse(output.Totals),
			CanSave:             output.Budget.CanSave(),
			CanGenerateContract: output.Budget.CanGenerateContract(),
		},
		GrossValue:             money(output.GrossValue),
		EnvironmentsRehydrated: output.EnvironmentsRehydrated,
	}
}

// ToBudgetListResponse converts a budget page to its DTO.
func ToBudgetListResponse(page *adapter.BudgetPage) BudgetListResponse {
	items := make([]BudgetSummaryResponse, len(page.Items))
	for i, summary := range page.Items {
		items[i] = BudgetSummaryResponse{
			ID:         summary.ID.String(),
			Number:     summary.Number,
			ClientID:   summary.ClientID.String(),
			ClientName: summary.ClientName,
			FinalValue: money(summary.FinalValue),
			CreatedAt:  summary.CreatedAt,
		}
		if summary.StatusID != nil {
			items[i].StatusID = summary.StatusID.String()
		}
	}
	return BudgetListResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: page.Pages,
	}
}

// ToBudgetStatusListResponse converts the status taxonomy to its DTO.
func ToBudgetStatusListResponse(statuses []entity.BudgetStatus) BudgetStatusListResponse {
	response := BudgetStatusListResponse{
		Statuses: make([]BudgetStatusResponse, len(statuses)),
	}
	for i, status := range statuses {
		response.Statuses[i] = BudgetStatusResponse{
			ID:    status.ID.String(),
			Name:  status.Name,
			Color: status.Color,
			Order: status.Order,
		}
	}
	return response
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
