// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	usecase "github.com/fluyt/budget-service/internal/application/usecase/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// SetClientRequest represents the request body for replacing the session client.
type SetClientRequest struct {
	ClientID   string `json:"client_id" binding:"required,uuid"`
	ClientName string `json:"client_name" binding:"required"`
}

// EnvironmentRequest represents a single environment in a replacement request.
type EnvironmentRequest struct {
	ID    string  `json:"id" binding:"required,uuid"`
	Name  string  `json:"name" binding:"required"`
	Value float64 `json:"value"`
}

// SetEnvironmentsRequest represents the request body for replacing the
// environment list wholesale.
type SetEnvironmentsRequest struct {
	Environments []EnvironmentRequest `json:"environments"`
}

// SetDiscountRequest represents the request body for applying a discount.
type SetDiscountRequest struct {
	Percent float64 `json:"percent"`
}

// SetObservationsRequest represents the request body for replacing observations.
type SetObservationsRequest struct {
	Observations string `json:"observations"`
}

// PaymentEntryRequest represents the request body for adding or updating
// a payment-plan entry.
type PaymentEntryRequest struct {
	Kind         string                 `json:"kind" binding:"required,oneof=cash boleto card financing"`
	NominalValue float64                `json:"nominal_value"`
	PresentValue float64                `json:"present_value"`
	Installments int                    `json:"installments"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Locked       bool                   `json:"locked"`
}

// ClientResponse represents the session's client reference.
type ClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnvironmentResponse represents a single environment line item.
type EnvironmentResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PaymentEntryResponse represents a single payment-plan entry.
type PaymentEntryResponse struct {
	ID           string                 `json:"id"`
	Kind         string                 `json:"kind"`
	NominalValue float64                `json:"nominal_value"`
	PresentValue float64                `json:"present_value"`
	Installments int                    `json:"installments"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Locked       bool                   `json:"locked"`
	CreatedAt    time.Time              `json:"created_at"`
}

// TotalsResponse represents the derived allocation totals.
type TotalsResponse struct {
	Gross             float64 `json:"gross"`
	Negotiated        float64 `json:"negotiated"`
	PresentValueTotal float64 `json:"present_value_total"`
	Remaining         float64 `json:"remaining"`
	FullyAllocated    bool    `json:"fully_allocated"`
	OverAllocated     bool    `json:"over_allocated"`
}

// BudgetStateResponse represents the session's budget aggregate.
type BudgetStateResponse struct {
	ID              string                 `json:"id,omitempty"`
	Number          string                 `json:"number,omitempty"`
	Client          *ClientResponse        `json:"client,omitempty"`
	Environments    []EnvironmentResponse  `json:"environments"`
	DiscountPercent float64                `json:"discount_percent"`
	PaymentPlan     []PaymentEntryResponse `json:"payment_plan"`
	Observations    string                 `json:"observations"`
	StatusID        string                 `json:"status_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// SessionStateResponse represents the full session state returned by
// every session operation.
type SessionStateResponse struct {
	Budget              BudgetStateResponse `json:"budget"`
	Totals              TotalsResponse      `json:"totals"`
	CanSave             bool                `json:"can_save"`
	CanGenerateContract bool                `json:"can_generate_contract"`
}

// AddPaymentEntryResponse is the session state plus the created entry.
type AddPaymentEntryResponse struct {
	SessionStateResponse
	Entry PaymentEntryResponse `json:"entry"`
}

// money formats a decimal for display with two decimal places.
func money(value decimal.Decimal) float64 {
	f, _ := value.Round(2).Float64()
	return f
}

// ToTotalsResponse converts allocation totals to a TotalsResponse DTO.
func ToTotalsResponse(totals valueobject.Totals) TotalsResponse {
	return TotalsResponse{
		Gross:             money(totals.Gross),
		Negotiated:        money(totals.Negotiated),
		PresentValueTotal: money(totals.PresentValueTotal),
		Remaining:         money(totals.Remaining),
		FullyAllocated:    totals.IsFullyAllocated(),
		OverAllocated:     totals.IsOverAllocated(),
	}
}

// ToPaymentEntryResponse converts a payment entry to its DTO.
func ToPaymentEntryResponse(entry entity.PaymentEntry) PaymentEntryResponse {
	return PaymentEntryResponse{
		ID:           entry.ID.String(),
		Kind:         string(entry.Kind),
		NominalValue: money(entry.NominalValue),
		PresentValue: money(entry.PresentValue),
		Installments: entry.Installments,
		Details:      entry.Details,
		Locked:       entry.Locked,
		CreatedAt:    entry.CreatedAt,
	}
}

// ToBudgetStateResponse converts the budget aggregate to its DTO.
func ToBudgetStateResponse(budget *entity.Budget) BudgetStateResponse {
	response := BudgetStateResponse{
		Environments:    make([]EnvironmentResponse, 0, len(budget.Environments)),
		DiscountPercent: money(budget.DiscountPercent),
		PaymentPlan:     make([]PaymentEntryResponse, 0, len(budget.PaymentPlan)),
		Observations:    budget.Observations,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
	}

	if budget.ID != uuid.Nil {
		response.ID = budget.ID.String()
	}
	response.Number = budget.Number

	if budget.Client != nil {
		response.Client = &ClientResponse{
			ID:   budget.Client.ID.String(),
			Name: budget.Client.Name,
		}
	}
	if budget.StatusID != nil {
		response.StatusID = budget.StatusID.String()
	}

	for _, env := range budget.Environments {
		response.Environments = append(response.Environments, EnvironmentResponse{
			ID:    env.ID.String(),
			Name:  env.Name,
			Value: money(env.Value),
		})
	}

	for _, entry := range budget.PaymentPlan {
		response.PaymentPlan = append(response.PaymentPlan, ToPaymentEntryResponse(entry))
	}

	return response
}

// ToSessionStateResponse converts a session use case result to its DTO.
func ToSessionStateResponse(result usecase.Result) SessionStateResponse {
	return SessionStateResponse{
		Budget:              ToBudgetStateResponse(result.Budget),
		Totals:              ToTotalsResponse(result.Totals),
		CanSave:             result.CanSave,
		CanGenerateContract: result.CanGenerateContract,
	}
}
