// Package model defines storage models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SessionSchemaVersion is the version stamped into every stored session
// document. There is exactly one key schema; the version field exists so
// a future migration can detect old documents instead of keeping parallel
// legacy readers around.
const SessionSchemaVersion = 1

// SessionDocument is the JSON document mirrored to Redis for an
// in-progress budget session. Monetary values are serialized as strings
// to keep their decimal precision intact.
type SessionDocument struct {
	Version         int               `json:"version"`
	BudgetID        string            `json:"budget_id,omitempty"`
	BudgetNumber    string            `json:"budget_number,omitempty"`
	Client          *ClientDocument   `json:"client,omitempty"`
	Environments    []EnvironmentDoc  `json:"environments"`
	DiscountPercent string            `json:"discount_percent"`
	PaymentPlan     []PaymentEntryDoc `json:"payment_plan"`
	Observations    string            `json:"observations"`
	StatusID        string            `json:"status_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ClientDocument is the stored client reference.
type ClientDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnvironmentDoc is one stored environment line item.
type EnvironmentDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PaymentEntryDoc is one stored payment-plan entry.
type PaymentEntryDoc struct {
	ID           string                 `json:"id"`
	Kind         string                 `json:"kind"`
	NominalValue string                 `json:"nominal_value"`
	PresentValue string                 `json:"present_value"`
	Installments int                    `json:"installments"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Locked       bool                   `json:"locked"`
	CreatedAt    time.Time              `json:"created_at"`
}

// SessionDocumentFromEntity converts a budget aggregate into its stored form.
func SessionDocumentFromEntity(budget *entity.Budget) *SessionDocument {
	doc := &SessionDocument{
		Version:         SessionSchemaVersion,
		DiscountPercent: budget.DiscountPercent.String(),
		Observations:    budget.Observations,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
		Environments:    make([]EnvironmentDoc, 0, len(budget.Environments)),
		PaymentPlan:     make([]PaymentEntryDoc, 0, len(budget.PaymentPlan)),
	}

	if budget.ID != uuid.Nil {
		doc.BudgetID = budget.ID.String()
	}
	doc.BudgetNumber = budget.Number

	if budget.Client != nil {
		doc.Client = &ClientDocument{ID: budget.Client.ID.String(), Name: budget.Client.Name}
	}
	if budget.StatusID != nil {
		doc.StatusID = budget.StatusID.String()
	}

	for _, env := range budget.Environments {
		doc.Environments = append(doc.Environments, EnvironmentDoc{
			ID:    env.ID.String(),
			Name:  env.Name,
			Value: env.Value.String(),
		})
	}

	for _, entry := range budget.PaymentPlan {
		doc.PaymentPlan = append(doc.PaymentPlan, PaymentEntryDoc{
			ID:           entry.ID.String(),
			Kind:         string(entry.Kind),
			NominalValue: entry.NominalValue.String(),
			PresentValue: entry.PresentValue.String(),
			Installments: entry.Installments,
			Details:      entry.Details,
			Locked:       entry.Locked,
			CreatedAt:    entry.CreatedAt,
		})
	}

	return doc
}

// ToEntity converts a stored session document back into the aggregate.
func (d *SessionDocument) ToEntity() (*entity.Budget, error) {
	budget := &entity.Budget{
		Number:       d.BudgetNumber,
		Observations: d.Observations,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}

	if d.BudgetID != "" {
		id, err := uuid.Parse(d.BudgetID)
		if err != nil {
			return nil, err
		}
		budget.ID = id
	}

	discount, err := decimal.NewFromString(d.DiscountPercent)
	if err != nil {
		return nil, err
	}
	budget.DiscountPercent = discount

	if d.Client != nil {
		clientID, err := uuid.Parse(d.Client.ID)
		if err != nil {
			return nil, err
		}
		budget.Client = &entity.Client{ID: clientID, Name: d.Client.Name}
	}

	if d.StatusID != "" {
		statusID, err := uuid.Parse(d.StatusID)
		if err != nil {
			return nil, err
		}
		budget.StatusID = &statusID
	}

	for _, env := range d.Environments {
		id, err := uuid.Parse(env.ID)
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(env.Value)
		if err != nil {
			return nil, err
		}
		budget.Environments = append(budget.Environments, entity.Environment{
			ID:    id,
			Name:  env.Name,
			Value: value,
		})
	}

	for _, doc := range d.PaymentPlan {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, err
		}
		nominal, err := decimal.NewFromString(doc.NominalValue)
		if err != nil {
			return nil, err
		}
		present, err := decimal.NewFromString(doc.PresentValue)
		if err != nil {
			return nil, err
		}
		budget.PaymentPlan = append(budget.PaymentPlan, entity.PaymentEntry{
			ID:           id,
			Kind:         entity.PaymentKind(doc.Kind),
			NominalValue: nominal,
			PresentValue: present,
			Installments: doc.Installments,
			Details:      doc.Details,
			Locked:       doc.Locked,
			CreatedAt:    doc.CreatedAt,
		})
	}

	return budget, nil
}
