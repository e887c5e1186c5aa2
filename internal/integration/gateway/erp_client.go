// Package gateway implements the HTTP client for the ERP backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// ERPClient talks to the external orçamentos backend. It owns the
// case/shape translation in both directions: the backend speaks snake_case
// Portuguese field names, the domain speaks entities and decimals.
// Monetary values are rounded to 2 decimal places only here, at the wire
// boundary.
type ERPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewERPClient creates a client for the given base URL. The timeout is
// deliberately generous; the backend can be slow and the per-request
// timeout is the only cancellation mechanism.
func NewERPClient(baseURL string, timeout time.Duration) *ERPClient {
	return &ERPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Wire shapes. The backend contract uses snake_case Portuguese names.

type budgetCreatePayload struct {
	ClienteID          string  `json:"cliente_id"`
	LojaID             string  `json:"loja_id"`
	VendedorID         string  `json:"vendedor_id"`
	ValorAmbientes     float64 `json:"valor_ambientes"`
	DescontoPercentual float64 `json:"desconto_percentual"`
	ValorFinal         float64 `json:"valor_final"`
	Observacoes        string  `json:"observacoes"`
}

type budgetUpdatePayload struct {
	DescontoPercentual *float64 `json:"desconto_percentual,omitempty"`
	ValorFinal         *float64 `json:"valor_final,omitempty"`
	Observacoes        *string  `json:"observacoes,omitempty"`
	StatusID           *string  `json:"status_id,omitempty"`
}

type clienteResource struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type formaPagamentoPayload struct {
	OrcamentoID   string                 `json:"orcamento_id"`
	Tipo          string                 `json:"tipo"`
	Valor         float64                `json:"valor"`
	ValorPresente float64                `json:"valor_presente"`
	Parcelas      int                    `json:"parcelas"`
	Dados         map[string]interface{} `json:"dados"`
	Travada       bool                   `json:"travada"`
}

type formaPagamentoResource struct {
	ID            string                 `json:"id"`
	Tipo          string                 `json:"tipo"`
	Valor         float64                `json:"valor"`
	ValorPresente float64                `json:"valor_presente"`
	Parcelas      int                    `json:"parcelas"`
	Dados         map[string]interface{} `json:"dados"`
	Travada       bool                   `json:"travada"`
	CreatedAt     time.Time              `json:"created_at"`
}

type orcamentoResource struct {
	ID                 string                   `json:"id"`
	Numero             string                   `json:"numero"`
	ClienteID          string                   `json:"cliente_id"`
	Cliente            *clienteResource         `json:"cliente,omitempty"`
	StatusID           *string                  `json:"status_id,omitempty"`
	ValorAmbientes     float64                  `json:"valor_ambientes"`
	DescontoPercentual float64                  `json:"desconto_percentual"`
	ValorFinal         float64                  `json:"valor_final"`
	Observacoes        string                   `json:"observacoes"`
	FormasPagamento    []formaPagamentoResource `json:"formas_pagamento,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

type orcamentoListResponse struct {
	Items []orcamentoResource `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Pages int                 `json:"pages"`
}

type statusResource struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Cor   string `json:"cor"`
	Ordem int    `json:"ordem"`
	Ativo bool   `json:"ativo"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Payment kind translation. The backend uses the Portuguese taxonomy.

var kindToTipo = map[entity.PaymentKind]string{
	entity.PaymentKindCash:      "a_vista",
	entity.PaymentKindBoleto:    "boleto",
	entity.PaymentKindCard:      "cartao",
	entity.PaymentKindFinancing: "financeira",
}

var tipoToKind = map[string]entity.PaymentKind{
	"a_vista":    entity.PaymentKindCash,
	"boleto":     entity.PaymentKindBoleto,
	"cartao":     entity.PaymentKindCard,
	"financeira": entity.PaymentKindFinancing,
}

// CreateBudget persists the budget header. Payment entries are not part
// of this call.
func (c *ERPClient) CreateBudget(ctx context.Context, token string, input adapter.CreateBudgetInput) (*adapter.CreatedBudget, error) {
	payload := budgetCreatePayload{
		ClienteID:          input.ClientID.String(),
		LojaID:             input.StoreID.String(),
		VendedorID:         input.SalespersonID.String(),
		ValorAmbientes:     moneyOut(input.GrossValue),
		DescontoPercentual: moneyOut(input.DiscountPercent),
		ValorFinal:         moneyOut(input.FinalValue),
		Observacoes:        input.Observations,
	}

	var resource orcamentoResource
	if err := c.do(ctx, token, "createBudget", http.MethodPost, "/orcamentos", payload, &resource); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(resource.ID)
	if err != nil {
		return nil, fmt.Errorf("backend returned malformed budget id %q: %w", resource.ID, err)
	}

	return &adapter.CreatedBudget{ID: id, Number: resource.Numero}, nil
}

// CreatePaymentEntry persists one payment entry scoped to a budget.
func (c *ERPClient) CreatePaymentEntry(ctx context.Context, token string, budgetID uuid.UUID, entry entity.PaymentEntry) (*entity.PaymentEntry, error) {
	payload := formaPagamentoPayload{
		OrcamentoID:   budgetID.String(),
		Tipo:          kindToTipo[entry.Kind],
		Valor:         moneyOut(entry.NominalValue),
		ValorPresente: moneyOut(entry.PresentValue),
		Parcelas:      entry.Installments,
		Dados:         entry.Details,
		Travada:       entry.Locked,
	}

	path := fmt.Sprintf("/orcamentos/%s/formas-pagamento", budgetID)
	var resource formaPagamentoResource
	if err := c.do(ctx, token, "createPaymentEntry", http.MethodPost, path, payload, &resource); err != nil {
		return nil, err
	}

	return paymentFromResource(resource)
}

// GetBudget fetches a budget by id and converts it back to the local
// shape. Environments are not re-derived: the backend only returns the
// aggregated valor_ambientes, which is surfaced separately.
func (c *ERPClient) GetBudget(ctx context.Context, token string, id uuid.UUID) (*adapter.LoadedBudget, error) {
	var resource orcamentoResource
	if err := c.do(ctx, token, "getBudget", http.MethodGet, "/orcamentos/"+id.String(), nil, &resource); err != nil {
		return nil, err
	}

	budget, err := budgetFromResource(resource)
	if err != nil {
		return nil, err
	}

	return &adapter.LoadedBudget{
		Budget:                 budget,
		GrossValue:             decimal.NewFromFloat(resource.ValorAmbientes),
		EnvironmentsRehydrated: false,
	}, nil
}

// ListBudgets fetches a filtered, paginated listing.
func (c *ERPClient) ListBudgets(ctx context.Context, token string, filters adapter.BudgetFilters) (*adapter.BudgetPage, error) {
	query := url.Values{}
	if filters.Number != "" {
		query.Set("numero", filters.Number)
	}
	if filters.StatusID != nil {
		query.Set("status_id", filters.StatusID.String())
	}
	if filters.ClientID != nil {
		query.Set("cliente_id", filters.ClientID.String())
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	path := "/orcamentos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var response orcamentoListResponse
	if err := c.do(ctx, token, "listBudgets", http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}

	items := make([]adapter.BudgetSummary, 0, len(response.Items))
	for _, resource := range response.Items {
		summary, err := summaryFromResource(resource)
		if err != nil {
			return nil, err
		}
		items = append(items, summary)
	}

	return &adapter.BudgetPage{
		Items: items,
		Total: response.Total,
		Page:  response.Page,
		Limit: response.Limit,
		Pages: response.Pages,
	}, nil
}

// UpdateBudget applies a partial header update.
func (c *ERPClient) UpdateBudget(ctx context.Context, token string, id uuid.UUID, update adapter.BudgetHeaderUpdate) error {
	payload := budgetUpdatePayload{
		Observacoes: update.Observations,
	}
	if update.DiscountPercent != nil {
		v := moneyOut(*update.DiscountPercent)
		payload.DescontoPercentual = &v
	}
	if update.FinalValue != nil {
		v := moneyOut(*update.FinalValue)
		payload.ValorFinal = &v
	}
	if update.StatusID != nil {
		s := update.StatusID.String()
		payload.StatusID = &s
	}

	return c.do(ctx, token, "updateBudget", http.MethodPut, "/orcamentos/"+id.String(), payload, nil)
}

// DeleteBudget deletes a budget. A 404 means the budget is already gone
// and is treated as success so repeated deletes stay idempotent.
func (c *ERPClient) DeleteBudget(ctx context.Context, token string, id uuid.UUID) error {
	err := c.do(ctx, token, "deleteBudget", http.MethodDelete, "/orcamentos/"+id.String(), nil, nil)
	if err != nil {
		var rejected *domainerror.RemoteRejectedError
		if errors.As(err, &rejected) && rejected.StatusCode == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

// ListStatuses fetches the status taxonomy.
func (c *ERPClient) ListStatuses(ctx context.Context, token string) ([]entity.BudgetStatus, error) {
	var resources []statusResource
	if err := c.do(ctx, token, "listStatuses", http.MethodGet, "/status-orcamento", nil, &resources); err != nil {
		return nil, err
	}

	statuses := make([]entity.BudgetStatus, 0, len(resources))
	for _, resource := range resources {
		id, err := uuid.Parse(resource.ID)
		if err != nil {
			return nil, fmt.Errorf("backend returned malformed status id %q: %w", resource.ID, err)
		}
		statuses = append(statuses, entity.BudgetStatus{
			ID:     id,
			Name:   resource.Nome,
			Color:  resource.Cor,
			Order:  resource.Ordem,
			Active: resource.Ativo,
		})
	}
	return statuses, nil
}

// do executes one request against the backend, classifying failures into
// the two error kinds callers need to tell apart: NetworkUnavailableError
// when the backend could not be reached, RemoteRejectedError when it
// answered with a non-success status.
func (c *ERPClient) do(ctx context.Context, token, operation, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerror.NewNetworkUnavailableError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domainerror.NewRemoteRejectedError(operation, resp.StatusCode, remoteMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

// remoteMessage extracts the backend's error message from a rejection
// body, if one is present.
func remoteMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Error != "":
		return payload.Error
	case payload.Detail != "":
		return payload.Detail
	}
	return ""
}

func moneyOut(value decimal.Decimal) float64 {
	// 2-decimal half-up rounding happens exactly once, here at the wire.
	f, _ := value.Round(2).Float64()
	return f
}

func budgetFromResource(resource orcamentoResource) (*entity.Budget, error) {
	id, err := uuid.Parse(resource.ID)
	if err != nil {
		return nil, fmt.Errorf("backend returned malformed budget id %q: %w", resource.ID, err)
	}

	budget := &entity.Budget{
		ID:              id,
		Number:          resource.Numero,
		DiscountPercent: decimal.NewFromFloat(resource.DescontoPercentual),
		Observations:    resource.Observacoes,
		CreatedAt:       resource.CreatedAt,
		UpdatedAt:       resource.UpdatedAt,
	}

	if resource.Cliente != nil {
		clientID, err := uuid.Parse(resource.Cliente.ID)
		if err != nil {
			return nil, fmt.Errorf("backend returned malformed client id %q: %w", resource.Cliente.ID, err)
		}
		budget.Client = &entity.Client{ID: clientID, Name: resource.Cliente.Nome}
	} else if resource.ClienteID != "" {
		clientID, err := uuid.Parse(resource.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("backend returned malformed client id %q: %w", resource.ClienteID, err)
		}
		budget.Client = &entity.Client{ID: clientID}
	}

	if resource.StatusID != nil {
		statusID, err := uuid.Parse(*resource.StatusID)
		if err != nil {
			return nil, fmt.Errorf("backend returned malformed status id %q: %w", *resource.StatusID, err)
		}
		budget.StatusID = &statusID
	}

	for _, fp := range resource.FormasPagamento {
		entry, err := paymentFromResource(fp)
		if err != nil {
			return nil, err
		}
		budget.PaymentPlan = append(budget.PaymentPlan, *entry)
	}

	return budget, nil
}

func paymentFromResource(resource formaPagamentoResource) (*entity.PaymentEntry, error) {
	id, err := uuid.Parse(resource.ID)
	if err != nil {
		return nil, fmt.Errorf("backend returned malformed payment entry id %q: %w", resource.ID, err)
	}

	kind, ok := tipoToKind[resource.Tipo]
	if !ok {
		return nil, fmt.Errorf("backend returned unknown payment type %q", resource.Tipo)
	}

	return &entity.PaymentEntry{
		ID:           id,
		Kind:         kind,
		NominalValue: decimal.NewFromFloat(resource.Valor),
		PresentValue: decimal.NewFromFloat(resource.ValorPresente),
		Installments: resource.Parcelas,
		Details:      resource.Dados,
		Locked:       resource.Travada,
		CreatedAt:    resource.CreatedAt,
	}, nil
}

func summaryFromResource(resource orcamentoResource) (adapter.BudgetSummary, error) {
	id, err := uuid.Parse(resource.ID)
	if err != nil {
		return adapter.BudgetSummary{}, fmt.Errorf("backend returned malformed budget id %q: %w", resource.ID, err)
	}

	summary := adapter.BudgetSummary{
		ID:         id,
		Number:     resource.Numero,
		FinalValue: decimal.NewFromFloat(resource.ValorFinal),
		CreatedAt:  resource.CreatedAt,
	}

	if resource.ClienteID != "" {
		clientID, err := uuid.Parse(resource.ClienteID)
		if err != nil {
			return adapter.BudgetSummary{}, fmt.Errorf("backend returned malformed client id %q: %w", resource.ClienteID, err)
		}
		summary.ClientID = clientID
	}
	if resource.Cliente != nil {
		summary.ClientName = resource.Cliente.Nome
	}
	if resource.StatusID != nil {
		statusID, err := uuid.Parse(*resource.StatusID)
		if err != nil {
			return adapter.BudgetSummary{}, fmt.Errorf("backend returned malformed status id %q: %w", *resource.StatusID, err)
		}
		summary.StatusID = &statusID
	}

	return summary, nil
}

// Ensure the client satisfies the gateway interface.
var _ adapter.ERPGateway = (*ERPClient)(nil)
