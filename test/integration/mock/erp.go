// Package mock provides test doubles for the integration suite.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErpBackend fakes the external orcamentos API. It keeps created budgets
// and payment entries in memory and can be scripted to reject the header
// or fail a specific payment entry, which is how the save scenarios force
// partial outcomes.
type ErpBackend struct {
	server *httptest.Server

	mu           sync.Mutex
	budgets      map[string]map[string]any
	entries      map[string][]map[string]any
	statuses     []map[string]any
	nextNumber   int
	entryCalls   int
	failEntryAt  int // 1-based call index, 0 means never
	rejectStatus int
	rejectBody   string
}

// NewErpBackend creates and starts the fake backend.
func NewErpBackend() *ErpBackend {
	backend := &ErpBackend{
		budgets: map[string]map[string]any{},
		entries: map[string][]map[string]any{},
		statuses: []map[string]any{
			{"id": uuid.NewString(), "nome": "Negociacao", "cor": "#f59e0b", "ordem": 1, "ativo": true},
			{"id": uuid.NewString(), "nome": "Fechado", "cor": "#10b981", "ordem": 2, "ativo": true},
		},
		nextNumber: 1,
	}
	backend.server = httptest.NewServer(http.HandlerFunc(backend.handle))
	return backend
}

// URL returns the fake backend's base URL.
func (b *ErpBackend) URL() string {
	return b.server.URL
}

// Close shuts the fake backend down. Requests after Close fail at the
// network level, which the scenarios use to simulate an outage.
func (b *ErpBackend) Close() {
	b.server.Close()
}

// RejectBudgetCreation scripts the next header creations to fail.
func (b *ErpBackend) RejectBudgetCreation(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectStatus = status
	b.rejectBody = message
}

// FailPaymentEntry makes the Nth payment entry creation fail with 422.
func (b *ErpBackend) FailPaymentEntry(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failEntryAt = n
}

// SeedBudget stores a budget resource directly, bypassing the API.
func (b *ErpBackend) SeedBudget(clientName string, grossValue, finalValue float64) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.budgets[id] = map[string]any{
		"id":                  id,
		"numero":              b.assignNumber(),
		"cliente_id":          uuid.NewString(),
		"cliente":             map[string]any{"id": uuid.NewString(), "nome": clientName},
		"valor_ambientes":     grossValue,
		"desconto_percentual": 0.0,
		"valor_final":         finalValue,
		"observacoes":         "",
		"created_at":          time.Now().UTC().Format(time.RFC3339),
		"updated_at":          time.Now().UTC().Format(time.RFC3339),
	}
	return id
}

// BudgetCount returns the number of budgets the backend holds.
func (b *ErpBackend) BudgetCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.budgets)
}

// EntryCount returns the number of payment entries persisted across all budgets.
func (b *ErpBackend) EntryCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, entries := range b.entries {
		count += len(entries)
	}
	return count
}

func (b *ErpBackend) assignNumber() string {
	number := fmt.Sprintf("ORC-%04d", b.nextNumber)
	b.nextNumber++
	return number
}

func (b *ErpBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := strings.TrimSuffix(r.URL.Path, "/")
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && path == "/orcamentos":
		b.createBudget(w, r)
	case r.Method == http.MethodGet && path == "/orcamentos":
		b.listBudgets(w)
	case r.Method == http.MethodPost && len(parts) == 3 && parts[0] == "orcamentos" && parts[2] == "formas-pagamento":
		b.createEntry(w, r, parts[1])
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "orcamentos":
		b.getBudget(w, parts[1])
	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "orcamentos":
		b.updateBudget(w, r, parts[1])
	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "orcamentos":
		b.deleteBudget(w, parts[1])
	case r.Method == http.MethodGet && path == "/status-orcamento":
		writeJSON(w, http.StatusOK, b.statuses)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "rota desconhecida"})
	}
}

func (b *ErpBackend) createBudget(w http.ResponseWriter, r *http.Request) {
	if b.rejectStatus != 0 {
		writeJSON(w, b.rejectStatus, map[string]any{"message": b.rejectBody})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "corpo invalido"})
		return
	}

	id := uuid.NewString()
	resource := map[string]any{
		"id":                  id,
		"numero":              b.assignNumber(),
		"cliente_id":          payload["cliente_id"],
		"valor_ambientes":     payload["valor_ambientes"],
		"desconto_percentual": payload["desconto_percentual"],
		"valor_final":         payload["valor_final"],
		"observacoes":         payload["observacoes"],
		"created_at":          time.Now().UTC().Format(time.RFC3339),
		"updated_at":          time.Now().UTC().Format(time.RFC3339),
	}
	b.budgets[id] = resource
	writeJSON(w, http.StatusCreated, resource)
}

func (b *ErpBackend) createEntry(w http.ResponseWriter, r *http.Request, budgetID string) {
	if _, ok := b.budgets[budgetID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "orcamento nao encontrado"})
		return
	}

	b.entryCalls++
	if b.failEntryAt != 0 && b.entryCalls == b.failEntryAt {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "forma de pagamento invalida"})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "corpo invalido"})
		return
	}

	resource := map[string]any{
		"id":             uuid.NewString(),
		"tipo":           payload["tipo"],
		"valor":          payload["valor"],
		"valor_presente": payload["valor_presente"],
		"parcelas":       payload["parcelas"],
		"dados":          payload["dados"],
		"travada":        payload["travada"],
		"created_at":     time.Now().UTC().Format(time.RFC3339),
	}
	b.entries[budgetID] = append(b.entries[budgetID], resource)
	writeJSON(w, http.StatusCreated, resource)
}

func (b *ErpBackend) getBudget(w http.ResponseWriter, id string) {
	resource, ok := b.budgets[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "orcamento nao encontrado"})
		return
	}

	full := map[string]any{}
	for key, value := range resource {
		full[key] = value
	}
	full["formas_pagamento"] = b.entries[id]
	writeJSON(w, http.StatusOK, full)
}

func (b *ErpBackend) listBudgets(w http.ResponseWriter) {
	items := make([]map[string]any, 0, len(b.budgets))
	for _, resource := range b.budgets {
		items = append(items, resource)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
		"page":  1,
		"limit": 20,
		"pages": 1,
	})
}

func (b *ErpBackend) updateBudget(w http.ResponseWriter, r *http.Request, id string) {
	resource, ok := b.budgets[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "orcamento nao encontrado"})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "corpo invalido"})
		return
	}
	for key, value := range payload {
		resource[key] = value
	}
	writeJSON(w, http.StatusOK, resource)
}

func (b *ErpBackend) deleteBudget(w http.ResponseWriter, id string) {
	if _, ok := b.budgets[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "orcamento nao encontrado"})
		return
	}
	delete(b.budgets, id)
	delete(b.entries, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
