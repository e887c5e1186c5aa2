// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	usecase "github.com/fluyt/budget-service/internal/application/usecase/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/middleware"
)

// SessionController handles the in-progress budget session endpoints.
type SessionController struct {
	getUseCase             *usecase.GetSessionUseCase
	clearUseCase           *usecase.ClearSessionUseCase
	setClientUseCase       *usecase.SetClientUseCase
	setEnvironmentsUseCase *usecase.SetEnvironmentsUseCase
	setDiscountUseCase     *usecase.SetDiscountUseCase
	setObservationsUseCase *usecase.SetObservationsUseCase
	addEntryUseCase        *usecase.AddPaymentEntryUseCase
	updateEntryUseCase     *usecase.UpdatePaymentEntryUseCase
	removeEntryUseCase     *usecase.RemovePaymentEntryUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(
	getUseCase *usecase.GetSessionUseCase,
	clearUseCase *usecase.ClearSessionUseCase,
	setClientUseCase *usecase.SetClientUseCase,
	setEnvironmentsUseCase *usecase.SetEnvironmentsUseCase,
	setDiscountUseCase *usecase.SetDiscountUseCase,
	setObservationsUseCase *usecase.SetObservationsUseCase,
	addEntryUseCase *usecase.AddPaymentEntryUseCase,
	updateEntryUseCase *usecase.UpdatePaymentEntryUseCase,
	removeEntryUseCase *usecase.RemovePaymentEntryUseCase,
) *SessionController {
	return &SessionController{
		getUseCase:             getUseCase,
		clearUseCase:           clearUseCase,
		setClientUseCase:       setClientUseCase,
		setEnvironmentsUseCase: setEnvironmentsUseCase,
		setDiscountUseCase:     setDiscountUseCase,
		setObservationsUseCase: setObservationsUseCase,
		addEntryUseCase:        addEntryUseCase,
		updateEntryUseCase:     updateEntryUseCase,
		removeEntryUseCase:     removeEntryUseCase,
	}
}

// Get handles GET /session requests.
func (c *SessionController) Get(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), usecase.GetSessionInput{SessionID: sessionID})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// Clear handles DELETE /session requests.
func (c *SessionController) Clear(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	if err := c.clearUseCase.Execute(ctx.Request.Context(), usecase.ClearSessionInput{SessionID: sessionID}); err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetClient handles PUT /session/client requests.
func (c *SessionController) SetClient(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	var req dto.SetClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID format",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.setClientUseCase.Execute(ctx.Request.Context(), usecase.SetClientInput{
		SessionID:  sessionID,
		ClientID:   clientID,
		ClientName: req.ClientName,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// SetEnvironments handles PUT /session/environments requests.
func (c *SessionController) SetEnvironments(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	var req dto.SetEnvironmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	environments := make([]entity.Environment, len(req.Environments))
	for i, env := range req.Environments {
		id, err := uuid.Parse(env.ID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid environment ID format",
				Code:  string(domainerror.ErrCodeInvalidEnvironmentList),
			})
			return
		}
		environments[i] = entity.Environment{
			ID:    id,
			Name:  env.Name,
			Value: decimal.NewFromFloat(env.Value),
		}
	}

	output, err := c.setEnvironmentsUseCase.Execute(ctx.Request.Context(), usecase.SetEnvironmentsInput{
		SessionID:    sessionID,
		Environments: environments,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// SetDiscount handles PUT /session/discount requests.
func (c *SessionController) SetDiscount(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	var req dto.SetDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.setDiscountUseCase.Execute(ctx.Request.Context(), usecase.SetDiscountInput{
		SessionID: sessionID,
		Percent:   decimal.NewFromFloat(req.Percent),
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// SetObservations handles PUT /session/observations requests.
func (c *SessionController) SetObservations(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	var req dto.SetObservationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.setObservationsUseCase.Execute(ctx.Request.Context(), usecase.SetObservationsInput{
		SessionID:    sessionID,
		Observations: req.Observations,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// AddPaymentEntry handles POST /session/payment-entries requests.
func (c *SessionController) AddPaymentEntry(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	var req dto.PaymentEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPaymentEntry),
		})
		return
	}

	output, err := c.addEntryUseCase.Execute(ctx.Request.Context(), usecase.AddPaymentEntryInput{
		SessionID:    sessionID,
		Kind:         entity.PaymentKind(req.Kind),
		NominalValue: decimal.NewFromFloat(req.NominalValue),
		PresentValue: decimal.NewFromFloat(req.PresentValue),
		Installments: req.Installments,
		Details:      req.Details,
		Locked:       req.Locked,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddPaymentEntryResponse{
		SessionStateResponse: dto.ToSessionStateResponse(output.Result),
		Entry:                dto.ToPaymentEntryResponse(output.Entry),
	})
}

// UpdatePaymentEntry handles PUT /session/payment-entries/:id requests.
func (c *SessionController) UpdatePaymentEntry(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
			Code:  string(domainerror.ErrCodeInvalidPaymentEntry),
		})
		return
	}

	var req dto.PaymentEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPaymentEntry),
		})
		return
	}

	output, err := c.updateEntryUseCase.Execute(ctx.Request.Context(), usecase.UpdatePaymentEntryInput{
		SessionID:    sessionID,
		EntryID:      entryID,
		Kind:         entity.PaymentKind(req.Kind),
		NominalValue: decimal.NewFromFloat(req.NominalValue),
		PresentValue: decimal.NewFromFloat(req.PresentValue),
		Installments: req.Installments,
		Details:      req.Details,
		Locked:       req.Locked,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// RemovePaymentEntry handles DELETE /session/payment-entries/:id requests.
func (c *SessionController) RemovePaymentEntry(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
			Code:  string(domainerror.ErrCodeInvalidPaymentEntry),
		})
		return
	}

	output, err := c.removeEntryUseCase.Execute(ctx.Request.Context(), usecase.RemovePaymentEntryInput{
		SessionID: sessionID,
		EntryID:   entryID,
	})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionStateResponse(output.Result))
}

// handleSessionError maps domain validation errors to HTTP responses.
func (c *SessionController) handleSessionError(ctx *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domainerror.ErrPaymentEntryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainerror.ErrPaymentEntryLocked):
		status = http.StatusConflict
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(status, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to process session operation",
	})
}

func respondMissingSession(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "X-Session-ID header is required",
		Code:  string(domainerror.ErrCodeSessionIDRequired),
	})
}
