// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/application/usecase/budget"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/middleware"
)

// BudgetController handles the persisted-budget endpoints. Every handler
// forwards the caller's bearer token to the ERP backend.
type BudgetController struct {
	saveUseCase         *budget.SaveBudgetUseCase
	loadUseCase         *budget.LoadBudgetUseCase
	listUseCase         *budget.ListBudgetsUseCase
	updateUseCase       *budget.UpdateBudgetUseCase
	deleteUseCase       *budget.DeleteBudgetUseCase
	listStatusesUseCase *budget.ListStatusesUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	saveUseCase *budget.SaveBudgetUseCase,
	loadUseCase *budget.LoadBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	listStatusesUseCase *budget.ListStatusesUseCase,
) *BudgetController {
	return &BudgetController{
		saveUseCase:         saveUseCase,
		loadUseCase:         loadUseCase,
		listUseCase:         listUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		listStatusesUseCase: listStatusesUseCase,
	}
}

// Save handles POST /budgets/save requests. It persists the session's
// budget on the ERP backend: the header first, then each payment entry
// in order.
func (c *BudgetController) Save(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}
	token, salespersonID, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	storeID, _ := middleware.GetStoreIDFromContext(ctx)
	email, _ := middleware.GetUserEmailFromContext(ctx)
	name, _ := middleware.GetUserNameFromContext(ctx)

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), budget.SaveBudgetInput{
		SessionID:        sessionID,
		Token:            token,
		StoreID:          storeID,
		SalespersonID:    salespersonID,
		SalespersonEmail: email,
		SalespersonName:  name,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaveBudgetResponse(output))
}

// Load handles POST /budgets/:id/load requests. The fetched budget
// replaces whatever the session held before.
func (c *BudgetController) Load(ctx *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		respondMissingSession(ctx)
		return
	}
	token, _, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.loadUseCase.Execute(ctx.Request.Context(), budget.LoadBudgetInput{
		SessionID: sessionID,
		Token:     token,
		BudgetID:  budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoadBudgetResponse(output))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	token, _, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	filters := adapter.BudgetFilters{
		Number: ctx.Query("number"),
	}
	if raw := ctx.Query("status_id"); raw != "" {
		statusID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status ID format",
				Code:  string(domainerror.ErrCodeMissingBudgetFields),
			})
			return
		}
		filters.StatusID = &statusID
	}
	if raw := ctx.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid client ID format",
				Code:  string(domainerror.ErrCodeMissingBudgetFields),
			})
			return
		}
		filters.ClientID = &clientID
	}
	filters.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filters.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		Token:   token,
		Filters: filters,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Page))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	token, _, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	update := adapter.BudgetHeaderUpdate{
		Observations: req.Observations,
	}
	if req.DiscountPercent != nil {
		discount := decimal.NewFromFloat(*req.DiscountPercent)
		update.DiscountPercent = &discount
	}
	if req.FinalValue != nil {
		finalValue := decimal.NewFromFloat(*req.FinalValue)
		update.FinalValue = &finalValue
	}
	if req.StatusID != nil {
		statusID, err := uuid.Parse(*req.StatusID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status ID format",
				Code:  string(domainerror.ErrCodeMissingBudgetFields),
			})
			return
		}
		update.StatusID = &statusID
	}

	err = c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		Token:    token,
		BudgetID: budgetID,
		Update:   update,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Delete handles DELETE /budgets/:id requests. Deleting an
// already-deleted budget succeeds.
func (c *BudgetController) Delete(ctx *gin.Context) {
	token, _, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		Token:    token,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListStatuses handles GET /budget-statuses requests.
func (c *BudgetController) ListStatuses(ctx *gin.Context) {
	token, _, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	output, err := c.listStatusesUseCase.Execute(ctx.Request.Context(), budget.ListStatusesInput{Token: token})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusListResponse(output.Statuses))
}

// handleBudgetError maps save/gateway errors to HTTP responses. A partial
// save is reported with everything the client needs to retry only the
// entries that did not reach the backend.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var partialErr *domainerror.PartialSaveFailureError
	if errors.As(err, &partialErr) {
		ctx.JSON(http.StatusBadGateway, dto.ToPartialSaveResponse(partialErr))
		return
	}

	if errors.Is(err, domainerror.ErrSaveInProgress) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "A save is already in progress for this session",
			Code:  string(domainerror.ErrCodeSaveInProgress),
		})
		return
	}

	var networkErr *domainerror.NetworkUnavailableError
	if errors.As(err, &networkErr) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: networkErr.Error(),
			Code:  string(domainerror.ErrCodeNetworkUnavailable),
		})
		return
	}

	var remoteErr *domainerror.RemoteRejectedError
	if errors.As(err, &remoteErr) {
		ctx.JSON(remoteErr.StatusCode, dto.ErrorResponse{
			Error: remoteErr.Message,
			Code:  string(domainerror.ErrCodeRemoteRejected),
		})
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to process budget operation",
	})
}

// callerIdentity pulls the forwarded token and salesperson id set by the
// auth middleware. It writes the error response itself when absent.
func callerIdentity(ctx *gin.Context) (string, uuid.UUID, bool) {
	token, ok := middleware.GetBearerTokenFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", uuid.Nil, false
	}
	salespersonID, ok := middleware.GetSalespersonIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", uuid.Nil, false
	}
	return token, salespersonID, true
}
