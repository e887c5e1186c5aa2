// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fluyt/budget-service/internal/integration/entrypoint/controller"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	sessionController *controller.SessionController
	budgetController  *controller.BudgetController
	saveRateLimiter   *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	sessionController *controller.SessionController,
	budgetController *controller.BudgetController,
	saveRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		sessionController: sessionController,
		budgetController:  budgetController,
		saveRateLimiter:   saveRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Session routes (require authentication and a session id)
		if r.sessionController != nil && r.authMiddleware != nil {
			session := v1.Group("/session")
			session.Use(r.authMiddleware.Authenticate(), middleware.RequireSessionID())
			{
				session.GET("", r.sessionController.Get)
				session.DELETE("", r.sessionController.Clear)
				session.PUT("/client", r.sessionController.SetClient)
				session.PUT("/environments", r.sessionController.SetEnvironments)
				session.PUT("/discount", r.sessionController.SetDiscount)
				session.PUT("/observations", r.sessionController.SetObservations)
				session.POST("/payment-entries", r.sessionController.AddPaymentEntry)
				session.PUT("/payment-entries/:id", r.sessionController.UpdatePaymentEntry)
				session.DELETE("/payment-entries/:id", r.sessionController.RemovePaymentEntry)
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}

			// Save and load operate on the session, so they also need the id
			sessionBudgets := v1.Group("/budgets")
			sessionBudgets.Use(r.authMiddleware.Authenticate(), middleware.RequireSessionID())
			{
				if r.saveRateLimiter != nil {
					sessionBudgets.POST("/save", r.saveRateLimiter.Middleware(), r.budgetController.Save)
				} else {
					sessionBudgets.POST("/save", r.budgetController.Save)
				}
				sessionBudgets.POST("/:id/load", r.budgetController.Load)
			}

			statuses := v1.Group("/budget-statuses")
			statuses.Use(r.authMiddleware.Authenticate())
			{
				statuses.GET("", r.budgetController.ListStatuses)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
