// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fluyt/budget-service/config"
	"github.com/fluyt/budget-service/internal/application/adapter"
	appsession "github.com/fluyt/budget-service/internal/application/session"
	budgetusecase "github.com/fluyt/budget-service/internal/application/usecase/budget"
	sessionusecase "github.com/fluyt/budget-service/internal/application/usecase/session"
	"github.com/fluyt/budget-service/internal/infra/server/router"
	"github.com/fluyt/budget-service/internal/integration/email"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/controller"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/middleware"
	"github.com/fluyt/budget-service/internal/integration/gateway"
	"github.com/fluyt/budget-service/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions *appsession.Manager
	Gateway  adapter.ERPGateway
	Router   *router.Router

	EmailQueue adapter.EmailQueueRepository
	Emails     adapter.EmailService
	Journal    adapter.SaveJournal
}

// NewInjector wires the full application graph. The gateway parameter
// may be nil, in which case an ERP client is built from the config; the
// integration tests pass a client pointed at a mock backend instead. DB
// and Redis are optional the same way they are in production: a nil DB
// drops the save journal and email queue, a nil Redis client drops the
// session mirror.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, erpGateway adapter.ERPGateway) *Injector {
	// Session store with optional Redis mirror
	var sessionRepo adapter.SessionRepository
	if redisClient != nil {
		sessionRepo = persistence.NewRedisSessionRepository(redisClient, cfg.Session.TTL)
	} else {
		sessionRepo = persistence.NewNoopSessionRepository()
	}
	sessions := appsession.NewManager(sessionRepo)

	if erpGateway == nil {
		erpGateway = gateway.NewERPClient(cfg.ERP.BaseURL, cfg.ERP.Timeout)
	}

	injector := &Injector{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
		Gateway:  erpGateway,
	}

	if db != nil {
		injector.Journal = persistence.NewSaveJournalRepository(db)
		injector.EmailQueue = persistence.NewEmailQueueRepository(db)
		injector.Emails = email.NewService(injector.EmailQueue)
	}

	// Session use cases
	getSessionUseCase := sessionusecase.NewGetSessionUseCase(sessions)
	clearSessionUseCase := sessionusecase.NewClearSessionUseCase(sessions)
	setClientUseCase := sessionusecase.NewSetClientUseCase(sessions)
	setEnvironmentsUseCase := sessionusecase.NewSetEnvironmentsUseCase(sessions)
	setDiscountUseCase := sessionusecase.NewSetDiscountUseCase(sessions)
	setObservationsUseCase := sessionusecase.NewSetObservationsUseCase(sessions)
	addEntryUseCase := sessionusecase.NewAddPaymentEntryUseCase(sessions)
	updateEntryUseCase := sessionusecase.NewUpdatePaymentEntryUseCase(sessions)
	removeEntryUseCase := sessionusecase.NewRemovePaymentEntryUseCase(sessions)

	// Budget use cases
	saveBudgetUseCase := budgetusecase.NewSaveBudgetUseCase(sessions, erpGateway, injector.Journal, injector.Emails)
	loadBudgetUseCase := budgetusecase.NewLoadBudgetUseCase(sessions, erpGateway)
	listBudgetsUseCase := budgetusecase.NewListBudgetsUseCase(erpGateway)
	updateBudgetUseCase := budgetusecase.NewUpdateBudgetUseCase(erpGateway)
	deleteBudgetUseCase := budgetusecase.NewDeleteBudgetUseCase(erpGateway)
	listStatusesUseCase := budgetusecase.NewListStatusesUseCase(erpGateway)

	// Controllers and middleware
	healthController := controller.NewHealthController(
		databaseHealthCheck(db),
		redisHealthCheck(redisClient),
	)
	sessionController := controller.NewSessionController(
		getSessionUseCase,
		clearSessionUseCase,
		setClientUseCase,
		setEnvironmentsUseCase,
		setDiscountUseCase,
		setObservationsUseCase,
		addEntryUseCase,
		updateEntryUseCase,
		removeEntryUseCase,
	)
	budgetController := controller.NewBudgetController(
		saveBudgetUseCase,
		loadBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
		listStatusesUseCase,
	)
	saveRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	injector.Router = router.NewRouter(
		healthController,
		sessionController,
		budgetController,
		saveRateLimiter,
		authMiddleware,
	)

	return injector
}

func databaseHealthCheck(db *gorm.DB) func() bool {
	if db == nil {
		return func() bool { return false }
	}
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}
}

func redisHealthCheck(client *redis.Client) func() bool {
	if client == nil {
		return func() bool { return false }
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
