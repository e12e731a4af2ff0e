// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/usecase/auth"
	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	"github.com/bizledger/backend/internal/application/usecase/inventory"
	"github.com/bizledger/backend/internal/application/usecase/transaction"
	"github.com/bizledger/backend/internal/application/usecase/user"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/infra/cache"
	"github.com/bizledger/backend/internal/infra/server/router"
	"github.com/bizledger/backend/internal/integration/adapters"
	"github.com/bizledger/backend/internal/integration/entrypoint/controller"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
	"github.com/bizledger/backend/internal/integration/persistence"
)

const loginLimiterPrefix = "ratelimit:login:"

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Router        *router.Router
	RateLimiter   *middleware.RateLimiter
	SweepLowStock *inventory.SweepLowStockUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case login throttling is kept in memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, rules valueobject.RuleTable) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	inventoryRepo := persistence.NewInventoryRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Auth.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	idGenerator := adapters.NewIDGenerator()
	spreadsheetReader := adapters.NewSpreadsheetReader(cfg.Import.MaxUploadBytes)
	spreadsheetWriter := adapters.NewSpreadsheetWriter()

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo)
	resolveCallerUseCase := auth.NewResolveCallerUseCase(userRepo, tokenService)

	// Create admin user use cases
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	createUserUseCase := user.NewCreateUserUseCase(userRepo, passwordService)
	updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService)
	deleteUserUseCase := user.NewDeleteUserUseCase(userRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, idGenerator)
	bulkImportUseCase := transaction.NewBulkImportTransactionsUseCase(transactionRepo, idGenerator, rules, cfg.Import.MaxBulkItems)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	deleteAllTransactionsUseCase := transaction.NewDeleteAllTransactionsUseCase(transactionRepo)
	summaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo)
	exportUseCase := transaction.NewExportTransactionsUseCase(transactionRepo, spreadsheetWriter)

	// Create ingestion use cases
	previewImportUseCase := ingestion.NewPreviewImportUseCase(spreadsheetReader, rules)
	importFileUseCase := ingestion.NewImportFileUseCase(spreadsheetReader, rules, bulkImportUseCase)

	// Create inventory use cases
	listItemsUseCase := inventory.NewListItemsUseCase(inventoryRepo)
	createItemUseCase := inventory.NewCreateItemUseCase(inventoryRepo, idGenerator)
	updateItemUseCase := inventory.NewUpdateItemUseCase(inventoryRepo)
	adjustStockUseCase := inventory.NewAdjustStockUseCase(inventoryRepo)
	deleteItemUseCase := inventory.NewDeleteItemUseCase(inventoryRepo)
	sweepLowStockUseCase := inventory.NewSweepLowStockUseCase(inventoryRepo)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = cache.HealthChecker(redisClient)
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	authController := controller.NewAuthController(registerUseCase, loginUseCase, updateProfileUseCase)

	userController := controller.NewUserController(
		listUsersUseCase,
		createUserUseCase,
		updateUserUseCase,
		deleteUserUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		bulkImportUseCase,
		deleteTransactionUseCase,
		deleteAllTransactionsUseCase,
		summaryUseCase,
		exportUseCase,
		cfg.Import.MaxBulkBytes,
	)

	importController := controller.NewImportController(previewImportUseCase, importFileUseCase, cfg.Import.MaxUploadBytes)

	inventoryController := controller.NewInventoryController(
		listItemsUseCase,
		createItemUseCase,
		updateItemUseCase,
		adjustStockUseCase,
		deleteItemUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	attempts, window := cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		attempts, window = 1000, 1*time.Minute
	}
	var limiterStore middleware.LimiterStore
	if redisClient != nil {
		limiterStore = middleware.NewRedisStore(redisClient, loginLimiterPrefix, attempts, window)
	} else {
		limiterStore = middleware.NewMemoryStore(attempts, window)
	}
	loginRateLimiter := middleware.NewRateLimiterWithStore(limiterStore)
	authMiddleware := middleware.NewAuthMiddleware(resolveCallerUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		transactionController,
		importController,
		inventoryController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Router:        r,
		RateLimiter:   loginRateLimiter,
		SweepLowStock: sweepLowStockUseCase,
	}
}
