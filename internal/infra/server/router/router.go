// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/integration/entrypoint/controller"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	transactionController *controller.TransactionController
	importController      *controller.ImportController
	inventoryController   *controller.InventoryController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	transactionController *controller.TransactionController,
	importController *controller.ImportController,
	inventoryController *controller.InventoryController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		transactionController: transactionController,
		importController:      importController,
		inventoryController:   inventoryController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
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
	api := r.engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
	}

	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	profile := protected.Group("/profile")
	{
		profile.GET("", r.authController.GetProfile)
		profile.PUT("", r.authController.UpdateProfile)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", r.userController.List)
		admin.POST("/users", r.userController.Create)
		admin.PUT("/users/:id", r.userController.Update)
		admin.DELETE("/users/:id", r.userController.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.POST("/bulk", r.transactionController.Bulk)
		transactions.GET("/summary", r.transactionController.Summary)
		transactions.GET("/export", r.transactionController.Export)
		transactions.DELETE("/all", r.transactionController.DeleteAll)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.POST("/import/preview", r.importController.Preview)
		transactions.POST("/import", r.importController.Import)
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("", r.inventoryController.List)
		inventory.GET("/low-stock", r.inventoryController.LowStock)

		writers := inventory.Group("")
		writers.Use(middleware.RequireRoles(entity.RoleAdmin, entity.RoleOwner, entity.RoleStaff))
		writers.POST("", r.inventoryController.Create)
		writers.PATCH("/:id", r.inventoryController.Update)
		writers.POST("/:id/adjust", r.inventoryController.Adjust)
		writers.DELETE("/:id", r.inventoryController.Delete)
	}
}
