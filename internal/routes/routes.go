package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	"github.com/StoreRaterHQ/store-rating-api/internal/config"
	"github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/handlers"
	infraRepo "github.com/StoreRaterHQ/store-rating-api/internal/infra/repository"
	"github.com/StoreRaterHQ/store-rating-api/internal/middleware"
	ucRating "github.com/StoreRaterHQ/store-rating-api/internal/usecase/rating"
	ucStore "github.com/StoreRaterHQ/store-rating-api/internal/usecase/store"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	storeRepo := infraRepo.NewStoreGormRepository(db)
	ratingRepo := infraRepo.NewRatingGormRepository(db)
	storeQueries := infraRepo.NewStoreQueries(db)

	auditDispatcher := audit.NewDispatcher(audit.NewGormRecorder(db))

	// ======================================================
	// USE CASES
	// ======================================================
	createStoreUC := ucStore.NewCreateStore(storeRepo, auditDispatcher)
	updateStoreUC := ucStore.NewUpdateStore(storeRepo, auditDispatcher)
	deleteStoreUC := ucStore.NewDeleteStore(storeRepo, auditDispatcher)

	submitRatingUC := ucRating.NewSubmitRating(ratingRepo, auditDispatcher)
	deleteRatingUC := ucRating.NewDeleteRating(ratingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, storeQueries)

	storeHandler := handlers.NewStoreHandler(
		storeQueries,
		createStoreUC,
		updateStoreUC,
		deleteStoreUC,
	)

	ratingHandler := handlers.NewRatingHandler(
		submitRatingUC,
		deleteRatingUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(storeQueries)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	adminOnly := middleware.RequireRoles(string(store.RoleSystemAdmin))
	normalOnly := middleware.RequireRoles(string(store.RoleNormalUser))
	ownerOnly := middleware.RequireRoles(string(store.RoleStoreOwner))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/user", authHandler.GetUser)
			secured.PUT("/auth/password", authHandler.UpdatePassword)
			secured.POST("/auth/logout", authHandler.Logout)

			// ------------------------------
			// STORES
			// ------------------------------
			secured.GET("/stores", storeHandler.List)
			secured.GET("/stores/:id", storeHandler.Get)
			secured.GET("/stores/owner/dashboard", ownerOnly, dashboardHandler.Owner)

			secured.POST("/stores", adminOnly, storeHandler.Create)
			secured.PUT("/stores/:id", adminOnly, storeHandler.Update)
			secured.DELETE("/stores/:id", adminOnly, storeHandler.Delete)

			// ------------------------------
			// RATINGS
			// ------------------------------
			secured.POST("/ratings", normalOnly, ratingHandler.Submit)
			secured.DELETE("/ratings/:store_id", normalOnly, ratingHandler.Delete)
			secured.GET("/ratings/dashboard", adminOnly, dashboardHandler.Admin)

			// ------------------------------
			// USERS (admin)
			// ------------------------------
			secured.GET("/users", adminOnly, userHandler.List)
			secured.POST("/users", adminOnly, userHandler.Create)
			secured.GET("/users/:id", adminOnly, userHandler.Get)

			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
		}
	}
}
