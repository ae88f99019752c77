package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/config"
	"github.com/ignatzorin/freelance-market/internal/http/handlers"
	"github.com/ignatzorin/freelance-market/internal/http/middleware"
	"github.com/ignatzorin/freelance-market/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	jobHandler *handlers.JobHandler,
	bidHandler *handlers.BidHandler,
	workHandler *handlers.WorkHandler,
	paymentHandler *handlers.PaymentHandler,
	reviewHandler *handlers.ReviewHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/uploads", http.Dir(cfg.UploadPath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	api.GET("/jobs", jobHandler.ListJobs)
	api.GET("/jobs/categories", jobHandler.ListCategories)
	api.GET("/jobs/:id", middleware.UUIDValidator("id"), jobHandler.GetJob)
	api.GET("/jobs/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.GetJobReview)
	api.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.GetPublicProfile)
	api.GET("/users/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListUserReviews)
	api.GET("/stats/landing", jobHandler.LandingStats)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/image", profileHandler.UploadProfileImage)

		protected.POST("/jobs", jobHandler.CreateJob)
		protected.GET("/jobs/my", jobHandler.ListMyJobs)
		protected.POST("/jobs/:id/cancel", middleware.UUIDValidator("id"), jobHandler.CancelJob)

		protected.POST("/jobs/:id/bids", middleware.UUIDValidator("id"), bidHandler.PlaceBid)
		protected.GET("/jobs/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListJobBids)
		protected.GET("/bids/my", bidHandler.ListMyBids)
		protected.POST("/bids/:id/accept", middleware.UUIDValidator("id"), jobHandler.AcceptBid)
		protected.POST("/bids/:id/reject", middleware.UUIDValidator("id"), bidHandler.RejectBid)

		protected.POST("/jobs/:id/work", middleware.UUIDValidator("id"), workHandler.SubmitWork)
		protected.GET("/jobs/:id/work", middleware.UUIDValidator("id"), workHandler.GetJobWork)
		protected.POST("/work/:id/approve", middleware.UUIDValidator("id"), workHandler.ApproveWork)
		protected.POST("/work/:id/reject", middleware.UUIDValidator("id"), workHandler.RejectWork)

		protected.GET("/payments/transactions", paymentHandler.ListTransactions)
		protected.GET("/payments/:id", middleware.UUIDValidator("id"), paymentHandler.GetPayment)
		protected.POST("/payments/:id/pay", middleware.UUIDValidator("id"), paymentHandler.PayNow)

		protected.POST("/jobs/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.CreateReview)

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
	}

	return r
}
