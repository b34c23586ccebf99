package router

import (
	"github.com/economia-solidaria/backend/config"
	"github.com/economia-solidaria/backend/internal/app/controller"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController         *controller.AuthController
	registrationController *controller.RegistrationController
	adminController        *controller.AdminController
	businessController     *controller.BusinessController
	reviewController       *controller.ReviewController
	planController         *controller.PlanController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	registrationController *controller.RegistrationController,
	adminController *controller.AdminController,
	businessController *controller.BusinessController,
	reviewController *controller.ReviewController,
	planController *controller.PlanController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		registrationController: registrationController,
		adminController:        adminController,
		businessController:     businessController,
		reviewController:       reviewController,
		planController:         planController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Economia Solidária API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.GET("/google/login", r.authController.GetGoogleLoginURL)
			auth.GET("/google/callback", r.authController.GoogleCallback)
		}

		registrations := v1.Group("/registrations")
		registrations.Use(r.authMiddleware.Authenticate())
		{
			registrations.POST("", r.registrationController.Submit)
			registrations.GET("/my", r.registrationController.MyRegistrations)
		}

		businesses := v1.Group("/businesses")
		{
			businesses.GET("", r.businessController.ListBusinesses)
			businesses.GET("/slug/:slug", r.businessController.GetBusinessBySlug)
			businesses.GET("/my",
				r.authMiddleware.Authenticate(),
				r.businessController.MyBusinesses,
			)
			businesses.GET("/:id", r.businessController.GetBusiness)
			businesses.PUT("/:id/status",
				r.authMiddleware.Authenticate(),
				r.businessController.SetBusinessStatus,
			)

			businesses.GET("/:id/reviews", r.reviewController.ListBusinessReviews)
			businesses.GET("/:id/reviews/summary", r.reviewController.GetReviewSummary)
			businesses.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.CreateReview,
			)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}

		plans := v1.Group("/plans")
		{
			plans.GET("", r.planController.ListPlans)
			plans.GET("/my", r.authMiddleware.Authenticate(), r.planController.MySubscription)
			plans.POST("/subscribe", r.authMiddleware.Authenticate(), r.planController.Subscribe)
			plans.POST("/cancel", r.authMiddleware.Authenticate(), r.planController.CancelSubscription)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned-url", r.uploadController.GetPresignedURL)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/registrations", r.adminController.ListPendingRegistrations)
			admin.GET("/registrations/export", r.adminController.ExportPendingRegistrations)
			admin.GET("/registrations/:id", r.adminController.GetRegistration)
			admin.POST("/registrations/:id/approve", r.adminController.ApproveRegistration)
			admin.POST("/registrations/:id/deny", r.adminController.DenyRegistration)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
