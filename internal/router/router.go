// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/config"
	"github.com/javajoker/orders-backend/internal/handlers"
	"github.com/javajoker/orders-backend/internal/middleware"
	"github.com/javajoker/orders-backend/internal/queue"
	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

// Initialize wires services and handlers onto a gin engine. Notification jobs go to q.
func Initialize(db *gorm.DB, cfg *config.Config, q queue.Queue, storageService *services.StorageService) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(q)
	feedFetcher := services.NewFeedFetcher(cfg.Import, storageService)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db)
	contactService := services.NewContactService(db)
	catalogService := services.NewCatalogService(db, feedFetcher)
	basketService := services.NewBasketService(db)
	orderService := services.NewOrderService(db, notificationService)
	partnerService := services.NewPartnerService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService)
	productHandler := handlers.NewProductHandler(catalogService)
	basketHandler := handlers.NewBasketHandler(basketService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)
	partnerHandler := handlers.NewPartnerHandler(partnerService, catalogService, orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	anonLimiter := middleware.PerMinute(cfg.RateLimit.AnonPerMinute)
	userLimiter := middleware.PerMinute(cfg.RateLimit.UserPerMinute)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	public := r.Group("/")
	public.Use(anonLimiter.Middleware(middleware.ByClientIP))
	{
		public.POST("/user/register", authHandler.Register)
		public.POST("/user/register/confirm", authHandler.ConfirmAccount)
		public.POST("/user/login", authHandler.Login)
		public.POST("/user/password_reset", authHandler.RequestPasswordReset)
		public.POST("/user/password_reset/confirm", authHandler.ConfirmPasswordReset)

		public.GET("/shops", productHandler.ListShops)
		public.GET("/categories", productHandler.ListCategories)
		public.GET("/products", productHandler.ListProducts)
	}

	private := r.Group("/")
	private.Use(middleware.AuthRequired(), userLimiter.Middleware(middleware.ByUser))
	{
		private.GET("/user/details", userHandler.GetDetails)
		private.POST("/user/details", userHandler.UpdateDetails)

		private.GET("/user/contact", contactHandler.List)
		private.POST("/user/contact", contactHandler.Create)
		private.PUT("/user/contact", contactHandler.Update)
		private.DELETE("/user/contact", contactHandler.Delete)

		private.GET("/basket", basketHandler.Get)
		private.POST("/basket", basketHandler.AddItems)
		private.PUT("/basket", basketHandler.UpdateItems)
		private.DELETE("/basket", basketHandler.RemoveItems)

		private.GET("/order", orderHandler.List)
		private.POST("/order", orderHandler.Checkout)
		private.GET("/thanks", orderHandler.Thanks)

		partner := private.Group("/partner")
		partner.Use(middleware.ShopRequired())
		{
			partner.POST("/update", partnerHandler.UpdateCatalog)
			partner.GET("/state", partnerHandler.GetState)
			partner.POST("/state", partnerHandler.SetState)
			partner.GET("/orders", partnerHandler.Orders)
		}
	}

	return r
}
