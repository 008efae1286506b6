package router

import (
	"fmt"
	"strings"

	"github.com/botanical-decor/shop-api/internal/cache"
	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	adminhandlers "github.com/botanical-decor/shop-api/internal/http/handlers/admin"
	publichandlers "github.com/botanical-decor/shop-api/internal/http/handlers/public"
	"github.com/botanical-decor/shop-api/internal/logger"
	"github.com/botanical-decor/shop-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded images are served straight from disk.
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		// Storefront, no authentication.
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/search", publicHandler.SearchProducts)
		api.GET("/products/:id", publicHandler.GetProduct)

		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/forgot-password", publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		api.POST("/send-welcome-email", publicHandler.SendWelcomeEmail)
		api.GET("/test-smtp", publicHandler.TestSMTPStatus)
		api.POST("/test-smtp", publicHandler.TestSMTPSend)

		// Signed-in customers.
		user := api.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.ProfileRepo), RBACMiddleware(c.AuthzService))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// Management surface: same JWT, admin role required by RBAC.
		api.POST("/upload", JWTAuthMiddleware(cfg.JWT.SecretKey, c.ProfileRepo), RBACMiddleware(c.AuthzService), adminHandler.Upload)

		admin := api.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.ProfileRepo), RBACMiddleware(c.AuthzService))
		{
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/block", adminHandler.BlockUser)
			admin.PUT("/users/:id/restore", adminHandler.RestoreUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
