package router

import (
	"fmt"
	"strings"

	"github.com/cyfa-store/api/internal/cache"
	"github.com/cyfa-store/api/internal/config"
	publichandlers "github.com/cyfa-store/api/internal/http/handlers/public"
	"github.com/cyfa-store/api/internal/http/response"
	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cyfa"
	}
	formRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:forms", redisPrefix),
		WindowSeconds: cfg.Security.FormRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.FormRateLimit.MaxRequests,
		Message:       "too many submissions, try again later",
	}
	redisClient := cache.Client()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	apiV1.Use(SessionAuthMiddleware(cfg.Auth))
	{
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)

			public.GET("/cart", publicHandler.GetCart)
			public.POST("/cart/items", publicHandler.AddCartItem)
			public.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			public.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			public.DELETE("/cart", publicHandler.ClearCart)

			public.POST("/promo/validate", publicHandler.ValidatePromo)

			public.POST("/checkout/sessions", publicHandler.CreateCheckout)
			public.POST("/checkout/confirm", publicHandler.ConfirmCheckout)

			public.POST("/contact", RateLimitMiddleware(redisClient, formRule, KeyByIP), publicHandler.SubmitContact)
			public.POST("/newsletter/subscribe", RateLimitMiddleware(redisClient, formRule, KeyByIP), publicHandler.SubscribeNewsletter)
		}

		me := apiV1.Group("/me")
		{
			me.GET("/session", publicHandler.GetSession)
		}
	}

	return r
}
