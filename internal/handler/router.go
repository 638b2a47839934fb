package handler

import (
	"github.com/gin-gonic/gin"

	"sneezelog/internal/config"
	"sneezelog/internal/middleware"
	"sneezelog/internal/service"
)

// RegisterRoutes wires the API surface. Everything under /api/sneezes
// requires a valid token; the auth middleware resolves the acting user id
// and the handlers pass it explicitly into every service call.
func RegisterRoutes(
	r *gin.Engine,
	authHandler *AuthHandler,
	sneezeHandler *SneezeHandler,
	authService service.AuthService,
	cfg *config.Config,
) {
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", middleware.RateLimit(cfg.LoginRatePerSec, cfg.LoginRateBurst), authHandler.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(authService), authHandler.Me)
	}

	sneezeRoutes := api.Group("/sneezes", middleware.AuthMiddleware(authService))
	{
		sneezeRoutes.POST("", sneezeHandler.Create)
		sneezeRoutes.GET("", sneezeHandler.List)
		sneezeRoutes.GET("/stats", sneezeHandler.Stats)
		sneezeRoutes.GET("/month/:year/:month", sneezeHandler.ListByMonth)
		sneezeRoutes.GET("/:id", sneezeHandler.GetByID)
		sneezeRoutes.PUT("/:id", sneezeHandler.Update)
		sneezeRoutes.DELETE("/:id", sneezeHandler.Delete)
	}
}
