package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"sneezelog/database"
	"sneezelog/internal/auth"
	"sneezelog/internal/cache"
	"sneezelog/internal/config"
	"sneezelog/internal/handler"
	"sneezelog/internal/middleware"
	"sneezelog/internal/repository"
	"sneezelog/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	if redisClient == nil {
		logger.Info("Redis not configured, stats caching disabled")
	}

	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		log.Fatalf("could not create password hasher: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	sneezeRepo := repository.NewSneezeRepository(db)

	statsCache := cache.NewStatsCache(redisClient, cfg.CacheTTL)
	authService := service.NewAuthService(userRepo, hasher, cfg)
	sneezeService := service.NewSneezeService(sneezeRepo, statsCache)

	authHandler := handler.NewAuthHandler(authService)
	sneezeHandler := handler.NewSneezeHandler(sneezeService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	handler.RegisterRoutes(r, authHandler, sneezeHandler, authService, cfg)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
