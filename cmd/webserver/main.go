package main

import (
	"context"
	"time"

	"anicards-backend/configs"
	"anicards-backend/internal/anilist"
	"anicards-backend/internal/cache"
	"anicards-backend/internal/handlers"
	"anicards-backend/internal/logger"
	"anicards-backend/internal/middleware"
	"anicards-backend/internal/services"
	"anicards-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title AniCards Backend API
// @version 1.0
// @description Profile-statistics store and batch jobs behind the AniCards card renderer

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey CronSecret
// @in header
// @name x-cron-secret

func main() {
	if err := configs.LoadConfig(); err != nil {
		panic(err)
	}
	cfg := configs.AppConfig

	log := logger.New(cfg.Environment)
	defer log.Sync()

	st := store.NewRedisStore(cfg.RedisURL)

	anilistClient := anilist.NewClient(cfg.AnilistAPIURL, cfg.HTTPTimeout)
	cardCache := cache.NewCardCache(st, cfg.CacheTTL)
	tracker := cache.NewFrequencyTracker(cfg.TrackerLimit, cfg.CacheTTL)

	syncService := services.NewSyncService(st, anilistClient, log)
	validationService := services.NewValidationService(st, log)

	cronHandler := handlers.NewCronHandler(syncService, validationService, log)
	cardHandler := handlers.NewCardHandler(st, cardCache, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")

	cron := api.Group("/cron")
	cron.Use(middleware.CronSecret(cfg.CronSecret))
	cron.POST("/update-stats", cronHandler.UpdateStats)
	cron.POST("/validate-data", cronHandler.ValidateData)

	cards := api.Group("/cards")
	cards.Use(middleware.TrackRequests(st, tracker, "card_requests"))
	cards.POST("/store", cardHandler.StoreCards)
	cards.GET("/:userId", cardHandler.GetCards)

	users := api.Group("/users")
	users.Use(middleware.TrackRequests(st, tracker, "user_requests"))
	users.GET("/:userId", cardHandler.GetUser)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		redisStatus := "connected"
		if err := st.Ping(ctx); err != nil {
			status = "degraded"
			redisStatus = "unreachable"
		}
		c.JSON(200, gin.H{
			"status":    status,
			"timestamp": time.Now().Unix(),
			"services": map[string]string{
				"redis": redisStatus,
			},
		})
	})

	log.Info("starting server", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
