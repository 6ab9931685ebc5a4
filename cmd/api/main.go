package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/iqtest-api/internal/config"
	"github.com/yourusername/iqtest-api/internal/events"
	"github.com/yourusername/iqtest-api/internal/handler"
	"github.com/yourusername/iqtest-api/internal/middleware"
	pgRepo "github.com/yourusername/iqtest-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/iqtest-api/internal/repository/redis"
	"github.com/yourusername/iqtest-api/internal/service"
	"github.com/yourusername/iqtest-api/internal/service/quizengine"
	"github.com/yourusername/iqtest-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	resultRepo := pgRepo.NewTestResultRepo(db)
	profileRepo := pgRepo.NewProfileRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to create cache repository: %v", err)
		os.Exit(1)
	}

	publisher, err := events.NewRedisPublisher(redisClient)
	if err != nil {
		log.Printf("Failed to create event publisher: %v", err)
		os.Exit(1)
	}

	// Assessment engine
	bank := quizengine.NewBank()
	levels := quizengine.DefaultLevels()
	engineConfig := &quizengine.Config{
		QuestionCountdown: cfg.Engine.QuestionCountdown,
		LevelCountdown:    cfg.Engine.LevelCountdown,
	}
	sessionManager := quizengine.NewSessionManager(bank, levels, engineConfig)

	// Services
	fraudService := service.NewFraudService(service.DefaultDetectorConfig())
	resultService := service.NewResultService(resultRepo, cacheRepo, publisher, fraudService, cfg.Engine.RewardScoreThreshold)
	rankingService := service.NewRankingService(resultRepo, profileRepo, cacheRepo, fraudService)
	exportService := service.NewExportService()

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessionManager, resultService)
	userHandler := handler.NewUserHandler(resultService)
	rankingHandler := handler.NewRankingHandler(rankingService, exportService)
	levelHandler := handler.NewLevelHandler(levels, bank)

	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Trusted proxies control what c.ClientIP() believes; the fraud detector
	// depends on honest addresses, so production trusts no proxy headers.
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.ClientMetadata())

	api := router.Group("/api/v1")
	{
		api.GET("/levels", levelHandler.ListLevels)

		sessions := api.Group("/sessions")
		sessions.Use(rateLimiter.Limit(middleware.DefaultSessionRateLimitConfig()))
		{
			sessions.POST("", rateLimiter.Limit(middleware.StrictStartRateLimitConfig()), sessionHandler.StartSession)
			sessions.GET("/:id/question", sessionHandler.GetQuestion)
			sessions.GET("/:id/progress", sessionHandler.GetProgress)
			sessions.POST("/:id/answer", sessionHandler.SubmitAnswer)
			sessions.POST("/:id/next", sessionHandler.Next)
			sessions.POST("/:id/previous", sessionHandler.Previous)
			sessions.POST("/:id/finish", sessionHandler.Finish)
			sessions.DELETE("/:id", sessionHandler.Abandon)
		}

		users := api.Group("/users")
		{
			users.GET("/:id/results", userHandler.GetResults)
			users.GET("/:id/fraud", userHandler.GetFraudAnalysis)
			users.GET("/:id/ranking/:timeframe", rankingHandler.GetUserRanking)
		}

		ranking := api.Group("/ranking")
		{
			ranking.GET("/:timeframe", rankingHandler.GetLeaderboard)
			ranking.GET("/:timeframe/export", rankingHandler.ExportLeaderboard)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
