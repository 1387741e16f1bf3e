package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/identity-api/internal/config"
	"github.com/yourusername/identity-api/internal/handler"
	"github.com/yourusername/identity-api/internal/middleware"
	cacherepo "github.com/yourusername/identity-api/internal/repository/cache"
	"github.com/yourusername/identity-api/internal/repository/postgres"
	redisrepo "github.com/yourusername/identity-api/internal/repository/redis"
	"github.com/yourusername/identity-api/internal/service"
	"github.com/yourusername/identity-api/pkg/auth"
	"github.com/yourusername/identity-api/pkg/database"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("[Main] failed to connect to PostgreSQL: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("[Main] failed to apply migrations: %v", err)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("[Main] failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheRepo, err := redisrepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Fatalf("[Main] failed to create cache repository: %v", err)
	}

	codeTTL := time.Duration(cfg.Verification.CodeTTLMinutes) * time.Minute
	cacheTTL := time.Duration(cfg.Verification.CacheTTLSecs) * time.Second

	userRepo := cacherepo.NewCachingUserRepo(postgres.NewUserRepo(db), cacheRepo, cacheTTL)
	codeRepo := postgres.NewVerificationRepo(db, codeTTL)
	txManager := postgres.NewTxManager(db, codeTTL)

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.ExpirationSecs)
	if err != nil {
		log.Fatalf("[Main] failed to create JWT service: %v", err)
	}

	var notifier service.NotificationService
	if cfg.Email.Enabled {
		notifier, err = service.NewResendNotificationService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, codeTTL)
		if err != nil {
			log.Fatalf("[Main] failed to create notification service: %v", err)
		}
	} else {
		log.Println("[Main] email delivery disabled, verification codes go to the log")
		notifier = &service.LogNotificationService{}
	}

	registrationService, err := service.NewRegistrationService(userRepo, txManager, notifier)
	if err != nil {
		log.Fatalf("[Main] failed to create registration service: %v", err)
	}
	passwordService, err := service.NewPasswordService(userRepo, codeRepo, txManager, notifier)
	if err != nil {
		log.Fatalf("[Main] failed to create password service: %v", err)
	}
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Fatalf("[Main] failed to create auth service: %v", err)
	}

	authHandler := handler.NewAuthHandler(registrationService, passwordService, authService)
	userHandler := handler.NewUserHandler(authService)

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/register/confirm", authHandler.ConfirmRegistration)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
			authGroup.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		}

		users := api.Group("/users")
		{
			users.GET("/me", middleware.AuthMiddleware(jwtService), userHandler.GetMe)
			users.GET("/:slug", userHandler.GetBySlug)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	log.Printf("[Main] listening on :%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[Main] server stopped: %v", err)
	}
}
