package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"authgate/internal/config"
	"authgate/internal/handlers"
	"authgate/internal/repositories"
	"authgate/internal/routes"
	"authgate/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "authgate/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTL))
	otpService := services.NewOTPService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	accountService := services.NewAccountService(
		userRepo,
		emailService,
		authService,
		otpService,
		time.Duration(cfg.Auth.VerifyOTPTTL),
		time.Duration(cfg.Auth.ResetOTPTTL),
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService, cfg)
	userHandler := handlers.NewUserHandler(accountService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, userHandler, authService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

// corsMiddleware — фронт живёт на другом origin и ходит с cookie,
// поэтому эхо Origin + credentials, а не "*".
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
