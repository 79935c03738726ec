package routes

import (
	"github.com/gin-gonic/gin"

	"authgate/internal/handlers"
	"authgate/internal/middleware"
	"authgate/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	authService services.AuthService,
) *gin.Engine {

	sessionAuth := middleware.SessionAuth(authService)

	auth := r.Group("/api/auth")
	{
		// ---- public
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/send-reset-otp", authHandler.SendResetOTP)
		auth.POST("/reset-password", authHandler.ResetPassword)

		// ---- под сессией
		auth.GET("/is-auth", sessionAuth, authHandler.IsAuthenticated)
		auth.POST("/send-verify-otp", sessionAuth, authHandler.SendVerifyOTP)
		auth.POST("/verify-account", sessionAuth, authHandler.VerifyAccount)
	}

	user := r.Group("/api/user", sessionAuth)
	{
		user.GET("/data", userHandler.GetUserData)
	}

	return r
}
