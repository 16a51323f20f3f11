package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, userService *service.UserService, accessTTLSeconds int64, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		}))
	}

	handlers := NewHandlers(authService, userService, accessTTLSeconds)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(RequireAuth(authService))
	{
		api.GET("/users/profile", handlers.Profile)
		api.PUT("/users/profile", handlers.UpdateProfile)
		api.PUT("/users/profile/password", handlers.ChangePassword)

		admin := api.Group("/admin")
		admin.Use(RequireRole(core.RoleAdmin))
		{
			admin.GET("/users", handlers.ListUsers)
		}
	}

	return router
}
