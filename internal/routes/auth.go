package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/controllers"
	"production-tracking/internal/services"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	secureGroup.GET("/auth/me", authCtrl.Me)
}
