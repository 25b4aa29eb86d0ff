package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/controllers"
	"production-tracking/internal/services"
	"production-tracking/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	// Отчёт содержит стоимости — только для менеджера
	secureGroup.GET("/reports/orders", reportCtrl.GetCostReport, authMW.RequireManager)
}
