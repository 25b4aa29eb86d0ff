package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/controllers"
	"production-tracking/internal/services"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	timelineService services.TimelineServiceInterface,
	logger *zap.Logger,
) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	timelineCtrl := controllers.NewTimelineController(timelineService, logger)

	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetStats)
	secureGroup.GET("/timeline", timelineCtrl.GetTimeline)
}
