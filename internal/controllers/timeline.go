package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/services"
	"production-tracking/pkg/utils"
)

type TimelineController struct {
	timelineService services.TimelineServiceInterface
	logger          *zap.Logger
}

func NewTimelineController(timelineService services.TimelineServiceInterface, logger *zap.Logger) *TimelineController {
	return &TimelineController{timelineService: timelineService, logger: logger}
}

func (c *TimelineController) GetTimeline(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.timelineService.GetTimeline(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Таймлайн успешно построен", http.StatusOK)
}
