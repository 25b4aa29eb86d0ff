package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/dto"
	"production-tracking/internal/services"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/utils"
)

type StageController struct {
	stageService services.StageServiceInterface
	logger       *zap.Logger
}

func NewStageController(stageService services.StageServiceInterface, logger *zap.Logger) *StageController {
	return &StageController{stageService: stageService, logger: logger}
}

// UpdateStage принимает частичную правку этапа и отдаёт заказ целиком:
// каскады могут изменить и соседние этапы.
func (c *StageController) UpdateStage(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	stageID, err := parseUUIDParam(ctx, "stageId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}

	role, err := utils.GetUserRoleFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.stageService.UpdateStage(reqCtx, orderID, stageID, payload, role)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Этап успешно обновлён", http.StatusOK)
}
