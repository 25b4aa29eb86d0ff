package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/controllers"
	"production-tracking/internal/services"
	"production-tracking/pkg/middleware"
)

func runOrderRouter(
	secureGroup *echo.Group,
	orderService services.OrderServiceInterface,
	stageService services.StageServiceInterface,
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	stageCtrl := controllers.NewStageController(stageService, logger)
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, logger)

	secureGroup.GET("/orders", orderCtrl.GetOrders)
	secureGroup.GET("/orders/:id", orderCtrl.FindOrder)

	// Заказ создаёт и правит только менеджер; этапы доступны всем сотрудникам
	secureGroup.POST("/orders", orderCtrl.CreateOrder, authMW.RequireManager)
	secureGroup.PUT("/orders/:id", orderCtrl.UpdateOrder, authMW.RequireManager)
	secureGroup.DELETE("/orders/:id", orderCtrl.DeleteOrder, authMW.RequireManager)

	secureGroup.PUT("/orders/:id/stages/:stageId", stageCtrl.UpdateStage)

	secureGroup.POST("/orders/:id/files", attachmentCtrl.UploadFile, authMW.RequireManager)
	secureGroup.GET("/orders/:id/files/:fileId", attachmentCtrl.DownloadFile, authMW.RequireManager)
	secureGroup.DELETE("/orders/:id/files/:fileId", attachmentCtrl.DeleteFile, authMW.RequireManager)
}
