package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/services"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/utils"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(attachmentService services.AttachmentServiceInterface, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService, logger: logger}
}

func (c *AttachmentController) UploadFile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Поле 'file' обязательно", err, nil),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать файл", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	res, err := c.attachmentService.UploadFile(reqCtx, orderID, src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Файл успешно загружен", http.StatusCreated)
}

func (c *AttachmentController) DownloadFile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	fileID, err := parseUUIDParam(ctx, "fileId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	file, f, err := c.attachmentService.OpenFile(reqCtx, orderID, fileID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+file.OriginalFilename)
	return ctx.Stream(http.StatusOK, echo.MIMEOctetStream, f)
}

func (c *AttachmentController) DeleteFile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	fileID, err := parseUUIDParam(ctx, "fileId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.attachmentService.DeleteFile(reqCtx, orderID, fileID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Файл успешно удалён", http.StatusOK)
}
