package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"production-tracking/internal/dto"
	"production-tracking/internal/services"
	"production-tracking/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetCostReport отдаёт отчёт по себестоимости заказов.
// С параметром format=xlsx — выгрузка в Excel, иначе JSON.
func (c *ReportController) GetCostReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	format := strings.ToLower(ctx.QueryParam("format"))

	rows, err := c.reportService.BuildCostReport(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}

	return utils.SuccessResponse(ctx, rows, "Отчёт успешно сформирован", http.StatusOK)
}

var reportHeaders = []string{
	"Номер заказа", "Клиент", "Количество", "Рынок", "Валюта",
	"Материал за деталь", "Обработка за деталь", "Себестоимость детали",
	"Стоимость заказа", "Прогресс, %", "Дата создания",
}

func rowToSlice(row dto.ReportRowDTO) []interface{} {
	createdAt := row.CreatedAt
	if t, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
		createdAt = t.Format("02.01.2006")
	}

	market := "внутренний"
	if row.MarketType == "foreign" {
		market = "внешний"
	}

	return []interface{}{
		row.OrderNumber, row.ClientName, row.Quantity, market, row.Currency,
		row.MaterialCostPerUnit, row.ProcessingCostPerUnit, row.TotalCostPerUnit,
		row.TotalOrderCost, row.ProgressPercent, createdAt,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.ReportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Себестоимость заказов"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "B", 25)
	f.SetColWidth(sheet, "F", "I", 20)

	fileName := fmt.Sprintf("cost_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
