package services

import (
	"time"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/pkg/utils"
)

func currencyForMarket(market entities.MarketType) string {
	if market == entities.MarketForeign {
		return "USD"
	}
	return "UAH"
}

// buildOrderResponse собирает полный ответ по заказу. Производные величины
// (проценты, себестоимость, сводка) считаются здесь, из доменных функций, —
// то, что лежит в базе, трактуется как кэш и в ответ не попадает.
// Сотрудник (не менеджер) получает заказ без стоимостей и без файлов.
func buildOrderResponse(order entities.Order, role string) *dto.OrderResponseDTO {
	resp := &dto.OrderResponseDTO{
		ID:                    order.ID,
		OrderNumber:           order.OrderNumber,
		ClientName:            order.ClientName,
		Description:           order.Description,
		Quantity:              order.Quantity,
		MarketType:            string(order.MarketType),
		MaterialCost:          order.MaterialCost,
		ProcessingTimePerUnit: order.ProcessingTimePerUnit,
		MinuteRateDomestic:    order.MinuteRateDomestic,
		MinuteRateForeign:     order.MinuteRateForeign,
		ProcessingTypes:       processingTypesToStrings(order.ProcessingTypes),
		Stages:                stagesToDTO(order),
		Files:                 filesToDTO(order.Files),
		Rollup:                buildRollup(order),
		Revision:              order.Revision,
		CreatedBy:             order.CreatedBy,
		CreatedAt:             order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             order.UpdatedAt.Format(time.RFC3339),
	}

	if role == string(entities.RoleManager) {
		resp.Costs = &dto.OrderCostsDTO{
			MaterialCostPerUnit:   domain.MaterialCostPerUnit(order),
			ProcessingCostPerUnit: domain.ProcessingCostPerUnit(order),
			TotalCostPerUnit:      domain.TotalCostPerUnit(order),
			TotalOrderCost:        domain.TotalOrderCost(order),
			EffectiveMinuteRate:   domain.EffectiveMinuteRate(order),
			Currency:              currencyForMarket(order.MarketType),
		}
	} else {
		resp.MaterialCost = 0
		resp.ProcessingTimePerUnit = 0
		resp.MinuteRateDomestic = 0
		resp.MinuteRateForeign = 0
		resp.Files = []dto.OrderFileDTO{}
	}

	return resp
}

func buildRollup(order entities.Order) dto.OrderRollupDTO {
	return dto.OrderRollupDTO{
		ProgressPercent:   domain.OrderProgressPercent(order),
		StatusBucket:      string(domain.OrderStatusBucket(order)),
		ManufacturedUnits: domain.ManufacturedUnits(order),
		PackagedUnits:     domain.PackagedUnits(order),
		ShippedUnits:      domain.ShippedUnits(order),
		ReadyToShipUnits:  domain.ReadyToShipUnits(order),
	}
}

func stagesToDTO(order entities.Order) []dto.StageDTO {
	result := make([]dto.StageDTO, 0, len(order.Stages))
	for _, stage := range order.Stages {
		result = append(result, dto.StageDTO{
			ID:                stage.ID,
			Name:              stage.Name,
			StageOrder:        stage.StageOrder,
			Status:            string(stage.Status),
			Percentage:        domain.StagePercentage(stage, order.Quantity),
			StartDate:         utils.TimePtrToDateString(stage.StartDate),
			EndDate:           utils.TimePtrToDateString(stage.EndDate),
			CompletedUnits:    stage.CompletedUnits,
			ResponsiblePerson: stage.ResponsiblePerson,
			Notes:             stage.Notes,
		})
	}
	return result
}

func filesToDTO(files []entities.OrderFile) []dto.OrderFileDTO {
	result := make([]dto.OrderFileDTO, 0, len(files))
	for _, f := range files {
		result = append(result, dto.OrderFileDTO{
			ID:               f.ID,
			OriginalFilename: f.OriginalFilename,
			UploadedAt:       f.UploadedAt.Format(time.RFC3339),
		})
	}
	return result
}

func processingTypesToStrings(types []entities.ProcessingType) []string {
	result := make([]string, 0, len(types))
	for _, t := range types {
		result = append(result, string(t))
	}
	return result
}
