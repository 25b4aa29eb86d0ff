package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/repositories"
)

type ReportServiceInterface interface {
	BuildCostReport(ctx context.Context) ([]dto.ReportRowDTO, error)
}

type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) *ReportService {
	return &ReportService{orderRepo: orderRepo, logger: logger}
}

// BuildCostReport собирает построчный отчёт по себестоимости всех заказов.
// Валюты не конвертируются: каждая строка несёт валюту своего рынка.
func (s *ReportService) BuildCostReport(ctx context.Context) ([]dto.ReportRowDTO, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ReportRowDTO, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, dto.ReportRowDTO{
			OrderNumber:           order.OrderNumber,
			ClientName:            order.ClientName,
			Quantity:              order.Quantity,
			MarketType:            string(order.MarketType),
			Currency:              currencyForMarket(order.MarketType),
			MaterialCostPerUnit:   domain.MaterialCostPerUnit(order),
			ProcessingCostPerUnit: domain.ProcessingCostPerUnit(order),
			TotalCostPerUnit:      domain.TotalCostPerUnit(order),
			TotalOrderCost:        domain.TotalOrderCost(order),
			ProgressPercent:       domain.OrderProgressPercent(order),
			CreatedAt:             order.CreatedAt.Format(time.RFC3339),
		})
	}

	return rows, nil
}
