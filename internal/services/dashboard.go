package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	orderRepo repositories.OrderRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewDashboardService(
	orderRepo repositories.OrderRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		orderRepo: orderRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetStats отдаёт сводку по всем заказам. Сводка агрегирует весь набор
// заказов, поэтому держится в кэше; мутации её сбрасывают.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, DashboardStatsCacheKey); err == nil {
		var stats dto.DashboardStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		s.logger.Warn("⚠️ Кэш дашборда повреждён, пересчитываем")
	}

	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	stats := computeDashboardStats(orders)

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cacheRepo.Set(ctx, DashboardStatsCacheKey, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("⚠️ Не удалось записать кэш дашборда", zap.Error(err))
		}
	}

	return stats, nil
}

func computeDashboardStats(orders []entities.Order) *dto.DashboardStatsDTO {
	stats := &dto.DashboardStatsDTO{TotalOrders: len(orders)}

	for _, order := range orders {
		switch domain.OrderStatusBucket(order) {
		case domain.BucketCompleted:
			stats.Completed++
		case domain.BucketInProgress:
			stats.InProgress++
		default:
			stats.Pending++
		}

		stats.ManufacturedUnits += domain.ManufacturedUnits(order)
		stats.PackagedUnits += domain.PackagedUnits(order)
		stats.ShippedUnits += domain.ShippedUnits(order)
		stats.ReadyToShipUnits += domain.ReadyToShipUnits(order)

		if order.MarketType == entities.MarketForeign {
			stats.TotalValueUSD += domain.TotalOrderCost(order)
		} else {
			stats.TotalValueUAH += domain.TotalOrderCost(order)
		}
	}

	return stats
}
