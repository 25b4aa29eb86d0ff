package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
	"production-tracking/pkg/filestorage"
	"production-tracking/pkg/types"
)

// DashboardStatsCacheKey — ключ кэша сводки дашборда. Любая мутация заказов
// обязана его сбросить.
const DashboardStatsCacheKey = "dashboard:stats"

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter, role string) (*dto.OrderListResponseDTO, error)
	GetOrder(ctx context.Context, id string, role string) (*dto.OrderResponseDTO, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO, userID string) (*dto.OrderResponseDTO, error)
	UpdateOrder(ctx context.Context, id string, payload dto.UpdateOrderDTO) (*dto.OrderResponseDTO, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrderService struct {
	orderRepo   repositories.OrderRepositoryInterface
	txManager   repositories.TxManagerInterface
	cacheRepo   repositories.CacheRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		txManager:   txManager,
		cacheRepo:   cacheRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter, role string) (*dto.OrderListResponseDTO, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		list = append(list, *buildOrderResponse(order, role))
	}

	return &dto.OrderListResponseDTO{List: list, TotalCount: total}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string, role string) (*dto.OrderResponseDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(*order, role), nil
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO, userID string) (*dto.OrderResponseDTO, error) {
	order := s.buildNewOrder(payload, userID)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.orderRepo.CreateOrder(ctx, tx, &order)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("✅ Создан заказ",
		zap.String("order_number", order.OrderNumber), zap.String("id", order.ID))

	created, err := s.orderRepo.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return buildOrderResponse(*created, string(entities.RoleManager)), nil
}

// buildNewOrder превращает запрос в заказ с готовым восьмиэтапным конвейером.
// Не заданные ставки заполняются резервными и сохраняются на заказе.
func (s *OrderService) buildNewOrder(payload dto.CreateOrderDTO, userID string) entities.Order {
	processingTypes := make([]entities.ProcessingType, 0, len(payload.ProcessingTypes))
	for _, pt := range payload.ProcessingTypes {
		processingTypes = append(processingTypes, entities.ProcessingType(pt))
	}

	rateDomestic := domain.DefaultMinuteRateDomestic
	if payload.MinuteRateDomestic != nil && *payload.MinuteRateDomestic > 0 {
		rateDomestic = *payload.MinuteRateDomestic
	}
	rateForeign := domain.DefaultMinuteRateForeign
	if payload.MinuteRateForeign != nil && *payload.MinuteRateForeign > 0 {
		rateForeign = *payload.MinuteRateForeign
	}

	order := entities.Order{
		ID:                    uuid.NewString(),
		OrderNumber:           payload.OrderNumber,
		ClientName:            payload.ClientName,
		Description:           payload.Description,
		Quantity:              payload.Quantity,
		MarketType:            entities.MarketType(payload.MarketType),
		MaterialCost:          payload.MaterialCost,
		ProcessingTimePerUnit: payload.ProcessingTimePerUnit,
		MinuteRateDomestic:    rateDomestic,
		MinuteRateForeign:     rateForeign,
		ProcessingTypes:       processingTypes,
		CreatedBy:             userID,
	}

	for i, template := range domain.DefaultPipeline() {
		stage := entities.Stage{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			Name:       template.Name,
			StageOrder: i + 1,
			Status:     entities.StagePending,
		}
		if template.HasUnits {
			zero := 0
			stage.CompletedUnits = &zero
		}
		order.Stages = append(order.Stages, stage)
	}

	return order
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, payload dto.UpdateOrderDTO) (*dto.OrderResponseDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.orderRepo.UpdateOrderFields(ctx, tx, id, payload)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)

	updated, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	return buildOrderResponse(*updated, string(entities.RoleManager)), nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return err
	}

	// Файлы на диске чистим уже после удаления записи: ошибка диска не должна
	// откатывать удаление заказа.
	for _, f := range order.Files {
		if err := s.fileStorage.Delete(f.FilePath); err != nil {
			s.logger.Warn("⚠️ Не удалось удалить файл заказа с диска",
				zap.String("file_path", f.FilePath), zap.Error(err))
		}
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("🗑 Удалён заказ", zap.String("id", id))

	return nil
}

func (s *OrderService) invalidateDashboard(ctx context.Context) {
	if err := s.cacheRepo.Delete(ctx, DashboardStatsCacheKey); err != nil {
		s.logger.Warn("⚠️ Не удалось сбросить кэш дашборда", zap.Error(err))
	}
}
