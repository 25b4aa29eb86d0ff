package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
	"production-tracking/pkg/utils"
)

type TimelineServiceInterface interface {
	GetTimeline(ctx context.Context) (*dto.TimelineResponseDTO, error)
}

type TimelineService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
	now       func() time.Time
}

func NewTimelineService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		orderRepo: orderRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// GetTimeline строит данные диаграммы Ганта: общее окно дат, шкалу подписей
// и полосы этапов, нормированные в проценты ширины.
func (s *TimelineService) GetTimeline(ctx context.Context) (*dto.TimelineResponseDTO, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	r := domain.ComputeTimelineRange(orders, s.now())

	markers := make([]dto.TimelineMarkerDTO, 0)
	for _, m := range domain.TimelineMarkers(r) {
		markers = append(markers, dto.TimelineMarkerDTO{Position: m.Position, Label: m.Label})
	}

	rows := make([]dto.TimelineOrderDTO, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, dto.TimelineOrderDTO{
			ID:              order.ID,
			OrderNumber:     order.OrderNumber,
			ClientName:      order.ClientName,
			ProgressPercent: domain.OrderProgressPercent(order),
			Stages:          timelineStages(order, r),
		})
	}

	return &dto.TimelineResponseDTO{
		RangeStart: r.Start.Format(utils.DateLayout),
		RangeEnd:   r.End.Format(utils.DateLayout),
		Markers:    markers,
		Orders:     rows,
	}, nil
}

func timelineStages(order entities.Order, r domain.TimelineRange) []dto.TimelineStageDTO {
	result := make([]dto.TimelineStageDTO, 0, len(order.Stages))

	for _, stage := range order.Stages {
		row := dto.TimelineStageDTO{
			ID:         stage.ID,
			Name:       stage.Name,
			StageOrder: stage.StageOrder,
			Status:     string(stage.Status),
			Percentage: domain.StagePercentage(stage, order.Quantity),
			StartDate:  utils.TimePtrToDateString(stage.StartDate),
			EndDate:    utils.TimePtrToDateString(stage.EndDate),
		}

		// Этап без дат не получает полосы. Единственная известная дата
		// даёт полосу минимальной ширины.
		start, end := stage.StartDate, stage.EndDate
		if start == nil {
			start = end
		}
		if end == nil {
			end = start
		}
		if start != nil {
			row.HasDates = true
			row.Position = domain.DatePosition(*start, r)
			row.Width = domain.DateSpanWidth(*start, *end, r)
		}

		result = append(result, row)
	}

	return result
}
