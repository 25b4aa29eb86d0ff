package services

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/utils"
)

type StageServiceInterface interface {
	UpdateStage(ctx context.Context, orderID, stageID string, payload dto.UpdateStageDTO, role string) (*dto.OrderResponseDTO, error)
}

type StageService struct {
	orderRepo repositories.OrderRepositoryInterface
	stageRepo repositories.StageRepositoryInterface
	txManager repositories.TxManagerInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	now       func() time.Time
}

func NewStageService(
	orderRepo repositories.OrderRepositoryInterface,
	stageRepo repositories.StageRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *StageService {
	return &StageService{
		orderRepo: orderRepo,
		stageRepo: stageRepo,
		txManager: txManager,
		cacheRepo: cacheRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// UpdateStage применяет частичную правку этапа и все вытекающие каскады:
// автодаты ранних этапов, завершение предыдущих вех, подтягивание количества
// в предыдущих поштучных этапах. Возвращает заказ целиком в новом состоянии —
// каскад может задеть несколько этапов, и клиенту нужен весь срез.
func (s *StageService) UpdateStage(ctx context.Context, orderID, stageID string, payload dto.UpdateStageDTO, role string) (*dto.OrderResponseDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range order.Stages {
		if order.Stages[i].ID == stageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.ErrNotFound
	}

	stage := &order.Stages[idx]
	if err := applyStagePatch(stage, payload); err != nil {
		return nil, err
	}

	today := s.now()
	domain.AutoDateEarlyStage(stage, today)
	domain.RecalculateStage(stage, order.Quantity, today)

	if domain.IsUnitStage(stage.StageOrder) {
		domain.PropagateUnitsToPreviousStages(order.Stages, idx, order.Quantity)
	} else {
		domain.CompletePreviousStages(order.Stages, idx)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.stageRepo.UpdateStages(ctx, tx, order.Stages); err != nil {
			return err
		}
		return s.orderRepo.BumpRevision(ctx, tx, orderID, payload.Revision)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Delete(ctx, DashboardStatsCacheKey); err != nil {
		s.logger.Warn("⚠️ Не удалось сбросить кэш дашборда", zap.Error(err))
	}

	s.logger.Info("Обновлён этап заказа",
		zap.String("order_id", orderID),
		zap.String("stage", stage.Name),
		zap.String("status", string(stage.Status)))

	updated, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return buildOrderResponse(*updated, role), nil
}

// applyStagePatch переносит присланные поля на этап. Поле без значения или
// с пустой строкой пропускается. Процент не принимается — он всегда выводится
// из статуса и количества.
func applyStagePatch(stage *entities.Stage, payload dto.UpdateStageDTO) error {
	if payload.Status.Valid && payload.Status.String != "" {
		status := entities.StageStatus(payload.Status.String)
		if !status.Valid() {
			return apperrors.NewHttpError(http.StatusBadRequest,
				"Недопустимый статус этапа", apperrors.ErrBadRequest,
				map[string]interface{}{"status": payload.Status.String})
		}
		stage.Status = status
	}

	if payload.StartDate.Valid && payload.StartDate.String != "" {
		date, err := time.Parse(utils.DateLayout, payload.StartDate.String)
		if err != nil {
			return apperrors.NewHttpError(http.StatusBadRequest,
				"Неверный формат даты начала, ожидается YYYY-MM-DD", apperrors.ErrBadRequest,
				map[string]interface{}{"start_date": payload.StartDate.String})
		}
		stage.StartDate = &date
	}

	if payload.EndDate.Valid && payload.EndDate.String != "" {
		date, err := time.Parse(utils.DateLayout, payload.EndDate.String)
		if err != nil {
			return apperrors.NewHttpError(http.StatusBadRequest,
				"Неверный формат даты окончания, ожидается YYYY-MM-DD", apperrors.ErrBadRequest,
				map[string]interface{}{"end_date": payload.EndDate.String})
		}
		stage.EndDate = &date
	}

	if payload.CompletedUnits.Valid {
		if !domain.IsUnitStage(stage.StageOrder) {
			return apperrors.NewHttpError(http.StatusBadRequest,
				"На этом этапе поштучный учёт не ведётся", apperrors.ErrBadRequest,
				map[string]interface{}{"stage_order": stage.StageOrder})
		}
		if payload.CompletedUnits.Int < 0 {
			return apperrors.NewHttpError(http.StatusBadRequest,
				"Количество деталей не может быть отрицательным", apperrors.ErrBadRequest,
				map[string]interface{}{"completed_units": payload.CompletedUnits.Int})
		}
		units := payload.CompletedUnits.Int
		stage.CompletedUnits = &units
	}

	if payload.ResponsiblePerson.Valid {
		if payload.ResponsiblePerson.String == "" {
			stage.ResponsiblePerson = nil
		} else {
			v := payload.ResponsiblePerson.String
			stage.ResponsiblePerson = &v
		}
	}

	if payload.Notes.Valid {
		if payload.Notes.String == "" {
			stage.Notes = nil
		} else {
			v := payload.Notes.String
			stage.Notes = &v
		}
	}

	return nil
}
