package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"production-tracking/internal/domain"
	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/types"
)

// Стаб репозитория заказов: держит заказы в памяти и имитирует
// поведение базы ровно настолько, насколько нужно сервисам.
type stubOrderRepo struct {
	orders        map[string]*entities.Order
	bumpCalls     int
	staleRevision bool
}

func newStubOrderRepo(orders ...*entities.Order) *stubOrderRepo {
	repo := &stubOrderRepo{orders: make(map[string]*entities.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *stubOrderRepo) GetOrders(_ context.Context, _ types.Filter) ([]entities.Order, uint64, error) {
	list := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, *o)
	}
	return list, uint64(len(list)), nil
}

func (r *stubOrderRepo) GetAllOrders(_ context.Context) ([]entities.Order, error) {
	list := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, *o)
	}
	return list, nil
}

func (r *stubOrderRepo) FindOrder(_ context.Context, id string) (*entities.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func (r *stubOrderRepo) CreateOrder(_ context.Context, _ pgx.Tx, order *entities.Order) error {
	order.Revision = 1
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = order
	return nil
}

func (r *stubOrderRepo) UpdateOrderFields(_ context.Context, _ pgx.Tx, id string, upd dto.UpdateOrderDTO) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if upd.Revision.Valid && upd.Revision.Int64 != order.Revision {
		return apperrors.ErrStaleRevision
	}
	if upd.ClientName != nil {
		order.ClientName = *upd.ClientName
	}
	if upd.Quantity != nil {
		order.Quantity = *upd.Quantity
	}
	if upd.MarketType != nil {
		order.MarketType = entities.MarketType(*upd.MarketType)
	}
	if upd.MaterialCost != nil {
		order.MaterialCost = *upd.MaterialCost
	}
	order.Revision++
	return nil
}

func (r *stubOrderRepo) BumpRevision(_ context.Context, _ pgx.Tx, id string, expected null.Int64) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if r.staleRevision || (expected.Valid && expected.Int64 != order.Revision) {
		return apperrors.ErrStaleRevision
	}
	order.Revision++
	r.bumpCalls++
	return nil
}

func (r *stubOrderRepo) DeleteOrder(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubStageRepo struct {
	saved []entities.Stage
}

func (r *stubStageRepo) UpdateStage(_ context.Context, _ repositories.Querier, stage entities.Stage) error {
	r.saved = append(r.saved, stage)
	return nil
}

func (r *stubStageRepo) UpdateStages(ctx context.Context, q repositories.Querier, stages []entities.Stage) error {
	for _, stage := range stages {
		if err := r.UpdateStage(ctx, q, stage); err != nil {
			return err
		}
	}
	return nil
}

type stubTxManager struct{}

func (m *stubTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type stubCacheRepo struct {
	values  map[string]string
	deleted []string
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{values: make(map[string]string)}
}

func (r *stubCacheRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *stubCacheRepo) Set(_ context.Context, key string, value string, _ time.Duration) error {
	r.values[key] = value
	return nil
}

func (r *stubCacheRepo) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.values, k)
		r.deleted = append(r.deleted, k)
	}
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// buildTestOrder собирает заказ с полным конвейером из восьми этапов.
func buildTestOrder(id string, quantity int) *entities.Order {
	order := &entities.Order{
		ID:                    id,
		OrderNumber:           "ORD-" + id,
		ClientName:            "Тестовый клиент",
		Description:           "Тестовый заказ",
		Quantity:              quantity,
		MarketType:            entities.MarketDomestic,
		MaterialCost:          1000,
		ProcessingTimePerUnit: 45,
		MinuteRateDomestic:    domain.DefaultMinuteRateDomestic,
		MinuteRateForeign:     domain.DefaultMinuteRateForeign,
		ProcessingTypes:       []entities.ProcessingType{entities.ProcessingTurning},
		Revision:              1,
		CreatedBy:             "manager-1",
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	for i, template := range domain.DefaultPipeline() {
		stage := entities.Stage{
			ID:         "stage-" + string(rune('1'+i)),
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
