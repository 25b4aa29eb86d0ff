package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
)

func newTestStageService(orderRepo *stubOrderRepo, cache *stubCacheRepo) (*StageService, *stubStageRepo) {
	stageRepo := &stubStageRepo{}
	svc := NewStageService(orderRepo, stageRepo, &stubTxManager{}, cache, testLogger())
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}
	return svc, stageRepo
}

func TestUpdateStage_EarlyStageAutoDates(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	cache := newStubCacheRepo()
	svc, _ := newTestStageService(repo, cache)

	payload := dto.UpdateStageDTO{Status: null.StringFrom("in_progress")}
	res, err := svc.UpdateStage(context.Background(), "o1", "stage-1", payload, string(entities.RoleManager))
	require.NoError(t, err, "Обновление этапа не должно завершаться ошибкой")

	stage := res.Stages[0]
	assert.Equal(t, "in_progress", stage.Status)
	require.NotNil(t, stage.StartDate, "Ранний этап в работе должен получить дату начала")
	assert.Equal(t, "2026-08-28", *stage.StartDate)
	assert.Nil(t, stage.EndDate, "Дата окончания не должна проставляться для этапа в работе")
}

func TestUpdateStage_CompletingEarlyStageCascades(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{
		Status:  null.StringFrom("completed"),
		EndDate: null.StringFrom("2026-08-20"),
	}
	res, err := svc.UpdateStage(context.Background(), "o1", "stage-3", payload, string(entities.RoleManager))
	require.NoError(t, err)

	// Третий этап завершён, первые два завершаются каскадом
	for i := 0; i < 3; i++ {
		assert.Equal(t, "completed", res.Stages[i].Status, "Этап %d должен быть завершён", i+1)
		assert.Equal(t, 100, res.Stages[i].Percentage)
	}
	require.NotNil(t, res.Stages[0].EndDate, "Предыдущий этап должен получить дату окончания из текущего")
	assert.Equal(t, "2026-08-20", *res.Stages[0].EndDate)

	// Поштучные этапы каскад не трогает
	assert.Equal(t, "pending", res.Stages[3].Status)
}

func TestUpdateStage_UnitsDerivePercentageAndStatus(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{CompletedUnits: null.IntFrom(38)}
	res, err := svc.UpdateStage(context.Background(), "o1", "stage-5", payload, string(entities.RoleManager))
	require.NoError(t, err)

	manufacturing := res.Stages[4]
	assert.Equal(t, 38, *manufacturing.CompletedUnits)
	assert.Equal(t, 38, manufacturing.Percentage, "Процент выводится из количества деталей")
	assert.Equal(t, "in_progress", manufacturing.Status, "Внесённые детали переводят этап в работу")
	require.NotNil(t, manufacturing.StartDate)
}

func TestUpdateStage_UnitsPropagateBackward(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	// Упаковано 50 деталей — подготовка, изготовление и ОТК подтягиваются
	payload := dto.UpdateStageDTO{CompletedUnits: null.IntFrom(50)}
	res, err := svc.UpdateStage(context.Background(), "o1", "stage-7", payload, string(entities.RoleManager))
	require.NoError(t, err)

	for i := 3; i < 7; i++ {
		require.NotNil(t, res.Stages[i].CompletedUnits)
		assert.Equal(t, 50, *res.Stages[i].CompletedUnits, "Этап %d должен подтянуться до 50 деталей", i+1)
		assert.Equal(t, "in_progress", res.Stages[i].Status)
	}
	// Отгрузка позади упаковки — её каскад не трогает
	assert.Equal(t, 0, *res.Stages[7].CompletedUnits)
	assert.Equal(t, "pending", res.Stages[7].Status)

	assert.Equal(t, 50, res.Rollup.PackagedUnits)
	assert.Equal(t, 50, res.Rollup.ReadyToShipUnits, "Упаковано 50, отгружено 0 — к отгрузке 50")
}

func TestUpdateStage_NeverLowersPreviousUnits(t *testing.T) {
	order := buildTestOrder("o1", 100)
	eighty := 80
	order.Stages[4].CompletedUnits = &eighty
	order.Stages[4].Status = entities.StageInProgress
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{CompletedUnits: null.IntFrom(30)}
	res, err := svc.UpdateStage(context.Background(), "o1", "stage-6", payload, string(entities.RoleManager))
	require.NoError(t, err)

	assert.Equal(t, 80, *res.Stages[4].CompletedUnits, "Каскад никогда не уменьшает количество")
	assert.Equal(t, 30, *res.Stages[5].CompletedUnits)
}

func TestUpdateStage_StaleRevision(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{
		Status:   null.StringFrom("in_progress"),
		Revision: null.Int64From(42),
	}
	_, err := svc.UpdateStage(context.Background(), "o1", "stage-1", payload, string(entities.RoleManager))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStaleRevision), "Ожидалась ошибка устаревшей ревизии")
}

func TestUpdateStage_InvalidStatus(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{Status: null.StringFrom("finished")}
	_, err := svc.UpdateStage(context.Background(), "o1", "stage-1", payload, string(entities.RoleManager))
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.Code)
}

func TestUpdateStage_UnitsRejectedOnEarlyStage(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{CompletedUnits: null.IntFrom(10)}
	_, err := svc.UpdateStage(context.Background(), "o1", "stage-2", payload, string(entities.RoleManager))
	require.Error(t, err, "На этапах-вехах поштучный учёт не ведётся")
}

func TestUpdateStage_InvalidatesDashboardCache(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	cache := newStubCacheRepo()
	cache.values[DashboardStatsCacheKey] = "{}"
	svc, _ := newTestStageService(repo, cache)

	payload := dto.UpdateStageDTO{Status: null.StringFrom("in_progress")}
	_, err := svc.UpdateStage(context.Background(), "o1", "stage-1", payload, string(entities.RoleManager))
	require.NoError(t, err)

	assert.Contains(t, cache.deleted, DashboardStatsCacheKey, "Мутация этапа обязана сбросить кэш дашборда")
}

func TestUpdateStage_UnknownStage(t *testing.T) {
	order := buildTestOrder("o1", 100)
	repo := newStubOrderRepo(order)
	svc, _ := newTestStageService(repo, newStubCacheRepo())

	payload := dto.UpdateStageDTO{Status: null.StringFrom("in_progress")}
	_, err := svc.UpdateStage(context.Background(), "o1", "no-such-stage", payload, string(entities.RoleManager))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
