package domain

import (
	"testing"

	"production-tracking/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWithStages(stages ...entities.Stage) entities.Order {
	return entities.Order{Stages: stages}
}

func TestOrderProgressPercent(t *testing.T) {
	assert.Equal(t, 0, OrderProgressPercent(entities.Order{}), "заказ без этапов — 0% без деления на ноль")

	stages := buildStages()
	for i := 0; i < 3; i++ {
		stages[i].Status = entities.StageCompleted
	}
	assert.Equal(t, 38, OrderProgressPercent(orderWithStages(stages...)), "round(3/8*100) = 38")

	for i := range stages {
		stages[i].Status = entities.StageCompleted
	}
	assert.Equal(t, 100, OrderProgressPercent(orderWithStages(stages...)))
}

func TestFindStage(t *testing.T) {
	stages := buildStages()
	order := orderWithStages(stages...)

	byName := FindStage(order, StageNameManufacturing, -1)
	require.NotNil(t, byName)
	assert.Equal(t, PositionManufacturing, byName.StageOrder)

	byPosition := FindStage(order, "нет такого имени", PositionShipping)
	require.NotNil(t, byPosition)
	assert.Equal(t, StageNameShipping, byPosition.Name)

	assert.Nil(t, FindStage(order, "нет такого имени", 99), "ненайденный этап — nil, не паника")
	assert.Nil(t, FindStage(entities.Order{}, StageNameShipping, PositionShipping))
}

func TestUnitRollups(t *testing.T) {
	stages := buildStages()
	stages[PositionManufacturing-1].CompletedUnits = intPtr(70)
	stages[PositionPackaging-1].CompletedUnits = intPtr(50)
	stages[PositionShipping-1].CompletedUnits = intPtr(20)
	order := orderWithStages(stages...)

	assert.Equal(t, 70, ManufacturedUnits(order))
	assert.Equal(t, 50, PackagedUnits(order))
	assert.Equal(t, 20, ShippedUnits(order))
	assert.Equal(t, 30, ReadyToShipUnits(order), "упаковано 50, отгружено 20 — готово 30")
}

func TestReadyToShipUnits_NeverNegative(t *testing.T) {
	stages := buildStages()
	stages[PositionPackaging-1].CompletedUnits = intPtr(10)
	stages[PositionShipping-1].CompletedUnits = intPtr(25)
	order := orderWithStages(stages...)

	assert.Equal(t, 0, ReadyToShipUnits(order), "отгрузка обогнала упаковку — всё равно не меньше нуля")
}

func TestUnitRollups_MissingStages(t *testing.T) {
	order := entities.Order{}
	assert.Equal(t, 0, ManufacturedUnits(order))
	assert.Equal(t, 0, ShippedUnits(order))
	assert.Equal(t, 0, ReadyToShipUnits(order))
}

func TestOrderStatusBucket(t *testing.T) {
	stages := buildStages()
	assert.Equal(t, BucketPending, OrderStatusBucket(orderWithStages(stages...)))

	stages[0].Status = entities.StageCompleted
	assert.Equal(t, BucketInProgress, OrderStatusBucket(orderWithStages(stages...)))

	// "Просрочен" на этапе не меняет корзину заказа
	stages[1].Status = entities.StageDelayed
	assert.Equal(t, BucketInProgress, OrderStatusBucket(orderWithStages(stages...)))

	for i := range stages {
		stages[i].Status = entities.StageCompleted
	}
	assert.Equal(t, BucketCompleted, OrderStatusBucket(orderWithStages(stages...)))

	assert.Equal(t, BucketPending, OrderStatusBucket(entities.Order{}), "заказ без этапов считается ожидающим")
}
