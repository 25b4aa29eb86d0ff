package domain

import (
	"math"

	"production-tracking/internal/entities"
)

// StatusBucket — корзина заказа для сводки дашборда. Статус "просрочен"
// существует только на уровне этапа и сюда не поднимается.
type StatusBucket string

const (
	BucketPending    StatusBucket = "pending"
	BucketInProgress StatusBucket = "in_progress"
	BucketCompleted  StatusBucket = "completed"
)

// OrderProgressPercent — прогресс заказа как доля завершённых этапов.
func OrderProgressPercent(order entities.Order) int {
	if len(order.Stages) == 0 {
		return 0
	}
	completed := 0
	for _, stage := range order.Stages {
		if stage.Status == entities.StageCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(order.Stages)) * 100))
}

// FindStage ищет этап по точному имени ИЛИ по позиции; берётся первый
// подходящий в порядке конвейера. Возвращает nil, если этапа нет, —
// не ошибку: отсутствующий этап для сводок эквивалентен нулю.
func FindStage(order entities.Order, name string, position int) *entities.Stage {
	for i := range order.Stages {
		if order.Stages[i].Name == name || order.Stages[i].StageOrder == position {
			return &order.Stages[i]
		}
	}
	return nil
}

func stageUnits(stage *entities.Stage) int {
	if stage == nil || stage.CompletedUnits == nil {
		return 0
	}
	return *stage.CompletedUnits
}

// ManufacturedUnits — количество изготовленных деталей (этап "Изготовление").
func ManufacturedUnits(order entities.Order) int {
	return stageUnits(FindStage(order, StageNameManufacturing, PositionManufacturing))
}

// PackagedUnits — количество упакованных деталей (этап "Упаковка").
func PackagedUnits(order entities.Order) int {
	return stageUnits(FindStage(order, StageNamePackaging, PositionPackaging))
}

// ShippedUnits — количество отгруженных деталей (этап "Отгрузка").
func ShippedUnits(order entities.Order) int {
	return stageUnits(FindStage(order, StageNameShipping, PositionShipping))
}

// ReadyToShipUnits — упаковано, но ещё не отгружено. Не бывает отрицательным,
// даже если отгрузка по данным обгоняет упаковку.
func ReadyToShipUnits(order entities.Order) int {
	ready := PackagedUnits(order) - ShippedUnits(order)
	if ready < 0 {
		return 0
	}
	return ready
}

// OrderStatusBucket раскладывает заказ по корзинам сводки:
// ни одного завершённого этапа — "ожидает", все — "завершен", иначе "в работе".
func OrderStatusBucket(order entities.Order) StatusBucket {
	completed := 0
	for _, stage := range order.Stages {
		if stage.Status == entities.StageCompleted {
			completed++
		}
	}
	switch {
	case completed == 0:
		return BucketPending
	case completed == len(order.Stages) && len(order.Stages) > 0:
		return BucketCompleted
	default:
		return BucketInProgress
	}
}
