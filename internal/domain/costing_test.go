package domain

import (
	"testing"

	"production-tracking/internal/entities"

	"github.com/stretchr/testify/assert"
)

func TestCosting_DomesticOrder(t *testing.T) {
	order := entities.Order{
		Quantity:              10,
		MarketType:            entities.MarketDomestic,
		MaterialCost:          1000,
		ProcessingTimePerUnit: 45,
		MinuteRateDomestic:    25,
		MinuteRateForeign:     0.42,
	}

	assert.InDelta(t, 100, MaterialCostPerUnit(order), 1e-9, "материал на деталь: 1000/10")
	assert.InDelta(t, 1125, ProcessingCostPerUnit(order), 1e-9, "обработка на деталь: 45*25")
	assert.InDelta(t, 1225, TotalCostPerUnit(order), 1e-9)
	assert.InDelta(t, 12250, TotalOrderCost(order), 1e-9)
}

func TestCosting_ForeignOrder(t *testing.T) {
	order := entities.Order{
		Quantity:              10,
		MarketType:            entities.MarketForeign,
		MaterialCost:          1000,
		ProcessingTimePerUnit: 45,
		MinuteRateDomestic:    25,
		MinuteRateForeign:     0.42,
	}

	assert.InDelta(t, 18.9, ProcessingCostPerUnit(order), 1e-9, "обработка на деталь: 45*0.42")
	assert.InDelta(t, 118.9, TotalCostPerUnit(order), 1e-9)
	assert.InDelta(t, 1189, TotalOrderCost(order), 1e-9)
}

func TestCosting_TotalOrderCostConsistency(t *testing.T) {
	// total == perUnit * quantity для любого корректного количества
	for _, q := range []int{1, 3, 7, 100} {
		order := entities.Order{
			Quantity:              q,
			MarketType:            entities.MarketDomestic,
			MaterialCost:          777.77,
			ProcessingTimePerUnit: 12.5,
			MinuteRateDomestic:    25,
		}
		assert.InDelta(t, TotalCostPerUnit(order)*float64(q), TotalOrderCost(order), 1e-9)
	}
}

func TestCosting_DegenerateInput(t *testing.T) {
	tests := []struct {
		name  string
		order entities.Order
	}{
		{"пустой заказ", entities.Order{}},
		{"нулевое количество", entities.Order{MaterialCost: 500}},
		{"отрицательное количество", entities.Order{Quantity: -5, MaterialCost: 500}},
		{"отрицательное время обработки", entities.Order{Quantity: 2, ProcessingTimePerUnit: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mpu := MaterialCostPerUnit(tt.order)
			assert.False(t, mpu != mpu, "результат не должен быть NaN")
			assert.GreaterOrEqual(t, mpu, 0.0, "стоимость материала не отрицательна")
			assert.GreaterOrEqual(t, ProcessingCostPerUnit(tt.order), 0.0)
			assert.GreaterOrEqual(t, TotalOrderCost(tt.order), 0.0)
		})
	}

	// При отсутствии количества делитель — единица, а не ноль
	order := entities.Order{MaterialCost: 500}
	assert.InDelta(t, 500, MaterialCostPerUnit(order), 1e-9)
}

func TestCosting_FallbackMinuteRates(t *testing.T) {
	domestic := entities.Order{MarketType: entities.MarketDomestic, ProcessingTimePerUnit: 2}
	foreign := entities.Order{MarketType: entities.MarketForeign, ProcessingTimePerUnit: 2}

	assert.InDelta(t, 25.0, EffectiveMinuteRate(domestic), 1e-9, "резервная ставка внутреннего рынка")
	assert.InDelta(t, 0.42, EffectiveMinuteRate(foreign), 1e-9, "резервная ставка внешнего рынка")
	assert.InDelta(t, 50, ProcessingCostPerUnit(domestic), 1e-9)
	assert.InDelta(t, 0.84, ProcessingCostPerUnit(foreign), 1e-9)
}

func TestCosting_Idempotence(t *testing.T) {
	order := entities.Order{
		Quantity:              10,
		MarketType:            entities.MarketForeign,
		MaterialCost:          1000,
		ProcessingTimePerUnit: 45,
		MinuteRateForeign:     0.42,
	}
	assert.Equal(t, TotalOrderCost(order), TotalOrderCost(order))
	assert.Equal(t, TotalCostPerUnit(order), TotalCostPerUnit(order))
}
