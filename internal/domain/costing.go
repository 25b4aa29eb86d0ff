// Пакет domain — чистая расчётная логика заказов: себестоимость, прогресс
// по этапам, сводные показатели и раскладка дат для диаграммы Ганта.
// Никакого I/O: все функции — детерминированные преобразования снимка данных.
package domain

import "production-tracking/internal/entities"

// Резервные ставки за минуту обработки, если в заказе ставка не задана.
// Внутренний рынок — гривны, внешний — доллары.
const (
	DefaultMinuteRateDomestic = 25.0
	DefaultMinuteRateForeign  = 0.42
)

// MaterialCostPerUnit — стоимость материала на одну деталь.
// Количество меньше единицы трактуем как единицу, чтобы никогда не делить на ноль.
func MaterialCostPerUnit(order entities.Order) float64 {
	if order.MaterialCost <= 0 {
		return 0
	}
	quantity := order.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return order.MaterialCost / float64(quantity)
}

// EffectiveMinuteRate — ставка за минуту с учётом рынка заказа.
func EffectiveMinuteRate(order entities.Order) float64 {
	if order.MarketType == entities.MarketForeign {
		if order.MinuteRateForeign > 0 {
			return order.MinuteRateForeign
		}
		return DefaultMinuteRateForeign
	}
	if order.MinuteRateDomestic > 0 {
		return order.MinuteRateDomestic
	}
	return DefaultMinuteRateDomestic
}

// ProcessingCostPerUnit — стоимость обработки одной детали.
func ProcessingCostPerUnit(order entities.Order) float64 {
	if order.ProcessingTimePerUnit <= 0 {
		return 0
	}
	return order.ProcessingTimePerUnit * EffectiveMinuteRate(order)
}

// TotalCostPerUnit — полная себестоимость одной детали.
func TotalCostPerUnit(order entities.Order) float64 {
	return MaterialCostPerUnit(order) + ProcessingCostPerUnit(order)
}

// TotalOrderCost — полная стоимость заказа.
func TotalOrderCost(order entities.Order) float64 {
	quantity := order.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return TotalCostPerUnit(order) * float64(quantity)
}
