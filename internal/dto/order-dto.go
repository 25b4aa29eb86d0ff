package dto

import "github.com/aarondl/null/v8"

type CreateOrderDTO struct {
	OrderNumber           string   `json:"order_number" validate:"required,min=1,max=64"`
	ClientName            string   `json:"client_name" validate:"required,min=2,max=255"`
	Description           string   `json:"description" validate:"required"`
	Quantity              int      `json:"quantity" validate:"required,gt=0"`
	MarketType            string   `json:"market_type" validate:"required,oneof=domestic foreign"`
	MaterialCost          float64  `json:"material_cost" validate:"gte=0"`
	ProcessingTimePerUnit float64  `json:"processing_time_per_unit" validate:"gte=0"`
	ProcessingTypes       []string `json:"processing_types" validate:"required,min=1,dive,oneof=turning milling turn_milling grinding heat_treatment sandblasting galvanizing locksmith"`
	MinuteRateDomestic    *float64 `json:"minute_rate_domestic,omitempty" validate:"omitempty,gte=0"`
	MinuteRateForeign     *float64 `json:"minute_rate_foreign,omitempty" validate:"omitempty,gte=0"`
}

type UpdateOrderDTO struct {
	ClientName            *string  `json:"client_name,omitempty" validate:"omitempty,min=2,max=255"`
	Description           *string  `json:"description,omitempty"`
	Quantity              *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	MarketType            *string  `json:"market_type,omitempty" validate:"omitempty,oneof=domestic foreign"`
	MaterialCost          *float64 `json:"material_cost,omitempty" validate:"omitempty,gte=0"`
	ProcessingTimePerUnit *float64 `json:"processing_time_per_unit,omitempty" validate:"omitempty,gte=0"`
	ProcessingTypes       []string `json:"processing_types,omitempty" validate:"omitempty,min=1,dive,oneof=turning milling turn_milling grinding heat_treatment sandblasting galvanizing locksmith"`
	MinuteRateDomestic    *float64 `json:"minute_rate_domestic,omitempty" validate:"omitempty,gte=0"`
	MinuteRateForeign     *float64 `json:"minute_rate_foreign,omitempty" validate:"omitempty,gte=0"`
	// Ожидаемая ревизия для оптимистической блокировки. Не прислали — пишем как раньше.
	Revision null.Int64 `json:"revision,omitempty"`
}

// OrderCostsDTO — производные стоимости. Считаются на сервере из domain,
// валюта подставляется по рынку заказа и в числах не хранится.
type OrderCostsDTO struct {
	MaterialCostPerUnit   float64 `json:"material_cost_per_unit"`
	ProcessingCostPerUnit float64 `json:"processing_cost_per_unit"`
	TotalCostPerUnit      float64 `json:"total_cost_per_unit"`
	TotalOrderCost        float64 `json:"total_order_cost"`
	EffectiveMinuteRate   float64 `json:"effective_minute_rate"`
	Currency              string  `json:"currency"`
}

type OrderRollupDTO struct {
	ProgressPercent   int    `json:"progress_percent"`
	StatusBucket      string `json:"status_bucket"`
	ManufacturedUnits int    `json:"manufactured_units"`
	PackagedUnits     int    `json:"packaged_units"`
	ShippedUnits      int    `json:"shipped_units"`
	ReadyToShipUnits  int    `json:"ready_to_ship_units"`
}

type OrderResponseDTO struct {
	ID                    string             `json:"id"`
	OrderNumber           string             `json:"order_number"`
	ClientName            string             `json:"client_name"`
	Description           string             `json:"description"`
	Quantity              int                `json:"quantity"`
	MarketType            string             `json:"market_type"`
	MaterialCost          float64            `json:"material_cost"`
	ProcessingTimePerUnit float64            `json:"processing_time_per_unit"`
	MinuteRateDomestic    float64            `json:"minute_rate_domestic"`
	MinuteRateForeign     float64            `json:"minute_rate_foreign"`
	ProcessingTypes       []string           `json:"processing_types"`
	Stages                []StageDTO         `json:"stages"`
	Files                 []OrderFileDTO     `json:"files"`
	Costs                 *OrderCostsDTO     `json:"costs,omitempty"`
	Rollup                OrderRollupDTO     `json:"rollup"`
	Revision              int64              `json:"revision"`
	CreatedBy             string             `json:"created_by"`
	CreatedAt             string             `json:"created_at"`
	UpdatedAt             string             `json:"updated_at"`
}

type OrderListResponseDTO struct {
	List       []OrderResponseDTO `json:"list"`
	TotalCount uint64             `json:"total_count"`
}

type OrderFileDTO struct {
	ID               string `json:"id"`
	OriginalFilename string `json:"original_filename"`
	UploadedAt       string `json:"uploaded_at"`
}
