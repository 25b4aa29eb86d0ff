package dto

// ReportRowDTO — строка отчёта по себестоимости заказов.
type ReportRowDTO struct {
	OrderNumber           string  `json:"order_number"`
	ClientName            string  `json:"client_name"`
	Quantity              int     `json:"quantity"`
	MarketType            string  `json:"market_type"`
	Currency              string  `json:"currency"`
	MaterialCostPerUnit   float64 `json:"material_cost_per_unit"`
	ProcessingCostPerUnit float64 `json:"processing_cost_per_unit"`
	TotalCostPerUnit      float64 `json:"total_cost_per_unit"`
	TotalOrderCost        float64 `json:"total_order_cost"`
	ProgressPercent       int     `json:"progress_percent"`
	CreatedAt             string  `json:"created_at"`
}
