package dto

// DashboardStatsDTO — сводка по всем заказам для главного экрана.
// Денежные итоги раздельные по рынкам: валюты не складываются.
type DashboardStatsDTO struct {
	TotalOrders       int     `json:"total_orders"`
	Pending           int     `json:"pending"`
	InProgress        int     `json:"in_progress"`
	Completed         int     `json:"completed"`
	ManufacturedUnits int     `json:"manufactured_units"`
	PackagedUnits     int     `json:"packaged_units"`
	ShippedUnits      int     `json:"shipped_units"`
	ReadyToShipUnits  int     `json:"ready_to_ship_units"`
	TotalValueUAH     float64 `json:"total_value_uah"`
	TotalValueUSD     float64 `json:"total_value_usd"`
}
