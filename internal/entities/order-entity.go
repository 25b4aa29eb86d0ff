package entities

import "time"

type MarketType string

const (
	MarketDomestic MarketType = "domestic"
	MarketForeign  MarketType = "foreign"
)

type ProcessingType string

// Фиксированный каталог видов обработки.
const (
	ProcessingTurning       ProcessingType = "turning"
	ProcessingMilling       ProcessingType = "milling"
	ProcessingTurnMilling   ProcessingType = "turn_milling"
	ProcessingGrinding      ProcessingType = "grinding"
	ProcessingHeatTreatment ProcessingType = "heat_treatment"
	ProcessingSandblasting  ProcessingType = "sandblasting"
	ProcessingGalvanizing   ProcessingType = "galvanizing"
	ProcessingLocksmith     ProcessingType = "locksmith"
)

type Order struct {
	ID                    string           `json:"id"`
	OrderNumber           string           `json:"order_number"`
	ClientName            string           `json:"client_name"`
	Description           string           `json:"description"`
	Quantity              int              `json:"quantity"`
	MarketType            MarketType       `json:"market_type"`
	MaterialCost          float64          `json:"material_cost"`
	ProcessingTimePerUnit float64          `json:"processing_time_per_unit"`
	MinuteRateDomestic    float64          `json:"minute_rate_domestic"`
	MinuteRateForeign     float64          `json:"minute_rate_foreign"`
	ProcessingTypes       []ProcessingType `json:"processing_types"`
	Stages                []Stage          `json:"stages"`
	Files                 []OrderFile      `json:"files"`
	Revision              int64            `json:"revision"`
	CreatedBy             string           `json:"created_by"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}
