package dto

// DTO диаграммы Ганта: все позиции уже нормированы в [0,100],
// фронтенду остаётся только отрисовать полосы.

type TimelineMarkerDTO struct {
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

type TimelineStageDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	StageOrder int     `json:"stage_order"`
	Status     string  `json:"status"`
	Percentage int     `json:"percentage"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	HasDates   bool    `json:"has_dates"`
	Position   float64 `json:"position"`
	Width      float64 `json:"width"`
}

type TimelineOrderDTO struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	ClientName      string             `json:"client_name"`
	ProgressPercent int                `json:"progress_percent"`
	Stages          []TimelineStageDTO `json:"stages"`
}

type TimelineResponseDTO struct {
	RangeStart string              `json:"range_start"`
	RangeEnd   string              `json:"range_end"`
	Markers    []TimelineMarkerDTO `json:"markers"`
	Orders     []TimelineOrderDTO  `json:"orders"`
}
