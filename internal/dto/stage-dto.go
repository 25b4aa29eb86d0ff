package dto

import "github.com/aarondl/null/v8"

type StageDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	StageOrder        int     `json:"stage_order"`
	Status            string  `json:"status"`
	Percentage        int     `json:"percentage"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	CompletedUnits    *int    `json:"completed_units"`
	ResponsiblePerson *string `json:"responsible_person"`
	Notes             *string `json:"notes"`
}

// UpdateStageDTO — частичное обновление этапа. Невалидное (не присланное или
// явно обнулённое) поле не трогается; пустые строки приравниваются к null
// и в базу не попадают. Даты — строки YYYY-MM-DD.
type UpdateStageDTO struct {
	Status            null.String `json:"status"`
	StartDate         null.String `json:"start_date"`
	EndDate           null.String `json:"end_date"`
	Percentage        null.Int    `json:"percentage"`
	CompletedUnits    null.Int    `json:"completed_units"`
	ResponsiblePerson null.String `json:"responsible_person"`
	Notes             null.String `json:"notes"`
	Revision          null.Int64  `json:"revision"`
}
