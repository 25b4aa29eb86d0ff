package entities

import "time"

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
	StageDelayed    StageStatus = "delayed"
)

func (s StageStatus) Valid() bool {
	switch s {
	case StagePending, StageInProgress, StageCompleted, StageDelayed:
		return true
	}
	return false
}

// Stage — один этап производственного конвейера заказа.
// StageOrder — позиция 1..8, назначается сервером при создании заказа.
type Stage struct {
	ID                string      `json:"id"`
	OrderID           string      `json:"-"`
	Name              string      `json:"name"`
	StageOrder        int         `json:"stage_order"`
	Status            StageStatus `json:"status"`
	Percentage        int         `json:"percentage"`
	StartDate         *time.Time  `json:"start_date"`
	EndDate           *time.Time  `json:"end_date"`
	CompletedUnits    *int        `json:"completed_units"`
	ResponsiblePerson *string     `json:"responsible_person"`
	Notes             *string     `json:"notes"`
}
