package domain

import (
	"math"
	"time"

	"production-tracking/internal/entities"
)

// PipelineLength — число этапов в конвейере. Конвейер фиксированный:
// этапы создаются вместе с заказом, клиент их не придумывает.
const PipelineLength = 8

// Этапы 1..3 — вехи по датам, с 4-го начинается поштучный учёт.
const earlyStageCount = 3

// Позиции этапов со специальным смыслом для сводных показателей.
const (
	PositionManufacturing = 5
	PositionPackaging     = 7
	PositionShipping      = 8
)

// Канонические имена этих этапов (используются как запасной ключ поиска).
const (
	StageNameManufacturing = "Изготовление"
	StageNamePackaging     = "Упаковка"
	StageNameShipping      = "Отгрузка"
)

type StageTemplate struct {
	Name     string
	HasUnits bool
}

// DefaultPipeline возвращает шаблон конвейера в порядке выполнения.
func DefaultPipeline() []StageTemplate {
	return []StageTemplate{
		{Name: "Получение заказа на оценку", HasUnits: false},
		{Name: "Поиск материала", HasUnits: false},
		{Name: "Покупка материала + доставка", HasUnits: false},
		{Name: "Подготовка материала (порезка/торцовка)", HasUnits: true},
		{Name: StageNameManufacturing, HasUnits: true},
		{Name: "Проверка ОТК", HasUnits: true},
		{Name: StageNamePackaging, HasUnits: true},
		{Name: StageNameShipping, HasUnits: true},
	}
}

// IsUnitStage сообщает, ведётся ли на позиции поштучный учёт (позиции 4..8).
func IsUnitStage(position int) bool {
	return position > earlyStageCount
}

// StagePercentage выводит процент выполнения этапа.
// Ранние этапы бинарны: 0% или 100% по статусу. Поштучные этапы считаются
// от количества деталей заказа. Процент — всегда производная величина,
// вручную выставленное значение не сохраняется.
func StagePercentage(stage entities.Stage, quantity int) int {
	if !IsUnitStage(stage.StageOrder) {
		if stage.Status == entities.StageCompleted {
			return 100
		}
		return 0
	}

	if quantity <= 0 {
		return 0
	}
	units := 0
	if stage.CompletedUnits != nil {
		units = *stage.CompletedUnits
	}
	pct := int(math.Round(float64(units) / float64(quantity) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// AutoDateEarlyStage проставляет даты ранним этапам (позиции 1..3):
// статус "в работе" без даты начала получает сегодняшнюю дату,
// статус "завершен" — обе даты. Это бизнес-правило, применяется перед
// сохранением, а не перед отрисовкой.
func AutoDateEarlyStage(stage *entities.Stage, today time.Time) {
	if IsUnitStage(stage.StageOrder) {
		return
	}
	day := truncateToDay(today)
	switch stage.Status {
	case entities.StageInProgress:
		if stage.StartDate == nil {
			stage.StartDate = &day
		}
	case entities.StageCompleted:
		if stage.StartDate == nil {
			stage.StartDate = &day
		}
		if stage.EndDate == nil {
			end := day
			stage.EndDate = &end
		}
	}
}

// RecalculateStage приводит этап в согласованное состояние после правки:
// выводит процент, а для поштучных этапов с внесённым количеством переводит
// статус из "ожидает" в "в работе" и проставляет дату начала.
func RecalculateStage(stage *entities.Stage, quantity int, today time.Time) {
	stage.Percentage = StagePercentage(*stage, quantity)

	if !IsUnitStage(stage.StageOrder) {
		return
	}
	units := 0
	if stage.CompletedUnits != nil {
		units = *stage.CompletedUnits
	}
	if units > 0 {
		if stage.Status == entities.StagePending {
			stage.Status = entities.StageInProgress
		}
		if stage.StartDate == nil {
			day := truncateToDay(today)
			stage.StartDate = &day
		}
	}
}

// CompletePreviousStages завершает все этапы перед idx, когда ранний этап
// (позиции 1..3) переведён в "завершен". Даты подставляются из текущего
// этапа и только там, где не были выставлены вручную.
func CompletePreviousStages(stages []entities.Stage, idx int) {
	if idx >= earlyStageCount || idx >= len(stages) {
		return
	}
	current := stages[idx]
	if current.Status != entities.StageCompleted {
		return
	}

	fallbackStart := current.StartDate
	if fallbackStart == nil {
		fallbackStart = current.EndDate
	}

	for i := 0; i < idx; i++ {
		prev := &stages[i]
		if prev.Status == entities.StageCompleted {
			continue
		}
		prev.Status = entities.StageCompleted
		prev.Percentage = 100
		if prev.StartDate == nil && fallbackStart != nil {
			start := *fallbackStart
			prev.StartDate = &start
		}
		if prev.EndDate == nil && current.EndDate != nil {
			end := *current.EndDate
			prev.EndDate = &end
		}
	}
}

// PropagateUnitsToPreviousStages подтягивает количество деталей в предыдущих
// поштучных этапах до количества текущего: деталь не может быть упакована
// раньше, чем изготовлена. Статусы и даты начала отстающих этапов
// проставляются автоматически.
func PropagateUnitsToPreviousStages(stages []entities.Stage, idx int, quantity int) {
	if idx < earlyStageCount || idx >= len(stages) {
		return
	}
	current := stages[idx]
	currentUnits := 0
	if current.CompletedUnits != nil {
		currentUnits = *current.CompletedUnits
	}
	if currentUnits <= 0 {
		return
	}

	for i := earlyStageCount; i < idx; i++ {
		prev := &stages[i]
		prevUnits := 0
		if prev.CompletedUnits != nil {
			prevUnits = *prev.CompletedUnits
		}
		if currentUnits <= prevUnits {
			continue
		}
		units := currentUnits
		prev.CompletedUnits = &units
		prev.Percentage = StagePercentage(*prev, quantity)
		if prev.Status == entities.StagePending {
			prev.Status = entities.StageInProgress
		}
		if prev.StartDate == nil && current.StartDate != nil {
			start := *current.StartDate
			prev.StartDate = &start
		}
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
