package domain

import (
	"math"
	"time"

	"production-tracking/internal/entities"
)

// TimelineRange — общее окно дат, на которое нормируются все этапы
// при раскладке диаграммы Ганта.
type TimelineRange struct {
	Start time.Time
	End   time.Time
}

// TimelineMarker — подпись даты на горизонтальной шкале.
type TimelineMarker struct {
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

const (
	timelinePaddingDays  = 7
	timelineMarkerTarget = 10
	// Минимальная видимая ширина полосы в процентах: этап нулевой длины
	// всё равно должен быть виден.
	minSpanWidthPercent = 2.0
)

// ComputeTimelineRange сканирует даты всех этапов всех заказов и строит окно
// min..max с запасом в неделю с каждой стороны. Если дат нет вовсе,
// берётся окно с первого числа текущего месяца по конец следующего.
func ComputeTimelineRange(orders []entities.Order, now time.Time) TimelineRange {
	var earliest, latest *time.Time

	for _, order := range orders {
		for _, stage := range order.Stages {
			for _, d := range []*time.Time{stage.StartDate, stage.EndDate} {
				if d == nil || d.IsZero() {
					continue
				}
				if earliest == nil || d.Before(*earliest) {
					v := *d
					earliest = &v
				}
				if latest == nil || d.After(*latest) {
					v := *d
					latest = &v
				}
			}
		}
	}

	if earliest == nil || latest == nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return TimelineRange{
			Start: monthStart,
			End:   monthStart.AddDate(0, 2, 0).AddDate(0, 0, -1),
		}
	}

	return TimelineRange{
		Start: earliest.AddDate(0, 0, -timelinePaddingDays),
		End:   latest.AddDate(0, 0, timelinePaddingDays),
	}
}

// DatePosition — положение даты в окне как число из [0,100].
// Вырожденное окно даёт 0, а не NaN.
func DatePosition(date time.Time, r TimelineRange) float64 {
	if date.IsZero() || r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	total := r.End.Sub(r.Start).Hours() / 24
	if total <= 0 {
		return 0
	}
	fromStart := date.Sub(r.Start).Hours() / 24
	pos := fromStart / total * 100
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}

// DateSpanWidth — ширина полосы этапа в процентах, не меньше минимальной.
func DateSpanWidth(start, end time.Time, r TimelineRange) float64 {
	width := DatePosition(end, r) - DatePosition(start, r)
	if width < minSpanWidthPercent {
		return minSpanWidthPercent
	}
	return width
}

// TimelineMarkers генерирует около десяти равномерных подписей дат.
// Шаг не меньше суток, иначе окно короче десяти дней зациклило бы обход.
func TimelineMarkers(r TimelineRange) []TimelineMarker {
	if r.Start.IsZero() || r.End.IsZero() {
		return nil
	}
	totalDays := r.End.Sub(r.Start).Hours() / 24
	if totalDays <= 0 || math.IsNaN(totalDays) {
		return nil
	}

	step := int(math.Ceil(totalDays / timelineMarkerTarget))
	if step < 1 {
		step = 1
	}

	markers := make([]TimelineMarker, 0, timelineMarkerTarget+1)
	for i := 0; float64(i) <= totalDays; i += step {
		date := r.Start.AddDate(0, 0, i)
		markers = append(markers, TimelineMarker{
			Position: float64(i) / totalDays * 100,
			Label:    date.Format("02.01"),
		})
	}
	return markers
}
