package domain

import (
	"testing"
	"time"

	"production-tracking/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTimelineRange_PadsMinMax(t *testing.T) {
	stages := buildStages()
	stages[0].StartDate = datePtr(2026, 8, 10)
	stages[0].EndDate = datePtr(2026, 8, 12)
	stages[4].StartDate = datePtr(2026, 9, 1)
	stages[4].EndDate = datePtr(2026, 9, 20)

	r := ComputeTimelineRange([]entities.Order{orderWithStages(stages...)}, time.Now())

	assert.Equal(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), r.Start, "минимум минус 7 дней")
	assert.Equal(t, time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC), r.End, "максимум плюс 7 дней")
}

func TestComputeTimelineRange_FallbackWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	r := ComputeTimelineRange(nil, now)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), r.Start, "начало текущего месяца")
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), r.End, "конец следующего месяца")

	// И маркеры по такому окну строятся без зацикливания
	markers := TimelineMarkers(r)
	require.NotEmpty(t, markers)
	for _, m := range markers {
		assert.GreaterOrEqual(t, m.Position, 0.0)
		assert.LessOrEqual(t, m.Position, 100.0)
		assert.NotEmpty(t, m.Label)
	}
}

func TestComputeTimelineRange_IgnoresNilDates(t *testing.T) {
	stages := buildStages()
	stages[1].StartDate = datePtr(2026, 8, 15)
	// Остальные даты nil — не должны участвовать в диапазоне

	r := ComputeTimelineRange([]entities.Order{orderWithStages(stages...)}, time.Now())

	assert.Equal(t, time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), r.End)
}

func TestDatePosition_Clamped(t *testing.T) {
	r := TimelineRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
	}

	assert.InDelta(t, 0, DatePosition(r.Start, r), 1e-9)
	assert.InDelta(t, 100, DatePosition(r.End, r), 1e-9)
	assert.InDelta(t, 50, DatePosition(time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC), r), 1e-9)

	// Даты за пределами окна прижимаются к краям
	assert.InDelta(t, 0, DatePosition(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), r), 1e-9)
	assert.InDelta(t, 100, DatePosition(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), r), 1e-9)
}

func TestDatePosition_DegenerateRange(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	r := TimelineRange{Start: day, End: day}

	pos := DatePosition(day, r)
	assert.Equal(t, 0.0, pos, "нулевое окно даёт 0, а не NaN")
	assert.Equal(t, 0.0, DatePosition(day, TimelineRange{}))
}

func TestDateSpanWidth_MinimumVisible(t *testing.T) {
	r := TimelineRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 2.0, DateSpanWidth(day, day, r), 1e-9, "этап нулевой длины виден как 2%")
	assert.InDelta(t, 2.0, DateSpanWidth(day, day.AddDate(0, 0, -5), r), 1e-9, "перевёрнутый диапазон тоже")

	wide := DateSpanWidth(r.Start, r.End, r)
	assert.InDelta(t, 100.0, wide, 1e-9)
}

func TestTimelineMarkers_StepAtLeastOneDay(t *testing.T) {
	// Окно в 3 дня короче целевых 10 маркеров — шаг прижимается к суткам
	r := TimelineRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
	}

	markers := TimelineMarkers(r)
	require.Len(t, markers, 4)
	assert.Equal(t, "01.08", markers[0].Label)
	assert.Equal(t, "04.08", markers[3].Label)
}

func TestTimelineMarkers_Idempotent(t *testing.T) {
	r := TimelineRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, TimelineMarkers(r), TimelineMarkers(r))
}
