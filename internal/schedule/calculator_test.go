package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sectionBounds(startHour, startMin, endHour, endMin int) SectionBounds {
	day := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	return SectionBounds{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func window(bounds SectionBounds, fromMin, toMin int) Window {
	return Window{
		Start: bounds.Start.Add(time.Duration(fromMin) * time.Minute),
		End:   bounds.Start.Add(time.Duration(toMin) * time.Minute),
	}
}

func TestNextAvailableSlotEmptySection(t *testing.T) {
	bounds := sectionBounds(9, 0, 10, 0)
	result, err := NextAvailableSlot(bounds, nil, 30)
	assert.NoError(t, err)
	assert.Equal(t, bounds.Start, result.StartTime, "Пустая секция: кандидат — ровно начало секции")
	assert.Equal(t, bounds.Start.Add(30*time.Minute), result.EndTime)
	assert.False(t, result.Truncated)
	assert.Equal(t, 30, result.ActualDuration)
	assert.Equal(t, 60, result.AvailableMinutes)
}

func TestNextAvailableSlotTruncation(t *testing.T) {
	// Секция [09:00,10:00), занято [09:00,09:30), запрошено 40 минут.
	bounds := sectionBounds(9, 0, 10, 0)
	occupied := []Window{window(bounds, 0, 30)}

	result, err := NextAvailableSlot(bounds, occupied, 40)
	assert.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Equal(t, 40, result.RequestedDuration)
	assert.Equal(t, 30, result.ActualDuration)
	assert.Equal(t, 30, result.AvailableMinutes)
	assert.Equal(t, bounds.Start.Add(30*time.Minute), result.StartTime)
	assert.Equal(t, bounds.End, result.EndTime)
}

func TestNextAvailableSlotExactFit(t *testing.T) {
	bounds := sectionBounds(9, 0, 10, 0)
	occupied := []Window{window(bounds, 0, 30)}

	result, err := NextAvailableSlot(bounds, occupied, 30)
	assert.NoError(t, err)
	assert.False(t, result.Truncated, "Длительность ровно в остаток не считается урезанием")
	assert.Equal(t, bounds.End, result.EndTime, "Слот должен закончиться точно на границе секции")
}

func TestNextAvailableSlotNoCapacity(t *testing.T) {
	bounds := sectionBounds(9, 0, 10, 0)
	occupied := []Window{window(bounds, 0, 60)}

	_, err := NextAvailableSlot(bounds, occupied, 1)
	assert.ErrorIs(t, err, ErrNoCapacity, "Полностью занятая секция не должна давать слот нулевой длины")
}

func TestNextAvailableSlotInvalidDuration(t *testing.T) {
	bounds := sectionBounds(9, 0, 10, 0)
	_, err := NextAvailableSlot(bounds, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = NextAvailableSlot(bounds, nil, -15)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestNextAvailableSlotUnsortedInput(t *testing.T) {
	bounds := sectionBounds(9, 0, 12, 0)
	occupied := []Window{
		window(bounds, 60, 90),
		window(bounds, 0, 30),
		window(bounds, 30, 60),
	}

	result, err := NextAvailableSlot(bounds, occupied, 20)
	assert.NoError(t, err)
	assert.Equal(t, bounds.Start.Add(90*time.Minute), result.StartTime,
		"Калькулятор обязан сам отсортировать занятые окна")
}

func TestNextAvailableSlotFrontierSkipsGaps(t *testing.T) {
	// Фронтир — максимум окончаний, дыры между слотами не переиспользуются.
	bounds := sectionBounds(9, 0, 11, 0)
	occupied := []Window{
		window(bounds, 0, 30),
		window(bounds, 45, 75),
	}

	result, err := NextAvailableSlot(bounds, occupied, 20)
	assert.NoError(t, err)
	assert.Equal(t, bounds.Start.Add(75*time.Minute), result.StartTime)
}

func TestNextAvailableSlotDoesNotMutateInput(t *testing.T) {
	bounds := sectionBounds(9, 0, 12, 0)
	occupied := []Window{
		window(bounds, 60, 90),
		window(bounds, 0, 30),
	}
	first := occupied[0]

	_, err := NextAvailableSlot(bounds, occupied, 20)
	assert.NoError(t, err)
	assert.Equal(t, first, occupied[0], "Входной срез не должен изменяться")
}

func TestNextAvailableSlotSequentialPlacementsNeverOverlap(t *testing.T) {
	bounds := sectionBounds(9, 0, 13, 0)
	var occupied []Window

	durations := []int{30, 45, 20, 60, 15}
	for _, d := range durations {
		result, err := NextAvailableSlot(bounds, occupied, d)
		assert.NoError(t, err)
		assert.False(t, result.Truncated)

		for _, w := range occupied {
			overlaps := result.StartTime.Before(w.End) && w.Start.Before(result.EndTime)
			assert.False(t, overlaps, "Новое окно не должно пересекаться с существующими")
		}
		assert.False(t, result.StartTime.Before(bounds.Start))
		assert.False(t, result.EndTime.After(bounds.End))

		occupied = append(occupied, Window{Start: result.StartTime, End: result.EndTime})
	}
}
