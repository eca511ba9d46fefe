package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateDaysThreeDays(t *testing.T) {
	days, err := GenerateDays(date(2024, 7, 15), date(2024, 7, 17))
	assert.NoError(t, err)
	assert.Len(t, days, 3, "Три календарных дня должны дать три дескриптора")

	assert.Equal(t, "2024-07-15", days[0].ISODate)
	assert.Equal(t, "2024-07-16", days[1].ISODate)
	assert.Equal(t, "2024-07-17", days[2].ISODate)
	for i, day := range days {
		assert.Equal(t, i+1, day.Order, "Порядок должен идти подряд с единицы")
	}
	assert.Equal(t, "Day 1", days[0].DisplayName)
	assert.Equal(t, "Monday", days[0].Weekday)
	assert.Equal(t, "Day 3", days[2].DisplayName)
}

func TestGenerateDaysSingleDay(t *testing.T) {
	days, err := GenerateDays(date(2024, 7, 15), date(2024, 7, 15))
	assert.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Order)
	assert.Equal(t, "Day 1", days[0].DisplayName)
}

func TestGenerateDaysInvalidRange(t *testing.T) {
	_, err := GenerateDays(date(2024, 7, 17), date(2024, 7, 15))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateDaysDeterministic(t *testing.T) {
	first, err := GenerateDays(date(2024, 7, 15), date(2024, 7, 20))
	assert.NoError(t, err)
	second, err := GenerateDays(date(2024, 7, 15), date(2024, 7, 20))
	assert.NoError(t, err)
	assert.Equal(t, first, second, "Повторный вызов с теми же датами должен дать идентичный результат")
}

func TestGenerateDaysAcrossMonthBoundary(t *testing.T) {
	days, err := GenerateDays(date(2024, 1, 30), date(2024, 2, 2))
	assert.NoError(t, err)
	assert.Len(t, days, 4)
	assert.Equal(t, "2024-01-31", days[1].ISODate)
	assert.Equal(t, "2024-02-01", days[2].ISODate)
	assert.Equal(t, 4, days[3].Order)
}

func TestGenerateDaysIgnoresTimeComponent(t *testing.T) {
	start := time.Date(2024, 7, 15, 18, 30, 0, 0, time.UTC)
	end := time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC)
	days, err := GenerateDays(start, end)
	assert.NoError(t, err)
	assert.Len(t, days, 2, "Компонент времени не должен влиять на число дней")
}

func TestDayOrderMatchesGenerator(t *testing.T) {
	start := date(2024, 7, 15)
	days, err := GenerateDays(start, date(2024, 7, 19))
	assert.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, day.Order, DayOrder(start, day.Date),
			"Порядок персистентного дня обязан совпадать с порядком генератора")
	}
}
