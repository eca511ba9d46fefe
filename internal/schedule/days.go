package schedule

import (
	"fmt"
	"time"
)

// DayDescriptor — описание одного дня конференции, получаемое из диапазона дат.
type DayDescriptor struct {
	Date        time.Time `json:"-"`
	ISODate     string    `json:"date"`         // Дата в формате YYYY-MM-DD
	Order       int       `json:"order"`        // Порядковый номер, 1-based
	Weekday     string    `json:"weekday"`      // День недели
	DisplayName string    `json:"display_name"` // "Day {order}"
}

// truncateToDate отбрасывает компонент времени, сохраняя только календарную дату.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayOrder считает порядковый номер дня date внутри конференции, начавшейся
// confStart: (date − confStart в целых днях) + 1. Та же формула используется
// и генератором, и ленивым созданием персистентных дней — поэтому порядок
// сохранённого дня не может разойтись со сгенерированным.
func DayOrder(confStart, date time.Time) int {
	start := truncateToDate(confStart)
	d := truncateToDate(date)
	return int(d.Sub(start).Hours()/24) + 1
}

// GenerateDays разворачивает диапазон дат конференции в упорядоченный список
// дней: по одному дескриптору на каждую календарную дату от start до end
// включительно. Чистая функция — повторный вызов с теми же аргументами даёт
// идентичный результат.
func GenerateDays(start, end time.Time) ([]DayDescriptor, error) {
	first := truncateToDate(start)
	last := truncateToDate(end)
	if last.Before(first) {
		return nil, ErrInvalidRange
	}

	var days []DayDescriptor
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		order := DayOrder(first, d)
		days = append(days, DayDescriptor{
			Date:        d,
			ISODate:     d.Format("2006-01-02"),
			Order:       order,
			Weekday:     d.Weekday().String(),
			DisplayName: fmt.Sprintf("Day %d", order),
		})
	}
	return days, nil
}
