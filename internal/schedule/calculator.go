package schedule

import (
	"sort"
	"time"
)

// maxOccupiedScan ограничивает число просматриваемых занятых слотов —
// страховка от битых данных, секция физически не вмещает больше.
const maxOccupiedScan = 10000

// SectionBounds — внешние границы секции, внутри которых размещаются слоты.
type SectionBounds struct {
	Start time.Time
	End   time.Time
}

// Window — занятое временное окно внутри секции.
type Window struct {
	Start time.Time
	End   time.Time
}

// PlacementResult — результат расчёта следующего свободного окна.
// Чистое вычисление, ни один сохранённый слот не изменяется.
type PlacementResult struct {
	StartTime         time.Time
	EndTime           time.Time
	RequestedDuration int  // Запрошенная длительность, минуты
	ActualDuration    int  // Фактически размещаемая длительность, минуты
	AvailableMinutes  int  // Остаток свободного времени от кандидата до конца секции
	Truncated         bool // true — доклад пришлось урезать под остаток секции
}

// NextAvailableSlot считает следующее свободное окно секции для элемента
// длительностью durationMin минут. Кандидат на начало — максимум из начала
// секции и «фронтира»: самого позднего окончания среди занятых слотов.
// Если окно кандидата выходит за конец секции, результат помечается Truncated
// с урезанной до остатка длительностью; при нулевом или отрицательном остатке
// возвращается ErrNoCapacity, слот нулевой длины не создаётся никогда.
func NextAvailableSlot(bounds SectionBounds, occupied []Window, durationMin int) (PlacementResult, error) {
	if durationMin <= 0 {
		return PlacementResult{}, ErrInvalidDuration
	}

	// Сортируем копию по началу — вызывающему не обязательно это делать.
	windows := make([]Window, len(occupied))
	copy(windows, occupied)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	frontier := bounds.Start
	for i, w := range windows {
		if i >= maxOccupiedScan {
			break
		}
		if w.End.After(frontier) {
			frontier = w.End
		}
	}

	available := int(bounds.End.Sub(frontier).Minutes())
	if available <= 0 {
		return PlacementResult{}, ErrNoCapacity
	}

	result := PlacementResult{
		StartTime:         frontier,
		RequestedDuration: durationMin,
		AvailableMinutes:  available,
	}
	if durationMin > available {
		result.ActualDuration = available
		result.EndTime = bounds.End
		result.Truncated = true
	} else {
		result.ActualDuration = durationMin
		result.EndTime = frontier.Add(time.Duration(durationMin) * time.Minute)
	}
	return result, nil
}
