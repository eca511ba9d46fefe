package schedule

import (
	"errors"

	"conf_sched/internal/models"

	"gorm.io/gorm"
)

// Engine — движок назначения докладов. Единственный писатель строк TimeSlot;
// все остальные компоненты расписания только читают. Хэндл БД передаётся
// явно в конструктор, никакого глобального состояния внутри пакета нет.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// AssignOutcome — результат назначения. Либо создан слот (TimeSlot != nil),
// либо требуется подтверждение урезания (RequiresConfirmation == true) —
// это ожидаемая ветка, а не ошибка.
type AssignOutcome struct {
	RequiresConfirmation bool
	TimeSlot             *models.TimeSlot
	Presentation         *models.Presentation
	OriginalDuration     int // Исходная длительность доклада, минуты
	AvailableDuration    int // Длительность, которая поместится после урезания
	AvailableMinutes     int // Остаток свободного времени секции
}

// AssignPresentation размещает доклад в следующее свободное окно секции.
// Если окно меньше длительности доклада, слот не создаётся — возвращается
// исход RequiresConfirmation с деталями урезания, и вызывающий повторяет
// запрос через AssignPresentationWithDuration с подтверждённой длительностью.
func (e *Engine) AssignPresentation(presentationID, sectionID uint) (*AssignOutcome, error) {
	presentation, section, err := e.loadTargets(presentationID, sectionID)
	if err != nil {
		return nil, err
	}
	if presentation.FinalDuration <= 0 {
		return nil, ErrInvalidDuration
	}
	return e.place(presentation, section, presentation.FinalDuration, false)
}

// AssignPresentationWithDuration повторяет назначение с подтверждённой
// длительностью из отчёта об урезании. Расчёт выполняется заново по свежему
// снимку занятых слотов: если за время между ответом и подтверждением окно
// заняли конкурентные назначения, возвращается ErrNoCapacity — повторное
// урезание вызывающему не предлагается.
func (e *Engine) AssignPresentationWithDuration(presentationID, sectionID uint, confirmedDuration int) (*AssignOutcome, error) {
	if confirmedDuration <= 0 {
		return nil, ErrInvalidDuration
	}
	presentation, section, err := e.loadTargets(presentationID, sectionID)
	if err != nil {
		return nil, err
	}
	return e.place(presentation, section, confirmedDuration, true)
}

// UnassignPresentation снимает доклад с расписания: находит единственный слот,
// ссылающийся на доклад, и удаляет его. Соседние слоты не пересчитываются —
// уплотнение произойдёт само при следующем назначении.
func (e *Engine) UnassignPresentation(presentationID uint) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := e.db.Where("presentation_id = ?", presentationID).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Unscoped: мягко удалённая строка держала бы уникальный индекс по presentation_id.
	if err := e.db.Unscoped().Delete(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (e *Engine) loadTargets(presentationID, sectionID uint) (*models.Presentation, *models.Section, error) {
	var presentation models.Presentation
	if err := e.db.First(&presentation, presentationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var section models.Section
	if err := e.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if section.IsFixed() {
		return nil, nil, ErrSectionFixed
	}
	return &presentation, &section, nil
}

// place читает свежий снимок занятых слотов секции, прогоняет калькулятор и
// создаёт ровно одну строку TimeSlot. Чтение и запись идут в одной транзакции,
// чтобы сузить окно гонки; последняя линия обороны — уникальный индекс
// по presentation_id, нарушение которого транслируется в ErrConflict.
func (e *Engine) place(presentation *models.Presentation, section *models.Section, durationMin int, confirmed bool) (*AssignOutcome, error) {
	if slot, err := e.currentSlot(presentation.ID); err != nil {
		return nil, err
	} else if slot != nil {
		return nil, ErrConflict
	}

	var created models.TimeSlot
	var outcome *AssignOutcome

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.TimeSlot
		if err := tx.Where("section_id = ?", section.ID).Order("start_time ASC").Find(&existing).Error; err != nil {
			return err
		}

		occupied := make([]Window, 0, len(existing))
		for _, s := range existing {
			occupied = append(occupied, Window{Start: s.StartTime, End: s.EndTime})
		}

		result, err := NextAvailableSlot(
			SectionBounds{Start: section.StartTime, End: section.EndTime},
			occupied,
			durationMin,
		)
		if err != nil {
			return err
		}

		if result.Truncated {
			if confirmed {
				// Подтверждённая длительность перестала помещаться — окно
				// успели занять между ответом об урезании и подтверждением.
				return ErrNoCapacity
			}
			outcome = &AssignOutcome{
				RequiresConfirmation: true,
				Presentation:         presentation,
				OriginalDuration:     result.RequestedDuration,
				AvailableDuration:    result.ActualDuration,
				AvailableMinutes:     result.AvailableMinutes,
			}
			return nil
		}

		pid := presentation.ID
		created = models.TimeSlot{
			SectionID:      section.ID,
			StartTime:      result.StartTime,
			EndTime:        result.EndTime,
			PresentationID: &pid,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		outcome = &AssignOutcome{
			TimeSlot:     &created,
			Presentation: presentation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// currentSlot возвращает слот, уже ссылающийся на доклад, либо nil.
func (e *Engine) currentSlot(presentationID uint) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := e.db.Where("presentation_id = ?", presentationID).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
