package schedule

import "errors"

// Ошибки планировщика. Обработчики транслируют их в коды ответа API.
var (
	// ErrInvalidRange — дата окончания раньше даты начала.
	ErrInvalidRange = errors.New("дата окончания раньше даты начала")
	// ErrInvalidDuration — неположительная длительность.
	ErrInvalidDuration = errors.New("длительность должна быть положительной")
	// ErrNotFound — конференция/секция/доклад/слот не найдены.
	ErrNotFound = errors.New("запись не найдена")
	// ErrNoCapacity — в секции не осталось места ни для какой длительности.
	ErrNoCapacity = errors.New("в секции не осталось свободного времени")
	// ErrSectionFixed — секция является фиксированным событием календаря
	// и не может быть целью назначения докладов.
	ErrSectionFixed = errors.New("секция является фиксированным событием")
	// ErrConflict — конкурентная запись, пойманная ограничением уникальности хранилища.
	ErrConflict = errors.New("конфликт одновременного назначения")
)
