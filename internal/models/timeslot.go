package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeSlot — конкретное временное окно внутри секции. Слот без доклада —
// фиксированное событие календаря (keynote, перерыв и т.п.).
// Уникальный индекс по presentation_id гарантирует: один доклад — один слот.
// Удаление слотов выполняется только через Unscoped(): мягко удалённая строка
// продолжала бы занимать уникальный индекс и блокировать повторное назначение.
type TimeSlot struct {
	gorm.Model
	SectionID      uint          `gorm:"index;not null"` // Секция-владелец
	StartTime      time.Time     `gorm:"index;not null"` // Начало слота (внутри границ секции)
	EndTime        time.Time     `gorm:"not null"`       // Окончание слота
	PresentationID *uint         `gorm:"uniqueIndex"`    // Назначенный доклад (nil — фиксированный слот)
	Presentation   *Presentation `gorm:"foreignKey:PresentationID"`
}
