package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы секций.
const (
	SectionTypeKeynote      = "keynote"
	SectionTypeBreak        = "break"
	SectionTypeLunch        = "lunch"
	SectionTypeOpening      = "opening"
	SectionTypeClosing      = "closing"
	SectionTypePresentation = "presentation"
	SectionTypeWorkshop     = "workshop"
	SectionTypePanel        = "panel"
	SectionTypeRoom         = "room"
)

// fixedSectionTypes — типы секций с фиксированным слотом на всё время секции.
// Такие секции никогда не являются целью автоматического назначения докладов.
var fixedSectionTypes = map[string]bool{
	SectionTypeKeynote: true,
	SectionTypeBreak:   true,
	SectionTypeLunch:   true,
	SectionTypeOpening: true,
	SectionTypeClosing: true,
}

// ValidSectionTypes — все допустимые значения поля Type.
var ValidSectionTypes = map[string]bool{
	SectionTypeKeynote:      true,
	SectionTypeBreak:        true,
	SectionTypeLunch:        true,
	SectionTypeOpening:      true,
	SectionTypeClosing:      true,
	SectionTypePresentation: true,
	SectionTypeWorkshop:     true,
	SectionTypePanel:        true,
	SectionTypeRoom:         true,
}

// Section — блок расписания (зал + интервал времени), внутри которого
// размещаются слоты докладов либо одно фиксированное событие.
type Section struct {
	gorm.Model
	ConferenceID uint      `gorm:"index;not null"` // Конференция-владелец
	DayID        *uint     `gorm:"index"`          // День, к которому привязана секция (создаётся лениво)
	Name         string    `gorm:"not null"`       // Название секции
	Room         string    `gorm:"not null"`       // Зал / аудитория
	Capacity     int       // Вместимость зала
	StartTime    time.Time `gorm:"index;not null"` // Начало секции — внешняя граница для слотов
	EndTime      time.Time `gorm:"not null"`       // Окончание секции
	Type         string    `gorm:"index;not null"` // Тип секции (keynote/break/.../presentation)
	TimeSlots    []TimeSlot `gorm:"foreignKey:SectionID"`
}

// IsFixed сообщает, является ли секция фиксированным календарным событием.
func (s *Section) IsFixed() bool {
	return fixedSectionTypes[s.Type]
}
