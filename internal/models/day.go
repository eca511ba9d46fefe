package models

import (
	"time"

	"gorm.io/gorm"
)

// Day — персистентный день конференции. Создаётся лениво при создании первой
// секции на эту дату; порядковый номер всегда считается одной и той же формулой
// (schedule.DayOrder), поэтому не может разойтись с генератором дней.
type Day struct {
	gorm.Model
	ConferenceID uint      `gorm:"uniqueIndex:idx_conference_date;not null"` // Конференция-владелец
	Date         time.Time `gorm:"uniqueIndex:idx_conference_date;not null"` // Календарная дата (без времени)
	Order        int       `gorm:"column:day_order;not null"`                // Порядковый номер, 1-based
	DisplayName  string    `gorm:"not null"`                                 // Отображаемое имя, например "Day 2"
}
