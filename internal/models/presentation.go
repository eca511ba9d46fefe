package models

import (
	"gorm.io/gorm"
)

// Category — категория докладов, используется для группировки
// нераспределённых докладов в обзоре расписания.
type Category struct {
	gorm.Model
	ConferenceID uint   `gorm:"index;not null"`
	Name         string `gorm:"not null"`
}

// Presentation — доклад. Планировщик читает из него только FinalDuration,
// остальные поля нужны обзору расписания.
type Presentation struct {
	gorm.Model
	ConferenceID  uint      `gorm:"index;not null"` // Конференция-владелец
	CategoryID    *uint     `gorm:"index"`          // Категория (опционально)
	Category      *Category `gorm:"foreignKey:CategoryID"`
	Title         string    `gorm:"not null"` // Название доклада
	Abstract      string    // Аннотация
	FinalDuration int       `gorm:"not null"` // Итоговая длительность в минутах
	Authors       []Author  `gorm:"foreignKey:PresentationID"`
}
