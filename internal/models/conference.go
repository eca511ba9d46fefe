package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы конференции.
const (
	ConferenceStatusDraft     = "draft"
	ConferenceStatusPublished = "published"
	ConferenceStatusArchived  = "archived"
)

type Conference struct {
	gorm.Model
	Name        string     `gorm:"not null"`                // Название конференции
	StartDate   time.Time  `gorm:"index;not null"`          // Первый день конференции (только дата)
	EndDate     time.Time  `gorm:"not null"`                // Последний день конференции (только дата)
	Status      string     `gorm:"default:'draft';not null"` // draft / published / archived
	PublishedAt *time.Time // Время публикации расписания (nil — черновик)
}
