package tasks

import (
	"log"
	"time"

	"conf_sched/internal/models"
	"conf_sched/internal/storage"

	"github.com/robfig/cron/v3"
)

// CleanOrphanDays удаляет дни, на которых не осталось ни одной секции.
// Синхронная каскадная чистка при удалении секции покрывает обычный путь,
// эта задача подбирает дни, осиротевшие из-за гонок или ручных правок базы.
func CleanOrphanDays() {
	subquery := storage.DB.Model(&models.Section{}).
		Select("day_id").
		Where("day_id IS NOT NULL")

	result := storage.DB.Unscoped().
		Where("id NOT IN (?)", subquery).
		Delete(&models.Day{})
	if result.Error != nil {
		log.Println("Ошибка при удалении осиротевших дней:", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Удалено осиротевших дней: %d\n", result.RowsAffected)
	}
}

// ArchiveFinishedConferences переводит в статус archived конференции,
// закончившиеся более 30 дней назад.
func ArchiveFinishedConferences() {
	threshold := time.Now().Add(-30 * 24 * time.Hour)
	result := storage.DB.Model(&models.Conference{}).
		Where("end_date < ? AND status <> ?", threshold, models.ConferenceStatusArchived).
		Update("status", models.ConferenceStatusArchived)
	if result.Error != nil {
		log.Println("Ошибка при архивации конференций:", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Заархивировано конференций: %d\n", result.RowsAffected)
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Задача чистки осиротевших дней, каждый день в 03:00.
	_, err := c.AddFunc("0 0 3 * * *", CleanOrphanDays)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CleanOrphanDays:", err)
	}

	// Задача архивации завершённых конференций, каждый день в 04:00.
	_, err = c.AddFunc("0 0 4 * * *", ArchiveFinishedConferences)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи ArchiveFinishedConferences:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
