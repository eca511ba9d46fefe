package schedule

import (
	"errors"
	"math"
	"sort"

	"conf_sched/internal/models"

	"gorm.io/gorm"
)

// OverviewBuilder собирает дерево расписания конференции: скелет дней от
// генератора, секции со слотами по дням, агрегированная статистика.
// Только чтение, ни одной записи в хранилище.
type OverviewBuilder struct {
	db *gorm.DB
}

func NewOverviewBuilder(db *gorm.DB) *OverviewBuilder {
	return &OverviewBuilder{db: db}
}

// ScheduleTree — полный обзор расписания для клиента.
type ScheduleTree struct {
	Conference ConferenceSummary `json:"conference"`
	Days       []DayOverview     `json:"days"`
	Statistics Statistics        `json:"statistics"`
}

type ConferenceSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type DayOverview struct {
	DayDescriptor
	Sections []SectionOverview `json:"sections"`
}

type SectionOverview struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Room      string         `json:"room"`
	Capacity  int            `json:"capacity"`
	Type      string         `json:"type"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Slots     []SlotOverview `json:"slots"`
}

type SlotOverview struct {
	ID           uint                 `json:"id"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	IsFixed      bool                 `json:"is_fixed"`
	Presentation *PresentationSummary `json:"presentation,omitempty"`
}

type PresentationSummary struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Duration   int                 `json:"duration"`
	Category   string              `json:"category,omitempty"`
	Presenters []models.AuthorView `json:"presenters"`
}

// Statistics — статистика распределения докладов по слотам.
type Statistics struct {
	TotalPresentations       int `json:"total_presentations"`
	ScheduledPresentations   int `json:"scheduled_presentations"`
	UnscheduledPresentations int `json:"unscheduled_presentations"`
	SchedulingProgress       int `json:"scheduling_progress"` // Процент, 0..100
}

// ComputeStatistics считает прогресс распределения. Пустая конференция —
// легитимный результат с нулевым прогрессом, а не ошибка деления.
func ComputeStatistics(total, scheduled int) Statistics {
	stats := Statistics{
		TotalPresentations:       total,
		ScheduledPresentations:   scheduled,
		UnscheduledPresentations: total - scheduled,
	}
	if total > 0 {
		stats.SchedulingProgress = int(math.Round(float64(scheduled) / float64(total) * 100))
	}
	return stats
}

// BuildOverview строит обзор расписания конференции. Дни всегда выводятся
// генератором из диапазона дат конференции; секция попадает в день, чья
// календарная дата совпадает с датой начала секции (сравнение только по
// компоненту дня, время и зона игнорируются).
func (b *OverviewBuilder) BuildOverview(conferenceID uint) (*ScheduleTree, error) {
	var conference models.Conference
	if err := b.db.First(&conference, conferenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if conference.StartDate.IsZero() || conference.EndDate.IsZero() {
		return nil, ErrNotFound
	}

	days, err := GenerateDays(conference.StartDate, conference.EndDate)
	if err != nil {
		return nil, err
	}

	var sections []models.Section
	if err := b.db.
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB { return db.Order("time_slots.start_time ASC") }).
		Preload("TimeSlots.Presentation.Category").
		Preload("TimeSlots.Presentation.Authors.Speaker").
		Preload("TimeSlots.Presentation.Authors.Presenter").
		Where("conference_id = ?", conferenceID).
		Order("start_time ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}

	// Раскладываем секции по дням: ключ — дата начала секции.
	sectionsByDate := make(map[string][]SectionOverview)
	for _, section := range sections {
		overview := buildSectionOverview(section)
		date := section.StartTime.Format("2006-01-02")
		sectionsByDate[date] = append(sectionsByDate[date], overview)
	}

	tree := &ScheduleTree{
		Conference: ConferenceSummary{
			ID:        conference.ID,
			Name:      conference.Name,
			StartDate: conference.StartDate.Format("2006-01-02"),
			EndDate:   conference.EndDate.Format("2006-01-02"),
			Status:    conference.Status,
		},
	}
	for _, day := range days {
		sectionList := sectionsByDate[day.ISODate]
		if sectionList == nil {
			sectionList = []SectionOverview{}
		}
		sort.Slice(sectionList, func(i, j int) bool {
			return sectionList[i].StartTime < sectionList[j].StartTime
		})
		tree.Days = append(tree.Days, DayOverview{DayDescriptor: day, Sections: sectionList})
	}

	total, scheduled, err := b.countPresentations(conferenceID)
	if err != nil {
		return nil, err
	}
	tree.Statistics = ComputeStatistics(total, scheduled)

	return tree, nil
}

func buildSectionOverview(section models.Section) SectionOverview {
	overview := SectionOverview{
		ID:        section.ID,
		Name:      section.Name,
		Room:      section.Room,
		Capacity:  section.Capacity,
		Type:      section.Type,
		StartTime: section.StartTime.Format("15:04"),
		EndTime:   section.EndTime.Format("15:04"),
		Slots:     []SlotOverview{},
	}
	for _, slot := range section.TimeSlots {
		view := SlotOverview{
			ID:        slot.ID,
			StartTime: slot.StartTime.Format("15:04"),
			EndTime:   slot.EndTime.Format("15:04"),
			IsFixed:   section.IsFixed(),
		}
		if slot.Presentation != nil {
			summary := PresentationSummary{
				ID:         slot.Presentation.ID,
				Title:      slot.Presentation.Title,
				Duration:   slot.Presentation.FinalDuration,
				Presenters: []models.AuthorView{},
			}
			if slot.Presentation.Category != nil {
				summary.Category = slot.Presentation.Category.Name
			}
			for i := range slot.Presentation.Authors {
				summary.Presenters = append(summary.Presenters, slot.Presentation.Authors[i].Resolve())
			}
			view.Presentation = &summary
		}
		overview.Slots = append(overview.Slots, view)
	}
	return overview
}

// countPresentations возвращает общее число докладов конференции и число
// докладов с назначенным слотом.
func (b *OverviewBuilder) countPresentations(conferenceID uint) (total, scheduled int, err error) {
	var totalCount int64
	if err = b.db.Model(&models.Presentation{}).
		Where("conference_id = ?", conferenceID).
		Count(&totalCount).Error; err != nil {
		return 0, 0, err
	}

	var scheduledCount int64
	if err = b.db.Model(&models.TimeSlot{}).
		Joins("JOIN presentations ON presentations.id = time_slots.presentation_id").
		Where("presentations.conference_id = ? AND presentations.deleted_at IS NULL", conferenceID).
		Count(&scheduledCount).Error; err != nil {
		return 0, 0, err
	}

	return int(totalCount), int(scheduledCount), nil
}
