package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"conf_sched/internal/models"
	"conf_sched/internal/response"
	"conf_sched/internal/schedule"
	"conf_sched/internal/storage"

	"github.com/gin-gonic/gin"
)

var scheduleCtx = context.Background()

// overviewCacheTTL — время жизни кэша обзора расписания.
const overviewCacheTTL = 5 * time.Minute

func overviewCacheKey(conferenceID uint) string {
	return fmt.Sprintf("schedule_overview_%d", conferenceID)
}

// InvalidateScheduleCache сбрасывает кэш обзора после любой мутации расписания.
func InvalidateScheduleCache(conferenceID uint) {
	if storage.RedisClient == nil {
		return
	}
	storage.RedisClient.Del(scheduleCtx, overviewCacheKey(conferenceID))
}

// GetScheduleOverviewHandler обрабатывает запрос обзора расписания
// @Summary		Получение обзора расписания
// @Description	Возвращает дерево расписания: дни, секции со слотами и статистику распределения, кэширует результат в Redis
// @Tags			schedule
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Success		200	{object}	schedule.ScheduleTree	"Обзор расписания"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_CONFERENCE_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Конференция не найдена (CONFERENCE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences/{id}/schedule [get]
func GetScheduleOverviewHandler(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
		})
		return
	}

	cacheKey := overviewCacheKey(uint(conferenceID))

	// Проверка кэша
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(scheduleCtx, cacheKey).Result()
		if err == nil && cached != "" {
			var tree schedule.ScheduleTree
			if err := json.Unmarshal([]byte(cached), &tree); err == nil {
				c.JSON(http.StatusOK, tree)
				return
			}
		}
	}

	builder := schedule.NewOverviewBuilder(storage.DB)
	tree, err := builder.BuildOverview(uint(conferenceID))
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "CONFERENCE_NOT_FOUND",
				Message: "Конференция не найдена или не имеет дат проведения",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка построения обзора расписания",
			Details: err.Error(),
		})
		return
	}

	// Кэширование результата
	if storage.RedisClient != nil {
		if payload, err := json.Marshal(tree); err == nil {
			storage.RedisClient.Set(scheduleCtx, cacheKey, string(payload), overviewCacheTTL)
		}
	}

	c.JSON(http.StatusOK, tree)
}

// UnscheduledPresentation — доклад без слота в списке нераспределённых.
type UnscheduledPresentation struct {
	ID       uint                `json:"id"`
	Title    string              `json:"title"`
	Duration int                 `json:"duration"`
	Authors  []models.AuthorView `json:"authors"`
}

// UnscheduledGroup — группа нераспределённых докладов одной категории.
type UnscheduledGroup struct {
	Category      string                    `json:"category"`
	Presentations []UnscheduledPresentation `json:"presentations"`
}

// GetUnscheduledPresentationsHandler обрабатывает запрос нераспределённых докладов
// @Summary		Получение нераспределённых докладов
// @Description	Возвращает доклады конференции без назначенного слота, сгруппированные по категориям
// @Tags			schedule
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Success		200	{array}		UnscheduledGroup	"Группы нераспределённых докладов"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_CONFERENCE_ID)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences/{id}/unscheduled [get]
func GetUnscheduledPresentationsHandler(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
		})
		return
	}

	var presentations []models.Presentation
	if err := storage.DB.
		Preload("Category").
		Preload("Authors.Speaker").
		Preload("Authors.Presenter").
		Where("conference_id = ?", conferenceID).
		Order("id ASC").
		Find(&presentations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки докладов",
			Details: err.Error(),
		})
		return
	}

	// Собираем ID докладов, уже имеющих слот.
	var scheduledIDs []uint
	if err := storage.DB.Model(&models.TimeSlot{}).
		Where("presentation_id IS NOT NULL").
		Pluck("presentation_id", &scheduledIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки слотов",
			Details: err.Error(),
		})
		return
	}
	scheduled := make(map[uint]bool, len(scheduledIDs))
	for _, id := range scheduledIDs {
		scheduled[id] = true
	}

	// Группируем нераспределённые доклады по названию категории.
	groupIndex := map[string]int{}
	groups := []UnscheduledGroup{}
	for _, p := range presentations {
		if scheduled[p.ID] {
			continue
		}
		category := "Без категории"
		if p.Category != nil {
			category = p.Category.Name
		}

		authors := make([]models.AuthorView, 0, len(p.Authors))
		for i := range p.Authors {
			authors = append(authors, p.Authors[i].Resolve())
		}
		item := UnscheduledPresentation{
			ID:       p.ID,
			Title:    p.Title,
			Duration: p.FinalDuration,
			Authors:  authors,
		}

		idx, ok := groupIndex[category]
		if !ok {
			groups = append(groups, UnscheduledGroup{Category: category})
			idx = len(groups) - 1
			groupIndex[category] = idx
		}
		groups[idx].Presentations = append(groups[idx].Presentations, item)
	}

	c.JSON(http.StatusOK, groups)
}
